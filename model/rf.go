package model

// DefaultFadeMarginDB is applied when RFParameters.FadeMarginDB is left
// at zero. 10 dB is the conventional reserve for multipath and weather
// effects not captured by free-space path loss.
const DefaultFadeMarginDB = 10.0

// RFParameters describes one LoRa modulation and radio configuration.
// BandwidthKHz and SpreadingFactor jointly index the receiver
// sensitivity table; combinations outside the table are rejected by the
// calculator rather than silently defaulted.
type RFParameters struct {
	FrequencyMHz float64 // carrier, e.g. 433 or 868

	BandwidthKHz    float64 // 125, 250 or 500
	SpreadingFactor int     // 7..12
	CodingRate      int     // denominator, 5..8 (4/5 .. 4/8)

	TxPowerDBm float64
	TxGainDBi  float64
	RxGainDBi  float64

	// FadeMarginDB reserves headroom above sensitivity; zero means
	// DefaultFadeMarginDB.
	FadeMarginDB float64
}

// EffectiveFadeMarginDB resolves the zero-means-default rule.
func (p RFParameters) EffectiveFadeMarginDB() float64 {
	if p.FadeMarginDB == 0 {
		return DefaultFadeMarginDB
	}
	return p.FadeMarginDB
}

// RadioProfile is a named, reusable RFParameters set as loaded from a
// scenario file.
type RadioProfile struct {
	ID     string
	Name   string
	Params RFParameters
}

// ModulationChoice is one entry of a recommended-settings search:
// a SF×BW pair together with the data rate and link margin it would
// achieve at the requested distance.
type ModulationChoice struct {
	SpreadingFactor int
	BandwidthKHz    float64
	DataRateBps     int
	LinkMarginDB    float64
}
