package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/fr33n0w/los-tools/model"
)

const (
	// miscLossesDB is a fixed cable/connector loss applied to every
	// link budget.
	miscLossesDB = 2.0

	// fsplConstantDB is the km/MHz form of the free-space path loss
	// equation constant.
	fsplConstantDB = 32.45

	// preambleSymbols is the LoRa preamble duration in symbol periods
	// (8 programmed symbols + 4.25 sync/chirp overhead).
	preambleSymbols = 8 + 4.25
)

// DataRate returns the raw LoRa data rate in bits per second for a
// spreading factor, bandwidth (kHz) and coding-rate denominator:
//
//	sf · (bwHz / 2^sf) · (4/cr)
//
// The result is truncated to whole bits per second (SF7/BW125/CR5
// yields 5468, not 5469); callers relying on the historical figures
// depend on that.
func DataRate(sf int, bwKHz float64, cr int) (int, error) {
	if err := ValidateRFParameters(model.RFParameters{
		FrequencyMHz:    1, // not used by the rate formula
		BandwidthKHz:    bwKHz,
		SpreadingFactor: sf,
		CodingRate:      cr,
	}); err != nil {
		return 0, err
	}
	symbolRate := bwKHz * 1000 / math.Exp2(float64(sf))
	return int(float64(sf) * symbolRate * 4 / float64(cr)), nil
}

// TimeOnAir returns the transmission duration in seconds for a payload
// of the given size. Preamble is 12.25 symbol periods; the payload
// symbol count follows the LoRa modem formula with the given coding
// rate denominator.
func TimeOnAir(sf int, bwKHz float64, cr int, payloadBytes int) (float64, error) {
	if _, err := DataRate(sf, bwKHz, cr); err != nil {
		return 0, err
	}
	if payloadBytes < 0 {
		return 0, fmt.Errorf("%w: payload size %d", ErrInvalidParameter, payloadBytes)
	}

	symbolPeriod := math.Exp2(float64(sf)) / (bwKHz * 1000)
	payloadSymbols := 8 + math.Max(
		math.Ceil(float64(8*payloadBytes-4*sf+28)/float64(4*sf))*float64(cr),
		0,
	)
	return (preambleSymbols + payloadSymbols) * symbolPeriod, nil
}

// FreeSpacePathLoss returns the FSPL in dB for a distance in km and a
// frequency in MHz:
//
//	20·log10(d) + 20·log10(f) + 32.45
//
// A distance ≤ 0 returns 0 dB. That is a boundary contract for the
// degenerate zero-length path, not a physical claim.
func FreeSpacePathLoss(distanceKm, frequencyMHz float64) float64 {
	if distanceKm <= 0 {
		return 0
	}
	return 20*math.Log10(distanceKm) + 20*math.Log10(frequencyMHz) + fsplConstantDB
}

// FresnelRadius returns the first-Fresnel-zone radius in metres at the
// point splitting the path into d1/d2 km:
//
//	17.3 · sqrt(d1·d2 / (f·(d1+d2)))
//
// A zero-length path (d1+d2 = 0) returns 0 by contract. The radius is
// symmetric in d1/d2 and maximal at the path midpoint.
func FresnelRadius(d1Km, d2Km, frequencyMHz float64) float64 {
	if d1Km < 0 || d2Km < 0 || d1Km+d2Km == 0 || frequencyMHz <= 0 {
		return 0
	}
	return 17.3 * math.Sqrt(d1Km*d2Km/(frequencyMHz*(d1Km+d2Km)))
}

// MaxFresnelRadius returns the radius at the midpoint of a path, which
// is where a straight path's first Fresnel zone is widest.
func MaxFresnelRadius(distanceKm, frequencyMHz float64) float64 {
	return FresnelRadius(distanceKm/2, distanceKm/2, frequencyMHz)
}

// ComputeLinkBudget evaluates the energy budget of a link at the given
// distance. Received power is TX power plus antenna gains minus FSPL
// and the fixed cable/connector loss; link margin is received power
// over sensitivity, and the budget is the margin left after the fade
// reserve.
func ComputeLinkBudget(p model.RFParameters, distanceKm float64) (model.LinkBudgetResult, error) {
	if err := ValidateRFParameters(p); err != nil {
		return model.LinkBudgetResult{}, err
	}
	sens, err := Sensitivity(p.SpreadingFactor, p.BandwidthKHz)
	if err != nil {
		return model.LinkBudgetResult{}, err
	}
	rate, err := DataRate(p.SpreadingFactor, p.BandwidthKHz, p.CodingRate)
	if err != nil {
		return model.LinkBudgetResult{}, err
	}

	fade := p.EffectiveFadeMarginDB()
	pathLoss := FreeSpacePathLoss(distanceKm, p.FrequencyMHz)
	rxPower := p.TxPowerDBm + p.TxGainDBi + p.RxGainDBi - pathLoss - miscLossesDB
	margin := rxPower - sens

	return model.LinkBudgetResult{
		SensitivityDBm:    sens,
		PathLossDB:        pathLoss,
		RxPowerDBm:        rxPower,
		LinkMarginDB:      margin,
		LinkBudgetDB:      margin - fade,
		DataRateBps:       rate,
		MaxFresnelRadiusM: MaxFresnelRadius(distanceKm, p.FrequencyMHz),
		Status:            classifyBudget(margin, fade),
	}, nil
}

// classifyBudget buckets a link margin relative to the fade margin F:
// below F is poor, then 10 dB steps up to excellent.
func classifyBudget(marginDB, fadeDB float64) model.BudgetStatus {
	switch {
	case marginDB < fadeDB:
		return model.BudgetPoor
	case marginDB < fadeDB+10:
		return model.BudgetMarginal
	case marginDB < fadeDB+20:
		return model.BudgetGood
	default:
		return model.BudgetExcellent
	}
}

// MaxRange inverts the FSPL equation for the distance at which the link
// margin equals the fade margin. A non-positive path-loss budget means
// no viable range and returns 0 km rather than a negative distance.
func MaxRange(p model.RFParameters) (float64, error) {
	if err := ValidateRFParameters(p); err != nil {
		return 0, err
	}
	sens, err := Sensitivity(p.SpreadingFactor, p.BandwidthKHz)
	if err != nil {
		return 0, err
	}

	budget := p.TxPowerDBm + p.TxGainDBi + p.RxGainDBi - sens - miscLossesDB - p.EffectiveFadeMarginDB()
	if budget <= 0 || math.IsInf(budget, 0) || math.IsNaN(budget) {
		return 0, nil
	}
	return math.Pow(10, (budget-20*math.Log10(p.FrequencyMHz)-fsplConstantDB)/20), nil
}

// Fixed assumptions behind RecommendSettings: an off-the-shelf node at
// 14 dBm into a dipole on each end, with the default fade reserve.
const (
	recommendTxPowerDBm  = 14.0
	recommendGainDBi     = 2.15
	recommendMinMarginDB = 10.0
)

// RecommendSettings searches all SF×BW combinations for the given
// distance and frequency, keeps those achieving at least 10 dB link
// margin under the default TX assumptions, and returns the top three
// ranked by dataRate·(margin/10) descending. Ties keep iteration order
// (SF ascending, then bandwidth ascending). This is a scan over a
// fixed 18-cell grid, not an optimizer.
func RecommendSettings(distanceKm, frequencyMHz float64) []model.ModulationChoice {
	if frequencyMHz <= 0 {
		return nil
	}

	var out []model.ModulationChoice
	for _, sf := range SpreadingFactors() {
		for _, bw := range Bandwidths() {
			p := model.RFParameters{
				FrequencyMHz:    frequencyMHz,
				BandwidthKHz:    bw,
				SpreadingFactor: sf,
				CodingRate:      5,
				TxPowerDBm:      recommendTxPowerDBm,
				TxGainDBi:       recommendGainDBi,
				RxGainDBi:       recommendGainDBi,
			}
			res, err := ComputeLinkBudget(p, distanceKm)
			if err != nil {
				continue
			}
			if res.LinkMarginDB < recommendMinMarginDB {
				continue
			}
			out = append(out, model.ModulationChoice{
				SpreadingFactor: sf,
				BandwidthKHz:    bw,
				DataRateBps:     res.DataRateBps,
				LinkMarginDB:    res.LinkMarginDB,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return recommendScore(out[i]) > recommendScore(out[j])
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func recommendScore(c model.ModulationChoice) float64 {
	return float64(c.DataRateBps) * (c.LinkMarginDB / 10)
}
