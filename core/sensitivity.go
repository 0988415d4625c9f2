package core

import (
	"errors"
	"fmt"

	"github.com/fr33n0w/los-tools/model"
)

var (
	ErrInvalidParameter = errors.New("invalid RF parameter")
)

// sensitivityDBm is the receiver sensitivity table, keyed by bandwidth
// (kHz) then spreading factor. Values follow the SX127x datasheet:
// each SF step buys roughly 2.5-3 dB, each bandwidth doubling costs
// about 3 dB.
var sensitivityDBm = map[float64]map[int]float64{
	125: {7: -123, 8: -126, 9: -129, 10: -132, 11: -134.5, 12: -137},
	250: {7: -120, 8: -123, 9: -126, 10: -129, 11: -131.5, 12: -134},
	500: {7: -117, 8: -120, 9: -123, 10: -126, 11: -128.5, 12: -131},
}

// Bandwidths lists the table's bandwidth keys in ascending order.
func Bandwidths() []float64 { return []float64{125, 250, 500} }

// SpreadingFactors lists the table's SF keys in ascending order.
func SpreadingFactors() []int { return []int{7, 8, 9, 10, 11, 12} }

// Sensitivity returns the receiver sensitivity in dBm for a spreading
// factor and bandwidth. Combinations outside the table fail with
// ErrInvalidParameter; there is no silent default.
func Sensitivity(sf int, bwKHz float64) (float64, error) {
	bySF, ok := sensitivityDBm[bwKHz]
	if !ok {
		return 0, fmt.Errorf("%w: bandwidth %v kHz not in sensitivity table", ErrInvalidParameter, bwKHz)
	}
	s, ok := bySF[sf]
	if !ok {
		return 0, fmt.Errorf("%w: spreading factor %d not in sensitivity table", ErrInvalidParameter, sf)
	}
	return s, nil
}

// ValidateRFParameters checks that an RFParameters value is inside the
// calculator's documented input domain.
func ValidateRFParameters(p model.RFParameters) error {
	if p.FrequencyMHz <= 0 {
		return fmt.Errorf("%w: frequency %v MHz", ErrInvalidParameter, p.FrequencyMHz)
	}
	if p.SpreadingFactor < 7 || p.SpreadingFactor > 12 {
		return fmt.Errorf("%w: spreading factor %d outside [7,12]", ErrInvalidParameter, p.SpreadingFactor)
	}
	if _, ok := sensitivityDBm[p.BandwidthKHz]; !ok {
		return fmt.Errorf("%w: bandwidth %v kHz not in sensitivity table", ErrInvalidParameter, p.BandwidthKHz)
	}
	if p.CodingRate < 5 || p.CodingRate > 8 {
		return fmt.Errorf("%w: coding rate denominator %d outside [5,8]", ErrInvalidParameter, p.CodingRate)
	}
	return nil
}
