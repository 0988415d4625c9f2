package core

import (
	"math"

	"github.com/fr33n0w/los-tools/internal/geo"
	"github.com/fr33n0w/los-tools/model"
)

// Tunable thresholds for the obstruction scan. These are the fixed
// values carried by the original planner; an analyzer instance can
// override them.
const (
	// DefaultFresnelClearanceFactor is the fraction of the first
	// Fresnel zone granted before a sample counts as an obstruction.
	DefaultFresnelClearanceFactor = 0.6

	// DefaultBuildingProximityM is how close (metres) a building must
	// be to a path sample to raise that sample's obstruction height.
	DefaultBuildingProximityM = 50.0

	// DefaultBuildingKindThresholdM classifies an obstruction as a
	// building when its height exceeds bare terrain by more than this.
	// Heuristic: the input carries no explicit building flag.
	DefaultBuildingKindThresholdM = 5.0
)

// AnalyzeLineOfSight scans an elevation profile for obstructions using
// the default thresholds. See LinkAnalyzer.AnalyzeLineOfSight.
func AnalyzeLineOfSight(profile model.ElevationProfile, antennaHeight1M, antennaHeight2M, frequencyMHz float64, buildings []model.Building) model.LoSResult {
	return NewLinkAnalyzer(nil).AnalyzeLineOfSight(profile, antennaHeight1M, antennaHeight2M, frequencyMHz, buildings)
}

// AnalyzeLineOfSight determines whether a straight radio path between
// the profile's endpoints is clear, accounting for earth curvature,
// the first Fresnel zone, and nearby buildings.
//
// A profile with fewer than two samples yields the defined boundary
// result (no line of sight, no obstructions, zero clearance) rather
// than an error: it is the legitimate state when endpoints coincide.
func (a *LinkAnalyzer) AnalyzeLineOfSight(profile model.ElevationProfile, antennaHeight1M, antennaHeight2M, frequencyMHz float64, buildings []model.Building) model.LoSResult {
	samples := profile.Samples
	if len(samples) < 2 {
		return model.LoSResult{
			HasLineOfSight:             false,
			MinFresnelClearancePercent: 0,
			Quality:                    model.LinkQualityBlocked,
		}
	}

	startHeight := samples[0].ElevationM + antennaHeight1M
	endHeight := samples[len(samples)-1].ElevationM + antennaHeight2M
	total := profile.TotalDistanceKm

	minClearancePct := math.Inf(1)
	var obstructions []model.Obstruction

	// Endpoints are excluded: the antennas themselves are never
	// obstructions.
	for i := 1; i < len(samples)-1; i++ {
		s := samples[i]
		d1 := s.DistanceFromStartKm
		d2 := total - d1

		frac := 0.0
		if total > 0 {
			frac = d1 / total
		}
		lineHeight := startHeight + (endHeight-startHeight)*frac - EarthBulgeM(d1, d2)
		fresnel := FresnelRadius(d1, d2, frequencyMHz)
		requiredHeight := lineHeight + a.FresnelClearanceFactor*fresnel

		obstructionHeight := a.obstructionHeightAt(s, buildings)

		if fresnel > 0 {
			pct := (lineHeight - obstructionHeight) / fresnel * 100
			if pct < minClearancePct {
				minClearancePct = pct
			}
		}

		if obstructionHeight > requiredHeight {
			kind := model.ObstructionTerrain
			if obstructionHeight > s.ElevationM+a.BuildingKindThresholdM {
				kind = model.ObstructionBuilding
			}
			obstructions = append(obstructions, model.Obstruction{
				DistanceKm:         d1,
				ObstructingHeightM: obstructionHeight,
				RequiredHeightM:    requiredHeight,
				ExcessM:            obstructionHeight - requiredHeight,
				Location:           s.Point,
				Kind:               kind,
			})
		}
	}

	if math.IsInf(minClearancePct, 1) {
		// No interior sample to scan (two-sample profile): the direct
		// path is trivially clear.
		minClearancePct = 100
	}

	hasLoS := len(obstructions) == 0
	return model.LoSResult{
		HasLineOfSight:             hasLoS,
		Obstructions:               obstructions,
		MinFresnelClearancePercent: minClearancePct,
		Quality:                    classifyClearance(hasLoS, minClearancePct),
	}
}

// obstructionHeightAt returns the effective obstruction height at a
// sample: the terrain elevation, raised to the tallest qualifying
// building top. A building qualifies when its centre is within the
// proximity radius of the sample, or when the sample falls within (or
// near) its footprint polygon.
func (a *LinkAnalyzer) obstructionHeightAt(s model.ElevationSample, buildings []model.Building) float64 {
	height := s.ElevationM
	for _, b := range buildings {
		within := HaversineKm(b.Position, s.Point)*1000 <= a.BuildingProximityM
		if !within {
			if d, ok := geo.FootprintDistanceM(b, s.Point); ok && d <= a.BuildingProximityM {
				within = true
			}
		}
		if !within {
			continue
		}
		if top := s.ElevationM + b.HeightM; top > height {
			height = top
		}
	}
	return height
}

// classifyClearance buckets a LoS verdict by the worst Fresnel
// clearance seen along the path.
func classifyClearance(hasLoS bool, minClearancePct float64) model.LinkQuality {
	switch {
	case !hasLoS:
		return model.LinkQualityBlocked
	case minClearancePct < 20:
		return model.LinkQualityPoor
	case minClearancePct < 60:
		return model.LinkQualityMarginal
	case minClearancePct < 100:
		return model.LinkQualityGood
	default:
		return model.LinkQualityExcellent
	}
}
