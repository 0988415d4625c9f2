package model

// ObstructionKind distinguishes terrain from building obstructions.
// The classification is heuristic: the input carries no ground-truth
// flag, so anything standing well above bare terrain is assumed built.
type ObstructionKind string

const (
	ObstructionTerrain  ObstructionKind = "terrain"
	ObstructionBuilding ObstructionKind = "building"
)

// LinkQuality is a coarse, human-readable classification of a link's
// line-of-sight clearance.
type LinkQuality string

const (
	LinkQualityBlocked   LinkQuality = "blocked"
	LinkQualityPoor      LinkQuality = "poor"
	LinkQualityMarginal  LinkQuality = "marginal"
	LinkQualityGood      LinkQuality = "good"
	LinkQualityExcellent LinkQuality = "excellent"
)

// BudgetStatus classifies a link budget by how far the link margin sits
// above the configured fade margin.
type BudgetStatus string

const (
	BudgetPoor      BudgetStatus = "poor"
	BudgetMarginal  BudgetStatus = "marginal"
	BudgetGood      BudgetStatus = "good"
	BudgetExcellent BudgetStatus = "excellent"
)

// Obstruction records one profile sample whose effective height exceeds
// the required clearance height of the sight line.
type Obstruction struct {
	DistanceKm         float64
	ObstructingHeightM float64
	RequiredHeightM    float64
	ExcessM            float64
	Location           GeoPoint
	Kind               ObstructionKind
}

// LoSResult is the verdict of a line-of-sight scan over an elevation
// profile. Obstructions appear in path order.
type LoSResult struct {
	HasLineOfSight             bool
	Obstructions               []Obstruction
	MinFresnelClearancePercent float64
	Quality                    LinkQuality
}

// LinkBudgetResult quantifies the energetic viability of a link at a
// given distance.
type LinkBudgetResult struct {
	SensitivityDBm    float64
	PathLossDB        float64
	RxPowerDBm        float64
	LinkMarginDB      float64
	LinkBudgetDB      float64
	DataRateBps       int
	MaxFresnelRadiusM float64
	Status            BudgetStatus
}

// LinkReport is the combined result of a full link analysis: the
// geometric verdict and the energy budget for the same RF settings.
type LinkReport struct {
	LoS    LoSResult
	Budget LinkBudgetResult
}
