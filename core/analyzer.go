package core

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fr33n0w/los-tools/internal/logging"
	"github.com/fr33n0w/los-tools/model"
)

// MetricsRecorder receives one observation per completed analysis.
// Implemented by observability.Collector; a nil recorder is ignored.
type MetricsRecorder interface {
	ObserveAnalysis(quality string, d time.Duration)
}

// LinkAnalyzer combines the terrain scan and the RF budget into one
// report per link. It holds no per-call state: the fields are
// read-only tunables plus optional logging/metrics sinks, so a single
// analyzer may be shared across concurrent analyses.
type LinkAnalyzer struct {
	FresnelClearanceFactor float64
	BuildingProximityM     float64
	BuildingKindThresholdM float64

	Log     logging.Logger
	Metrics MetricsRecorder

	tracer trace.Tracer
}

// NewLinkAnalyzer returns an analyzer with the default thresholds.
// A nil logger is replaced by a noop logger.
func NewLinkAnalyzer(log logging.Logger) *LinkAnalyzer {
	if log == nil {
		log = logging.Noop()
	}
	return &LinkAnalyzer{
		FresnelClearanceFactor: DefaultFresnelClearanceFactor,
		BuildingProximityM:     DefaultBuildingProximityM,
		BuildingKindThresholdM: DefaultBuildingKindThresholdM,
		Log:                    log,
		tracer:                 otel.Tracer("los-tools/core"),
	}
}

// AnalyzeLink runs the line-of-sight scan and the link budget for the
// same RF settings over one elevation profile and returns the combined
// report. Identical inputs always produce identical reports.
func (a *LinkAnalyzer) AnalyzeLink(ctx context.Context, profile model.ElevationProfile, params model.RFParameters, antennaHeight1M, antennaHeight2M float64, buildings []model.Building) (model.LinkReport, error) {
	start := time.Now()
	ctx, span := a.tracer.Start(ctx, "AnalyzeLink",
		trace.WithAttributes(
			attribute.Float64("link.distance_km", profile.TotalDistanceKm),
			attribute.Float64("rf.frequency_mhz", params.FrequencyMHz),
			attribute.Int("rf.spreading_factor", params.SpreadingFactor),
			attribute.Float64("rf.bandwidth_khz", params.BandwidthKHz),
		),
	)
	defer span.End()

	budget, err := ComputeLinkBudget(params, profile.TotalDistanceKm)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		a.Log.Error(ctx, "link analysis rejected",
			logging.String("error", err.Error()),
		)
		return model.LinkReport{}, err
	}

	los := a.AnalyzeLineOfSight(profile, antennaHeight1M, antennaHeight2M, params.FrequencyMHz, buildings)

	span.SetAttributes(
		attribute.Bool("link.has_los", los.HasLineOfSight),
		attribute.String("link.quality", string(los.Quality)),
		attribute.Int("link.obstructions", len(los.Obstructions)),
	)

	if a.Metrics != nil {
		a.Metrics.ObserveAnalysis(string(los.Quality), time.Since(start))
	}
	a.Log.Debug(ctx, "link analyzed",
		logging.Float64("distance_km", profile.TotalDistanceKm),
		logging.String("quality", string(los.Quality)),
		logging.Float64("link_margin_db", budget.LinkMarginDB),
		logging.Int("obstructions", len(los.Obstructions)),
	)

	return model.LinkReport{LoS: los, Budget: budget}, nil
}
