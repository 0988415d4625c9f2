package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the planner's Prometheus metrics and provides a
// ready-to-serve /metrics handler.
type Collector struct {
	gatherer prometheus.Gatherer

	Analyses          *prometheus.CounterVec
	AnalysisDurations prometheus.Histogram

	ScenarioSites     prometheus.Gauge
	ScenarioRadios    prometheus.Gauge
	ScenarioLinks     prometheus.Gauge
	ScenarioBuildings prometheus.Gauge
}

// NewCollector registers the planner metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	analyses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "linkplan_analyses_total",
		Help: "Total number of completed link analyses, labeled by line-of-sight quality.",
	}, []string{"quality"})
	analyses, err := registerCounterVec(reg, analyses, "linkplan_analyses_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "linkplan_analysis_duration_seconds",
		Help:    "Link analysis latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}), "linkplan_analysis_duration_seconds")
	if err != nil {
		return nil, err
	}

	sites, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "linkplan_scenario_sites",
		Help: "Current number of sites in the loaded scenario.",
	}), "linkplan_scenario_sites")
	if err != nil {
		return nil, err
	}
	radios, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "linkplan_scenario_radios",
		Help: "Current number of radio profiles in the loaded scenario.",
	}), "linkplan_scenario_radios")
	if err != nil {
		return nil, err
	}
	links, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "linkplan_scenario_links",
		Help: "Current number of planned links in the loaded scenario.",
	}), "linkplan_scenario_links")
	if err != nil {
		return nil, err
	}
	buildings, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "linkplan_scenario_buildings",
		Help: "Current number of buildings in the loaded scenario.",
	}), "linkplan_scenario_buildings")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:          gatherer,
		Analyses:          analyses,
		AnalysisDurations: durations,
		ScenarioSites:     sites,
		ScenarioRadios:    radios,
		ScenarioLinks:     links,
		ScenarioBuildings: buildings,
	}, nil
}

// ObserveAnalysis records one completed analysis. It satisfies the
// core.MetricsRecorder interface.
func (c *Collector) ObserveAnalysis(quality string, d time.Duration) {
	if c == nil {
		return
	}
	if c.Analyses != nil {
		c.Analyses.WithLabelValues(quality).Inc()
	}
	if c.AnalysisDurations != nil {
		c.AnalysisDurations.Observe(d.Seconds())
	}
}

// SetScenarioCounts drives the scenario gauges after a load.
func (c *Collector) SetScenarioCounts(sites, radios, links, buildings int) {
	if c == nil {
		return
	}
	if c.ScenarioSites != nil {
		c.ScenarioSites.Set(float64(sites))
	}
	if c.ScenarioRadios != nil {
		c.ScenarioRadios.Set(float64(radios))
	}
	if c.ScenarioLinks != nil {
		c.ScenarioLinks.Set(float64(links))
	}
	if c.ScenarioBuildings != nil {
		c.ScenarioBuildings.Set(float64(buildings))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
