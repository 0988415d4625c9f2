package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/fr33n0w/los-tools/core"
	"github.com/fr33n0w/los-tools/internal/logging"
	"github.com/fr33n0w/los-tools/internal/observability"
	"github.com/fr33n0w/los-tools/kb"
	"github.com/fr33n0w/los-tools/model"
)

func main() {
	scenarioPath := flag.String("scenario", "configs/scenario.json", "Path to a JSON scenario file")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics (empty = disabled)")
	recommend := flag.Bool("recommend", false, "Print recommended modulation settings per link")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	collector, err := observability.NewCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}

	store := kb.NewKnowledgeBase()
	loadScenario(log, store, *scenarioPath)
	collector.SetScenarioCounts(store.Counts())

	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	analyzer := core.NewLinkAnalyzer(log)
	analyzer.Metrics = collector

	for _, link := range store.ListLinkPlans() {
		if err := analyzeLink(ctx, analyzer, store, link, *recommend); err != nil {
			log.Error(ctx, "link analysis failed",
				logging.String("link", link.ID),
				logging.String("error", err.Error()))
		}
	}

	if metricsSrv == nil {
		return
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log.Info(ctx, "analysis complete, serving metrics until interrupted")
	<-stopCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsSrv.Shutdown(shutdownCtx)
}

func analyzeLink(ctx context.Context, analyzer *core.LinkAnalyzer, store *kb.KnowledgeBase, link *model.LinkPlan, recommend bool) error {
	siteA := store.GetSite(link.SiteA)
	siteB := store.GetSite(link.SiteB)
	radio := store.GetRadioProfile(link.RadioID)
	if siteA == nil || siteB == nil || radio == nil {
		return fmt.Errorf("link %s references missing site or radio", link.ID)
	}

	profile := core.BuildProfile(siteA.Position, siteB.Position, link.ElevationsM)

	report, err := analyzer.AnalyzeLink(ctx, profile, radio.Params,
		siteA.AntennaHeightM, siteB.AntennaHeightM, store.Buildings())
	if err != nil {
		return err
	}

	printReport(link, siteA, siteB, radio, profile, report)

	if recommend {
		printRecommendations(profile.TotalDistanceKm, radio.Params.FrequencyMHz)
	}
	return nil
}

func printReport(link *model.LinkPlan, siteA, siteB *model.Site, radio *model.RadioProfile, profile model.ElevationProfile, report model.LinkReport) {
	fmt.Printf("Link %s: %s <-> %s (%.2f km, %s SF%d/BW%.0f)\n",
		link.ID, siteA.Name, siteB.Name, profile.TotalDistanceKm,
		radio.Name, radio.Params.SpreadingFactor, radio.Params.BandwidthKHz)

	fmt.Printf("  ↳ budget: rx=%.1f dBm margin=%.1f dB rate=%d bps status=%s\n",
		report.Budget.RxPowerDBm, report.Budget.LinkMarginDB,
		report.Budget.DataRateBps, report.Budget.Status)

	if report.LoS.HasLineOfSight {
		fmt.Printf("  ↳ line of sight: clear (min Fresnel clearance %.0f%%, quality %s)\n",
			report.LoS.MinFresnelClearancePercent, report.LoS.Quality)
	} else {
		fmt.Printf("  ↳ line of sight: BLOCKED by %d obstruction(s)\n", len(report.LoS.Obstructions))
		for _, obs := range report.LoS.Obstructions {
			fmt.Printf("      %s at %.2f km: %.1f m high, %.1f m required (+%.1f m)\n",
				obs.Kind, obs.DistanceKm, obs.ObstructingHeightM,
				obs.RequiredHeightM, obs.ExcessM)
		}
	}

	if maxRange, err := core.MaxRange(radio.Params); err == nil {
		fmt.Printf("  ↳ max theoretical range: %.1f km\n", maxRange)
	}
}

func printRecommendations(distanceKm, frequencyMHz float64) {
	choices := core.RecommendSettings(distanceKm, frequencyMHz)
	if len(choices) == 0 {
		fmt.Println("  ↳ no modulation settings close the link at this distance")
		return
	}
	fmt.Println("  ↳ recommended settings:")
	for _, c := range choices {
		fmt.Printf("      SF%d/BW%.0f: %d bps, %.1f dB margin\n",
			c.SpreadingFactor, c.BandwidthKHz, c.DataRateBps, c.LinkMarginDB)
	}
}

func loadScenario(log logging.Logger, store *kb.KnowledgeBase, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Error(context.Background(), "failed to open scenario",
			logging.String("path", path), logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	summary, err := kb.LoadScenario(store, f)
	if err != nil {
		log.Error(context.Background(), "failed to load scenario",
			logging.String("path", path), logging.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info(context.Background(), "scenario loaded",
		logging.String("path", path),
		logging.Int("sites", len(summary.SiteIDs)),
		logging.Int("radios", len(summary.RadioIDs)),
		logging.Int("links", len(summary.LinkIDs)),
		logging.Int("buildings", summary.BuildingCount))
}

func serveMetrics(addr string, collector *observability.Collector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
