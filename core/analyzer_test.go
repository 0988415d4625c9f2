package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fr33n0w/los-tools/model"
)

type fakeRecorder struct {
	qualities []string
	durations []time.Duration
}

func (r *fakeRecorder) ObserveAnalysis(quality string, d time.Duration) {
	r.qualities = append(r.qualities, quality)
	r.durations = append(r.durations, d)
}

func TestAnalyzeLink(t *testing.T) {
	analyzer := NewLinkAnalyzer(nil)
	recorder := &fakeRecorder{}
	analyzer.Metrics = recorder

	report, err := analyzer.AnalyzeLink(context.Background(), threeSampleProfile(0), testParams(), 10, 10, nil)
	if err != nil {
		t.Fatalf("AnalyzeLink: %v", err)
	}

	if !report.LoS.HasLineOfSight {
		t.Errorf("expected clear line of sight, got %+v", report.LoS.Obstructions)
	}
	if report.Budget.DataRateBps != 292 {
		t.Errorf("data rate = %d bps, want 292 (SF12/BW125/CR5)", report.Budget.DataRateBps)
	}
	if report.Budget.Status != model.BudgetExcellent {
		t.Errorf("budget status = %s, want excellent at 2 km", report.Budget.Status)
	}

	if len(recorder.qualities) != 1 {
		t.Fatalf("recorder saw %d observations, want 1", len(recorder.qualities))
	}
	if recorder.qualities[0] != string(report.LoS.Quality) {
		t.Errorf("recorded quality %q, want %q", recorder.qualities[0], report.LoS.Quality)
	}
}

func TestAnalyzeLink_Deterministic(t *testing.T) {
	analyzer := NewLinkAnalyzer(nil)
	profile := threeSampleProfile(500)

	first, err := analyzer.AnalyzeLink(context.Background(), profile, testParams(), 10, 10, nil)
	if err != nil {
		t.Fatalf("AnalyzeLink: %v", err)
	}
	second, err := analyzer.AnalyzeLink(context.Background(), profile, testParams(), 10, 10, nil)
	if err != nil {
		t.Fatalf("AnalyzeLink: %v", err)
	}

	if first.LoS.Quality != second.LoS.Quality ||
		len(first.LoS.Obstructions) != len(second.LoS.Obstructions) ||
		first.Budget.LinkMarginDB != second.Budget.LinkMarginDB {
		t.Errorf("identical inputs produced different reports: %+v vs %+v", first, second)
	}
}

func TestAnalyzeLink_InvalidParameters(t *testing.T) {
	analyzer := NewLinkAnalyzer(nil)
	recorder := &fakeRecorder{}
	analyzer.Metrics = recorder

	params := testParams()
	params.BandwidthKHz = 200

	if _, err := analyzer.AnalyzeLink(context.Background(), threeSampleProfile(0), params, 10, 10, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
	if len(recorder.qualities) != 0 {
		t.Errorf("rejected analysis still recorded %d observations", len(recorder.qualities))
	}
}
