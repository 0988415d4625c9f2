package kb

import (
	"errors"
	"testing"

	"github.com/fr33n0w/los-tools/model"
)

func testSite(id string) *model.Site {
	return &model.Site{
		ID:       id,
		Name:     "site " + id,
		Position: model.GeoPoint{LatitudeDeg: 45, LongitudeDeg: 7},
	}
}

func testRadio(id string) *model.RadioProfile {
	return &model.RadioProfile{
		ID:   id,
		Name: "radio " + id,
		Params: model.RFParameters{
			FrequencyMHz:    868,
			BandwidthKHz:    125,
			SpreadingFactor: 9,
			CodingRate:      5,
			TxPowerDBm:      14,
		},
	}
}

func TestAddSite(t *testing.T) {
	store := NewKnowledgeBase()

	if err := store.AddSite(testSite("a")); err != nil {
		t.Fatalf("AddSite: %v", err)
	}
	if got := store.GetSite("a"); got == nil || got.ID != "a" {
		t.Fatalf("GetSite(a) = %+v", got)
	}
	if got := store.GetSite("missing"); got != nil {
		t.Errorf("GetSite(missing) = %+v, want nil", got)
	}

	if err := store.AddSite(testSite("a")); !errors.Is(err, ErrSiteExists) {
		t.Errorf("duplicate AddSite error = %v, want ErrSiteExists", err)
	}
	if err := store.AddSite(nil); !errors.Is(err, ErrBadInput) {
		t.Errorf("nil AddSite error = %v, want ErrBadInput", err)
	}
	if err := store.AddSite(&model.Site{}); !errors.Is(err, ErrBadInput) {
		t.Errorf("empty-ID AddSite error = %v, want ErrBadInput", err)
	}
}

func TestListSites_Sorted(t *testing.T) {
	store := NewKnowledgeBase()
	for _, id := range []string{"charlie", "alpha", "bravo"} {
		if err := store.AddSite(testSite(id)); err != nil {
			t.Fatalf("AddSite(%s): %v", id, err)
		}
	}

	sites := store.ListSites()
	if len(sites) != 3 {
		t.Fatalf("got %d sites, want 3", len(sites))
	}
	want := []string{"alpha", "bravo", "charlie"}
	for i, s := range sites {
		if s.ID != want[i] {
			t.Errorf("sites[%d] = %s, want %s", i, s.ID, want[i])
		}
	}
}

func TestAddRadioProfile(t *testing.T) {
	store := NewKnowledgeBase()

	if err := store.AddRadioProfile(testRadio("r1")); err != nil {
		t.Fatalf("AddRadioProfile: %v", err)
	}
	if got := store.GetRadioProfile("r1"); got == nil || got.ID != "r1" {
		t.Fatalf("GetRadioProfile(r1) = %+v", got)
	}
	if err := store.AddRadioProfile(testRadio("r1")); !errors.Is(err, ErrRadioExists) {
		t.Errorf("duplicate AddRadioProfile error = %v, want ErrRadioExists", err)
	}
}

func TestAddLinkPlan_ValidatesReferences(t *testing.T) {
	store := NewKnowledgeBase()
	if err := store.AddSite(testSite("a")); err != nil {
		t.Fatal(err)
	}
	if err := store.AddSite(testSite("b")); err != nil {
		t.Fatal(err)
	}
	if err := store.AddRadioProfile(testRadio("r1")); err != nil {
		t.Fatal(err)
	}

	link := &model.LinkPlan{ID: "l1", SiteA: "a", SiteB: "b", RadioID: "r1"}
	if err := store.AddLinkPlan(link); err != nil {
		t.Fatalf("AddLinkPlan: %v", err)
	}

	if err := store.AddLinkPlan(link); !errors.Is(err, ErrLinkExists) {
		t.Errorf("duplicate AddLinkPlan error = %v, want ErrLinkExists", err)
	}
	if err := store.AddLinkPlan(&model.LinkPlan{ID: "l2", SiteA: "a", SiteB: "ghost", RadioID: "r1"}); !errors.Is(err, ErrSiteMiss) {
		t.Errorf("unknown site error = %v, want ErrSiteMiss", err)
	}
	if err := store.AddLinkPlan(&model.LinkPlan{ID: "l3", SiteA: "a", SiteB: "b", RadioID: "ghost"}); !errors.Is(err, ErrRadioMiss) {
		t.Errorf("unknown radio error = %v, want ErrRadioMiss", err)
	}

	links := store.ListLinkPlans()
	if len(links) != 1 || links[0].ID != "l1" {
		t.Errorf("ListLinkPlans = %+v, want only l1", links)
	}
}

func TestBuildingsCopy(t *testing.T) {
	store := NewKnowledgeBase()
	store.AddBuilding(model.Building{
		Position: model.GeoPoint{LatitudeDeg: 45, LongitudeDeg: 7},
		HeightM:  20,
	})

	got := store.Buildings()
	if len(got) != 1 {
		t.Fatalf("got %d buildings, want 1", len(got))
	}

	// The returned slice is detached from the store.
	got[0].HeightM = 999
	if again := store.Buildings(); again[0].HeightM != 20 {
		t.Errorf("mutating the returned slice leaked into the store: %v", again[0].HeightM)
	}
}

func TestCountsAndClear(t *testing.T) {
	store := NewKnowledgeBase()
	if err := store.AddSite(testSite("a")); err != nil {
		t.Fatal(err)
	}
	if err := store.AddSite(testSite("b")); err != nil {
		t.Fatal(err)
	}
	if err := store.AddRadioProfile(testRadio("r1")); err != nil {
		t.Fatal(err)
	}
	if err := store.AddLinkPlan(&model.LinkPlan{ID: "l1", SiteA: "a", SiteB: "b", RadioID: "r1"}); err != nil {
		t.Fatal(err)
	}
	store.AddBuilding(model.Building{HeightM: 10})

	sites, radios, links, buildings := store.Counts()
	if sites != 2 || radios != 1 || links != 1 || buildings != 1 {
		t.Errorf("Counts = %d/%d/%d/%d, want 2/1/1/1", sites, radios, links, buildings)
	}

	store.Clear()
	sites, radios, links, buildings = store.Counts()
	if sites != 0 || radios != 0 || links != 0 || buildings != 0 {
		t.Errorf("Counts after Clear = %d/%d/%d/%d, want zeros", sites, radios, links, buildings)
	}
}
