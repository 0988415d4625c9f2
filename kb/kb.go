package kb

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/fr33n0w/los-tools/model"
)

var (
	ErrSiteExists  = errors.New("site already exists")
	ErrRadioExists = errors.New("radio profile already exists")
	ErrRadioMiss   = errors.New("link references unknown radio profile")
	ErrSiteMiss    = errors.New("link references unknown site")
	ErrLinkExists  = errors.New("link already exists")
	ErrBadInput    = errors.New("invalid scenario entity")
)

// KnowledgeBase is the in-memory scenario store: named sites, radio
// profiles, planned links, and buildings near the paths.
//
// It is concurrency-safe via an internal RWMutex so one loaded scenario
// can feed parallel analyses, as long as all access goes through these
// methods. The entities themselves are treated as immutable once added.
type KnowledgeBase struct {
	mu sync.RWMutex

	sites     map[string]*model.Site
	radios    map[string]*model.RadioProfile
	links     map[string]*model.LinkPlan
	buildings []model.Building
}

// NewKnowledgeBase creates an empty scenario store.
func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{
		sites:  make(map[string]*model.Site),
		radios: make(map[string]*model.RadioProfile),
		links:  make(map[string]*model.LinkPlan),
	}
}

//
// ---------- Sites ----------
//

func (kb *KnowledgeBase) AddSite(s *model.Site) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("%w: nil or empty site", ErrBadInput)
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	if _, exists := kb.sites[s.ID]; exists {
		return fmt.Errorf("%w: %q", ErrSiteExists, s.ID)
	}
	kb.sites[s.ID] = s
	return nil
}

// GetSite returns a site by ID, or nil if not found.
func (kb *KnowledgeBase) GetSite(id string) *model.Site {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return kb.sites[id]
}

// ListSites returns all sites sorted by ID.
func (kb *KnowledgeBase) ListSites() []*model.Site {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	out := make([]*model.Site, 0, len(kb.sites))
	for _, s := range kb.sites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

//
// ---------- Radio profiles ----------
//

func (kb *KnowledgeBase) AddRadioProfile(r *model.RadioProfile) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("%w: nil or empty radio profile", ErrBadInput)
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	if _, exists := kb.radios[r.ID]; exists {
		return fmt.Errorf("%w: %q", ErrRadioExists, r.ID)
	}
	kb.radios[r.ID] = r
	return nil
}

// GetRadioProfile returns a radio profile by ID, or nil if not found.
func (kb *KnowledgeBase) GetRadioProfile(id string) *model.RadioProfile {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return kb.radios[id]
}

//
// ---------- Planned links ----------
//

// AddLinkPlan inserts a planned link after validating that its site and
// radio references exist.
func (kb *KnowledgeBase) AddLinkPlan(l *model.LinkPlan) error {
	if l == nil || l.ID == "" {
		return fmt.Errorf("%w: nil or empty link", ErrBadInput)
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	if _, exists := kb.links[l.ID]; exists {
		return fmt.Errorf("%w: %q", ErrLinkExists, l.ID)
	}
	for _, siteID := range []string{l.SiteA, l.SiteB} {
		if _, ok := kb.sites[siteID]; !ok {
			return fmt.Errorf("%w: %q references %q", ErrSiteMiss, l.ID, siteID)
		}
	}
	if _, ok := kb.radios[l.RadioID]; !ok {
		return fmt.Errorf("%w: %q references %q", ErrRadioMiss, l.ID, l.RadioID)
	}

	kb.links[l.ID] = l
	return nil
}

// ListLinkPlans returns all planned links sorted by ID.
func (kb *KnowledgeBase) ListLinkPlans() []*model.LinkPlan {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	out := make([]*model.LinkPlan, 0, len(kb.links))
	for _, l := range kb.links {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

//
// ---------- Buildings ----------
//

func (kb *KnowledgeBase) AddBuilding(b model.Building) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.buildings = append(kb.buildings, b)
}

// Buildings returns a snapshot of the building set.
func (kb *KnowledgeBase) Buildings() []model.Building {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	out := make([]model.Building, len(kb.buildings))
	copy(out, kb.buildings)
	return out
}

// Counts reports the scenario size, for logging and gauges.
func (kb *KnowledgeBase) Counts() (sites, radios, links, buildings int) {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return len(kb.sites), len(kb.radios), len(kb.links), len(kb.buildings)
}

// Clear drops everything, leaving an empty store ready for a fresh
// scenario.
func (kb *KnowledgeBase) Clear() {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	kb.sites = make(map[string]*model.Site)
	kb.radios = make(map[string]*model.RadioProfile)
	kb.links = make(map[string]*model.LinkPlan)
	kb.buildings = nil
}
