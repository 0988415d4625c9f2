package kb

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fr33n0w/los-tools/model"
)

// Scenario is a small summary of what was loaded from JSON. It's
// mainly useful for logging from main().
type Scenario struct {
	SiteIDs  []string
	RadioIDs []string
	LinkIDs  []string

	BuildingCount int
}

// internal JSON shapes – kept unexported so we're free to evolve them.
type scenarioJSON struct {
	Radios    []radioJSON    `json:"radios"`
	Sites     []siteJSON     `json:"sites"`
	Buildings []buildingJSON `json:"buildings"`
	Links     []linkJSON     `json:"links"`
}

type radioJSON struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	FrequencyMHz    float64 `json:"frequency_mhz"`
	BandwidthKHz    float64 `json:"bandwidth_khz"`
	SpreadingFactor int     `json:"spreading_factor"`
	CodingRate      int     `json:"coding_rate"`
	TxPowerDBm      float64 `json:"tx_power_dbm"`
	TxGainDBi       float64 `json:"tx_gain_dbi"`
	RxGainDBi       float64 `json:"rx_gain_dbi"`
	FadeMarginDB    float64 `json:"fade_margin_db"` // optional; 0 = default 10
}

type siteJSON struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AntennaHeightM float64 `json:"antenna_height_m"`
}

type buildingJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	HeightM   float64 `json:"height_m"`
	// Footprint is an optional polygon of [longitude, latitude] pairs.
	Footprint [][]float64 `json:"footprint"`
}

type linkJSON struct {
	ID      string `json:"id"`
	SiteA   string `json:"site_a"`
	SiteB   string `json:"site_b"`
	RadioID string `json:"radio_id"`
	// ElevationsM holds terrain heights sampled uniformly between the
	// two sites, already fetched by whatever elevation service the
	// caller uses.
	ElevationsM []float64 `json:"elevations_m"`
}

// LoadScenario reads a JSON scenario from r, populates the
// KnowledgeBase with radios, sites, buildings and planned links, and
// returns a summary of what was loaded.
func LoadScenario(kb *KnowledgeBase, r io.Reader) (*Scenario, error) {
	if kb == nil {
		return nil, fmt.Errorf("LoadScenario: kb is nil")
	}

	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	result := &Scenario{
		SiteIDs:  make([]string, 0, len(payload.Sites)),
		RadioIDs: make([]string, 0, len(payload.Radios)),
		LinkIDs:  make([]string, 0, len(payload.Links)),
	}

	// 1) Radio profiles
	for _, jsR := range payload.Radios {
		if jsR.ID == "" {
			return nil, fmt.Errorf("LoadScenario: radio with empty id")
		}
		radio := &model.RadioProfile{
			ID:   jsR.ID,
			Name: jsR.Name,
			Params: model.RFParameters{
				FrequencyMHz:    jsR.FrequencyMHz,
				BandwidthKHz:    jsR.BandwidthKHz,
				SpreadingFactor: jsR.SpreadingFactor,
				CodingRate:      jsR.CodingRate,
				TxPowerDBm:      jsR.TxPowerDBm,
				TxGainDBi:       jsR.TxGainDBi,
				RxGainDBi:       jsR.RxGainDBi,
				FadeMarginDB:    jsR.FadeMarginDB,
			},
		}
		if err := kb.AddRadioProfile(radio); err != nil {
			return nil, fmt.Errorf("LoadScenario: %w", err)
		}
		result.RadioIDs = append(result.RadioIDs, jsR.ID)
	}

	// 2) Sites
	for _, jsS := range payload.Sites {
		if jsS.ID == "" {
			return nil, fmt.Errorf("LoadScenario: site with empty id")
		}
		site := &model.Site{
			ID:   jsS.ID,
			Name: jsS.Name,
			Position: model.GeoPoint{
				LatitudeDeg:  jsS.Latitude,
				LongitudeDeg: jsS.Longitude,
			},
			AntennaHeightM: jsS.AntennaHeightM,
		}
		if err := kb.AddSite(site); err != nil {
			return nil, fmt.Errorf("LoadScenario: %w", err)
		}
		result.SiteIDs = append(result.SiteIDs, jsS.ID)
	}

	// 3) Buildings
	for _, jsB := range payload.Buildings {
		b := model.Building{
			Position: model.GeoPoint{
				LatitudeDeg:  jsB.Latitude,
				LongitudeDeg: jsB.Longitude,
			},
			HeightM: jsB.HeightM,
		}
		for _, v := range jsB.Footprint {
			if len(v) < 2 {
				return nil, fmt.Errorf("LoadScenario: building footprint vertex with %d coordinates", len(v))
			}
			b.Footprint = append(b.Footprint, model.GeoPoint{
				LatitudeDeg:  v[1],
				LongitudeDeg: v[0],
			})
		}
		kb.AddBuilding(b)
		result.BuildingCount++
	}

	// 4) Planned links
	for _, jsL := range payload.Links {
		if jsL.ID == "" {
			return nil, fmt.Errorf("LoadScenario: link with empty id")
		}
		link := &model.LinkPlan{
			ID:          jsL.ID,
			SiteA:       jsL.SiteA,
			SiteB:       jsL.SiteB,
			RadioID:     jsL.RadioID,
			ElevationsM: jsL.ElevationsM,
		}
		if err := kb.AddLinkPlan(link); err != nil {
			return nil, fmt.Errorf("LoadScenario: %w", err)
		}
		result.LinkIDs = append(result.LinkIDs, jsL.ID)
	}

	return result, nil
}
