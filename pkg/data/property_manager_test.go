package data

import (
	"context"
	"errors"
	"testing"

	"homescout/client-app/pkg/model"
)

func remoteProperty(remoteID string, mutate func(*model.Property)) model.Property {
	p := model.Property{
		ID:           model.RemoteIDPrefix + remoteID,
		RemoteID:     remoteID,
		Title:        "Remote listing " + remoteID,
		Price:        5000000,
		Type:         model.TypeBuy,
		PropertyType: "2BHK",
		Location:     model.Location{City: "Pune", Address: "12 Remote Lane"},
		Availability: model.AvailabilityAvailable,
		Images:       []string{"/images/placeholder-property.jpg"},
		Amenities:    []string{},
		Features:     []string{},
		NearbyPlaces: []string{},
	}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func newTestPropertyManager(t *testing.T, api *fakePropertyService) *PropertyManager {
	t.Helper()
	pm, err := NewPropertyManager(api, newTestEventManager(t), newTestLogger(t))
	if err != nil {
		t.Fatalf("NewPropertyManager: %v", err)
	}
	return pm
}

func TestPropertyAllMergedOrder(t *testing.T) {
	api := &fakePropertyService{properties: []model.Property{
		remoteProperty("r1", nil),
		remoteProperty("r2", nil),
	}}
	pm := newTestPropertyManager(t, api)

	if err := pm.PropertyRefresh(context.Background()); err != nil {
		t.Fatalf("PropertyRefresh: %v", err)
	}

	all := pm.PropertyAll()
	if len(all) != 7 {
		t.Fatalf("expected 5 bundled + 2 remote listings, got %d", len(all))
	}
	if all[0].ID != "hs-101" {
		t.Errorf("expected bundled listings first, got %s", all[0].ID)
	}
	if all[5].ID != "api_r1" || all[6].ID != "api_r2" {
		t.Errorf("expected remote listings in fetch order, got %s, %s", all[5].ID, all[6].ID)
	}
}

func TestPropertyAllBundledOnlyBeforeRemoteLoad(t *testing.T) {
	api := &fakePropertyService{listErr: errors.New("backend down")}
	pm := newTestPropertyManager(t, api)

	all := pm.PropertyAll()
	if len(all) != 5 {
		t.Fatalf("expected the 5 bundled listings, got %d", len(all))
	}
	for _, p := range all {
		if p.IsRemote() {
			t.Errorf("unexpected remote listing %s in bundled-only view", p.ID)
		}
	}
}

func TestPropertyRefreshFailureKeepsBundledView(t *testing.T) {
	api := &fakePropertyService{listErr: errors.New("backend down")}
	pm := newTestPropertyManager(t, api)

	if err := pm.PropertyRefresh(context.Background()); err == nil {
		t.Fatal("expected refresh error when backend is down")
	}
	if got := len(pm.PropertyAll()); got != 5 {
		t.Errorf("expected bundled-only view after failed refresh, got %d listings", got)
	}
}

func TestPropertyGet(t *testing.T) {
	api := &fakePropertyService{properties: []model.Property{remoteProperty("r1", nil)}}
	pm := newTestPropertyManager(t, api)
	if err := pm.PropertyRefresh(context.Background()); err != nil {
		t.Fatalf("PropertyRefresh: %v", err)
	}

	if p, err := pm.PropertyGet("hs-103"); err != nil || p.Title == "" {
		t.Errorf("expected bundled listing hs-103, got %v, %v", p, err)
	}
	if p, err := pm.PropertyGet("api_r1"); err != nil || p.RemoteID != "r1" {
		t.Errorf("expected remote listing api_r1, got %v, %v", p, err)
	}
	if _, err := pm.PropertyGet("nope"); err == nil {
		t.Error("expected an error for an unknown id")
	}
}

func TestPropertyFilter(t *testing.T) {
	maxInt := int(^uint(0) >> 1)
	api := &fakePropertyService{properties: []model.Property{
		remoteProperty("r1", func(p *model.Property) {
			p.Type = model.TypeRent
			p.Price = 18000
			p.PropertyType = "1BHK"
			p.Location = model.Location{City: "Pune", Address: "Baner Road"}
			p.PetsAllowed = true
			p.Amenities = []string{"Swimming Pool"}
		}),
	}}
	pm := newTestPropertyManager(t, api)
	if err := pm.PropertyRefresh(context.Background()); err != nil {
		t.Fatalf("PropertyRefresh: %v", err)
	}

	tests := []struct {
		name     string
		criteria model.FilterCriteria
		wantIDs  []string
	}{
		{
			name:     "empty criteria matches everything",
			criteria: model.FilterCriteria{},
			wantIDs:  []string{"hs-101", "hs-102", "hs-103", "hs-104", "hs-105", "api_r1"},
		},
		{
			name:     "type all matches everything",
			criteria: model.FilterCriteria{Type: model.TypeAll},
			wantIDs:  []string{"hs-101", "hs-102", "hs-103", "hs-104", "hs-105", "api_r1"},
		},
		{
			name:     "type rent",
			criteria: model.FilterCriteria{Type: model.TypeRent},
			wantIDs:  []string{"hs-102", "hs-104", "api_r1"},
		},
		{
			name:     "property type list is case-insensitive",
			criteria: model.FilterCriteria{PropertyType: []string{"studio", "1bhk"}},
			wantIDs:  []string{"hs-102", "hs-104", "api_r1"},
		},
		{
			name:     "price range is inclusive",
			criteria: model.FilterCriteria{PriceRange: &model.PriceRange{Min: 14500, Max: 22000}},
			wantIDs:  []string{"hs-102", "hs-104", "api_r1"},
		},
		{
			name:     "min only",
			criteria: model.FilterCriteria{PriceRange: &model.PriceRange{Min: 16500000, Max: maxInt}},
			wantIDs:  []string{"hs-103", "hs-105"},
		},
		{
			name:     "location matches city substring",
			criteria: model.FilterCriteria{Location: "mum"},
			wantIDs:  []string{"hs-105"},
		},
		{
			name:     "location matches address substring",
			criteria: model.FilterCriteria{Location: "baner"},
			wantIDs:  []string{"api_r1"},
		},
		{
			name:     "pets required",
			criteria: model.FilterCriteria{Type: model.TypeRent, PetsAllowed: true},
			wantIDs:  []string{"api_r1"},
		},
		{
			name:     "swimming pool matches partial amenity names",
			criteria: model.FilterCriteria{SwimmingPool: true},
			wantIDs:  []string{"hs-102", "hs-103", "hs-105", "api_r1"},
		},
		{
			name:     "parking matches parking or garage amenities",
			criteria: model.FilterCriteria{Parking: true},
			wantIDs:  []string{"hs-101", "hs-103", "hs-104", "hs-105"},
		},
		{
			name:     "availability filter",
			criteria: model.FilterCriteria{Availability: model.AvailabilitySold},
			wantIDs:  []string{"hs-105"},
		},
		{
			name:     "conjunction of criteria",
			criteria: model.FilterCriteria{Type: model.TypeBuy, Location: "pune", PetsAllowed: true},
			wantIDs:  []string{"hs-101", "hs-103"},
		},
		{
			name:     "no matches",
			criteria: model.FilterCriteria{Type: model.TypeRent, Location: "mumbai"},
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pm.PropertyFilter(tt.criteria)
			gotIDs := make([]string, len(got))
			for i, p := range got {
				gotIDs[i] = p.ID
			}
			if len(gotIDs) != len(tt.wantIDs) {
				t.Fatalf("expected %v, got %v", tt.wantIDs, gotIDs)
			}
			for i := range tt.wantIDs {
				if gotIDs[i] != tt.wantIDs[i] {
					t.Fatalf("expected %v, got %v", tt.wantIDs, gotIDs)
				}
			}
		})
	}
}
