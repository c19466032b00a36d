package api

import (
	"testing"

	"homescout/client-app/pkg/model"
)

func TestNormalizeRemoteProperty(t *testing.T) {
	raw := RemoteProperty{
		MongoID:      "662f1a",
		Title:        "Sea-facing 2BHK",
		Price:        12500000,
		Type:         "BUY",
		PropertyType: "2BHK",
		Location:     model.Location{City: "Mumbai"},
		Images:       []string{"/uploads/a.jpg"},
		Amenities:    []string{"Lift"},
		Availability: "Available",
	}

	p := NormalizeRemoteProperty(raw)

	if p.ID != "api_662f1a" {
		t.Errorf("expected namespaced id api_662f1a, got %s", p.ID)
	}
	if p.RemoteID != "662f1a" {
		t.Errorf("expected remote id to be retained, got %s", p.RemoteID)
	}
	if !p.IsRemote() {
		t.Error("normalized remote property must report IsRemote")
	}
	if p.Type != model.TypeBuy {
		t.Errorf("expected lowered type buy, got %s", p.Type)
	}
	if p.Availability != model.AvailabilityAvailable {
		t.Errorf("expected lowered availability, got %s", p.Availability)
	}
}

func TestNormalizeRemotePropertyDefaults(t *testing.T) {
	p := NormalizeRemoteProperty(RemoteProperty{ID: "x1"})

	if p.ID != "api_x1" {
		t.Errorf("expected fallback to the plain id field, got %s", p.ID)
	}
	if p.Type != model.TypeBuy {
		t.Errorf("expected unknown type to default to buy, got %s", p.Type)
	}
	if p.Availability != model.AvailabilityAvailable {
		t.Errorf("expected unknown availability to default to available, got %s", p.Availability)
	}
	if len(p.Images) != 1 || p.Images[0] != PlaceholderImage {
		t.Errorf("expected placeholder image, got %v", p.Images)
	}
	if p.Amenities == nil || p.Features == nil || p.NearbyPlaces == nil {
		t.Error("expected nil slices to be normalized to empty slices")
	}
}

func TestNormalizeRemotePropertyDealerFallback(t *testing.T) {
	dealer := model.Agent{Name: "R. Mehta", Phone: "+912200112233"}

	p := NormalizeRemoteProperty(RemoteProperty{MongoID: "d1", Dealer: &dealer})
	if p.Agent != dealer {
		t.Errorf("expected dealer to be used when agent is empty, got %+v", p.Agent)
	}

	agent := model.Agent{Name: "S. Iyer"}
	p = NormalizeRemoteProperty(RemoteProperty{MongoID: "d2", Agent: agent, Dealer: &dealer})
	if p.Agent != agent {
		t.Errorf("expected agent to win over dealer, got %+v", p.Agent)
	}
}

func TestNormalizeRemotePropertiesDedupe(t *testing.T) {
	properties := normalizeRemoteProperties([]RemoteProperty{
		{MongoID: "a"},
		{MongoID: "b"},
		{MongoID: "a"},
	})
	if len(properties) != 2 {
		t.Fatalf("expected duplicates to be dropped, got %d properties", len(properties))
	}
	if properties[0].ID != "api_a" || properties[1].ID != "api_b" {
		t.Errorf("expected order to be preserved, got %s, %s", properties[0].ID, properties[1].ID)
	}
}

func TestNormalizeImages(t *testing.T) {
	if got := normalizeImages([]string{"", "  ", "/a.jpg"}); len(got) != 1 || got[0] != "/a.jpg" {
		t.Errorf("expected blank entries dropped, got %v", got)
	}
	if got := normalizeImages([]string{"", "  "}); len(got) != 1 || got[0] != PlaceholderImage {
		t.Errorf("expected placeholder when all entries are blank, got %v", got)
	}
}
