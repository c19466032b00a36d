package api

import (
	"strings"

	"homescout/client-app/pkg/model"
)

// PlaceholderImage is substituted when a remote record carries no images.
const PlaceholderImage = "/images/placeholder-property.jpg"

// RemoteProperty is the wire shape of a backend property record. Fields the
// backend may omit are defaulted during normalization.
type RemoteProperty struct {
	MongoID      string         `json:"_id"`
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Price        int            `json:"price"`
	Type         string         `json:"type"`
	PropertyType string         `json:"propertyType"`
	Location     model.Location `json:"location"`
	Bedrooms     int            `json:"bedrooms"`
	Bathrooms    int            `json:"bathrooms"`
	Size         float64        `json:"size"`
	Images       []string       `json:"images"`
	Amenities    []string       `json:"amenities"`
	Availability string         `json:"availability"`
	PetsAllowed  bool           `json:"petsAllowed"`
	Featured     bool           `json:"featured"`
	YearBuilt    int            `json:"yearBuilt"`
	Parking      int            `json:"parking"`
	Agent        model.Agent    `json:"agent"`
	Dealer       *model.Agent   `json:"dealer,omitempty"`
	Description  string         `json:"description"`
	Features     []string       `json:"features"`
	NearbyPlaces []string       `json:"nearbyPlaces"`
}

// NormalizeRemoteProperty maps a backend record into a fully populated
// Property. The id is namespaced with the remote prefix and the original
// remote id is retained for update/delete calls. Normalization happens once
// here, never at read time.
func NormalizeRemoteProperty(raw RemoteProperty) model.Property {
	remoteID := raw.MongoID
	if remoteID == "" {
		remoteID = raw.ID
	}

	p := model.Property{
		ID:           model.RemoteIDPrefix + remoteID,
		RemoteID:     remoteID,
		Title:        raw.Title,
		Price:        raw.Price,
		Type:         normalizeType(raw.Type),
		PropertyType: raw.PropertyType,
		Location:     raw.Location,
		Bedrooms:     raw.Bedrooms,
		Bathrooms:    raw.Bathrooms,
		Size:         raw.Size,
		Images:       normalizeImages(raw.Images),
		Amenities:    emptySlice(raw.Amenities),
		Availability: normalizeAvailability(raw.Availability),
		PetsAllowed:  raw.PetsAllowed,
		Featured:     raw.Featured,
		YearBuilt:    raw.YearBuilt,
		Parking:      raw.Parking,
		Agent:        raw.Agent,
		Description:  raw.Description,
		Features:     emptySlice(raw.Features),
		NearbyPlaces: emptySlice(raw.NearbyPlaces),
	}

	// Older backend records carry the contact under "dealer".
	if p.Agent == (model.Agent{}) && raw.Dealer != nil {
		p.Agent = *raw.Dealer
	}

	return p
}

// normalizeRemoteProperties maps a list of backend records, dropping
// duplicates by id.
func normalizeRemoteProperties(raws []RemoteProperty) []model.Property {
	seen := make(map[string]bool, len(raws))
	properties := make([]model.Property, 0, len(raws))
	for _, raw := range raws {
		p := NormalizeRemoteProperty(raw)
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		properties = append(properties, p)
	}
	return properties
}

func normalizeType(t string) string {
	switch strings.ToLower(t) {
	case model.TypeRent:
		return model.TypeRent
	default:
		return model.TypeBuy
	}
}

func normalizeAvailability(a string) string {
	switch strings.ToLower(a) {
	case model.AvailabilitySold:
		return model.AvailabilitySold
	case model.AvailabilityRented:
		return model.AvailabilityRented
	default:
		return model.AvailabilityAvailable
	}
}

func normalizeImages(images []string) []string {
	cleaned := make([]string, 0, len(images))
	for _, img := range images {
		if strings.TrimSpace(img) != "" {
			cleaned = append(cleaned, img)
		}
	}
	if len(cleaned) == 0 {
		return []string{PlaceholderImage}
	}
	return cleaned
}

func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
