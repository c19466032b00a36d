// Package model defines the data structures shared across the HomeScout application.
// This file contains property-related types.
package model

// Listing type values.
const (
	TypeBuy  = "buy"
	TypeRent = "rent"
	TypeAll  = "all"
)

// Availability values.
const (
	AvailabilityAvailable = "available"
	AvailabilitySold      = "sold"
	AvailabilityRented    = "rented"
	AvailabilityAll       = "all"
)

// RemoteIDPrefix namespaces backend-sourced property ids so they can never
// collide with bundled ids.
const RemoteIDPrefix = "api_"

// Location describes where a property is situated.
type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// Agent holds the contact details of the dealer responsible for a listing.
type Agent struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Property represents one listing. Every property, bundled or remote, carries
// the full attribute set; remote records are normalized at fetch time so
// consumers never branch on source.
type Property struct {
	ID           string   `json:"id"`
	RemoteID     string   `json:"remoteId,omitempty"`
	Title        string   `json:"title"`
	Price        int      `json:"price"`
	Type         string   `json:"type"`
	PropertyType string   `json:"propertyType"`
	Location     Location `json:"location"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Size         float64  `json:"size"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	Availability string   `json:"availability"`
	PetsAllowed  bool     `json:"petsAllowed"`
	Featured     bool     `json:"featured"`
	YearBuilt    int      `json:"yearBuilt"`
	Parking      int      `json:"parking"`
	Agent        Agent    `json:"agent"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	NearbyPlaces []string `json:"nearbyPlaces"`
}

// IsRemote reports whether the property was sourced from the backend.
func (p *Property) IsRemote() bool {
	return p.RemoteID != ""
}

// PriceRange is an inclusive price bound for filtering.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterCriteria describes a conjunctive property filter. Zero values mean
// "no constraint" for every field.
type FilterCriteria struct {
	Type         string      `json:"type,omitempty"`
	PropertyType []string    `json:"propertyType,omitempty"`
	PriceRange   *PriceRange `json:"priceRange,omitempty"`
	Location     string      `json:"location,omitempty"`
	PetsAllowed  bool        `json:"petsAllowed,omitempty"`
	SwimmingPool bool        `json:"swimmingPool,omitempty"`
	Parking      bool        `json:"parking,omitempty"`
	Availability string      `json:"availability,omitempty"`
}
