package model

import "time"

// Inquiry statuses as tracked by the backend.
const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
)

// Inquiry is a contact/enquiry form submission for a listing.
type Inquiry struct {
	ID         string    `json:"id,omitempty"`
	Reference  string    `json:"reference,omitempty"`
	PropertyID string    `json:"propertyId,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Message    string    `json:"message"`
	Status     string    `json:"status,omitempty"`
	Created    time.Time `json:"created,omitempty"`
}

// AdminStats are the dashboard aggregates returned by the backend.
type AdminStats struct {
	TotalProperties    int `json:"totalProperties"`
	Available          int `json:"available"`
	Sold               int `json:"sold"`
	Rented             int `json:"rented"`
	FeaturedProperties int `json:"featuredProperties"`
	TotalInquiries     int `json:"totalInquiries"`
	NewInquiries       int `json:"newInquiries"`
}
