// Package api implements the HTTP client for the HomeScout backend REST API.
// The narrow service interfaces let the data managers take a fake backend in
// tests; *Client implements all of them.
package api

import (
	"context"

	"homescout/client-app/pkg/model"
)

// PropertyService covers read access to the public property endpoints.
type PropertyService interface {
	PropertyList(ctx context.Context) ([]model.Property, error)
	PropertyGet(ctx context.Context, remoteID string) (*model.Property, error)
	PropertySearch(ctx context.Context, query string) ([]model.Property, error)
}

// FavoriteService covers the user-liked-properties endpoints. LikedToggle
// returns the server's authoritative set after the toggle.
type FavoriteService interface {
	LikedGet(ctx context.Context, userID string) ([]string, error)
	LikedToggle(ctx context.Context, userID, propertyID string) ([]string, error)
	LikedUpdate(ctx context.Context, userID string, liked []string) error
}

// InquiryService submits contact/enquiry forms.
type InquiryService interface {
	InquiryCreate(ctx context.Context, inquiry model.Inquiry) error
}

// AdminService covers the admin endpoints: password check, dashboard stats,
// property CRUD, inquiry management, standalone upload and liveness.
type AdminService interface {
	AdminLogin(ctx context.Context, password string) (bool, error)
	AdminStats(ctx context.Context) (*model.AdminStats, error)
	AdminPropertyList(ctx context.Context) ([]model.Property, error)
	AdminPropertyCreate(ctx context.Context, property model.Property, imagePaths []string) (*model.Property, error)
	AdminPropertyUpdate(ctx context.Context, remoteID string, property model.Property, imagePaths []string) error
	AdminPropertyDelete(ctx context.Context, remoteID string) error
	AdminInquiryList(ctx context.Context) ([]model.Inquiry, error)
	AdminInquiryStatus(ctx context.Context, inquiryID, status string) error
	Upload(ctx context.Context, filePath string) (string, error)
	Health(ctx context.Context) error
}
