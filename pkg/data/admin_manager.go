// This file contains the admin panel operations: property CRUD, dashboard
// stats and inquiry management, all delegated to the backend.
package data

import (
	"context"
	"fmt"

	"homescout/client-app/pkg/api"
	"homescout/client-app/pkg/event"
	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
	"homescout/client-app/pkg/storage"
)

// adminAuthKey is the settings key holding the admin authentication flag.
const adminAuthKey = "admin_auth"

// AdminOperations defines the interface for admin-related operations.
type AdminOperations interface {
	AdminLogin(ctx context.Context, password string) (bool, error)
	AdminLogout() error
	IsAdmin() bool
	Stats(ctx context.Context) (*model.AdminStats, error)
	PropertyCreate(ctx context.Context, property model.Property, imagePaths []string) (*model.Property, error)
	PropertyUpdate(ctx context.Context, id string, property model.Property, imagePaths []string) error
	PropertyDelete(ctx context.Context, id string) error
	InquiryList(ctx context.Context) ([]model.Inquiry, error)
	InquiryStatusSet(ctx context.Context, inquiryID, status string) error
	Upload(ctx context.Context, filePath string) (string, error)
	Health(ctx context.Context) error
}

// AdminManager handles the admin subsystem. Mutations publish an event so
// the property store refreshes its remote portion wholesale.
type AdminManager struct {
	api          api.AdminService
	settingStore storage.SettingStore
	eventManager *event.EventManager
	logger       *log.Logger
}

// NewAdminManager creates a new AdminManager instance.
func NewAdminManager(apiClient api.AdminService, settingStore storage.SettingStore, eventManager *event.EventManager, logger *log.Logger) (*AdminManager, error) {
	if apiClient == nil {
		return nil, fmt.Errorf("api client not initialized")
	}
	if settingStore == nil {
		return nil, fmt.Errorf("settingStore not initialized")
	}
	if eventManager == nil {
		return nil, fmt.Errorf("eventManager not initialized")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}

	return &AdminManager{
		api:          apiClient,
		settingStore: settingStore,
		eventManager: eventManager,
		logger:       logger,
	}, nil
}

// AdminLogin checks the password with the backend and records the admin flag
// locally. A wrong password is a normal false return.
func (am *AdminManager) AdminLogin(ctx context.Context, password string) (bool, error) {
	ok, err := am.api.AdminLogin(ctx, password)
	if err != nil {
		am.logger.Error(ctx, "Admin login failed", log.Fields{"error": err})
		return false, fmt.Errorf("admin login failed: %w", err)
	}
	if !ok {
		am.logger.Warn(ctx, "Admin password rejected", nil)
		return false, nil
	}

	if err := am.settingStore.SettingSet(adminAuthKey, "true"); err != nil {
		return false, fmt.Errorf("failed to persist admin flag: %w", err)
	}
	am.logger.Info(ctx, "Admin logged in", nil)
	return true, nil
}

// AdminLogout clears the local admin flag.
func (am *AdminManager) AdminLogout() error {
	if err := am.settingStore.SettingDelete(adminAuthKey); err != nil {
		return fmt.Errorf("failed to clear admin flag: %w", err)
	}
	return nil
}

// IsAdmin reports whether the admin flag is set locally.
func (am *AdminManager) IsAdmin() bool {
	value, err := am.settingStore.SettingGet(adminAuthKey)
	if err != nil {
		am.logger.Error(context.Background(), "Failed to read admin flag", log.Fields{"error": err})
		return false
	}
	return value == "true"
}

// Stats fetches the dashboard aggregates.
func (am *AdminManager) Stats(ctx context.Context) (*model.AdminStats, error) {
	stats, err := am.api.AdminStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin stats: %w", err)
	}
	return stats, nil
}

// PropertyCreate creates a listing through the backend.
func (am *AdminManager) PropertyCreate(ctx context.Context, property model.Property, imagePaths []string) (*model.Property, error) {
	created, err := am.api.AdminPropertyCreate(ctx, property, imagePaths)
	if err != nil {
		am.logger.Error(ctx, "Failed to create property", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	am.logger.Info(ctx, "Property created", log.Fields{"id": created.ID})
	am.eventManager.Publish(event.Event{Type: event.AdminPropertyChanged, Data: created.ID})
	return created, nil
}

// PropertyUpdate updates a listing. The id may be the namespaced merged-list
// id or the raw remote id.
func (am *AdminManager) PropertyUpdate(ctx context.Context, id string, property model.Property, imagePaths []string) error {
	remoteID := stripRemotePrefix(id)
	if err := am.api.AdminPropertyUpdate(ctx, remoteID, property, imagePaths); err != nil {
		am.logger.Error(ctx, "Failed to update property", log.Fields{"id": id, "error": err})
		return fmt.Errorf("failed to update property: %w", err)
	}

	am.logger.Info(ctx, "Property updated", log.Fields{"id": id})
	am.eventManager.Publish(event.Event{Type: event.AdminPropertyChanged, Data: id})
	return nil
}

// PropertyDelete deletes a listing.
func (am *AdminManager) PropertyDelete(ctx context.Context, id string) error {
	remoteID := stripRemotePrefix(id)
	if err := am.api.AdminPropertyDelete(ctx, remoteID); err != nil {
		am.logger.Error(ctx, "Failed to delete property", log.Fields{"id": id, "error": err})
		return fmt.Errorf("failed to delete property: %w", err)
	}

	am.logger.Info(ctx, "Property deleted", log.Fields{"id": id})
	am.eventManager.Publish(event.Event{Type: event.AdminPropertyChanged, Data: id})
	return nil
}

// InquiryList fetches all inquiries.
func (am *AdminManager) InquiryList(ctx context.Context) ([]model.Inquiry, error) {
	inquiries, err := am.api.AdminInquiryList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inquiries: %w", err)
	}
	return inquiries, nil
}

// InquiryStatusSet updates one inquiry's status.
func (am *AdminManager) InquiryStatusSet(ctx context.Context, inquiryID, status string) error {
	switch status {
	case model.InquiryStatusNew, model.InquiryStatusContacted, model.InquiryStatusClosed:
	default:
		return fmt.Errorf("invalid inquiry status '%s'", status)
	}
	if err := am.api.AdminInquiryStatus(ctx, inquiryID, status); err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}
	return nil
}

// Upload sends a standalone image and returns its served URL.
func (am *AdminManager) Upload(ctx context.Context, filePath string) (string, error) {
	url, err := am.api.Upload(ctx, filePath)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return url, nil
}

// Health checks backend liveness.
func (am *AdminManager) Health(ctx context.Context) error {
	if err := am.api.Health(ctx); err != nil {
		return fmt.Errorf("backend health check failed: %w", err)
	}
	return nil
}

// stripRemotePrefix converts a merged-list id back to the backend's id.
func stripRemotePrefix(id string) string {
	if len(id) > len(model.RemoteIDPrefix) && id[:len(model.RemoteIDPrefix)] == model.RemoteIDPrefix {
		return id[len(model.RemoteIDPrefix):]
	}
	return id
}
