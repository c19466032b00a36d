// Package data provides data management functionality for the HomeScout client.
// It coordinates operations between the property, favorite, user, admin and
// inquiry managers.
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

// DataManager is the main struct that coordinates all data operations
type DataManager struct {
	PropertyManager *PropertyManager
	FavoriteManager *FavoriteManager
	UserManager     *UserManager
	AdminManager    *AdminManager
	InquiryManager  *InquiryManager
	EventManager    *event.EventManager
	Config          *model.Config
	Logger          *log.Logger
}

// NewDataManager creates a new Manager instance
func NewDataManager(store *storage.Storage, apiClient *api.Client, cfg *model.Config, logger *log.Logger) (*DataManager, error) {
	eventManager := event.NewEventManager(logger)
	m := &DataManager{
		EventManager: eventManager,
		Config:       cfg,
		Logger:       logger,
	}

	var err error
	m.PropertyManager, err = NewPropertyManager(apiClient, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create PropertyManager: %w", err)
	}

	m.FavoriteManager, err = NewFavoriteManager(store.GuestFavoriteStore, apiClient, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create FavoriteManager: %w", err)
	}

	m.UserManager, err = NewUserManager(store.UserStore, store.SessionStore, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create UserManager: %w", err)
	}

	m.AdminManager, err = NewAdminManager(apiClient, store.SettingStore, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create AdminManager: %w", err)
	}

	m.InquiryManager, err = NewInquiryManager(apiClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create InquiryManager: %w", err)
	}

	// Seed the favorites view for whichever identity was active last session.
	user, err := m.UserManager.UserCurrent()
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted session: %w", err)
	}
	if err := m.FavoriteManager.FavoriteLoad(context.Background(), user); err != nil {
		logger.Warn(context.Background(), "Failed to load initial favorites", log.Fields{"error": err})
	}

	// Admin mutations invalidate the remote portion of the merged list.
	eventManager.Subscribe(event.AdminPropertyChanged, m.handleAdminPropertyChanged)

	// Logging out reverts the favorites view to the guest set.
	eventManager.Subscribe(event.UserLoggedOut, m.handleUserLoggedOut)

	return m, nil
}

// handleAdminPropertyChanged refreshes remote properties after an admin
// create, update or delete.
func (m *DataManager) handleAdminPropertyChanged(event.Event) {
	ctx := context.Background()
	if err := m.PropertyManager.PropertyRefresh(ctx); err != nil {
		m.Logger.Warn(ctx, "Failed to refresh properties after admin change", log.Fields{"error": err})
	}
}

// handleUserLoggedOut reloads the guest favorites set.
func (m *DataManager) handleUserLoggedOut(event.Event) {
	ctx := context.Background()
	if err := m.FavoriteManager.FavoriteLoad(ctx, nil); err != nil {
		m.Logger.Warn(ctx, "Failed to reload guest favorites after logout", log.Fields{"error": err})
	}
}
