// This file contains the liked-properties store. The set behaves the same
// whether or not a user is logged in: guest favorites live in local storage,
// authenticated favorites mirror the server's authoritative set.
package data

import (
	"context"
	"fmt"
	"sync"

	"homescout/client-app/pkg/api"
	"homescout/client-app/pkg/event"
	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
	"homescout/client-app/pkg/storage"
)

// FavoriteOperations defines the interface for liked-property operations.
type FavoriteOperations interface {
	FavoriteToggle(ctx context.Context, user *model.User, propertyID string) error
	FavoriteLoad(ctx context.Context, user *model.User) error
	FavoriteSync(ctx context.Context, user *model.User) error
	FavoriteList() []string
	FavoriteContains(propertyID string) bool
}

// FavoriteManager maintains the in-memory liked set for the session.
type FavoriteManager struct {
	guestStore   storage.GuestFavoriteStore
	api          api.FavoriteService
	eventManager *event.EventManager
	logger       *log.Logger

	mu    sync.RWMutex
	liked []string

	// lockMu guards locks; each entry serializes toggles for one property id
	// so two rapid toggles cannot interleave their server round trips.
	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewFavoriteManager creates a new FavoriteManager instance.
func NewFavoriteManager(guestStore storage.GuestFavoriteStore, apiClient api.FavoriteService, eventManager *event.EventManager, logger *log.Logger) (*FavoriteManager, error) {
	if guestStore == nil {
		return nil, fmt.Errorf("guest favorite store not initialized")
	}
	if apiClient == nil {
		return nil, fmt.Errorf("api client not initialized")
	}
	if eventManager == nil {
		return nil, fmt.Errorf("eventManager not initialized")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}

	return &FavoriteManager{
		guestStore:   guestStore,
		api:          apiClient,
		eventManager: eventManager,
		logger:       logger,
		liked:        []string{},
		locks:        make(map[string]*sync.Mutex),
	}, nil
}

// propertyLock returns the mutex serializing toggles for one property id.
func (fm *FavoriteManager) propertyLock(propertyID string) *sync.Mutex {
	fm.lockMu.Lock()
	defer fm.lockMu.Unlock()
	l, ok := fm.locks[propertyID]
	if !ok {
		l = &sync.Mutex{}
		fm.locks[propertyID] = l
	}
	return l
}

// FavoriteToggle adds the property to the liked set if absent, removes it if
// present. In guest mode the local set is updated synchronously.
// In authenticated mode the server's returned set is adopted wholesale; on
// failure the in-memory set stays unchanged and the caller may retry.
func (fm *FavoriteManager) FavoriteToggle(ctx context.Context, user *model.User, propertyID string) error {
	l := fm.propertyLock(propertyID)
	l.Lock()
	defer l.Unlock()

	if user == nil {
		liked, err := fm.guestStore.FavoriteToggle(propertyID)
		if err != nil {
			fm.logger.Error(ctx, "Failed to toggle guest favorite", log.Fields{"propertyID": propertyID, "error": err})
			return fmt.Errorf("failed to toggle guest favorite: %w", err)
		}
		fm.setLiked(liked)
		fm.eventManager.Publish(event.Event{Type: event.FavoritesChanged, Data: liked})
		fm.logger.Info(ctx, "Guest favorite toggled", log.Fields{"propertyID": propertyID, "count": len(liked)})
		return nil
	}

	liked, err := fm.api.LikedToggle(ctx, user.ID, propertyID)
	if err != nil {
		fm.logger.Error(ctx, "Failed to toggle favorite on backend", log.Fields{"userID": user.ID, "propertyID": propertyID, "error": err})
		return fmt.Errorf("failed to toggle favorite: %w", err)
	}

	fm.setLiked(liked)
	fm.eventManager.Publish(event.Event{Type: event.FavoritesChanged, Data: liked})
	fm.logger.Info(ctx, "Favorite toggled", log.Fields{"userID": user.ID, "propertyID": propertyID, "count": len(liked)})
	return nil
}

// FavoriteLoad replaces the in-memory liked set from the identity's source of
// truth: the guest store when no user is given, otherwise the backend. A
// backend failure leaves an empty set rather than stale data.
func (fm *FavoriteManager) FavoriteLoad(ctx context.Context, user *model.User) error {
	if user == nil {
		liked, err := fm.guestStore.FavoritesGet()
		if err != nil {
			fm.setLiked([]string{})
			fm.logger.Error(ctx, "Failed to load guest favorites", log.Fields{"error": err})
			return fmt.Errorf("failed to load guest favorites: %w", err)
		}
		fm.setLiked(liked)
		return nil
	}

	liked, err := fm.api.LikedGet(ctx, user.ID)
	if err != nil {
		fm.setLiked([]string{})
		fm.logger.Error(ctx, "Failed to load favorites from backend", log.Fields{"userID": user.ID, "error": err})
		return fmt.Errorf("failed to load favorites: %w", err)
	}
	fm.setLiked(liked)
	return nil
}

// FavoriteSync reconciles guest favorites into the user's server-side set at
// login time: the union of both sets is written back, and only after a
// successful write is the guest copy deleted. Whatever happens, the in-memory
// set finishes reflecting the server's current truth.
func (fm *FavoriteManager) FavoriteSync(ctx context.Context, user *model.User) error {
	fm.logger.Info(ctx, "Syncing guest favorites", log.Fields{"userID": user.ID})

	var syncErr error

	guest, err := fm.guestStore.FavoritesGet()
	if err != nil {
		syncErr = fmt.Errorf("failed to read guest favorites: %w", err)
	} else if len(guest) > 0 {
		server, err := fm.api.LikedGet(ctx, user.ID)
		if err != nil {
			syncErr = fmt.Errorf("failed to fetch server favorites: %w", err)
		} else {
			merged := unionLiked(guest, server)
			if err := fm.api.LikedUpdate(ctx, user.ID, merged); err != nil {
				// The guest set stays intact so nothing is lost; the reload
				// below falls back to the pre-merge server set.
				syncErr = fmt.Errorf("failed to write merged favorites: %w", err)
			} else {
				fm.setLiked(merged)
				if err := fm.guestStore.FavoritesClear(); err != nil {
					fm.logger.Warn(ctx, "Failed to clear guest favorites after merge", log.Fields{"error": err})
				}
				fm.eventManager.Publish(event.Event{Type: event.FavoritesChanged, Data: merged})
			}
		}
	}

	if syncErr != nil {
		fm.logger.Error(ctx, "Favorites sync failed", log.Fields{"userID": user.ID, "error": syncErr})
	}

	// Always finish from the server's current truth.
	if err := fm.FavoriteLoad(ctx, user); err != nil && syncErr == nil {
		syncErr = err
	}

	return syncErr
}

// FavoriteList returns a copy of the current liked property ids.
func (fm *FavoriteManager) FavoriteList() []string {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	liked := make([]string, len(fm.liked))
	copy(liked, fm.liked)
	return liked
}

// FavoriteContains reports whether the property is currently liked.
func (fm *FavoriteManager) FavoriteContains(propertyID string) bool {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	for _, id := range fm.liked {
		if id == propertyID {
			return true
		}
	}
	return false
}

func (fm *FavoriteManager) setLiked(liked []string) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if liked == nil {
		liked = []string{}
	}
	fm.liked = liked
}

// unionLiked merges two id lists preserving the order of the first, then
// appending ids only present in the second.
func unionLiked(first, second []string) []string {
	seen := make(map[string]bool, len(first)+len(second))
	merged := make([]string, 0, len(first)+len(second))
	for _, id := range first {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	for _, id := range second {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	return merged
}
