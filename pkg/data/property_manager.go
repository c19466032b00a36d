// Package data provides data management functionality for the HomeScout client.
// This file contains the property store: the unified, filterable view over
// bundled and remotely fetched listings.
package data

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"homescout/client-app/pkg/api"
	"homescout/client-app/pkg/event"
	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
)

// initialLoadDelay lets the bundled data surface before the first remote
// fetch starts.
const initialLoadDelay = 100 * time.Millisecond

// PropertyOperations defines the interface for property-related operations
type PropertyOperations interface {
	PropertyAll() []model.Property
	PropertyFilter(criteria model.FilterCriteria) []model.Property
	PropertyGet(id string) (*model.Property, error)
	PropertySearch(ctx context.Context, query string) ([]model.Property, error)
	PropertyRefresh(ctx context.Context) error
}

// PropertyManager presents the merged property list: bundled listings first,
// then backend listings in fetch order. Remote entries are already normalized
// and namespaced by the API layer, so ids never collide with bundled ids.
type PropertyManager struct {
	api          api.PropertyService
	eventManager *event.EventManager
	logger       *log.Logger

	mu      sync.RWMutex
	bundled []model.Property
	remote  []model.Property
}

// NewPropertyManager creates a new PropertyManager instance. The bundled
// listings are available synchronously; the remote load runs in the
// background after a short one-time delay. A failed remote load keeps the
// bundled-only view and is not retried automatically.
func NewPropertyManager(apiClient api.PropertyService, eventManager *event.EventManager, logger *log.Logger) (*PropertyManager, error) {
	ctx := context.Background()

	if apiClient == nil {
		return nil, fmt.Errorf("api client not initialized")
	}
	if eventManager == nil {
		return nil, fmt.Errorf("eventManager not initialized")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}

	bundled, err := loadBundledProperties()
	if err != nil {
		return nil, fmt.Errorf("failed to load bundled properties: %w", err)
	}

	pm := &PropertyManager{
		api:          apiClient,
		eventManager: eventManager,
		logger:       logger,
		bundled:      bundled,
	}

	logger.Info(ctx, "PropertyManager created", log.Fields{"bundledCount": len(bundled)})

	go func() {
		time.Sleep(initialLoadDelay)
		if err := pm.loadRemote(context.Background()); err != nil {
			pm.logger.Warn(context.Background(), "Initial remote property load failed, keeping bundled-only view", log.Fields{"error": err})
		}
	}()

	return pm, nil
}

// loadRemote replaces the remote portion of the merged list wholesale.
func (pm *PropertyManager) loadRemote(ctx context.Context) error {
	remote, err := pm.api.PropertyList(ctx)
	if err != nil {
		pm.eventManager.Publish(event.Event{Type: event.RemotePropertiesLoadFailed, Data: err})
		return fmt.Errorf("failed to fetch remote properties: %w", err)
	}

	pm.mu.Lock()
	pm.remote = remote
	pm.mu.Unlock()

	pm.logger.Info(ctx, "Remote properties loaded", log.Fields{"count": len(remote)})
	pm.eventManager.Publish(event.Event{Type: event.RemotePropertiesLoaded, Data: len(remote)})
	return nil
}

// PropertyAll returns the merged property list: bundled first, then remote in
// fetch order. The returned slice is a copy.
func (pm *PropertyManager) PropertyAll() []model.Property {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	all := make([]model.Property, 0, len(pm.bundled)+len(pm.remote))
	all = append(all, pm.bundled...)
	all = append(all, pm.remote...)
	return all
}

// PropertyFilter returns the subset of the merged list satisfying all
// supplied criteria. An empty criteria matches everything.
func (pm *PropertyManager) PropertyFilter(criteria model.FilterCriteria) []model.Property {
	all := pm.PropertyAll()
	filtered := make([]model.Property, 0, len(all))
	for _, p := range all {
		if matchesCriteria(&p, &criteria) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// PropertyGet looks up one property by id in the merged list.
func (pm *PropertyManager) PropertyGet(id string) (*model.Property, error) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	for i := range pm.bundled {
		if pm.bundled[i].ID == id {
			p := pm.bundled[i]
			return &p, nil
		}
	}
	for i := range pm.remote {
		if pm.remote[i].ID == id {
			p := pm.remote[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("property '%s' not found", id)
}

// PropertySearch runs the backend text search.
func (pm *PropertyManager) PropertySearch(ctx context.Context, query string) ([]model.Property, error) {
	results, err := pm.api.PropertySearch(ctx, query)
	if err != nil {
		pm.logger.Error(ctx, "Property search failed", log.Fields{"query": query, "error": err})
		return nil, fmt.Errorf("property search failed: %w", err)
	}
	return results, nil
}

// PropertyRefresh re-runs the remote fetch and replaces the remote portion of
// the merged list wholesale.
func (pm *PropertyManager) PropertyRefresh(ctx context.Context) error {
	pm.logger.Info(ctx, "Refreshing remote properties", nil)
	if err := pm.loadRemote(ctx); err != nil {
		return err
	}
	pm.eventManager.Publish(event.Event{Type: event.PropertiesRefreshed, Data: nil})
	return nil
}

// matchesCriteria applies the conjunctive filter rules. Zero-value criteria
// fields impose no constraint.
func matchesCriteria(p *model.Property, c *model.FilterCriteria) bool {
	if c.Type != "" && c.Type != model.TypeAll && p.Type != c.Type {
		return false
	}

	if len(c.PropertyType) > 0 {
		found := false
		for _, t := range c.PropertyType {
			if strings.EqualFold(p.PropertyType, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if c.PriceRange != nil {
		if p.Price < c.PriceRange.Min || p.Price > c.PriceRange.Max {
			return false
		}
	}

	if c.Location != "" {
		loc := strings.ToLower(c.Location)
		city := strings.ToLower(p.Location.City)
		address := strings.ToLower(p.Location.Address)
		if !strings.Contains(city, loc) && !strings.Contains(address, loc) {
			return false
		}
	}

	if c.PetsAllowed && !p.PetsAllowed {
		return false
	}
	if c.SwimmingPool && !hasAmenityTerm(p, "swimming", "pool") {
		return false
	}
	if c.Parking && !hasAmenityTerm(p, "parking", "garage") {
		return false
	}

	if c.Availability != "" && c.Availability != model.AvailabilityAll && p.Availability != c.Availability {
		return false
	}

	return true
}

// hasAmenityTerm reports whether any amenity contains any of the terms,
// case-insensitively.
func hasAmenityTerm(p *model.Property, terms ...string) bool {
	for _, amenity := range p.Amenities {
		lowered := strings.ToLower(amenity)
		for _, term := range terms {
			if strings.Contains(lowered, term) {
				return true
			}
		}
	}
	return false
}
