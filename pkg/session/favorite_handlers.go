package session

import (
	"context"
	"errors"
	"fmt"

	"homescout/client-app/pkg/model"
)

// initFavoriteCommandHandlers returns the handlers for the favorite scope.
func initFavoriteCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"toggle": handleFavoriteToggle,
		"list":   handleFavoriteList,
	}
}

// handleFavoriteToggle handles the favorite toggle command
func handleFavoriteToggle(s *Session, cmd model.Command) (interface{}, error) {
	if len(cmd.Args) != 1 {
		return nil, errors.New("favorite toggle command requires 1 argument: <property_id>")
	}
	propertyID := cmd.Args[0]

	// Validate new additions against the merged list so typos surface
	// immediately. An id already in the set is always removable, even when
	// the listing it referenced has since been deleted server-side.
	if !s.DataManager.FavoriteManager.FavoriteContains(propertyID) {
		if _, err := s.DataManager.PropertyManager.PropertyGet(propertyID); err != nil {
			return nil, err
		}
	}

	if err := s.DataManager.FavoriteManager.FavoriteToggle(context.Background(), s.User, propertyID); err != nil {
		return nil, err
	}

	liked := s.DataManager.FavoriteManager.FavoriteContains(propertyID)
	state := "removed from"
	if liked {
		state = "added to"
	}
	if s.User == nil {
		return fmt.Sprintf("property %s %s favorites (saved on this device only until you log in)", propertyID, state), nil
	}
	return fmt.Sprintf("property %s %s favorites", propertyID, state), nil
}

// handleFavoriteList handles the favorite list command
func handleFavoriteList(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.DataManager.FavoriteManager.FavoriteLoad(context.Background(), s.User); err != nil {
		return nil, err
	}

	ids := s.DataManager.FavoriteManager.FavoriteList()
	if len(ids) == 0 {
		return "no favorite properties", nil
	}

	// Join with the merged list; ids without a matching listing are shown bare
	// (the listing may have been deleted server-side).
	properties := make([]model.Property, 0, len(ids))
	var missing []string
	for _, id := range ids {
		p, err := s.DataManager.PropertyManager.PropertyGet(id)
		if err != nil {
			missing = append(missing, id)
			continue
		}
		properties = append(properties, *p)
	}

	out := formatProperties(properties)
	for _, id := range missing {
		out += fmt.Sprintf("\n%s (listing no longer available)", id)
	}
	return out, nil
}
