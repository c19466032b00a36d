package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"homescout/client-app/pkg/model"
)

// initPropertyCommandHandlers returns the handlers for the property scope.
func initPropertyCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"list":    handlePropertyList,
		"filter":  handlePropertyFilter,
		"show":    handlePropertyShow,
		"search":  handlePropertySearch,
		"refresh": handlePropertyRefresh,
	}
}

// handlePropertyList handles the property list command
func handlePropertyList(s *Session, cmd model.Command) (interface{}, error) {
	properties := s.DataManager.PropertyManager.PropertyAll()
	return formatProperties(properties), nil
}

// handlePropertyFilter handles the property filter command
func handlePropertyFilter(s *Session, cmd model.Command) (interface{}, error) {
	criteria, err := parseFilterArgs(cmd.Args)
	if err != nil {
		return nil, fmt.Errorf("invalid filter arguments: %w", err)
	}

	properties := s.DataManager.PropertyManager.PropertyFilter(criteria)
	return formatProperties(properties), nil
}

// handlePropertyShow handles the property show command
func handlePropertyShow(s *Session, cmd model.Command) (interface{}, error) {
	if len(cmd.Args) != 1 {
		return nil, errors.New("property show command requires 1 argument: <id>")
	}

	property, err := s.DataManager.PropertyManager.PropertyGet(cmd.Args[0])
	if err != nil {
		return nil, err
	}
	return formatPropertyDetail(property, s.DataManager.FavoriteManager.FavoriteContains(property.ID)), nil
}

// handlePropertySearch handles the property search command
func handlePropertySearch(s *Session, cmd model.Command) (interface{}, error) {
	if len(cmd.Args) < 1 {
		return nil, errors.New("property search command requires 1 argument: <query>")
	}

	query := strings.Join(cmd.Args, " ")
	properties, err := s.DataManager.PropertyManager.PropertySearch(context.Background(), query)
	if err != nil {
		return nil, err
	}
	return formatProperties(properties), nil
}

// handlePropertyRefresh handles the property refresh command
func handlePropertyRefresh(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.DataManager.PropertyManager.PropertyRefresh(context.Background()); err != nil {
		return nil, err
	}
	count := len(s.DataManager.PropertyManager.PropertyAll())
	return fmt.Sprintf("properties refreshed, %d listings", count), nil
}

// parseFilterArgs parses key=value filter arguments into FilterCriteria.
func parseFilterArgs(args []string) (model.FilterCriteria, error) {
	criteria := model.FilterCriteria{}
	var priceRange model.PriceRange
	var hasMin, hasMax bool

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || value == "" {
			return criteria, fmt.Errorf("expected key=value, got '%s'", arg)
		}

		switch strings.ToLower(key) {
		case "type":
			criteria.Type = strings.ToLower(value)
		case "proptype", "propertytype":
			criteria.PropertyType = strings.Split(value, ",")
		case "minprice":
			n, err := strconv.Atoi(value)
			if err != nil {
				return criteria, fmt.Errorf("invalid minprice '%s'", value)
			}
			priceRange.Min = n
			hasMin = true
		case "maxprice":
			n, err := strconv.Atoi(value)
			if err != nil {
				return criteria, fmt.Errorf("invalid maxprice '%s'", value)
			}
			priceRange.Max = n
			hasMax = true
		case "location":
			criteria.Location = value
		case "pets":
			criteria.PetsAllowed = isTruthy(value)
		case "pool":
			criteria.SwimmingPool = isTruthy(value)
		case "parking":
			criteria.Parking = isTruthy(value)
		case "availability":
			criteria.Availability = strings.ToLower(value)
		default:
			// Unknown criteria keys are ignored.
		}
	}

	if hasMin || hasMax {
		if !hasMax {
			priceRange.Max = int(^uint(0) >> 1)
		}
		criteria.PriceRange = &priceRange
	}

	return criteria, nil
}

func isTruthy(value string) bool {
	b, err := strconv.ParseBool(strings.ToLower(value))
	return err == nil && b
}

// formatProperties renders a compact listing table.
func formatProperties(properties []model.Property) string {
	if len(properties) == 0 {
		return "no properties found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-38s %-5s %12s %-12s %s\n", "ID", "TITLE", "TYPE", "PRICE", "CITY", "STATUS")
	for _, p := range properties {
		title := p.Title
		if len(title) > 36 {
			title = title[:33] + "..."
		}
		fmt.Fprintf(&b, "%-12s %-38s %-5s %12d %-12s %s\n", p.ID, title, p.Type, p.Price, p.Location.City, p.Availability)
	}
	fmt.Fprintf(&b, "%d listing(s)", len(properties))
	return b.String()
}

// formatPropertyDetail renders one listing in full.
func formatPropertyDetail(p *model.Property, liked bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Title)
	fmt.Fprintf(&b, "  ID:           %s\n", p.ID)
	fmt.Fprintf(&b, "  Type:         %s (%s)\n", p.Type, p.PropertyType)
	fmt.Fprintf(&b, "  Price:        %d\n", p.Price)
	fmt.Fprintf(&b, "  Address:      %s, %s, %s %s\n", p.Location.Address, p.Location.City, p.Location.State, p.Location.ZipCode)
	fmt.Fprintf(&b, "  Layout:       %d bed / %d bath, %.0f sqft, built %d\n", p.Bedrooms, p.Bathrooms, p.Size, p.YearBuilt)
	fmt.Fprintf(&b, "  Availability: %s\n", p.Availability)
	fmt.Fprintf(&b, "  Pets allowed: %t, parking spots: %d\n", p.PetsAllowed, p.Parking)
	fmt.Fprintf(&b, "  Amenities:    %s\n", strings.Join(p.Amenities, ", "))
	if len(p.Features) > 0 {
		fmt.Fprintf(&b, "  Features:     %s\n", strings.Join(p.Features, ", "))
	}
	if len(p.NearbyPlaces) > 0 {
		fmt.Fprintf(&b, "  Nearby:       %s\n", strings.Join(p.NearbyPlaces, ", "))
	}
	fmt.Fprintf(&b, "  Agent:        %s (%s, %s)\n", p.Agent.Name, p.Agent.Phone, p.Agent.Email)
	fmt.Fprintf(&b, "  Images:       %s\n", strings.Join(p.Images, ", "))
	fmt.Fprintf(&b, "  Liked:        %t\n", liked)
	fmt.Fprintf(&b, "  %s", p.Description)
	return b.String()
}
