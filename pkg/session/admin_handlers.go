package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"homescout/client-app/pkg/model"
)

// initAdminCommandHandlers returns the handlers for the admin scope.
func initAdminCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"login":          handleAdminLogin,
		"logout":         handleAdminLogout,
		"stats":          handleAdminStats,
		"add":            handleAdminPropertyAdd,
		"update":         handleAdminPropertyUpdate,
		"delete":         handleAdminPropertyDelete,
		"inquiries":      handleAdminInquiries,
		"inquiry-status": handleAdminInquiryStatus,
		"upload":         handleAdminUpload,
		"health":         handleAdminHealth,
	}
}

// requireAdmin guards the management commands.
func requireAdmin(s *Session) error {
	if !s.Admin {
		return errors.New("admin login required, use: admin login <password>")
	}
	return nil
}

// handleAdminLogin handles the admin login command
func handleAdminLogin(s *Session, cmd model.Command) (interface{}, error) {
	if len(cmd.Args) != 1 {
		return nil, errors.New("admin login command requires 1 argument: <password>")
	}

	ok, err := s.DataManager.AdminManager.AdminLogin(context.Background(), cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return "invalid admin password", nil
	}

	s.AdminSet(true)
	return "admin mode enabled", nil
}

// handleAdminLogout handles the admin logout command
func handleAdminLogout(s *Session, cmd model.Command) (interface{}, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}

	if err := s.DataManager.AdminManager.AdminLogout(); err != nil {
		return nil, err
	}

	s.AdminSet(false)
	return "admin mode disabled", nil
}

// handleAdminStats handles the admin stats command
func handleAdminStats(s *Session, cmd model.Command) (interface{}, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}

	stats, err := s.DataManager.AdminManager.Stats(context.Background())
	if err != nil {
		return nil, err
	}

	var output strings.Builder
	output.WriteString("Dashboard:\n")
	output.WriteString(fmt.Sprintf("  Properties: %d (available %d, sold %d, rented %d, featured %d)\n",
		stats.TotalProperties, stats.Available, stats.Sold, stats.Rented, stats.FeaturedProperties))
	output.WriteString(fmt.Sprintf("  Inquiries:  %d (%d new)", stats.TotalInquiries, stats.NewInquiries))
	return output.String(), nil
}

// handleAdminPropertyAdd handles the admin add command
func handleAdminPropertyAdd(s *Session, cmd model.Command) (interface{}, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	if len(cmd.Args) == 0 {
		return nil, errors.New("admin add command requires arguments: <field>=<value> ... [images=<path,...>]")
	}

	property, imagePaths, err := parsePropertyArgs(cmd.Args)
	if err != nil {
		return nil, err
	}
	if property.Title == "" {
		return nil, errors.New("property title is required, use title=<value>")
	}

	created, err := s.DataManager.AdminManager.PropertyCreate(context.Background(), property, imagePaths)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("property created with id %s", created.ID), nil
}

// handleAdminPropertyUpdate handles the admin update command
func handleAdminPropertyUpdate(s *Session, cmd model.Command) (interface{}, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	if len(cmd.Args) < 2 {
		return nil, errors.New("admin update command requires arguments: <id> <field>=<value> ...")
	}

	id := cmd.Args[0]
	existing, err := s.DataManager.PropertyManager.PropertyGet(id)
	if err != nil {
		return nil, err
	}
	if !existing.IsRemote() {
		return nil, fmt.Errorf("property '%s' is a bundled listing and cannot be changed", id)
	}

	property, imagePaths, err := applyPropertyArgs(*existing, cmd.Args[1:])
	if err != nil {
		return nil, err
	}

	if err := s.DataManager.AdminManager.PropertyUpdate(context.Background(), id, property, imagePaths); err != nil {
		return nil, err
	}
	return fmt.Sprintf("property %s updated", id), nil
}

// handleAdminPropertyDelete handles the admin delete command
func handleAdminPropertyDelete(s *Session, cmd model.Command) (interface{}, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	if len(cmd.Args) != 1 {
		return nil, errors.New("admin delete command requires 1 argument: <id>")
	}

	if err := s.DataManager.AdminManager.PropertyDelete(context.Background(), cmd.Args[0]); err != nil {
		return nil, err
	}
	return fmt.Sprintf("property %s deleted", cmd.Args[0]), nil
}

// handleAdminInquiries handles the admin inquiries command
func handleAdminInquiries(s *Session, cmd model.Command) (interface{}, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}

	inquiries, err := s.DataManager.AdminManager.InquiryList(context.Background())
	if err != nil {
		return nil, err
	}
	if len(inquiries) == 0 {
		return "no inquiries", nil
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("%d inquiries:\n", len(inquiries)))
	for _, inquiry := range inquiries {
		output.WriteString(fmt.Sprintf("  [%s] %s  %s <%s>  property=%s\n      %s\n",
			inquiry.Status, inquiry.ID, inquiry.Name, inquiry.Email, inquiry.PropertyID, inquiry.Message))
	}
	return strings.TrimRight(output.String(), "\n"), nil
}

// handleAdminInquiryStatus handles the admin inquiry-status command
func handleAdminInquiryStatus(s *Session, cmd model.Command) (interface{}, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	if len(cmd.Args) != 2 {
		return nil, errors.New("admin inquiry-status command requires 2 arguments: <id> <new|contacted|closed>")
	}

	if err := s.DataManager.AdminManager.InquiryStatusSet(context.Background(), cmd.Args[0], cmd.Args[1]); err != nil {
		return nil, err
	}
	return fmt.Sprintf("inquiry %s marked %s", cmd.Args[0], cmd.Args[1]), nil
}

// handleAdminUpload handles the admin upload command
func handleAdminUpload(s *Session, cmd model.Command) (interface{}, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	if len(cmd.Args) != 1 {
		return nil, errors.New("admin upload command requires 1 argument: <file-path>")
	}

	url, err := s.DataManager.AdminManager.Upload(context.Background(), cmd.Args[0])
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("uploaded: %s", url), nil
}

// handleAdminHealth handles the admin health command
func handleAdminHealth(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.DataManager.AdminManager.Health(context.Background()); err != nil {
		return nil, err
	}
	return "backend is up", nil
}

// parsePropertyArgs builds a property from key=value arguments.
func parsePropertyArgs(args []string) (model.Property, []string, error) {
	return applyPropertyArgs(model.Property{}, args)
}

// applyPropertyArgs overlays key=value arguments onto an existing property.
// The images key names local file paths to upload, not stored URLs.
func applyPropertyArgs(property model.Property, args []string) (model.Property, []string, error) {
	var imagePaths []string

	for _, arg := range args {
		key, value, err := splitFieldArg(arg)
		if err != nil {
			return model.Property{}, nil, err
		}

		switch key {
		case "title":
			property.Title = value
		case "price":
			price, err := strconv.Atoi(value)
			if err != nil {
				return model.Property{}, nil, fmt.Errorf("invalid price '%s'", value)
			}
			property.Price = price
		case "type":
			property.Type = strings.ToLower(value)
		case "proptype", "propertytype":
			property.PropertyType = value
		case "city":
			property.Location.City = value
		case "address":
			property.Location.Address = value
		case "state":
			property.Location.State = value
		case "zip", "zipcode":
			property.Location.ZipCode = value
		case "bedrooms":
			n, err := strconv.Atoi(value)
			if err != nil {
				return model.Property{}, nil, fmt.Errorf("invalid bedrooms '%s'", value)
			}
			property.Bedrooms = n
		case "bathrooms":
			n, err := strconv.Atoi(value)
			if err != nil {
				return model.Property{}, nil, fmt.Errorf("invalid bathrooms '%s'", value)
			}
			property.Bathrooms = n
		case "size":
			size, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return model.Property{}, nil, fmt.Errorf("invalid size '%s'", value)
			}
			property.Size = size
		case "parking":
			n, err := strconv.Atoi(value)
			if err != nil {
				return model.Property{}, nil, fmt.Errorf("invalid parking '%s'", value)
			}
			property.Parking = n
		case "yearbuilt":
			n, err := strconv.Atoi(value)
			if err != nil {
				return model.Property{}, nil, fmt.Errorf("invalid yearbuilt '%s'", value)
			}
			property.YearBuilt = n
		case "pets":
			property.PetsAllowed = isTruthy(value)
		case "featured":
			property.Featured = isTruthy(value)
		case "availability":
			property.Availability = strings.ToLower(value)
		case "description":
			property.Description = value
		case "amenities":
			property.Amenities = splitCommaList(value)
		case "features":
			property.Features = splitCommaList(value)
		case "nearby":
			property.NearbyPlaces = splitCommaList(value)
		case "agentname":
			property.Agent.Name = value
		case "agentphone":
			property.Agent.Phone = value
		case "agentemail":
			property.Agent.Email = value
		case "images":
			imagePaths = splitCommaList(value)
		default:
			return model.Property{}, nil, fmt.Errorf("unknown field '%s'", key)
		}
	}

	return property, imagePaths, nil
}

func splitCommaList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
