package session

import (
	"context"
	"errors"
	"fmt"

	"homescout/client-app/pkg/model"
)

// initInquiryCommandHandlers returns the handlers for the inquiry scope.
func initInquiryCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"send": handleInquirySend,
	}
}

// handleInquirySend handles the inquiry send command
func handleInquirySend(s *Session, cmd model.Command) (interface{}, error) {
	if len(cmd.Args) < 2 {
		return nil, errors.New("inquiry send command requires at least 2 arguments: <property-id> <message> [name] [email] [phone]")
	}

	propertyID := cmd.Args[0]
	property, err := s.DataManager.PropertyManager.PropertyGet(propertyID)
	if err != nil {
		return nil, err
	}

	inquiry := model.Inquiry{
		PropertyID: propertyID,
		Message:    cmd.Args[1],
		Status:     model.InquiryStatusNew,
	}

	// A logged-in user's profile fills the contact details; positional
	// arguments override them, and a guest must supply name and email.
	if s.User != nil {
		inquiry.Name = s.User.Name
		inquiry.Email = s.User.Email
		inquiry.Phone = s.User.Phone
	}
	if len(cmd.Args) > 2 {
		inquiry.Name = cmd.Args[2]
	}
	if len(cmd.Args) > 3 {
		inquiry.Email = cmd.Args[3]
	}
	if len(cmd.Args) > 4 {
		inquiry.Phone = cmd.Args[4]
	}
	if inquiry.Name == "" || inquiry.Email == "" {
		return nil, errors.New("name and email are required, log in or pass them as arguments")
	}

	reference, err := s.DataManager.InquiryManager.InquirySend(context.Background(), inquiry)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("inquiry sent for '%s', reference %s", property.Title, reference), nil
}
