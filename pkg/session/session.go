// Package session manages interactive sessions and routes parsed commands to
// the data managers.
package session

import (
	"context"
	"errors"
	"time"

	"homescout/client-app/pkg/data"
	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
)

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Session represents an individual user session
type Session struct {
	ID              string
	DataManager     *data.DataManager
	User            *model.User
	Admin           bool
	LastActivity    time.Time
	commandHandlers map[string]map[string]CommandHandler
	logger          *log.Logger
}

// NewSession creates a new Session instance. A session persisted by a
// previous run is restored, so a logged-in user stays logged in across
// restarts.
func NewSession(id string, dataManager *data.DataManager, logger *log.Logger) *Session {
	ctx := context.Background()
	logger.Info(ctx, "Creating new Session", log.Fields{"sessionID": id})

	s := &Session{
		ID:           id,
		DataManager:  dataManager,
		LastActivity: time.Now(),
		logger:       logger,
	}
	s.initCommandHandlers()

	if user, err := dataManager.UserManager.UserCurrent(); err == nil && user != nil {
		s.User = user
		logger.Info(ctx, "Restored persisted session", log.Fields{"sessionID": id, "userID": user.ID})
	}
	s.Admin = dataManager.AdminManager.IsAdmin()

	return s
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	s.commandHandlers = map[string]map[string]CommandHandler{
		"property": initPropertyCommandHandlers(),
		"favorite": initFavoriteCommandHandlers(),
		"user":     initUserCommandHandlers(),
		"admin":    initAdminCommandHandlers(),
		"inquiry":  initInquiryCommandHandlers(),
	}
}

// CommandRun executes a command within the session context
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Command(ctx, cmd.Scope+" "+cmd.Operation)

	// Update last activity
	s.LastActivity = time.Now()

	scopeHandlers, ok := s.commandHandlers[cmd.Scope]
	if !ok {
		s.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": cmd.Scope})
		return nil, errors.New("invalid command scope")
	}

	handler, ok := scopeHandlers[cmd.Operation]
	if !ok {
		s.logger.Error(ctx, "Invalid command operation", log.Fields{"operation": cmd.Operation})
		return nil, errors.New("invalid command operation")
	}

	result, err := handler(s, cmd)
	if err != nil {
		s.logger.Error(ctx, "Command execution failed", log.Fields{"error": err})
	}

	return result, err
}

// UserGet retrieves the current user, or nil in guest mode.
func (s *Session) UserGet() *model.User {
	return s.User
}

// UserSet sets the current user
func (s *Session) UserSet(user *model.User) {
	s.User = user
}

// AdminSet sets the admin flag for this session
func (s *Session) AdminSet(admin bool) {
	s.Admin = admin
}
