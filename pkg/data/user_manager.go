// This file contains the authentication store. It is a local stand-in for a
// real identity service: credentials live in the mock users table and the
// active session is persisted locally, so the rest of the application only
// sees the UserOperations interface.
package data

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"homescout/client-app/pkg/event"
	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
	"homescout/client-app/pkg/storage"
)

// UserOperations defines the interface for user-related operations
type UserOperations interface {
	UserLogin(email, password string) (*model.User, bool, error)
	UserSignup(newUserInfo model.UserInfo) (*model.User, error)
	UserLogout() error
	UserUpdate(user *model.User, userUpdateInfo model.UserInfo, userFilter model.UserFilter) error
	UserCurrent() (*model.User, error)
}

// UserManager handles login, signup, logout and profile updates against the
// local users table.
type UserManager struct {
	userStore    storage.UserStore
	sessionStore storage.SessionStore
	eventManager *event.EventManager
	logger       *log.Logger
}

// NewUserManager creates a new UserManager instance.
func NewUserManager(userStore storage.UserStore, sessionStore storage.SessionStore, eventManager *event.EventManager, logger *log.Logger) (*UserManager, error) {
	ctx := context.Background()

	if userStore == nil {
		return nil, fmt.Errorf("userStore not initialized")
	}
	if sessionStore == nil {
		return nil, fmt.Errorf("sessionStore not initialized")
	}
	if eventManager == nil {
		return nil, fmt.Errorf("eventManager not initialized")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}

	um := &UserManager{
		userStore:    userStore,
		sessionStore: sessionStore,
		eventManager: eventManager,
		logger:       logger,
	}

	logger.Info(ctx, "UserManager created successfully", nil)
	return um, nil
}

// UserLogin verifies the credentials and persists the matched user as the
// active session. An unknown email or wrong password is a normal false
// return; any previously active session is left untouched in that case.
func (um *UserManager) UserLogin(email, password string) (*model.User, bool, error) {
	ctx := context.Background()
	um.logger.Info(ctx, "Authenticating user", log.Fields{"email": email})

	user, ok, err := um.userStore.UserAuthenticate(email, password)
	if err != nil {
		um.logger.Error(ctx, "Error authenticating user", log.Fields{"error": err, "email": email})
		return nil, false, fmt.Errorf("error authenticating user: %w", err)
	}
	if !ok {
		um.logger.Warn(ctx, "Authentication failed", log.Fields{"email": email})
		return nil, false, nil
	}

	if err := um.sessionStore.SessionSave(user); err != nil {
		um.logger.Error(ctx, "Failed to persist session", log.Fields{"error": err, "userID": user.ID})
		return nil, false, fmt.Errorf("failed to persist session: %w", err)
	}

	um.eventManager.Publish(event.Event{Type: event.UserLoggedIn, Data: user})
	um.logger.Info(ctx, "User authenticated successfully", log.Fields{"userID": user.ID, "email": email})
	return user, true, nil
}

// UserSignup creates a new user and logs it in immediately. A duplicate
// email is rejected.
func (um *UserManager) UserSignup(newUserInfo model.UserInfo) (*model.User, error) {
	ctx := context.Background()
	um.logger.Info(ctx, "Signing up new user", log.Fields{"email": newUserInfo.Email})

	// Check if the email is already taken
	existingUsers, err := um.userStore.UserGet(model.UserInfo{Email: newUserInfo.Email}, model.UserFilter{Email: true})
	if err != nil {
		um.logger.Error(ctx, "Error checking user existence", log.Fields{"error": err, "email": newUserInfo.Email})
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}
	if len(existingUsers) > 0 {
		um.logger.Warn(ctx, "User already exists", log.Fields{"email": newUserInfo.Email})
		return nil, fmt.Errorf("user with email '%s' already exists", newUserInfo.Email)
	}

	newUserInfo.ID = uuid.NewString()
	if err := um.userStore.UserAdd(newUserInfo); err != nil {
		um.logger.Error(ctx, "Failed to create user", log.Fields{"error": err, "email": newUserInfo.Email})
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	users, err := um.userStore.UserGet(model.UserInfo{ID: newUserInfo.ID}, model.UserFilter{ID: true})
	if err != nil || len(users) == 0 {
		return nil, fmt.Errorf("failed to read back new user: %w", err)
	}
	user := users[0]

	if err := um.sessionStore.SessionSave(user); err != nil {
		um.logger.Error(ctx, "Failed to persist session", log.Fields{"error": err, "userID": user.ID})
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	um.eventManager.Publish(event.Event{Type: event.UserLoggedIn, Data: user})
	um.logger.Info(ctx, "User signed up successfully", log.Fields{"userID": user.ID, "email": user.Email})
	return user, nil
}

// UserLogout clears the active session. The users table and any server-side
// favorites are untouched.
func (um *UserManager) UserLogout() error {
	ctx := context.Background()
	um.logger.Info(ctx, "Logging out current user", nil)

	if err := um.sessionStore.SessionClear(); err != nil {
		um.logger.Error(ctx, "Failed to clear session", log.Fields{"error": err})
		return fmt.Errorf("failed to clear session: %w", err)
	}

	um.eventManager.Publish(event.Event{Type: event.UserLoggedOut, Data: nil})
	return nil
}

// UserUpdate shallow-merges the selected fields into the users table and the
// persisted session.
func (um *UserManager) UserUpdate(user *model.User, userUpdateInfo model.UserInfo, userFilter model.UserFilter) error {
	ctx := context.Background()
	um.logger.Info(ctx, "Updating user", log.Fields{"userID": user.ID})

	if err := um.userStore.UserUpdate(user, userUpdateInfo, userFilter); err != nil {
		um.logger.Error(ctx, "Failed to update user", log.Fields{"error": err, "userID": user.ID})
		return fmt.Errorf("failed to update user: %w", err)
	}

	if userFilter.Name {
		user.Name = userUpdateInfo.Name
	}
	if userFilter.Email {
		user.Email = userUpdateInfo.Email
	}
	if userFilter.Phone {
		user.Phone = userUpdateInfo.Phone
	}
	if userFilter.ProfilePic {
		user.ProfilePic = userUpdateInfo.ProfilePic
	}

	if err := um.sessionStore.SessionSave(user); err != nil {
		um.logger.Error(ctx, "Failed to persist updated session", log.Fields{"error": err, "userID": user.ID})
		return fmt.Errorf("failed to persist updated session: %w", err)
	}

	um.logger.Info(ctx, "User updated successfully", log.Fields{"userID": user.ID})
	return nil
}

// UserCurrent returns the persisted active user, or nil when nobody is
// logged in.
func (um *UserManager) UserCurrent() (*model.User, error) {
	user, err := um.sessionStore.SessionLoad()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return user, nil
}
