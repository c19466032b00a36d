package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
)

// initUserCommandHandlers returns the handlers for the user scope.
func initUserCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"signup": handleUserSignup,
		"login":  handleUserLogin,
		"logout": handleUserLogout,
		"update": handleUserUpdate,
		"whoami": handleUserWhoami,
	}
}

// handleUserSignup handles the user signup command
func handleUserSignup(s *Session, cmd model.Command) (interface{}, error) {
	if len(cmd.Args) < 3 || len(cmd.Args) > 4 {
		return nil, errors.New("user signup command requires 3 or 4 arguments: <name> <email> <password> [phone]")
	}

	userInfo := model.UserInfo{
		Name:     cmd.Args[0],
		Email:    cmd.Args[1],
		Password: cmd.Args[2],
	}
	if len(cmd.Args) == 4 {
		userInfo.Phone = cmd.Args[3]
	}

	user, err := s.DataManager.UserManager.UserSignup(userInfo)
	if err != nil {
		return nil, err
	}

	s.UserSet(user)
	s.syncFavorites(user)
	return fmt.Sprintf("welcome, %s! you are now logged in", user.Name), nil
}

// handleUserLogin handles the user login command
func handleUserLogin(s *Session, cmd model.Command) (interface{}, error) {
	if len(cmd.Args) != 2 {
		return nil, errors.New("user login command requires 2 arguments: <email> <password>")
	}

	user, ok, err := s.DataManager.UserManager.UserLogin(cmd.Args[0], cmd.Args[1])
	if err != nil {
		return nil, err
	}
	if !ok {
		// Wrong credentials are a normal outcome, not an error.
		return "invalid email or password", nil
	}

	s.UserSet(user)
	s.syncFavorites(user)
	return fmt.Sprintf("logged in as %s", user.Name), nil
}

// syncFavorites runs the one-time guest-to-server favorites merge for a fresh
// login. A failed merge never fails the login; the guest set stays put and
// the user is told.
func (s *Session) syncFavorites(user *model.User) {
	ctx := context.Background()
	if err := s.DataManager.FavoriteManager.FavoriteSync(ctx, user); err != nil {
		s.logger.Warn(ctx, "Favorites sync after login failed", log.Fields{"userID": user.ID, "error": err})
	}
}

// handleUserLogout handles the user logout command
func handleUserLogout(s *Session, cmd model.Command) (interface{}, error) {
	if s.User == nil {
		return nil, errors.New("no user is logged in")
	}

	if err := s.DataManager.UserManager.UserLogout(); err != nil {
		return nil, err
	}

	name := s.User.Name
	s.UserSet(nil)
	return fmt.Sprintf("logged out %s", name), nil
}

// handleUserUpdate handles the user update command
func handleUserUpdate(s *Session, cmd model.Command) (interface{}, error) {
	if s.User == nil {
		return nil, errors.New("no user is logged in")
	}
	if len(cmd.Args) == 0 {
		return nil, errors.New("user update command requires at least 1 argument: <field>=<value> ...")
	}

	updateInfo := model.UserInfo{}
	updateFilter := model.UserFilter{}

	for _, arg := range cmd.Args {
		key, value, err := splitFieldArg(arg)
		if err != nil {
			return nil, err
		}
		switch key {
		case "name":
			updateInfo.Name = value
			updateFilter.Name = true
		case "email":
			updateInfo.Email = value
			updateFilter.Email = true
		case "phone":
			updateInfo.Phone = value
			updateFilter.Phone = true
		case "pic", "profilepic":
			updateInfo.ProfilePic = value
			updateFilter.ProfilePic = true
		case "password":
			updateInfo.Password = value
			updateFilter.Password = true
		default:
			return nil, fmt.Errorf("unknown field '%s'", key)
		}
	}

	if err := s.DataManager.UserManager.UserUpdate(s.User, updateInfo, updateFilter); err != nil {
		return nil, err
	}
	return "profile updated", nil
}

func splitFieldArg(arg string) (string, string, error) {
	key, value, found := strings.Cut(arg, "=")
	if !found || key == "" {
		return "", "", fmt.Errorf("invalid argument '%s', expected <field>=<value>", arg)
	}
	return strings.ToLower(key), value, nil
}

// handleUserWhoami handles the user whoami command
func handleUserWhoami(s *Session, cmd model.Command) (interface{}, error) {
	if s.User == nil {
		return "guest (favorites are stored on this device only)", nil
	}
	return fmt.Sprintf("%s <%s> phone=%s", s.User.Name, s.User.Email, s.User.Phone), nil
}
