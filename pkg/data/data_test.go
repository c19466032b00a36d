package data

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"homescout/client-app/pkg/event"
	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
)

func newTestLogger(t *testing.T) *log.Logger {
	t.Helper()
	cfg := &model.Config{
		LogFolder:  t.TempDir(),
		CommandLog: "commands.log",
		ErrorLog:   "errors.log",
		InfoLog:    "info.log",
	}
	logger, err := log.NewLogger(cfg, log.LevelWarn)
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	t.Cleanup(func() {
		if err := logger.Close(); err != nil {
			t.Errorf("failed to close test logger: %v", err)
		}
	})
	return logger
}

func newTestEventManager(t *testing.T) *event.EventManager {
	t.Helper()
	return event.NewEventManager(newTestLogger(t))
}

// fakePropertyService serves a fixed remote listing set. Configure it before
// handing it to a manager; the background load reads it concurrently.
type fakePropertyService struct {
	properties []model.Property
	listErr    error
}

func (f *fakePropertyService) PropertyList(ctx context.Context) ([]model.Property, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Property, len(f.properties))
	copy(out, f.properties)
	return out, nil
}

func (f *fakePropertyService) PropertyGet(ctx context.Context, remoteID string) (*model.Property, error) {
	for i := range f.properties {
		if f.properties[i].RemoteID == remoteID {
			p := f.properties[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("property '%s' not found", remoteID)
}

func (f *fakePropertyService) PropertySearch(ctx context.Context, query string) ([]model.Property, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.properties, nil
}

// fakeFavoriteService mimics the backend's liked-set endpoints for one user.
type fakeFavoriteService struct {
	mu          sync.Mutex
	liked       []string
	getErr      error
	toggleErr   error
	updateErr   error
	updateCalls int
	lastUpdate  []string
}

func (f *fakeFavoriteService) LikedGet(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]string, len(f.liked))
	copy(out, f.liked)
	return out, nil
}

func (f *fakeFavoriteService) LikedToggle(ctx context.Context, userID, propertyID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.toggleErr != nil {
		return nil, f.toggleErr
	}
	f.liked = toggleID(f.liked, propertyID)
	out := make([]string, len(f.liked))
	copy(out, f.liked)
	return out, nil
}

func (f *fakeFavoriteService) LikedUpdate(ctx context.Context, userID string, liked []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.liked = make([]string, len(liked))
	copy(f.liked, liked)
	f.lastUpdate = make([]string, len(liked))
	copy(f.lastUpdate, liked)
	return nil
}

// fakeGuestStore is an in-memory stand-in for the guest favorites table.
type fakeGuestStore struct {
	mu      sync.Mutex
	ids     []string
	getErr  error
	cleared bool
}

func (f *fakeGuestStore) FavoritesGet() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]string, len(f.ids))
	copy(out, f.ids)
	return out, nil
}

func (f *fakeGuestStore) FavoriteToggle(propertyID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = toggleID(f.ids, propertyID)
	out := make([]string, len(f.ids))
	copy(out, f.ids)
	return out, nil
}

func (f *fakeGuestStore) FavoritesClear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = nil
	f.cleared = true
	return nil
}

func toggleID(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}

// fakeUserStore keeps users in memory with plaintext passwords.
type fakeUserStore struct {
	users     []*model.User
	passwords map[string]string // user id -> password
	authErr   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{passwords: make(map[string]string)}
}

func (f *fakeUserStore) UserAdd(newUser model.UserInfo) error {
	now := time.Now()
	f.users = append(f.users, &model.User{
		ID:      newUser.ID,
		Name:    newUser.Name,
		Email:   newUser.Email,
		Phone:   newUser.Phone,
		Created: now,
		Updated: now,
	})
	f.passwords[newUser.ID] = newUser.Password
	return nil
}

func (f *fakeUserStore) UserGet(userInfo model.UserInfo, userFilter model.UserFilter) ([]*model.User, error) {
	var matched []*model.User
	for _, u := range f.users {
		if userFilter.ID && u.ID != userInfo.ID {
			continue
		}
		if userFilter.Email && u.Email != userInfo.Email {
			continue
		}
		copied := *u
		matched = append(matched, &copied)
	}
	return matched, nil
}

func (f *fakeUserStore) UserAuthenticate(email, password string) (*model.User, bool, error) {
	if f.authErr != nil {
		return nil, false, f.authErr
	}
	for _, u := range f.users {
		if u.Email == email {
			if f.passwords[u.ID] != password {
				return nil, false, nil
			}
			copied := *u
			return &copied, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeUserStore) UserUpdate(user *model.User, userUpdateInfo model.UserInfo, userFilter model.UserFilter) error {
	for _, u := range f.users {
		if u.ID != user.ID {
			continue
		}
		if userFilter.Name {
			u.Name = userUpdateInfo.Name
		}
		if userFilter.Email {
			u.Email = userUpdateInfo.Email
		}
		if userFilter.Phone {
			u.Phone = userUpdateInfo.Phone
		}
		if userFilter.ProfilePic {
			u.ProfilePic = userUpdateInfo.ProfilePic
		}
		if userFilter.Password {
			f.passwords[u.ID] = userUpdateInfo.Password
		}
		u.Updated = time.Now()
		return nil
	}
	return fmt.Errorf("user '%s' not found", user.ID)
}

func (f *fakeUserStore) UserDelete(user *model.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeSessionStore keeps the persisted session in memory.
type fakeSessionStore struct {
	user      *model.User
	saveCalls int
	saveErr   error
}

func (f *fakeSessionStore) SessionSave(user *model.User) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saveCalls++
	copied := *user
	f.user = &copied
	return nil
}

func (f *fakeSessionStore) SessionLoad() (*model.User, error) {
	if f.user == nil {
		return nil, nil
	}
	copied := *f.user
	return &copied, nil
}

func (f *fakeSessionStore) SessionClear() error {
	f.user = nil
	return nil
}
