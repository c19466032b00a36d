package storage

import (
	"testing"

	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	cfg := &model.Config{
		DatabaseDir:  t.TempDir(),
		DatabaseFile: "test.db",
		DatabaseType: "sqlite",
		LogFolder:    t.TempDir(),
		CommandLog:   "commands.log",
		ErrorLog:     "errors.log",
		InfoLog:      "info.log",
	}
	logger, err := log.NewLogger(cfg, log.LevelError)
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	t.Cleanup(func() {
		if err := logger.Close(); err != nil {
			t.Errorf("failed to close test logger: %v", err)
		}
	})

	store, err := NewStorage(cfg, logger)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close storage: %v", err)
		}
	})
	return store
}

func TestGuestFavoriteStore(t *testing.T) {
	store := newTestStorage(t)

	ids, err := store.FavoritesGet()
	if err != nil {
		t.Fatalf("FavoritesGet: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty set, got %v", ids)
	}

	if _, err := store.FavoriteToggle("hs-101"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	ids, err = store.FavoriteToggle("api_r1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 favorites, got %v", ids)
	}

	// Toggling an existing id removes it.
	ids, err = store.FavoriteToggle("hs-101")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(ids) != 1 || ids[0] != "api_r1" {
		t.Fatalf("expected [api_r1], got %v", ids)
	}

	if err := store.FavoritesClear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	ids, err = store.FavoritesGet()
	if err != nil {
		t.Fatalf("FavoritesGet: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty set after clear, got %v", ids)
	}
}

func TestUserStoreAuthenticate(t *testing.T) {
	store := newTestStorage(t)

	err := store.UserAdd(model.UserInfo{ID: "u1", Name: "Asha", Email: "asha@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("UserAdd: %v", err)
	}

	user, ok, err := store.UserAuthenticate("asha@example.com", "secret")
	if err != nil || !ok {
		t.Fatalf("expected successful authentication, got ok=%v err=%v", ok, err)
	}
	if user.ID != "u1" || user.Name != "Asha" {
		t.Errorf("unexpected user %+v", user)
	}

	if _, ok, err := store.UserAuthenticate("asha@example.com", "wrong"); err != nil || ok {
		t.Errorf("wrong password must fail cleanly, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := store.UserAuthenticate("nobody@example.com", "secret"); err != nil || ok {
		t.Errorf("unknown email must fail cleanly, got ok=%v err=%v", ok, err)
	}
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	store := newTestStorage(t)

	if err := store.UserAdd(model.UserInfo{ID: "u1", Name: "Asha", Email: "asha@example.com", Password: "pw"}); err != nil {
		t.Fatalf("UserAdd: %v", err)
	}
	if err := store.UserAdd(model.UserInfo{ID: "u2", Name: "Imposter", Email: "asha@example.com", Password: "pw"}); err == nil {
		t.Error("expected the unique email constraint to reject the duplicate")
	}
}

func TestUserStoreUpdate(t *testing.T) {
	store := newTestStorage(t)

	if err := store.UserAdd(model.UserInfo{ID: "u1", Name: "Asha", Email: "asha@example.com", Password: "pw"}); err != nil {
		t.Fatalf("UserAdd: %v", err)
	}
	user := &model.User{ID: "u1"}
	err := store.UserUpdate(user, model.UserInfo{Phone: "+911234", Password: "newpw"}, model.UserFilter{Phone: true, Password: true})
	if err != nil {
		t.Fatalf("UserUpdate: %v", err)
	}

	users, err := store.UserGet(model.UserInfo{ID: "u1"}, model.UserFilter{ID: true})
	if err != nil || len(users) != 1 {
		t.Fatalf("UserGet: %v, %d users", err, len(users))
	}
	if users[0].Phone != "+911234" {
		t.Errorf("expected updated phone, got %s", users[0].Phone)
	}

	if _, ok, err := store.UserAuthenticate("asha@example.com", "newpw"); err != nil || !ok {
		t.Errorf("expected the new password to authenticate, got ok=%v err=%v", ok, err)
	}
	if _, ok, _ := store.UserAuthenticate("asha@example.com", "pw"); ok {
		t.Error("expected the old password to be rejected")
	}
}

func TestSessionStore(t *testing.T) {
	store := newTestStorage(t)

	user, err := store.SessionLoad()
	if err != nil || user != nil {
		t.Fatalf("expected no persisted session, got %v, %v", user, err)
	}

	if err := store.SessionSave(&model.User{ID: "u1", Name: "Asha", Email: "asha@example.com"}); err != nil {
		t.Fatalf("SessionSave: %v", err)
	}
	user, err = store.SessionLoad()
	if err != nil || user == nil || user.ID != "u1" {
		t.Fatalf("expected persisted user u1, got %v, %v", user, err)
	}

	// Saving again replaces the single row.
	if err := store.SessionSave(&model.User{ID: "u2", Name: "Ravi"}); err != nil {
		t.Fatalf("SessionSave: %v", err)
	}
	user, err = store.SessionLoad()
	if err != nil || user == nil || user.ID != "u2" {
		t.Fatalf("expected persisted user u2, got %v, %v", user, err)
	}

	if err := store.SessionClear(); err != nil {
		t.Fatalf("SessionClear: %v", err)
	}
	user, err = store.SessionLoad()
	if err != nil || user != nil {
		t.Errorf("expected no session after clear, got %v, %v", user, err)
	}
}

func TestSettingStore(t *testing.T) {
	store := newTestStorage(t)

	value, err := store.SettingGet("admin_auth")
	if err != nil || value != "" {
		t.Fatalf("expected empty value for an absent key, got %q, %v", value, err)
	}

	if err := store.SettingSet("admin_auth", "true"); err != nil {
		t.Fatalf("SettingSet: %v", err)
	}
	if value, _ := store.SettingGet("admin_auth"); value != "true" {
		t.Errorf("expected true, got %q", value)
	}

	if err := store.SettingSet("admin_auth", "false"); err != nil {
		t.Fatalf("SettingSet overwrite: %v", err)
	}
	if value, _ := store.SettingGet("admin_auth"); value != "false" {
		t.Errorf("expected overwrite to false, got %q", value)
	}

	if err := store.SettingDelete("admin_auth"); err != nil {
		t.Fatalf("SettingDelete: %v", err)
	}
	if value, _ := store.SettingGet("admin_auth"); value != "" {
		t.Errorf("expected empty value after delete, got %q", value)
	}
}
