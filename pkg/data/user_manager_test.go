package data

import (
	"testing"

	"homescout/client-app/pkg/model"
)

func newTestUserManager(t *testing.T, users *fakeUserStore, sessions *fakeSessionStore) *UserManager {
	t.Helper()
	um, err := NewUserManager(users, sessions, newTestEventManager(t), newTestLogger(t))
	if err != nil {
		t.Fatalf("NewUserManager: %v", err)
	}
	return um
}

func seedUser(t *testing.T, users *fakeUserStore, name, email, password string) {
	t.Helper()
	if err := users.UserAdd(model.UserInfo{ID: "seed-" + email, Name: name, Email: email, Password: password}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestUserLogin(t *testing.T) {
	users := newFakeUserStore()
	sessions := &fakeSessionStore{}
	seedUser(t, users, "Asha", "asha@example.com", "secret")
	um := newTestUserManager(t, users, sessions)

	user, ok, err := um.UserLogin("asha@example.com", "secret")
	if err != nil || !ok {
		t.Fatalf("expected successful login, got ok=%v err=%v", ok, err)
	}
	if user.Name != "Asha" {
		t.Errorf("expected Asha, got %s", user.Name)
	}
	if sessions.user == nil || sessions.user.Email != "asha@example.com" {
		t.Error("expected the session to be persisted on login")
	}
}

func TestUserLoginWrongCredentials(t *testing.T) {
	users := newFakeUserStore()
	sessions := &fakeSessionStore{}
	seedUser(t, users, "Asha", "asha@example.com", "secret")
	um := newTestUserManager(t, users, sessions)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "secret"},
		{"wrong password", "asha@example.com", "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, ok, err := um.UserLogin(tt.email, tt.password)
			if err != nil {
				t.Fatalf("wrong credentials must not be an error, got %v", err)
			}
			if ok || user != nil {
				t.Errorf("expected ok=false and nil user, got ok=%v user=%v", ok, user)
			}
			if sessions.saveCalls != 0 {
				t.Error("a failed login must not touch the persisted session")
			}
		})
	}
}

func TestUserLoginFailureKeepsExistingSession(t *testing.T) {
	users := newFakeUserStore()
	sessions := &fakeSessionStore{user: &model.User{ID: "seed-old@example.com", Email: "old@example.com"}}
	seedUser(t, users, "Asha", "asha@example.com", "secret")
	um := newTestUserManager(t, users, sessions)

	if _, ok, err := um.UserLogin("asha@example.com", "wrong"); ok || err != nil {
		t.Fatalf("expected clean failed login, got ok=%v err=%v", ok, err)
	}
	if sessions.user == nil || sessions.user.Email != "old@example.com" {
		t.Error("a failed login must leave the previously active session untouched")
	}
}

func TestUserSignup(t *testing.T) {
	users := newFakeUserStore()
	sessions := &fakeSessionStore{}
	um := newTestUserManager(t, users, sessions)

	user, err := um.UserSignup(model.UserInfo{Name: "Ravi", Email: "ravi@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.ID == "" {
		t.Error("expected signup to assign an id")
	}
	if sessions.user == nil || sessions.user.ID != user.ID {
		t.Error("expected signup to log the new user in")
	}

	current, err := um.UserCurrent()
	if err != nil || current == nil || current.ID != user.ID {
		t.Errorf("expected UserCurrent to return the new user, got %v, %v", current, err)
	}
}

func TestUserSignupDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	sessions := &fakeSessionStore{}
	seedUser(t, users, "Asha", "asha@example.com", "secret")
	um := newTestUserManager(t, users, sessions)

	if _, err := um.UserSignup(model.UserInfo{Name: "Imposter", Email: "asha@example.com", Password: "pw"}); err == nil {
		t.Fatal("expected duplicate email signup to fail")
	}
	if sessions.saveCalls != 0 {
		t.Error("a rejected signup must not persist a session")
	}
}

func TestUserLogout(t *testing.T) {
	users := newFakeUserStore()
	sessions := &fakeSessionStore{user: &model.User{ID: "u1"}}
	um := newTestUserManager(t, users, sessions)

	if err := um.UserLogout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.user != nil {
		t.Error("expected the persisted session to be cleared")
	}
	if current, err := um.UserCurrent(); err != nil || current != nil {
		t.Errorf("expected no current user after logout, got %v, %v", current, err)
	}
}

func TestUserUpdate(t *testing.T) {
	users := newFakeUserStore()
	sessions := &fakeSessionStore{}
	seedUser(t, users, "Asha", "asha@example.com", "secret")
	um := newTestUserManager(t, users, sessions)

	user, ok, err := um.UserLogin("asha@example.com", "secret")
	if err != nil || !ok {
		t.Fatalf("login: ok=%v err=%v", ok, err)
	}

	err = um.UserUpdate(user, model.UserInfo{Phone: "+919900112233", Name: "Asha R"}, model.UserFilter{Phone: true, Name: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.Phone != "+919900112233" || user.Name != "Asha R" {
		t.Errorf("expected the in-memory user to carry the updates, got %+v", user)
	}
	if user.Email != "asha@example.com" {
		t.Error("unselected fields must not change")
	}
	if sessions.user == nil || sessions.user.Phone != "+919900112233" {
		t.Error("expected the persisted session to carry the updates")
	}
}
