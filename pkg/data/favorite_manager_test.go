package data

import (
	"context"
	"errors"
	"sync"
	"testing"

	"homescout/client-app/pkg/model"
)

func newTestFavoriteManager(t *testing.T, guest *fakeGuestStore, api *fakeFavoriteService) *FavoriteManager {
	t.Helper()
	fm, err := NewFavoriteManager(guest, api, newTestEventManager(t), newTestLogger(t))
	if err != nil {
		t.Fatalf("NewFavoriteManager: %v", err)
	}
	return fm
}

func testUser() *model.User {
	return &model.User{ID: "u1", Name: "Asha", Email: "asha@example.com"}
}

func assertLiked(t *testing.T, fm *FavoriteManager, want []string) {
	t.Helper()
	got := fm.FavoriteList()
	if len(got) != len(want) {
		t.Fatalf("expected liked set %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected liked set %v, got %v", want, got)
		}
	}
}

func TestFavoriteToggleGuest(t *testing.T) {
	guest := &fakeGuestStore{}
	fm := newTestFavoriteManager(t, guest, &fakeFavoriteService{})
	ctx := context.Background()

	if err := fm.FavoriteToggle(ctx, nil, "hs-101"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !fm.FavoriteContains("hs-101") {
		t.Error("expected hs-101 to be liked after first toggle")
	}

	if err := fm.FavoriteToggle(ctx, nil, "hs-101"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if fm.FavoriteContains("hs-101") {
		t.Error("expected hs-101 to be unliked after second toggle")
	}
	assertLiked(t, fm, []string{})
}

func TestFavoriteToggleGuestRapid(t *testing.T) {
	guest := &fakeGuestStore{}
	fm := newTestFavoriteManager(t, guest, &fakeFavoriteService{})
	ctx := context.Background()

	// An even number of concurrent toggles on one id must cancel out.
	const toggles = 10
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fm.FavoriteToggle(ctx, nil, "hs-101"); err != nil {
				t.Errorf("toggle: %v", err)
			}
		}()
	}
	wg.Wait()

	if fm.FavoriteContains("hs-101") {
		t.Error("expected hs-101 to end up unliked after an even number of toggles")
	}
	ids, err := guest.FavoritesGet()
	if err != nil {
		t.Fatalf("FavoritesGet: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty guest store, got %v", ids)
	}
}

func TestFavoriteToggleAuthenticatedAdoptsServerSet(t *testing.T) {
	api := &fakeFavoriteService{liked: []string{"api_r9"}}
	fm := newTestFavoriteManager(t, &fakeGuestStore{}, api)

	if err := fm.FavoriteToggle(context.Background(), testUser(), "hs-101"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	assertLiked(t, fm, []string{"api_r9", "hs-101"})
}

func TestFavoriteToggleAuthenticatedFailureKeepsSet(t *testing.T) {
	api := &fakeFavoriteService{toggleErr: errors.New("backend down")}
	fm := newTestFavoriteManager(t, &fakeGuestStore{}, api)
	fm.setLiked([]string{"hs-102"})

	if err := fm.FavoriteToggle(context.Background(), testUser(), "hs-101"); err == nil {
		t.Fatal("expected toggle error")
	}
	assertLiked(t, fm, []string{"hs-102"})
}

func TestFavoriteLoadGuest(t *testing.T) {
	guest := &fakeGuestStore{ids: []string{"hs-101", "hs-103"}}
	fm := newTestFavoriteManager(t, guest, &fakeFavoriteService{})

	if err := fm.FavoriteLoad(context.Background(), nil); err != nil {
		t.Fatalf("load: %v", err)
	}
	assertLiked(t, fm, []string{"hs-101", "hs-103"})
}

func TestFavoriteLoadFailureLeavesEmptySet(t *testing.T) {
	api := &fakeFavoriteService{getErr: errors.New("backend down")}
	fm := newTestFavoriteManager(t, &fakeGuestStore{}, api)
	fm.setLiked([]string{"hs-101"})

	if err := fm.FavoriteLoad(context.Background(), testUser()); err == nil {
		t.Fatal("expected load error")
	}
	assertLiked(t, fm, []string{})
}

func TestFavoriteSyncMergesGuestAndServer(t *testing.T) {
	guest := &fakeGuestStore{ids: []string{"hs-101", "api_r1"}}
	api := &fakeFavoriteService{liked: []string{"api_r1", "api_r2"}}
	fm := newTestFavoriteManager(t, guest, api)

	if err := fm.FavoriteSync(context.Background(), testUser()); err != nil {
		t.Fatalf("sync: %v", err)
	}

	// Guest order first, then server-only additions.
	want := []string{"hs-101", "api_r1", "api_r2"}
	assertLiked(t, fm, want)

	if api.updateCalls != 1 {
		t.Errorf("expected 1 merged write, got %d", api.updateCalls)
	}
	for i := range want {
		if api.lastUpdate[i] != want[i] {
			t.Fatalf("expected merged write %v, got %v", want, api.lastUpdate)
		}
	}
	if !guest.cleared {
		t.Error("expected guest set to be cleared after a successful merge")
	}
}

func TestFavoriteSyncEmptyGuestSkipsWrite(t *testing.T) {
	api := &fakeFavoriteService{liked: []string{"api_r1"}}
	fm := newTestFavoriteManager(t, &fakeGuestStore{}, api)

	if err := fm.FavoriteSync(context.Background(), testUser()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if api.updateCalls != 0 {
		t.Errorf("expected no merged write for an empty guest set, got %d", api.updateCalls)
	}
	assertLiked(t, fm, []string{"api_r1"})
}

func TestFavoriteSyncWriteFailurePreservesGuestSet(t *testing.T) {
	guest := &fakeGuestStore{ids: []string{"hs-101"}}
	api := &fakeFavoriteService{liked: []string{"api_r1"}, updateErr: errors.New("backend down")}
	fm := newTestFavoriteManager(t, guest, api)

	if err := fm.FavoriteSync(context.Background(), testUser()); err == nil {
		t.Fatal("expected sync error when the merged write fails")
	}

	if guest.cleared {
		t.Error("guest set must stay intact when the merged write fails")
	}
	ids, err := guest.FavoritesGet()
	if err != nil {
		t.Fatalf("FavoritesGet: %v", err)
	}
	if len(ids) != 1 || ids[0] != "hs-101" {
		t.Errorf("expected guest set [hs-101], got %v", ids)
	}

	// The in-memory set falls back to the pre-merge server truth.
	assertLiked(t, fm, []string{"api_r1"})
}

func TestUnionLiked(t *testing.T) {
	tests := []struct {
		name   string
		first  []string
		second []string
		want   []string
	}{
		{"disjoint", []string{"a"}, []string{"b"}, []string{"a", "b"}},
		{"overlap keeps first order", []string{"a", "b"}, []string{"b", "c"}, []string{"a", "b", "c"}},
		{"duplicates within a list", []string{"a", "a"}, []string{"a"}, []string{"a"}},
		{"both empty", nil, nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := unionLiked(tt.first, tt.second)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}
