// Package storagetest holds a conformance suite shared by every storage.Store backend.
package storagetest

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/mmynk/groupadmin/internal/models"
	"github.com/mmynk/groupadmin/internal/storage"
	"github.com/mmynk/groupadmin/internal/storage/seed"
)

// Run exercises a backend. newStore must return an empty store; it is
// called once per subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()
	ctx := context.Background()

	seeded := func(t *testing.T) storage.Store {
		t.Helper()
		store := newStore(t)
		if err := seed.Load(ctx, store); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		return store
	}

	t.Run("ListUsers preserves insertion order", func(t *testing.T) {
		store := seeded(t)
		users, err := store.ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if !reflect.DeepEqual(users, seed.Users()) {
			t.Errorf("users mismatch:\n got %+v\nwant %+v", users, seed.Users())
		}
	})

	t.Run("GetUser returns ErrNotFound", func(t *testing.T) {
		store := seeded(t)
		_, err := store.GetUser(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CreateUser rejects duplicate id", func(t *testing.T) {
		store := seeded(t)
		err := store.CreateUser(ctx, models.User{ID: "1", Name: "Dup", Initials: "DU"})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("ListGroups round trips seed data", func(t *testing.T) {
		store := seeded(t)
		groups, err := store.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		want := seed.Groups()
		if len(groups) != len(want) {
			t.Fatalf("expected %d groups, got %d", len(want), len(groups))
		}
		for i := range want {
			if !reflect.DeepEqual(groups[i], want[i]) {
				t.Errorf("group %d mismatch:\n got %+v\nwant %+v", i, groups[i], want[i])
			}
		}
	})

	t.Run("CreateGroup rejects duplicate id", func(t *testing.T) {
		store := seeded(t)
		err := store.CreateGroup(ctx, models.Group{ID: "1", Name: "Dup", CreatedAt: time.Unix(0, 0).UTC()})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("CreateGroup keeps sub-second CreatedAt", func(t *testing.T) {
		store := seeded(t)
		created := time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC)
		users := seed.Users()
		group := models.Group{
			ID:        "precise",
			Name:      "Precise",
			Managers:  []models.User{users[0]},
			Members:   []models.User{users[0], users[2]},
			CreatedAt: created,
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		got, err := store.GetGroup(ctx, "precise")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if !got.CreatedAt.Equal(created) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
		}
		if !reflect.DeepEqual(got.MemberIDs(), []string{"1", "3"}) {
			t.Errorf("members = %v, want [1 3]", got.MemberIDs())
		}
	})

	t.Run("returned groups are copies", func(t *testing.T) {
		store := seeded(t)
		g, err := store.GetGroup(ctx, "1")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		g.Name = "mutated"
		g.Members[0].Name = "mutated"

		again, err := store.GetGroup(ctx, "1")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if again.Name != "Group 1" || again.Members[0].Name != "Elshank Gakhar" {
			t.Errorf("store state changed through a returned copy: %+v", again)
		}
	})

	t.Run("UpdateGroup applies mutation", func(t *testing.T) {
		store := seeded(t)
		users := seed.Users()
		updated, err := store.UpdateGroup(ctx, "2", func(g *models.Group) error {
			g.Name = "Renamed"
			g.Picture = "pic.png"
			g.Members = []models.User{users[3], users[0]}
			g.ID = "ignored"
			return nil
		})
		if err != nil {
			t.Fatalf("UpdateGroup failed: %v", err)
		}
		if updated.ID != "2" {
			t.Errorf("ID must be immutable, got %s", updated.ID)
		}

		got, err := store.GetGroup(ctx, "2")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Renamed" || got.Picture != "pic.png" {
			t.Errorf("fields not persisted: %+v", got)
		}
		if !reflect.DeepEqual(got.MemberIDs(), []string{"4", "1"}) {
			t.Errorf("member order not persisted: %v", got.MemberIDs())
		}
		if !got.CreatedAt.Equal(seed.Groups()[1].CreatedAt) {
			t.Errorf("CreatedAt changed: %v", got.CreatedAt)
		}
	})

	t.Run("UpdateGroup aborts on mutator error", func(t *testing.T) {
		store := seeded(t)
		abort := errors.New("abort")
		_, err := store.UpdateGroup(ctx, "3", func(g *models.Group) error {
			g.Name = "should not stick"
			return abort
		})
		if !errors.Is(err, abort) {
			t.Fatalf("expected mutator error, got %v", err)
		}
		got, err := store.GetGroup(ctx, "3")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Group 3" {
			t.Errorf("expected name to be retained, got %s", got.Name)
		}
	})

	t.Run("UpdateGroup returns ErrNotFound", func(t *testing.T) {
		store := seeded(t)
		_, err := store.UpdateGroup(ctx, "nonexistent-id", func(g *models.Group) error { return nil })
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteGroup removes only the target", func(t *testing.T) {
		store := seeded(t)
		if err := store.DeleteGroup(ctx, "2"); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetGroup(ctx, "2"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		groups, err := store.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) != 3 {
			t.Errorf("expected 3 groups, got %d", len(groups))
		}
	})

	t.Run("DeleteGroup returns ErrNotFound and leaves collection", func(t *testing.T) {
		store := seeded(t)
		if err := store.DeleteGroup(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		groups, err := store.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) != 4 {
			t.Errorf("expected 4 groups, got %d", len(groups))
		}
	})
}
