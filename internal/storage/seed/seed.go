// Package seed provides the fixture users and groups the admin screen starts with.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/groupadmin/internal/models"
	"github.com/mmynk/groupadmin/internal/storage"
)

// Users returns the fixture users.
func Users() []models.User {
	return []models.User{
		{ID: "1", Name: "Elshank Gakhar", Initials: "EG", Role: "Group Manager"},
		{ID: "2", Name: "Peter Uston", Initials: "PU"},
		{ID: "3", Name: "Kelly Parker", Initials: "KP"},
		{ID: "4", Name: "John Doe", Initials: "JD"},
		{ID: "5", Name: "Jane Smith", Initials: "JS"},
		{ID: "6", Name: "Alex Johnson", Initials: "AJ"},
		{ID: "7", Name: "Sam Wilson", Initials: "SW"},
		{ID: "8", Name: "Mary Davis", Initials: "MD"},
	}
}

// Groups returns the fixture groups, built from Users.
func Groups() []models.Group {
	u := Users()
	return []models.Group{
		{
			ID:        "1",
			Name:      "Group 1",
			Managers:  []models.User{u[0], u[1]},
			Members:   []models.User{u[0], u[1], u[2]},
			CreatedAt: date(2025, time.January, 10),
		},
		{
			ID:        "2",
			Name:      "Group 2",
			Managers:  []models.User{u[0]},
			Members:   []models.User{u[0]},
			CreatedAt: date(2025, time.January, 12),
		},
		{
			ID:        "3",
			Name:      "Group 3",
			Managers:  []models.User{u[0]},
			Members:   []models.User{u[0]},
			CreatedAt: date(2025, time.March, 15),
		},
		{
			ID:        "4",
			Name:      "Group 4",
			Managers:  []models.User{u[0]},
			Members:   []models.User{u[0], u[1], u[2], u[3], u[4]},
			CreatedAt: date(2025, time.January, 16),
		},
	}
}

// Load inserts the fixture users and groups into store.
func Load(ctx context.Context, store storage.Store) error {
	for _, u := range Users() {
		if err := store.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	for _, g := range Groups() {
		if err := store.CreateGroup(ctx, g); err != nil {
			return fmt.Errorf("seed group %s: %w", g.ID, err)
		}
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// LoadIfEmpty seeds store unless it already holds users, so a reopened
// database is not seeded twice. It reports whether seeding happened.
func LoadIfEmpty(ctx context.Context, store storage.Store) (bool, error) {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("check store: %w", err)
	}
	if len(users) > 0 {
		return false, nil
	}
	if err := Load(ctx, store); err != nil {
		return false, err
	}
	return true, nil
}
