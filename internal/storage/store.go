// Package storage provides abstractions for user and group persistence.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/groupadmin/internal/models"
)

var (
	// ErrNotFound is returned when the requested user or group does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when inserting a record whose ID is already taken.
	ErrConflict = errors.New("already exists")
)

// UserStore defines read and insert operations for users.
type UserStore interface {
	// ListUsers returns every user in insertion order.
	ListUsers(ctx context.Context) ([]models.User, error)

	// GetUser retrieves a user by ID.
	// Returns ErrNotFound if no such user exists.
	GetUser(ctx context.Context, userID string) (models.User, error)

	// CreateUser inserts a new user.
	// Returns ErrConflict if the ID is already taken.
	CreateUser(ctx context.Context, user models.User) error
}

// GroupMutator edits a group in place. Returning an error aborts the update
// and leaves the stored group unchanged.
type GroupMutator func(g *models.Group) error

// GroupStore defines the repository operations for groups.
// Groups returned by the store are copies; mutating them does not affect stored state.
type GroupStore interface {
	// ListGroups returns every group in insertion order.
	ListGroups(ctx context.Context) ([]models.Group, error)

	// GetGroup retrieves a group by ID.
	// Returns ErrNotFound if no such group exists.
	GetGroup(ctx context.Context, groupID string) (models.Group, error)

	// CreateGroup appends a new group.
	// Returns ErrConflict if the ID is already taken.
	CreateGroup(ctx context.Context, group models.Group) error

	// UpdateGroup loads the group, applies mutate and stores the result as a
	// single atomic step, returning the stored group.
	// Returns ErrNotFound if no such group exists.
	UpdateGroup(ctx context.Context, groupID string, mutate GroupMutator) (models.Group, error)

	// DeleteGroup removes a group by ID.
	// Returns ErrNotFound if no such group exists.
	DeleteGroup(ctx context.Context, groupID string) error
}

// Store is the full Entity Store used by the group service.
// This abstraction allows swapping storage backends (memory, SQLite)
// without changing the service layer.
type Store interface {
	UserStore
	GroupStore

	// Close releases any resources held by the store.
	Close() error
}
