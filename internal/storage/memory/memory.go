// Package memory provides an in-memory implementation of the storage.Store interface.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mmynk/groupadmin/internal/models"
	"github.com/mmynk/groupadmin/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps users and groups in ordered slices guarded by a single lock.
// Every method is one critical section, so no caller can observe a
// partially applied mutation.
type Store struct {
	mu     sync.RWMutex
	users  []models.User
	groups []models.Group
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// ListUsers returns a copy of every user in insertion order.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users), nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, userID string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.userIndex(userID)
	if i < 0 {
		return models.User{}, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	return s.users[i], nil
}

// CreateUser appends a user to the collection.
func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIndex(user.ID) >= 0 {
		return fmt.Errorf("user %s: %w", user.ID, storage.ErrConflict)
	}
	s.users = append(s.users, user)
	return nil
}

// ListGroups returns deep copies of every group in insertion order.
func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]models.Group, len(s.groups))
	for i, g := range s.groups {
		groups[i] = g.Clone()
	}
	return groups, nil
}

// GetGroup retrieves a deep copy of a group by ID.
func (s *Store) GetGroup(ctx context.Context, groupID string) (models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.groupIndex(groupID)
	if i < 0 {
		return models.Group{}, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return s.groups[i].Clone(), nil
}

// CreateGroup appends a copy of the group to the collection.
func (s *Store) CreateGroup(ctx context.Context, group models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.groupIndex(group.ID) >= 0 {
		return fmt.Errorf("group %s: %w", group.ID, storage.ErrConflict)
	}
	s.groups = append(s.groups, group.Clone())
	return nil
}

// UpdateGroup applies mutate to a copy of the group and swaps it in on success.
func (s *Store) UpdateGroup(ctx context.Context, groupID string, mutate storage.GroupMutator) (models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.groupIndex(groupID)
	if i < 0 {
		return models.Group{}, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}

	updated := s.groups[i].Clone()
	if err := mutate(&updated); err != nil {
		return models.Group{}, err
	}
	// ID and CreatedAt are immutable.
	updated.ID = s.groups[i].ID
	updated.CreatedAt = s.groups[i].CreatedAt

	s.groups[i] = updated.Clone()
	return updated, nil
}

// DeleteGroup removes the group with the given ID.
func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.groupIndex(groupID)
	if i < 0 {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	s.groups = slices.Delete(s.groups, i, i+1)
	return nil
}

func (s *Store) userIndex(id string) int {
	return slices.IndexFunc(s.users, func(u models.User) bool { return u.ID == id })
}

func (s *Store) groupIndex(id string) int {
	return slices.IndexFunc(s.groups, func(g models.Group) bool { return g.ID == id })
}
