// Package groups implements the query and mutation operations behind the
// group admin screen.
//
// Every operation first waits on the configured latency strategy. Users
// referenced by a mutation are looked up before the write, and each write is
// a single store call (one insert, or one atomic UpdateGroup), so a caller
// never observes a partially applied mutation. Reads return copies.
package groups

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/groupadmin/internal/latency"
	"github.com/mmynk/groupadmin/internal/models"
	"github.com/mmynk/groupadmin/internal/storage"
)

// DefaultManagerID is the user assigned as manager when a group is created
// without explicit managers and no WithDefaultManager option is given.
const DefaultManagerID = "1"

// Service exposes the Query and Mutation operations over a storage.Store.
type Service struct {
	store            storage.Store
	latency          latency.Strategy
	defaultManagerID string
	now              func() time.Time
	newID            func() string
	logger           *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLatency sets the delay strategy. The default is latency.None().
func WithLatency(s latency.Strategy) Option {
	return func(svc *Service) { svc.latency = s }
}

// WithDefaultManager sets the user assigned as manager when CreateGroup is
// called without manager IDs.
func WithDefaultManager(userID string) Option {
	return func(svc *Service) { svc.defaultManagerID = userID }
}

// WithClock overrides time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// WithIDGenerator overrides the group ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(svc *Service) { svc.newID = newID }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(svc *Service) { svc.logger = logger }
}

// New creates a Service backed by store.
func New(store storage.Store, opts ...Option) *Service {
	svc := &Service{
		store:            store,
		latency:          latency.None(),
		defaultManagerID: DefaultManagerID,
		now:              time.Now,
		newID:            uuid.NewString,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// CreateGroupParams describes a new group.
type CreateGroupParams struct {
	Name    string
	Picture string

	// ManagerIDs selects the managers. nil means the default manager;
	// an empty non-nil slice means no managers. Unknown IDs are dropped.
	ManagerIDs []string
}

// GroupUpdate carries the fields to change. A nil field is left unchanged.
type GroupUpdate struct {
	Name    *string
	Picture *string
}

// FetchUsers returns every user in store order.
func (s *Service) FetchUsers(ctx context.Context) ([]models.User, error) {
	const op = latency.OpFetchUsers
	if err := s.latency.Wait(ctx, op); err != nil {
		return nil, wrap(op, err)
	}
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, wrap(op, err)
	}
	return users, nil
}

// FetchGroups returns every group in store order.
func (s *Service) FetchGroups(ctx context.Context) ([]models.Group, error) {
	const op = latency.OpFetchGroups
	if err := s.latency.Wait(ctx, op); err != nil {
		return nil, wrap(op, err)
	}
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, wrap(op, err)
	}
	return groups, nil
}

// GetGroup returns a single group.
func (s *Service) GetGroup(ctx context.Context, groupID string) (models.Group, error) {
	const op = latency.OpGetGroup
	if err := s.latency.Wait(ctx, op); err != nil {
		return models.Group{}, wrap(op, err)
	}
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return models.Group{}, wrap(op, err)
	}
	return group, nil
}

// CreateGroup appends a new group whose members equal its managers and
// returns the new group's ID.
func (s *Service) CreateGroup(ctx context.Context, params CreateGroupParams) (string, error) {
	return s.createGroup(ctx, params, nil)
}

// CreateGroupWithMembers creates a group whose members are its managers
// followed by memberIDs in the given order. Unknown and repeated IDs are
// dropped. The group is stored with its members in one insert, so a failure
// never leaves a group behind.
func (s *Service) CreateGroupWithMembers(ctx context.Context, params CreateGroupParams, memberIDs []string) (string, error) {
	return s.createGroup(ctx, params, memberIDs)
}

func (s *Service) createGroup(ctx context.Context, params CreateGroupParams, memberIDs []string) (string, error) {
	const op = latency.OpCreateGroup
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return "", invalidArgument(op, "group name is required")
	}
	if err := s.latency.Wait(ctx, op); err != nil {
		return "", wrap(op, err)
	}
	// The create sheet adds its members in parallel, so they cost one add.
	if len(memberIDs) > 0 {
		if err := s.latency.Wait(ctx, latency.OpAddUserToGroup); err != nil {
			return "", wrap(op, err)
		}
	}

	managers, err := s.resolveManagers(ctx, params.ManagerIDs)
	if err != nil {
		return "", wrap(op, err)
	}
	members := append([]models.User{}, managers...)
	if len(memberIDs) > 0 {
		users, err := s.store.ListUsers(ctx)
		if err != nil {
			return "", wrap(op, err)
		}
		members = appendUsers(members, users, memberIDs)
	}

	group := models.Group{
		ID:        s.newID(),
		Name:      name,
		Picture:   params.Picture,
		Managers:  managers,
		Members:   members,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return "", wrap(op, err)
	}

	s.logger.Info("Group created",
		"group_id", group.ID,
		"name", group.Name,
		"managers_count", len(managers),
		"members_count", len(members),
	)
	return group.ID, nil
}

func (s *Service) resolveManagers(ctx context.Context, managerIDs []string) ([]models.User, error) {
	if managerIDs == nil {
		manager, err := s.store.GetUser(ctx, s.defaultManagerID)
		if err != nil {
			return nil, err
		}
		return []models.User{manager}, nil
	}
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return models.SelectUsers(users, managerIDs), nil
}

// appendUsers appends the users named by ids to dst in ids order, skipping
// unknown IDs and users already in dst.
func appendUsers(dst, users []models.User, ids []string) []models.User {
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	seen := make(map[string]bool, len(dst)+len(ids))
	for _, u := range dst {
		seen[u.ID] = true
	}
	for _, id := range ids {
		u, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		dst = append(dst, u)
	}
	return dst
}

// AddUserToGroup appends the user to the group's members. It reports false
// when the user was already a member.
func (s *Service) AddUserToGroup(ctx context.Context, groupID, userID string) (bool, error) {
	const op = latency.OpAddUserToGroup
	if err := s.latency.Wait(ctx, op); err != nil {
		return false, wrap(op, err)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return false, wrap(op, err)
	}

	added := false
	_, err = s.store.UpdateGroup(ctx, groupID, func(g *models.Group) error {
		if g.HasMember(userID) {
			return nil
		}
		g.Members = append(g.Members, user)
		added = true
		return nil
	})
	if err != nil {
		return false, wrap(op, err)
	}

	s.logger.Debug("Member added", "group_id", groupID, "user_id", userID, "added", added)
	return added, nil
}

// UpdateGroup changes the group's name and/or picture and returns the result.
// A present but blank name is rejected; a present empty picture clears it.
func (s *Service) UpdateGroup(ctx context.Context, groupID string, update GroupUpdate) (models.Group, error) {
	const op = latency.OpUpdateGroup
	var name string
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
		if name == "" {
			return models.Group{}, invalidArgument(op, "group name cannot be empty")
		}
	}
	if err := s.latency.Wait(ctx, op); err != nil {
		return models.Group{}, wrap(op, err)
	}

	group, err := s.store.UpdateGroup(ctx, groupID, func(g *models.Group) error {
		if update.Name != nil {
			g.Name = name
		}
		if update.Picture != nil {
			g.Picture = *update.Picture
		}
		return nil
	})
	if err != nil {
		return models.Group{}, wrap(op, err)
	}

	s.logger.Info("Group updated", "group_id", groupID)
	return group, nil
}

// UpdateGroupMembers replaces the group's members with the users whose ID is
// in memberIDs. The result follows user collection order, not input order.
// Managers are left untouched.
func (s *Service) UpdateGroupMembers(ctx context.Context, groupID string, memberIDs []string) (models.Group, error) {
	const op = latency.OpUpdateGroupMembers
	if err := s.latency.Wait(ctx, op); err != nil {
		return models.Group{}, wrap(op, err)
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return models.Group{}, wrap(op, err)
	}
	members := models.SelectUsers(users, memberIDs)

	group, err := s.store.UpdateGroup(ctx, groupID, func(g *models.Group) error {
		g.Members = members
		return nil
	})
	if err != nil {
		return models.Group{}, wrap(op, err)
	}

	s.logger.Info("Group members replaced", "group_id", groupID, "members_count", len(members))
	return group, nil
}

// DeleteGroup removes the group. Deleting an unknown ID returns a NotFound
// error and leaves the collection unchanged.
func (s *Service) DeleteGroup(ctx context.Context, groupID string) error {
	const op = latency.OpDeleteGroup
	if err := s.latency.Wait(ctx, op); err != nil {
		return wrap(op, err)
	}
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return wrap(op, err)
	}
	s.logger.Info("Group deleted", "group_id", groupID)
	return nil
}
