package models

import "time"

// Group represents a named collection of users.
//
// Members is unique by user ID. Managers is set at creation and is not
// required to be a subset of Members.
type Group struct {
	// ID is the unique identifier for the group (UUID format for new groups).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Platform", "Design").
	Name string `json:"name"`

	// Picture is an optional image reference.
	Picture string `json:"picture,omitempty"`

	// Managers are the users responsible for the group.
	Managers []User `json:"managers"`

	// Members are the users that belong to the group.
	Members []User `json:"members"`

	// CreatedAt is set once when the group is created.
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	g.Managers = cloneUsers(g.Managers)
	g.Members = cloneUsers(g.Members)
	return g
}

// HasMember reports whether a user with the given ID is a member.
func (g Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns the member IDs in membership order.
func (g Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// ManagerIDs returns the manager IDs in order.
func (g Group) ManagerIDs() []string {
	ids := make([]string, len(g.Managers))
	for i, m := range g.Managers {
		ids[i] = m.ID
	}
	return ids
}

func cloneUsers(users []User) []User {
	if users == nil {
		return nil
	}
	out := make([]User, len(users))
	copy(out, users)
	return out
}

// SelectUsers returns the users whose ID is in ids, in the order of users.
// Unknown IDs and duplicates in ids are ignored.
func SelectUsers(users []User, ids []string) []User {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	selected := make([]User, 0, len(ids))
	for _, u := range users {
		if _, ok := want[u.ID]; ok {
			selected = append(selected, u)
		}
	}
	return selected
}
