package models

import (
	"reflect"
	"testing"
)

func TestUserDisplayRole(t *testing.T) {
	if got := (User{Role: "Group Manager"}).DisplayRole(); got != "Group Manager" {
		t.Errorf("expected 'Group Manager', got '%s'", got)
	}
	if got := (User{}).DisplayRole(); got != DefaultRole {
		t.Errorf("expected default role '%s', got '%s'", DefaultRole, got)
	}
}

func TestUserAvatarColor(t *testing.T) {
	tests := []struct {
		initials string
		want     string
	}{
		{"EG", "pink"},
		{"MD", "cyan"},
		{"ZZ", FallbackAvatarColor},
		{"", FallbackAvatarColor},
	}
	for _, tt := range tests {
		if got := (User{Initials: tt.initials}).AvatarColor(); got != tt.want {
			t.Errorf("AvatarColor(%q) = %q, want %q", tt.initials, got, tt.want)
		}
	}
}

func TestAvatarStack(t *testing.T) {
	users := []User{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}}

	visible, overflow := AvatarStack(users, 3)
	if len(visible) != 3 || overflow != 2 {
		t.Errorf("expected 3 visible and 2 hidden, got %d and %d", len(visible), overflow)
	}

	visible, overflow = AvatarStack(users[:2], 3)
	if len(visible) != 2 || overflow != 0 {
		t.Errorf("expected 2 visible and 0 hidden, got %d and %d", len(visible), overflow)
	}
}

func TestGroupCloneDoesNotAlias(t *testing.T) {
	g := Group{
		ID:       "g1",
		Managers: []User{{ID: "1", Name: "A"}},
		Members:  []User{{ID: "1", Name: "A"}},
	}
	c := g.Clone()
	c.Members[0].Name = "changed"
	c.Managers = append(c.Managers, User{ID: "2"})

	if g.Members[0].Name != "A" {
		t.Errorf("clone aliased members: original name is now %q", g.Members[0].Name)
	}
	if len(g.Managers) != 1 {
		t.Errorf("clone aliased managers: original has %d", len(g.Managers))
	}
}

func TestSelectUsers(t *testing.T) {
	users := []User{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}

	got := SelectUsers(users, []string{"4", "2", "missing", "2"})
	want := []string{"2", "4"}

	ids := make([]string, len(got))
	for i, u := range got {
		ids[i] = u.ID
	}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}
}

func TestGroupHasMember(t *testing.T) {
	g := Group{Members: []User{{ID: "1"}, {ID: "3"}}}
	if !g.HasMember("3") {
		t.Error("expected user 3 to be a member")
	}
	if g.HasMember("2") {
		t.Error("expected user 2 not to be a member")
	}
	if !reflect.DeepEqual(g.MemberIDs(), []string{"1", "3"}) {
		t.Errorf("unexpected member ids %v", g.MemberIDs())
	}
}
