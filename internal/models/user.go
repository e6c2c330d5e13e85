package models

// DefaultRole is the label shown for users without an explicit role.
const DefaultRole = "Member"

// User represents a person that can be placed in groups.
type User struct {
	// ID is the unique identifier for the user. Immutable once created.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Initials is the short display code rendered in avatars.
	// Not guaranteed to be unique.
	Initials string `json:"initials"`

	// Avatar is an optional image reference.
	Avatar string `json:"avatar,omitempty"`

	// Role is an optional free-text label (e.g. "Group Manager").
	Role string `json:"role,omitempty"`
}

// DisplayRole returns the user's role, or DefaultRole when none is set.
func (u User) DisplayRole() string {
	if u.Role == "" {
		return DefaultRole
	}
	return u.Role
}

// avatarColors assigns palette colours to the seeded users' initials.
var avatarColors = map[string]string{
	"EG": "pink",
	"PU": "emerald",
	"KP": "purple",
	"JD": "blue",
	"JS": "amber",
	"AJ": "indigo",
	"SW": "red",
	"MD": "cyan",
}

// FallbackAvatarColor is used for initials without an assigned colour.
const FallbackAvatarColor = "gray"

// AvatarColor returns the palette colour used to render the user's avatar.
func (u User) AvatarColor() string {
	if c, ok := avatarColors[u.Initials]; ok {
		return c
	}
	return FallbackAvatarColor
}

// AvatarStack splits users into the avatars rendered inline and the number
// hidden behind the "+N" badge.
func AvatarStack(users []User, max int) (visible []User, overflow int) {
	if max < 0 {
		max = 0
	}
	if len(users) <= max {
		return users, 0
	}
	return users[:max], len(users) - max
}
