package components

import (
	"fmt"
	"strings"
)

// RoleNames returns the display names for all roles.
// The order matches the Role constants.
func RoleNames() []string {
	return []string{"Apex", "Predator", "Prey"}
}

// EraNames returns the display names for all eras.
// The order matches the Era constants.
func EraNames() []string {
	return []string{"Past", "Present", "Future"}
}

// MoveKindNames returns the display names for all move kinds.
func MoveKindNames() []string {
	return []string{"Invalid", "Walk", "Ability", "Stay"}
}

// String returns the display name for a Role.
func (r Role) String() string {
	names := RoleNames()
	if int(r) < len(names) {
		return names[r]
	}
	return "Unknown"
}

// String returns the display name for an Era.
func (e Era) String() string {
	names := EraNames()
	if int(e) < len(names) {
		return names[e]
	}
	return "Unknown"
}

// String returns the display name for a MoveKind.
func (m MoveKind) String() string {
	names := MoveKindNames()
	if int(m) < len(names) {
		return names[m]
	}
	return "Unknown"
}

// String returns "Food" or "Animal".
func (k Kind) String() string {
	if k == KindFood {
		return "Food"
	}
	return "Animal"
}

// ParseRole parses a role name, case-insensitively.
func ParseRole(s string) (Role, error) {
	for i, name := range RoleNames() {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// ParseEra parses an era name, case-insensitively.
func ParseEra(s string) (Era, error) {
	for i, name := range EraNames() {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Era(i), nil
		}
	}
	return 0, fmt.Errorf("unknown era %q", s)
}

// MarshalText implements encoding.TextMarshaler (used by yaml and csv output).
func (e Era) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Era) UnmarshalText(text []byte) error {
	v, err := ParseEra(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	v, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
