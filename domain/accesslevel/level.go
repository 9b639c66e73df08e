/*
Package accesslevel is the closed catalog of access levels a Telegram user can hold.

The catalog is defined once here and never changes at runtime. Storage seeds
its access_level table from All() and resolves rows back through ByID.
*/
package accesslevel

import "strconv"

// LevelName names one of the well-known levels.
type LevelName string

const (
	NameBlocked       LevelName = "BLOCKED"
	NameUser          LevelName = "USER"
	NameAdministrator LevelName = "ADMINISTRATOR"
	NameConfirmation  LevelName = "CONFIRMATION"
)

// AccessLevel is a value object. Two levels are equal when both id and name match.
type AccessLevel struct {
	id   int
	name LevelName
}

func (l AccessLevel) ID() int         { return l.id }
func (l AccessLevel) Name() LevelName { return l.name }

func (l AccessLevel) Equals(other AccessLevel) bool {
	return l.id == other.id && l.name == other.name
}

func (l AccessLevel) String() string {
	return string(l.name) + "(" + strconv.Itoa(l.id) + ")"
}

var (
	Blocked       = AccessLevel{id: -1, name: NameBlocked}
	Administrator = AccessLevel{id: 1, name: NameAdministrator}
	User          = AccessLevel{id: 2, name: NameUser}
	Confirmation  = AccessLevel{id: 3, name: NameConfirmation}
)

var catalog = [...]AccessLevel{Blocked, Administrator, User, Confirmation}

// All returns the catalog in its canonical order.
func All() []AccessLevel {
	out := make([]AccessLevel, len(catalog))
	copy(out, catalog[:])
	return out
}

func ByID(id int) (AccessLevel, error) {
	for _, l := range catalog {
		if l.id == id {
			return l, nil
		}
	}
	return AccessLevel{}, NewAccessLevelNotExistError(strconv.Itoa(id))
}

func ByName(name LevelName) (AccessLevel, error) {
	for _, l := range catalog {
		if l.name == name {
			return l, nil
		}
	}
	return AccessLevel{}, NewAccessLevelNotExistError(string(name))
}

// FromIDs resolves every id or fails on the first unknown one.
func FromIDs(ids []int) ([]AccessLevel, error) {
	levels := make([]AccessLevel, 0, len(ids))
	for _, id := range ids {
		l, err := ByID(id)
		if err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, nil
}

// Normalize drops duplicates and orders levels like the catalog.
func Normalize(levels []AccessLevel) []AccessLevel {
	out := make([]AccessLevel, 0, len(levels))
	for _, known := range catalog {
		for _, l := range levels {
			if l.Equals(known) {
				out = append(out, known)
				break
			}
		}
	}
	return out
}

// Contains reports whether target is among levels.
func Contains(levels []AccessLevel, target AccessLevel) bool {
	for _, l := range levels {
		if l.Equals(target) {
			return true
		}
	}
	return false
}

// IDs maps levels to their ids.
func IDs(levels []AccessLevel) []int {
	ids := make([]int, len(levels))
	for i, l := range levels {
		ids[i] = l.id
	}
	return ids
}
