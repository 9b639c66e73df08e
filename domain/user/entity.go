/*
Package user is the Telegram user context.

A TelegramUser is identified by its Telegram numeric id, which storage uses as
the primary key as-is. The user's capabilities come from the access levels it
holds. BLOCKED is exclusive and a user always holds at least one level.
*/
package user

import (
	"strconv"
	"strings"

	"tgorders/domain/accesslevel"
	"tgorders/domain/shared"
)

// TelegramUser aggregate root
type TelegramUser struct {
	id           int64
	originalID   int64 // id as loaded, differs from id after ChangeID until saved
	name         string
	accessLevels []accesslevel.AccessLevel

	shared.EventLog
}

// New creates a user and records UserCreatedEvent.
func New(id int64, name string, levels []accesslevel.AccessLevel) (*TelegramUser, error) {
	if id == 0 {
		return nil, shared.NewValidationError("user", "id", "user id is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("user", "name", "user name is required")
	}

	normalized, err := validateAccessLevels(id, levels)
	if err != nil {
		return nil, err
	}

	u := &TelegramUser{
		id:           id,
		originalID:   id,
		name:         name,
		accessLevels: normalized,
		EventLog:     shared.NewEventLog(),
	}
	u.Record(NewUserCreatedEvent(u.id, u.name, accesslevel.IDs(u.accessLevels)))
	return u, nil
}

func validateAccessLevels(userID int64, levels []accesslevel.AccessLevel) ([]accesslevel.AccessLevel, error) {
	normalized := accesslevel.Normalize(levels)
	if len(normalized) == 0 {
		return nil, NewUserWithNoAccessLevelsError(userID)
	}
	if accesslevel.Contains(normalized, accesslevel.Blocked) && len(normalized) > 1 {
		return nil, NewBlockedUserWithOtherRoleError(userID)
	}
	return normalized, nil
}

// ============================================================================
// Behaviour
// ============================================================================

// ChangeID moves the user to another Telegram id.
func (u *TelegramUser) ChangeID(id int64) error {
	if id == 0 {
		return shared.NewValidationError("user", "id", "user id is required")
	}
	u.id = id
	return nil
}

func (u *TelegramUser) ChangeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("user", "name", "user name is required")
	}
	u.name = name
	return nil
}

// SetAccessLevels replaces every level. Duplicates collapse.
func (u *TelegramUser) SetAccessLevels(levels []accesslevel.AccessLevel) error {
	normalized, err := validateAccessLevels(u.id, levels)
	if err != nil {
		return err
	}
	u.accessLevels = normalized
	return nil
}

// Block leaves BLOCKED as the only level.
func (u *TelegramUser) Block() {
	u.accessLevels = []accesslevel.AccessLevel{accesslevel.Blocked}
}

func (u *TelegramUser) IsBlocked() bool {
	return accesslevel.Contains(u.accessLevels, accesslevel.Blocked)
}

func (u *TelegramUser) IsAdmin() bool {
	return accesslevel.Contains(u.accessLevels, accesslevel.Administrator)
}

func (u *TelegramUser) CanConfirmOrder() bool {
	return accesslevel.Contains(u.accessLevels, accesslevel.Confirmation)
}

// ============================================================================
// Getters
// ============================================================================

func (u *TelegramUser) ID() int64           { return u.id }
func (u *TelegramUser) UserID() int64       { return u.id }
func (u *TelegramUser) OriginalID() int64   { return u.originalID }
func (u *TelegramUser) AggregateID() string { return strconv.FormatInt(u.id, 10) }
func (u *TelegramUser) Name() string        { return u.name }

func (u *TelegramUser) AccessLevels() []accesslevel.AccessLevel {
	out := make([]accesslevel.AccessLevel, len(u.accessLevels))
	copy(out, u.accessLevels)
	return out
}

// MarkSaved is called by repositories once the current id is stored.
func (u *TelegramUser) MarkSaved() {
	u.originalID = u.id
}

// ============================================================================
// Reconstruction
// ============================================================================

type ReconstructionDTO struct {
	ID           int64
	Name         string
	AccessLevels []accesslevel.AccessLevel
}

// RebuildFromDTO hydrates a stored user. No event is recorded.
func RebuildFromDTO(dto ReconstructionDTO) *TelegramUser {
	return &TelegramUser{
		id:           dto.ID,
		originalID:   dto.ID,
		name:         dto.Name,
		accessLevels: accesslevel.Normalize(dto.AccessLevels),
		EventLog:     shared.NewEventLog(),
	}
}

var (
	_ shared.AggregateRoot = (*TelegramUser)(nil)
	_ shared.Actor         = (*TelegramUser)(nil)
)
