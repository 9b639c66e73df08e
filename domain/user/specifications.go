package user

import (
	"tgorders/domain/accesslevel"
	"tgorders/domain/shared"
)

// HasAccessLevelSpecification matches users holding Level.
type HasAccessLevelSpecification struct {
	Level accesslevel.AccessLevel
}

func (spec HasAccessLevelSpecification) IsSatisfiedBy(entity *TelegramUser) bool {
	return accesslevel.Contains(entity.accessLevels, spec.Level)
}

// ForConfirmation matches users who may confirm orders.
func ForConfirmation() shared.Specification[*TelegramUser] {
	return HasAccessLevelSpecification{Level: accesslevel.Confirmation}
}

// NotBlocked matches users without the BLOCKED level.
func NotBlocked() shared.Specification[*TelegramUser] {
	return shared.Not[*TelegramUser](HasAccessLevelSpecification{Level: accesslevel.Blocked})
}
