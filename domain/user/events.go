package user

import (
	"strconv"
	"time"
)

const EventUserCreated = "user.created"

type UserCreatedEvent struct {
	userID         int64
	name           string
	accessLevelIDs []int
	occurredOn     time.Time
}

func NewUserCreatedEvent(userID int64, name string, accessLevelIDs []int) *UserCreatedEvent {
	return &UserCreatedEvent{
		userID:         userID,
		name:           name,
		accessLevelIDs: accessLevelIDs,
		occurredOn:     time.Now(),
	}
}

func (e *UserCreatedEvent) EventName() string      { return EventUserCreated }
func (e *UserCreatedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *UserCreatedEvent) GetAggregateID() string { return strconv.FormatInt(e.userID, 10) }
func (e *UserCreatedEvent) UserID() int64          { return e.userID }
func (e *UserCreatedEvent) Name() string           { return e.name }
func (e *UserCreatedEvent) AccessLevelIDs() []int  { return e.accessLevelIDs }
