// Package market is the delivery destination context.
package market

import (
	"fmt"
	"strings"

	"tgorders/domain/shared"

	"github.com/google/uuid"
)

// Market aggregate root
type Market struct {
	id       string
	name     string
	isActive bool

	shared.EventLog
}

// New creates an active market and records MarketCreatedEvent.
func New(name string) (*Market, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate market ID: %w", err)
	}
	return NewWithID(id.String(), name)
}

func NewWithID(id, name string) (*Market, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	m := &Market{
		id:       id,
		name:     name,
		isActive: true,
		EventLog: shared.NewEventLog(),
	}
	m.Record(NewMarketCreatedEvent(m.id, m.name))
	return m, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("market", "name", "market name is required")
	}
	return nil
}

func (m *Market) ChangeName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	m.name = name
	return nil
}

func (m *Market) ChangeActiveStatus(active bool) {
	m.isActive = active
}

func (m *Market) ID() string          { return m.id }
func (m *Market) AggregateID() string { return m.id }
func (m *Market) Name() string        { return m.name }
func (m *Market) IsActive() bool      { return m.isActive }

type ReconstructionDTO struct {
	ID       string
	Name     string
	IsActive bool
}

func RebuildFromDTO(dto ReconstructionDTO) *Market {
	return &Market{
		id:       dto.ID,
		name:     dto.Name,
		isActive: dto.IsActive,
		EventLog: shared.NewEventLog(),
	}
}

var _ shared.AggregateRoot = (*Market)(nil)
