package identity

import (
	"github.com/google/uuid"
	"github.com/invoicing/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeBusiness = "Business"
	AggregateTypeUser     = "User"
)

// Event type constants
const (
	EventTypeBusinessCreated = "BusinessCreated"
	EventTypeBusinessUpdated = "BusinessUpdated"
	EventTypeUserCreated     = "UserCreated"
)

// BusinessCreatedEvent is raised when a new business registers
type BusinessCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Type  string `json:"type"`
}

// NewBusinessCreatedEvent creates a new BusinessCreatedEvent
func NewBusinessCreatedEvent(business *Business) *BusinessCreatedEvent {
	return &BusinessCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBusinessCreated, AggregateTypeBusiness, business.ID, business.ID),
		Name:            business.Name,
		TaxID:           business.TaxID,
		Type:            business.Type.String(),
	}
}

// EventType returns the event type name
func (e *BusinessCreatedEvent) EventType() string {
	return EventTypeBusinessCreated
}

// BusinessUpdatedEvent is raised when a business profile changes
type BusinessUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewBusinessUpdatedEvent creates a new BusinessUpdatedEvent
func NewBusinessUpdatedEvent(business *Business) *BusinessUpdatedEvent {
	return &BusinessUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBusinessUpdated, AggregateTypeBusiness, business.ID, business.ID),
		Name:            business.Name,
	}
}

// EventType returns the event type name
func (e *BusinessUpdatedEvent) EventType() string {
	return EventTypeBusinessUpdated
}

// UserCreatedEvent is raised when a new user account is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID, user.BusinessID),
		UserID:          user.ID,
		Email:           user.Email,
	}
}

// EventType returns the event type name
func (e *UserCreatedEvent) EventType() string {
	return EventTypeUserCreated
}
