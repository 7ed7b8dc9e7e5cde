package models

import (
	"fmt"
	"strings"
	"time"

	"ticket-app/internal/utils/validation"
)

type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusClosed     TicketStatus = "closed"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

// Ticket represents a support ticket
type Ticket struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description,omitempty"`
	Status      TicketStatus   `json:"status" validate:"required,oneof=open in_progress closed"`
	Priority    TicketPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

// TicketInput carries the caller-supplied fields for a new ticket.
type TicketInput struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Status      TicketStatus   `json:"status" validate:"required,oneof=open in_progress closed"`
	Priority    TicketPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// TicketUpdate is a partial update; nil fields are left untouched.
type TicketUpdate struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Status      *TicketStatus   `json:"status"`
	Priority    *TicketPriority `json:"priority"`
}

// TicketStats holds the per-user counters shown on the dashboard.
type TicketStats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Closed     int `json:"closed"`
}

// Validate validates a TicketInput
func (in TicketInput) Validate() error {
	validate := validation.GetValidator()
	if err := validate.Struct(in); err != nil {
		errs := validation.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}

// Validate validates a Ticket after a partial update has been applied
func (t Ticket) Validate() error {
	validate := validation.GetValidator()
	if err := validate.Struct(t); err != nil {
		errs := validation.ParseErrors(err)
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}

// TimestampLayout matches the millisecond ISO-8601 form the records are
// stored with.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp renders t in the stored timestamp form.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
