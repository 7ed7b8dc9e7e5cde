package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"ticket-app/internal/models"
	"ticket-app/internal/storage"
)

// TicketService owns the ticket collection. The full collection is the unit
// of persistence: every mutation rewrites the JSON array under
// storage.TicketsKey. Collection order is insertion order.
type TicketService struct {
	store storage.Storage

	mutex   sync.RWMutex
	tickets []models.Ticket
}

func NewTicketService(store storage.Storage) *TicketService {
	return &TicketService{store: store}
}

// LoadTickets reads the persisted collection. Absent or malformed data
// initializes an empty collection; corruption is never surfaced.
func (s *TicketService) LoadTickets(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.tickets = make([]models.Ticket, 0)

	data, exists, err := s.store.Get(ctx, storage.TicketsKey)
	if err != nil || !exists {
		return
	}

	var tickets []models.Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		log.Printf("tickets: discarding malformed collection: %v", err)
		return
	}
	s.tickets = tickets
}

// GetUserTickets returns the tickets owned by userID in collection order.
func (s *TicketService) GetUserTickets(userID string) []models.Ticket {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make([]models.Ticket, 0)
	for _, t := range s.tickets {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	return result
}

// Stats computes the per-user counters from the current collection.
func (s *TicketService) Stats(userID string) models.TicketStats {
	var stats models.TicketStats
	for _, t := range s.GetUserTickets(userID) {
		stats.Total++
		switch t.Status {
		case models.StatusOpen:
			stats.Open++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusClosed:
			stats.Closed++
		}
	}
	return stats
}

// CreateTicket appends a new ticket owned by userID and persists the
// collection. An empty status defaults to open.
func (s *TicketService) CreateTicket(ctx context.Context, userID string, input models.TicketInput) (models.Ticket, error) {
	if input.Status == "" {
		input.Status = models.StatusOpen
	}
	if err := input.Validate(); err != nil {
		return models.Ticket{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := models.Timestamp(time.Now())
	ticket := models.Ticket{
		ID:          s.nextID(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.tickets = append(s.tickets, ticket)
	if err := s.persist(ctx); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

// UpdateTicket applies a partial update to the ticket with the given id.
// id, userId and createdAt are immutable; updatedAt is refreshed.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, updates models.TicketUpdate) (models.Ticket, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	index := -1
	for i, t := range s.tickets {
		if t.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return models.Ticket{}, models.ErrNotFound
	}

	ticket := s.tickets[index]
	if updates.Title != nil {
		ticket.Title = *updates.Title
	}
	if updates.Description != nil {
		ticket.Description = *updates.Description
	}
	if updates.Status != nil {
		ticket.Status = *updates.Status
	}
	if updates.Priority != nil {
		ticket.Priority = *updates.Priority
	}
	if err := ticket.Validate(); err != nil {
		return models.Ticket{}, err
	}
	ticket.UpdatedAt = models.Timestamp(time.Now())

	s.tickets[index] = ticket
	if err := s.persist(ctx); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

// DeleteTicket removes the ticket with the given id and reports whether a
// removal occurred.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, t := range s.tickets {
		if t.ID == id {
			s.tickets = append(s.tickets[:i], s.tickets[i+1:]...)
			if err := s.persist(ctx); err != nil {
				return true, err
			}
			return true, nil
		}
	}
	return false, nil
}

// GetTicketByID looks up a ticket with no side effects.
func (s *TicketService) GetTicketByID(id string) (models.Ticket, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, t := range s.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Ticket{}, models.ErrNotFound
}

// nextID derives an id from the current time in milliseconds, bumping it
// while it collides with an existing ticket. Callers must hold the lock.
func (s *TicketService) nextID() string {
	candidate := time.Now().UnixMilli()
	for s.hasID(strconv.FormatInt(candidate, 10)) {
		candidate++
	}
	return strconv.FormatInt(candidate, 10)
}

func (s *TicketService) hasID(id string) bool {
	for _, t := range s.tickets {
		if t.ID == id {
			return true
		}
	}
	return false
}

// persist rewrites the whole collection. Callers must hold the lock.
func (s *TicketService) persist(ctx context.Context) error {
	data, err := json.Marshal(s.tickets)
	if err != nil {
		return fmt.Errorf("serialize tickets: %w", err)
	}
	if err := s.store.Set(ctx, storage.TicketsKey, data); err != nil {
		return fmt.Errorf("persist tickets: %w", err)
	}
	return nil
}
