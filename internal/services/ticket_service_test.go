package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ticket-app/internal/models"
	"ticket-app/internal/storage"
)

func newTestTicketService(t *testing.T) (*TicketService, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	svc := NewTicketService(store)
	svc.LoadTickets(context.Background())
	return svc, store
}

func mustCreate(t *testing.T, svc *TicketService, userID string, input models.TicketInput) models.Ticket {
	t.Helper()
	ticket, err := svc.CreateTicket(context.Background(), userID, input)
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	return ticket
}

func TestCreateTicket_AssignsUniqueIDs(t *testing.T) {
	svc, _ := newTestTicketService(t)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		ticket := mustCreate(t, svc, "u1", models.TicketInput{Title: "X", Status: models.StatusOpen})
		if seen[ticket.ID] {
			t.Fatalf("duplicate ticket id %q", ticket.ID)
		}
		seen[ticket.ID] = true
		if ticket.CreatedAt == "" || ticket.CreatedAt != ticket.UpdatedAt {
			t.Errorf("timestamps = (%q, %q), want equal and non-empty", ticket.CreatedAt, ticket.UpdatedAt)
		}
	}
}

func TestCreateTicket_DefaultsStatusToOpen(t *testing.T) {
	svc, _ := newTestTicketService(t)

	ticket := mustCreate(t, svc, "u1", models.TicketInput{Title: "X"})
	if ticket.Status != models.StatusOpen {
		t.Errorf("ticket.Status = %q, want %q", ticket.Status, models.StatusOpen)
	}
}

func TestCreateTicket_ValidationFailure(t *testing.T) {
	svc, _ := newTestTicketService(t)

	_, err := svc.CreateTicket(context.Background(), "u1", models.TicketInput{Status: models.StatusOpen})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("CreateTicket with empty title = %v, want ErrValidation", err)
	}

	_, err = svc.CreateTicket(context.Background(), "u1", models.TicketInput{Title: "X", Priority: "urgent"})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("CreateTicket with bad priority = %v, want ErrValidation", err)
	}
}

func TestGetUserTickets_ScopedToOwner(t *testing.T) {
	svc, _ := newTestTicketService(t)

	first := mustCreate(t, svc, "u1", models.TicketInput{Title: "A", Status: models.StatusOpen})
	mustCreate(t, svc, "u2", models.TicketInput{Title: "B", Status: models.StatusOpen})
	second := mustCreate(t, svc, "u1", models.TicketInput{Title: "C", Status: models.StatusClosed})

	got := svc.GetUserTickets("u1")
	want := []models.Ticket{first, second}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetUserTickets(u1) mismatch (-want +got):\n%s", diff)
	}

	for _, ticket := range svc.GetUserTickets("u2") {
		if ticket.UserID != "u2" {
			t.Errorf("GetUserTickets(u2) returned ticket owned by %q", ticket.UserID)
		}
	}
	if got := svc.GetUserTickets("nobody"); len(got) != 0 {
		t.Errorf("GetUserTickets(nobody) = %d tickets, want 0", len(got))
	}
}

func TestStats(t *testing.T) {
	svc, _ := newTestTicketService(t)

	mustCreate(t, svc, "u1", models.TicketInput{Title: "A", Status: models.StatusOpen})
	mustCreate(t, svc, "u1", models.TicketInput{Title: "B", Status: models.StatusInProgress})
	mustCreate(t, svc, "u1", models.TicketInput{Title: "C", Status: models.StatusClosed})
	mustCreate(t, svc, "u1", models.TicketInput{Title: "D", Status: models.StatusClosed})
	mustCreate(t, svc, "u2", models.TicketInput{Title: "E", Status: models.StatusOpen})

	got := svc.Stats("u1")
	want := models.TicketStats{Total: 4, Open: 1, InProgress: 1, Closed: 2}
	if got != want {
		t.Errorf("Stats(u1) = %+v, want %+v", got, want)
	}
}

func TestUpdateTicket_PartialUpdate(t *testing.T) {
	svc, _ := newTestTicketService(t)

	created := mustCreate(t, svc, "u1", models.TicketInput{Title: "X", Status: models.StatusOpen, Priority: models.PriorityHigh})

	status := models.StatusClosed
	updated, err := svc.UpdateTicket(context.Background(), created.ID, models.TicketUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}

	if updated.Status != models.StatusClosed {
		t.Errorf("updated.Status = %q, want %q", updated.Status, models.StatusClosed)
	}
	if updated.Title != "X" {
		t.Errorf("updated.Title = %q, want unchanged %q", updated.Title, "X")
	}
	if updated.Priority != models.PriorityHigh {
		t.Errorf("updated.Priority = %q, want unchanged %q", updated.Priority, models.PriorityHigh)
	}
	if updated.ID != created.ID || updated.UserID != created.UserID || updated.CreatedAt != created.CreatedAt {
		t.Error("id, userId or createdAt changed on update")
	}
}

func TestUpdateTicket_EmptyUpdate(t *testing.T) {
	svc, _ := newTestTicketService(t)

	created := mustCreate(t, svc, "u1", models.TicketInput{Title: "X", Description: "d", Status: models.StatusOpen})

	updated, err := svc.UpdateTicket(context.Background(), created.ID, models.TicketUpdate{})
	if err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}

	if updated.Title != created.Title || updated.Description != created.Description ||
		updated.Status != created.Status || updated.Priority != created.Priority {
		t.Error("empty update changed ticket fields")
	}
	if updated.UpdatedAt < created.UpdatedAt {
		t.Errorf("updatedAt went backwards: %q -> %q", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestUpdateTicket_NotFound(t *testing.T) {
	svc, _ := newTestTicketService(t)

	_, err := svc.UpdateTicket(context.Background(), "missing", models.TicketUpdate{})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("UpdateTicket(missing) = %v, want ErrNotFound", err)
	}
}

func TestUpdateTicket_InvalidStatus(t *testing.T) {
	svc, _ := newTestTicketService(t)

	created := mustCreate(t, svc, "u1", models.TicketInput{Title: "X", Status: models.StatusOpen})

	bad := models.TicketStatus("resolved")
	_, err := svc.UpdateTicket(context.Background(), created.ID, models.TicketUpdate{Status: &bad})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("UpdateTicket with bad status = %v, want ErrValidation", err)
	}

	// The stored record is untouched.
	stored, err := svc.GetTicketByID(created.ID)
	if err != nil {
		t.Fatalf("GetTicketByID: %v", err)
	}
	if stored.Status != models.StatusOpen {
		t.Errorf("stored.Status = %q, want %q", stored.Status, models.StatusOpen)
	}
}

func TestDeleteTicket(t *testing.T) {
	svc, _ := newTestTicketService(t)
	ctx := context.Background()

	keep := mustCreate(t, svc, "u1", models.TicketInput{Title: "keep", Status: models.StatusOpen})
	drop := mustCreate(t, svc, "u1", models.TicketInput{Title: "drop", Status: models.StatusOpen})

	removed, err := svc.DeleteTicket(ctx, "missing")
	if err != nil {
		t.Fatalf("DeleteTicket: %v", err)
	}
	if removed {
		t.Error("DeleteTicket(missing) = true, want false")
	}
	if len(svc.GetUserTickets("u1")) != 2 {
		t.Error("collection changed by no-op delete")
	}

	removed, err = svc.DeleteTicket(ctx, drop.ID)
	if err != nil {
		t.Fatalf("DeleteTicket: %v", err)
	}
	if !removed {
		t.Error("DeleteTicket = false, want true")
	}

	got := svc.GetUserTickets("u1")
	if len(got) != 1 || got[0].ID != keep.ID {
		t.Errorf("collection after delete = %v, want only %q", got, keep.ID)
	}
}

func TestGetTicketByID(t *testing.T) {
	svc, _ := newTestTicketService(t)

	created := mustCreate(t, svc, "u1", models.TicketInput{Title: "X", Status: models.StatusOpen})

	got, err := svc.GetTicketByID(created.ID)
	if err != nil {
		t.Fatalf("GetTicketByID: %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("GetTicketByID mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.GetTicketByID("missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetTicketByID(missing) = %v, want ErrNotFound", err)
	}
}

func TestLoadTickets_RoundTrip(t *testing.T) {
	svc, store := newTestTicketService(t)
	ctx := context.Background()

	mustCreate(t, svc, "u1", models.TicketInput{Title: "A", Status: models.StatusOpen})
	mustCreate(t, svc, "u2", models.TicketInput{Title: "B", Status: models.StatusClosed})
	mustCreate(t, svc, "u1", models.TicketInput{Title: "C", Status: models.StatusInProgress, Priority: models.PriorityLow})

	// Fresh store instance over the same backend.
	reloaded := NewTicketService(store)
	reloaded.LoadTickets(ctx)

	for _, userID := range []string{"u1", "u2"} {
		if diff := cmp.Diff(svc.GetUserTickets(userID), reloaded.GetUserTickets(userID)); diff != "" {
			t.Errorf("reloaded collection for %s mismatch (-want +got):\n%s", userID, diff)
		}
	}
}

func TestLoadTickets_MalformedCollection(t *testing.T) {
	store := storage.NewMemoryStorage()
	ctx := context.Background()
	if err := store.Set(ctx, storage.TicketsKey, []byte("[{broken")); err != nil {
		t.Fatal(err)
	}

	svc := NewTicketService(store)
	svc.LoadTickets(ctx)

	if got := svc.GetUserTickets("u1"); len(got) != 0 {
		t.Errorf("GetUserTickets after malformed load = %d tickets, want 0", len(got))
	}
}
