package storage

import "context"

// Logical keys the application persists under. The session record and the
// ticket collection are each written wholesale as a single value.
const (
	SessionKey = "ticketapp_session"
	TicketsKey = "ticketapp_tickets"
)

// Storage is a key-value store holding serialized application state. An
// absent key is not an error: Get reports presence separately so callers
// can treat missing and malformed data uniformly.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
	Close() error
}
