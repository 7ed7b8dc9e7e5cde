package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"ticket-app/internal/models"
	"ticket-app/internal/storage"
)

// SessionService owns the current session identity. At most one session
// exists per process; its durable form is the JSON record under
// storage.SessionKey.
//
// Authentication is mock-only: any non-empty credentials are accepted and
// an identity is synthesized from them.
type SessionService struct {
	store storage.Storage
	delay time.Duration

	mutex         sync.RWMutex
	user          *models.User
	authenticated bool
}

func NewSessionService(store storage.Storage, delay time.Duration) *SessionService {
	return &SessionService{store: store, delay: delay}
}

// Login accepts any non-empty email/password pair and synthesizes an
// identity whose name is the local part of the email. Returns false with no
// state change when either field is empty.
func (s *SessionService) Login(ctx context.Context, email, password string) bool {
	time.Sleep(s.delay) // simulated network latency

	if email == "" || password == "" {
		return false
	}

	name := strings.SplitN(email, "@", 2)[0]
	if name == "" {
		name = "User"
	}

	s.establish(ctx, models.User{ID: "1", Email: email, Name: name})
	return true
}

// Signup behaves like Login but requires a display name and uses it as-is.
func (s *SessionService) Signup(ctx context.Context, name, email, password string) bool {
	time.Sleep(s.delay) // simulated network latency

	if name == "" || email == "" || password == "" {
		return false
	}

	s.establish(ctx, models.User{ID: "1", Email: email, Name: name})
	return true
}

// Logout clears the in-memory identity and removes the persisted record.
func (s *SessionService) Logout(ctx context.Context) {
	s.mutex.Lock()
	s.user = nil
	s.authenticated = false
	s.mutex.Unlock()

	if err := s.store.Delete(ctx, storage.SessionKey); err != nil {
		log.Printf("session: failed to remove persisted record: %v", err)
	}
}

// CheckAuth restores the session from its persisted record. A record that
// fails to parse is deleted and the state stays anonymous.
func (s *SessionService) CheckAuth(ctx context.Context) {
	data, exists, err := s.store.Get(ctx, storage.SessionKey)
	if err != nil || !exists {
		return
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Printf("session: discarding corrupt record: %v", err)
		_ = s.store.Delete(ctx, storage.SessionKey)

		s.mutex.Lock()
		s.user = nil
		s.authenticated = false
		s.mutex.Unlock()
		return
	}

	s.mutex.Lock()
	s.user = &user
	s.authenticated = true
	s.mutex.Unlock()
}

// CurrentUser returns the in-memory identity, if any.
func (s *SessionService) CurrentUser() (models.User, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.authenticated || s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *SessionService) establish(ctx context.Context, user models.User) {
	s.mutex.Lock()
	s.user = &user
	s.authenticated = true
	s.mutex.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		log.Printf("session: failed to serialize record: %v", err)
		return
	}
	if err := s.store.Set(ctx, storage.SessionKey, data); err != nil {
		log.Printf("session: failed to persist record: %v", err)
	}
}
