// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/lazycatapps/downloadhub/internal/gate"
)

// GateSessionRepository defines the interface for gate session storage operations.
type GateSessionRepository interface {
	// Create adds a new session to the repository.
	Create(session *gate.Session) error

	// GetByID retrieves a session by its unique identifier.
	// Returns nil if the session does not exist or has expired.
	GetByID(id string) (*gate.Session, error)

	// Delete removes a session from the repository.
	Delete(id string) error

	// DeleteExpired removes and returns every session expired at now.
	DeleteExpired(now time.Time) []*gate.Session

	// List returns every stored session.
	List() []*gate.Session

	// Count returns the number of stored sessions.
	Count() int
}

// InMemoryGateSessionRepository implements GateSessionRepository with in-memory storage.
// Thread-safe for concurrent access.
type InMemoryGateSessionRepository struct {
	sessions map[string]*gate.Session // Map of session ID to Session
	mu       sync.RWMutex             // Mutex for thread-safe operations
}

// NewInMemoryGateSessionRepository creates a new in-memory gate session repository.
func NewInMemoryGateSessionRepository() *InMemoryGateSessionRepository {
	return &InMemoryGateSessionRepository{
		sessions: make(map[string]*gate.Session),
	}
}

// Create adds a new session to the repository.
func (r *InMemoryGateSessionRepository) Create(session *gate.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("session with ID %s already exists", session.ID)
	}

	r.sessions[session.ID] = session
	return nil
}

// GetByID retrieves a session by its unique identifier.
func (r *InMemoryGateSessionRepository) GetByID(id string) (*gate.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists || session.Expired(time.Now()) {
		return nil, nil // Session not found
	}

	return session, nil
}

// Delete removes a session from the repository.
func (r *InMemoryGateSessionRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return fmt.Errorf("session with ID %s does not exist", id)
	}

	delete(r.sessions, id)
	return nil
}

// DeleteExpired removes and returns every session expired at now.
func (r *InMemoryGateSessionRepository) DeleteExpired(now time.Time) []*gate.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []*gate.Session
	for id, session := range r.sessions {
		if session.Expired(now) {
			expired = append(expired, session)
			delete(r.sessions, id)
		}
	}

	return expired
}

// List returns every stored session.
func (r *InMemoryGateSessionRepository) List() []*gate.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*gate.Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

// Count returns the number of stored sessions.
func (r *InMemoryGateSessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
