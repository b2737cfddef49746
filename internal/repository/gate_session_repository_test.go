// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package repository

import (
	"testing"
	"time"

	"github.com/lazycatapps/downloadhub/internal/gate"
	"github.com/lazycatapps/downloadhub/internal/models"
)

func newSession(id string, ttl time.Duration) *gate.Session {
	return gate.NewSession(id, &models.Resolution{SoftwareID: "abc", Part: 1, Link: "https://x/1"}, 3, ttl)
}

// TestGateSessionCreate tests creating a session
func TestGateSessionCreate(t *testing.T) {
	repo := NewInMemoryGateSessionRepository()

	session := newSession("sid-1", time.Minute)
	if err := repo.Create(session); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	retrieved, err := repo.GetByID("sid-1")
	if err != nil {
		t.Fatalf("Failed to retrieve session: %v", err)
	}
	if retrieved != session {
		t.Error("Expected the stored session to be returned")
	}

	// Test creating duplicate session
	if err := repo.Create(session); err == nil {
		t.Error("Expected error when creating duplicate session")
	}
}

// TestGateSessionGetByID tests lookups for missing and expired sessions
func TestGateSessionGetByID(t *testing.T) {
	repo := NewInMemoryGateSessionRepository()
	repo.Create(newSession("live", time.Minute))
	repo.Create(newSession("expired", -time.Second))

	tests := []struct {
		name      string
		id        string
		wantFound bool
	}{
		{"existing session", "live", true},
		{"expired session", "expired", false},
		{"missing session", "nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := repo.GetByID(tt.id)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if (session != nil) != tt.wantFound {
				t.Errorf("Expected found=%v, got session=%v", tt.wantFound, session)
			}
		})
	}
}

// TestGateSessionDelete tests deleting sessions
func TestGateSessionDelete(t *testing.T) {
	repo := NewInMemoryGateSessionRepository()
	repo.Create(newSession("sid-1", time.Minute))

	if err := repo.Delete("sid-1"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	if repo.Count() != 0 {
		t.Errorf("Expected 0 sessions, got %d", repo.Count())
	}

	if err := repo.Delete("sid-1"); err == nil {
		t.Error("Expected error when deleting missing session")
	}
}

// TestGateSessionDeleteExpired tests the TTL sweep
func TestGateSessionDeleteExpired(t *testing.T) {
	repo := NewInMemoryGateSessionRepository()
	repo.Create(newSession("old-1", -time.Minute))
	repo.Create(newSession("old-2", -time.Second))
	repo.Create(newSession("fresh", time.Hour))

	expired := repo.DeleteExpired(time.Now())

	if len(expired) != 2 {
		t.Fatalf("Expected 2 expired sessions, got %d", len(expired))
	}
	if repo.Count() != 1 {
		t.Errorf("Expected 1 remaining session, got %d", repo.Count())
	}
	if len(repo.List()) != 1 || repo.List()[0].ID != "fresh" {
		t.Error("Expected only the fresh session to remain")
	}
}
