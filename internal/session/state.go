package session

import (
	"sync"

	"github.com/noah-isme/automated-attendance/internal/models"
)

// State holds the in-memory login flags for the running process.
type State struct {
	mu       sync.RWMutex
	role     models.Role
	identity models.Identity
	token    string
}

// Snapshot is a copy of State.
type Snapshot struct {
	Role     models.Role
	Identity models.Identity
	Token    string
}

// LoggedIn reports whether any role is active.
func (s Snapshot) LoggedIn() bool {
	return s.Role != ""
}

// Set replaces the active session.
func (s *State) Set(role models.Role, identity models.Identity, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = role
	s.identity = identity
	s.token = token
}

// Apply copies a restored record into the state. nil resets it.
func (s *State) Apply(rec *Record) {
	if rec == nil {
		s.Reset()
		return
	}
	s.Set(rec.Role, models.Identity{IDNumber: rec.IDNumber, FullName: rec.FullName}, rec.Token)
}

// Reset logs every role out.
func (s *State) Reset() {
	s.Set("", models.Identity{}, "")
}

// Snapshot returns the current values.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Role: s.role, Identity: s.identity, Token: s.token}
}

// IsAdmin reports whether the admin is logged in.
func (s *State) IsAdmin() bool {
	return s.Snapshot().Role == models.RoleAdmin
}
