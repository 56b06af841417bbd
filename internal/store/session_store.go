// Package store keeps import sessions in process memory.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/schedule-import-service/internal/wizard"
)

var (
	// ErrSessionNotFound is returned for unknown or removed session ids.
	ErrSessionNotFound = errors.New("session not found")
	// ErrStaleEpoch is returned when a write targets a session that was reset since the writer
	// read it.
	ErrStaleEpoch = errors.New("session was reset")
)

// Session is a snapshot of one import session.
type Session struct {
	ID        string       `json:"id"`
	Epoch     int          `json:"epoch"`
	State     wizard.State `json:"state"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// SessionStore is a thread-safe map of sessions. Every change goes through wizard.Reduce.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
	newID    func() string
}

// NewSessionStore constructs an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create stores a new session starting from the initial state with actions applied.
func (s *SessionStore) Create(actions ...wizard.Action) Session {
	state := wizard.Initial()
	for _, a := range actions {
		state = wizard.Reduce(state, a)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := Session{ID: s.newID(), State: state, CreatedAt: now, UpdatedAt: now}
	s.sessions[sess.ID] = sess
	return sess.clone()
}

// Get retrieves a session by id.
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	return sess.clone(), ok
}

// List returns every session, oldest first.
func (s *SessionStore) List() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		result = append(result, sess.clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result
}

// Dispatch applies actions to the current state of a session.
func (s *SessionStore) Dispatch(id string, actions ...wizard.Action) (Session, error) {
	return s.dispatch(id, -1, actions)
}

// DispatchAt applies actions only if the session is still at epoch. Background jobs use it so
// their writes are dropped once the session has been reset.
func (s *SessionStore) DispatchAt(id string, epoch int, actions ...wizard.Action) (Session, error) {
	return s.dispatch(id, epoch, actions)
}

func (s *SessionStore) dispatch(id string, epoch int, actions []wizard.Action) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if epoch >= 0 && sess.Epoch != epoch {
		return sess.clone(), ErrStaleEpoch
	}
	for _, a := range actions {
		sess.State = wizard.Reduce(sess.State, a)
	}
	sess.UpdatedAt = s.now()
	s.sessions[id] = sess
	return sess.clone(), nil
}

// Reset returns a session to its initial state and starts a new epoch.
func (s *SessionStore) Reset(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	sess.Epoch++
	sess.State = wizard.Reduce(sess.State, wizard.Reset{})
	sess.UpdatedAt = s.now()
	s.sessions[id] = sess
	return sess.clone(), nil
}

// Delete removes a session. It reports whether the session existed.
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// PruneIdle removes sessions not updated since cutoff and returns their ids.
func (s *SessionStore) PruneIdle(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	return removed
}

// clone copies the slices a caller could write through.
func (s Session) clone() Session {
	s.State.Headers = cloneSlice(s.State.Headers)
	s.State.Games = cloneSlice(s.State.Games)
	s.State.Submission.Results = cloneSlice(s.State.Submission.Results)
	return s
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Len reports the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
