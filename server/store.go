package server

import (
	"sync"

	"github.com/replaykit/replay/pkg/agenda"
	"github.com/replaykit/replay/pkg/annotation"
	"github.com/replaykit/replay/pkg/transcript"
)

// SessionStore holds the sessions served by the sidecar. Documents are
// preloaded at startup; annotation snapshots mutate at request time, so
// access is guarded for concurrent handlers.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*SessionData
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*SessionData)}
}

// Add registers a session's documents under the given id. An existing
// session with the same id is replaced, marks included.
func (st *SessionStore) Add(id string, doc *transcript.Document, lab *agenda.Document) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[id] = &SessionData{Transcript: doc, Lab: lab}
}

// Get returns the session with the given id.
func (st *SessionStore) Get(id string) (*SessionData, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	data, ok := st.sessions[id]
	return data, ok
}

// IDs returns the registered session ids.
func (st *SessionStore) IDs() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	ids := make([]string, 0, len(st.sessions))
	for id := range st.sessions {
		ids = append(ids, id)
	}
	return ids
}

// only returns the sole session when exactly one is registered. The filter
// endpoint has no session path segment, matching the upstream transcription
// service; with a single loaded session the target is unambiguous.
func (st *SessionStore) only() (*SessionData, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if len(st.sessions) != 1 {
		return nil, false
	}
	for _, data := range st.sessions {
		return data, true
	}
	return nil, false
}

// onlyID returns the sole session's id when exactly one is registered.
func (st *SessionStore) onlyID() (string, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if len(st.sessions) != 1 {
		return "", false
	}
	for id := range st.sessions {
		return id, true
	}
	return "", false
}

// SetMarks replaces a session's annotation snapshot.
func (st *SessionStore) SetMarks(id string, snap annotation.Snapshot) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	data, ok := st.sessions[id]
	if !ok {
		return false
	}
	data.Marks = snap
	return true
}

// GetMarks returns a session's annotation snapshot.
func (st *SessionStore) GetMarks(id string) (annotation.Snapshot, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	data, ok := st.sessions[id]
	if !ok {
		return annotation.Snapshot{}, false
	}
	return data.Marks, true
}
