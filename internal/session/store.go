package session

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Store is a thread-safe in-memory session registry with TTL eviction.
// Evicting or destroying a session removes its uploaded temp file.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	log      *slog.Logger
}

func NewStore(ttl time.Duration, log *slog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		log:      log,
	}
}

func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

// Destroy removes a session and its temp file. It reports whether the
// session existed.
func (st *Store) Destroy(id string) bool {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if !ok {
		return false
	}
	st.removeFile(s)
	return true
}

// DestroyAll tears down every session, removing all temp files. Called on
// shutdown.
func (st *Store) DestroyAll() {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()
	for _, s := range sessions {
		st.removeFile(s)
	}
}

// Cleanup evicts sessions idle past the TTL.
func (st *Store) Cleanup() {
	now := time.Now()
	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		if now.Sub(s.Touched()) > st.ttl {
			delete(st.sessions, id)
			expired = append(expired, s)
		}
	}
	st.mu.Unlock()
	for _, s := range expired {
		st.log.Info("session expired", "session_id", s.ID, "doc", s.DocName)
		st.removeFile(s)
	}
}

// StartCleanup runs Cleanup on a ticker until ctx is cancelled.
func (st *Store) StartCleanup(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st.Cleanup()
			}
		}
	}()
}

func (st *Store) removeFile(s *Session) {
	if s.DocPath == "" {
		return
	}
	if err := os.Remove(s.DocPath); err != nil && !os.IsNotExist(err) {
		st.log.Warn("failed to remove session file", "session_id", s.ID, "path", s.DocPath, "error", err)
	}
}
