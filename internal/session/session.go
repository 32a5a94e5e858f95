// Package session holds the per-user fill state: the uploaded template, the
// ordered placeholder list produced at scan time, and the answer map.
package session

import (
	"sync"
	"time"

	"github.com/dgallion1/docfill/internal/apperr"
	"github.com/dgallion1/docfill/internal/placeholder"
)

// Session tracks one template-fill workflow. The placeholder list is fixed
// at creation; only the answer map changes afterwards. The session owns its
// uploaded temp file at DocPath and the file is removed when the session is
// destroyed or evicted.
type Session struct {
	mu sync.Mutex

	ID      string
	DocName string
	DocPath string

	placeholders []*placeholder.Placeholder
	answers      map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a session for a scanned template.
func New(id, docName, docPath string, phs []*placeholder.Placeholder) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		DocName:      docName,
		DocPath:      docPath,
		placeholders: phs,
		answers:      make(map[string]string, len(phs)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Placeholders returns the immutable ordered placeholder list.
func (s *Session) Placeholders() []*placeholder.Placeholder {
	return s.placeholders
}

// SetAnswer records a value for a placeholder. A blank value clears the
// answer. Keys outside the scanned list are rejected.
func (s *Session) SetAnswer(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.knows(key) {
		return apperr.UnknownPlaceholder(key)
	}
	if placeholder.Filled(value) {
		s.answers[key] = value
	} else {
		delete(s.answers, key)
	}
	s.UpdatedAt = time.Now()
	return nil
}

// ClearAnswer removes the value for a placeholder.
func (s *Session) ClearAnswer(key string) error {
	return s.SetAnswer(key, "")
}

// Answer returns the current value for a key and whether it is filled.
func (s *Session) Answer(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.answers[key]
	return v, ok && placeholder.Filled(v)
}

// Answers returns a copy of the answer map, safe to hand to the rewriter.
func (s *Session) Answers() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// NextUnanswered returns the first placeholder in document order without a
// filled answer.
func (s *Session) NextUnanswered() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ph := range s.placeholders {
		if !placeholder.Filled(s.answers[ph.Key]) {
			return ph.Key, true
		}
	}
	return "", false
}

// Progress returns the filled and total placeholder counts.
func (s *Session) Progress() (filled, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ph := range s.placeholders {
		if placeholder.Filled(s.answers[ph.Key]) {
			filled++
		}
	}
	return filled, len(s.placeholders)
}

// SheetEntry is one row of the answer sheet.
type SheetEntry struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	Filled bool   `json:"filled"`
}

// Sheet returns the ordered answer sheet, unanswered placeholders included.
func (s *Session) Sheet() []SheetEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	sheet := make([]SheetEntry, 0, len(s.placeholders))
	for _, ph := range s.placeholders {
		v := s.answers[ph.Key]
		sheet = append(sheet, SheetEntry{
			Key:    ph.Key,
			Label:  ph.Label,
			Value:  v,
			Filled: placeholder.Filled(v),
		})
	}
	return sheet
}

// Touched returns the last mutation time.
func (s *Session) Touched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}

func (s *Session) knows(key string) bool {
	for _, ph := range s.placeholders {
		if ph.Key == key {
			return true
		}
	}
	return false
}
