package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dgallion1/docfill/internal/apperr"
	"github.com/dgallion1/docfill/internal/placeholder"
	"github.com/dgallion1/docfill/internal/session"
	"github.com/go-chi/chi/v5"
)

// handleState returns the full workflow state for the guided fill UI.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}

	next, hasNext := sess.NextUnanswered()
	filled, total := sess.Progress()

	sheet := sess.Sheet()
	items := make([]map[string]any, 0, len(sheet))
	for _, entry := range sheet {
		items = append(items, map[string]any{
			"key":    entry.Key,
			"label":  entry.Label,
			"value":  entry.Value,
			"filled": entry.Filled,
			"active": hasNext && entry.Key == next,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":   sess.ID,
		"doc_name":     sess.DocName,
		"placeholders": items,
		"filled":       filled,
		"total":        total,
		"remaining":    total - filled,
		"progress_pct": progressPct(filled, total),
		"next_key":     next,
	})
}

// handleAnswer records a value for a placeholder. An empty value clears the
// current answer. The response carries updated progress and the next
// unanswered key so the client can advance the conversation.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body: "+err.Error()))
		return
	}
	if req.Key == "" {
		writeError(w, apperr.Validation("key is required"))
		return
	}

	if err := sess.SetAnswer(req.Key, placeholder.NormalizeValue(req.Value)); err != nil {
		writeError(w, err)
		return
	}

	s.writeProgress(w, sess)
}

// handleClearAnswer clears the answer at a placeholder list index. The key
// becomes the next unanswered placeholder again.
func (s *Server) handleClearAnswer(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}

	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	phs := sess.Placeholders()
	if err != nil || idx < 0 || idx >= len(phs) {
		writeError(w, apperr.Validation("invalid placeholder index"))
		return
	}

	if err := sess.ClearAnswer(phs[idx].Key); err != nil {
		writeError(w, err)
		return
	}

	s.writeProgress(w, sess)
}

// handleSheet returns the ordered answer sheet, unanswered entries included.
func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}

	filled, total := sess.Progress()
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_name": sess.DocName,
		"sheet":    sess.Sheet(),
		"filled":   filled,
		"total":    total,
	})
}

// handleDestroy tears down a session and its temp upload.
func (s *Server) handleDestroy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.store.Destroy(id) {
		writeError(w, apperr.SessionNotFound(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeProgress(w http.ResponseWriter, sess *session.Session) {
	next, _ := sess.NextUnanswered()
	filled, total := sess.Progress()
	writeJSON(w, http.StatusOK, map[string]any{
		"filled":       filled,
		"total":        total,
		"remaining":    total - filled,
		"progress_pct": progressPct(filled, total),
		"next_key":     next,
	})
}

func progressPct(filled, total int) int {
	if total == 0 {
		return 100
	}
	return filled * 100 / total
}
