package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docfill/internal/apperr"
	"github.com/dgallion1/docfill/internal/docxfile"
	"github.com/dgallion1/docfill/internal/rewrite"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// handlePreview renders a best-effort HTML view of the document with current
// answers applied. Failures are recovered locally: the response degrades to
// a plain-text rendering or an unavailable notice, never an error that would
// block export.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}

	filled, total := sess.Progress()
	var missing []string
	for _, entry := range sess.Sheet() {
		if !entry.Filled {
			missing = append(missing, entry.Key)
		}
	}

	doc, err := docxfile.ParseFile(sess.DocPath)
	if err != nil {
		s.log.Warn("preview parse failed", "session_id", sess.ID, "error", err)
		writeJSON(w, http.StatusOK, map[string]any{
			"available": false,
			"notice":    "preview unavailable",
			"missing":   missing,
			"filled":    filled,
			"total":     total,
		})
		return
	}

	answers := sess.Answers()
	html, err := s.preview.HTML(doc, answers)
	if err != nil {
		s.log.Warn("preview render failed, using fallback", "session_id", sess.ID, "error", err)
		html = s.preview.Fallback(doc, answers)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"available": true,
		"html":      html,
		"missing":   missing,
		"filled":    filled,
		"total":     total,
	})
}

// handleExport regenerates the document from a fresh parse of the stored
// original with every answered placeholder substituted, and streams it as a
// download. The intermediate output file is removed on every exit path.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFromRequest(w, r)
	if sess == nil {
		return
	}

	doc, err := docxfile.ParseFile(sess.DocPath)
	if err != nil {
		writeError(w, apperr.ExportFailure(err))
		return
	}

	phs := s.scanner.Scan(doc)
	rewrite.Apply(phs, sess.Answers())

	out, err := os.CreateTemp(s.cfg.UploadDir, "export-*.docx")
	if err != nil {
		writeError(w, apperr.ExportFailure(err))
		return
	}
	outPath := out.Name()
	defer os.Remove(outPath)

	if _, err := doc.WriteTo(out); err != nil {
		out.Close()
		writeError(w, apperr.ExportFailure(err))
		return
	}
	if err := out.Close(); err != nil {
		writeError(w, apperr.ExportFailure(err))
		return
	}

	name := exportName(sess.DocName)
	s.log.Info("export", "session_id", sess.ID, "doc", sess.DocName, "file", name)

	w.Header().Set("Content-Type", docxMIME)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, outPath)
}

// exportName derives the download filename: "<stem>_completed.docx" with a
// sanitized stem.
func exportName(docName string) string {
	stem := strings.TrimSuffix(sanitizeFilename(docName), filepath.Ext(docName))
	stem = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, stem)
	if strings.Trim(stem, "_.") == "" {
		stem = "document"
	}
	return stem + "_completed.docx"
}
