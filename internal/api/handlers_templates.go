package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docfill/internal/apperr"
	"github.com/dgallion1/docfill/internal/docxfile"
	"github.com/dgallion1/docfill/internal/placeholder"
	"github.com/dgallion1/docfill/internal/sampledoc"
	"github.com/dgallion1/docfill/internal/session"
)

// handleUpload accepts a .docx template, scans it for placeholders and
// creates a fill session. An unparseable file is rejected and leaves no
// session or temp file behind.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with extra headroom for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, apperr.Validation("invalid multipart form: "+err.Error()))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperr.Validation("file is required: "+err.Error()))
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".docx") {
		writeError(w, apperr.Validation("please upload a .docx file"))
		return
	}

	s.createSession(w, filename, func(dst io.Writer) error {
		n, err := io.Copy(dst, io.LimitReader(file, s.cfg.MaxUploadBytes+1))
		if err != nil {
			return fmt.Errorf("save upload: %w", err)
		}
		if n > s.cfg.MaxUploadBytes {
			return fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
		}
		return nil
	})
}

// handleSample seeds a session from the bundled SAFE template, no upload
// required.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	s.createSession(w, sampledoc.Name, sampledoc.WriteTo)
}

// createSession writes the template into a session-owned temp file, scans
// it, and registers the session. Every failure path removes the temp file.
func (s *Server) createSession(w http.ResponseWriter, docName string, write func(io.Writer) error) {
	id := session.NewID()
	path := filepath.Join(s.cfg.UploadDir, id+".docx")

	f, err := os.Create(path)
	if err != nil {
		writeError(w, fmt.Errorf("create session file: %w", err))
		return
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		writeError(w, apperr.Validation(err.Error()))
		return
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		writeError(w, fmt.Errorf("close session file: %w", err))
		return
	}

	doc, err := docxfile.ParseFile(path)
	if err != nil {
		os.Remove(path)
		writeError(w, apperr.InvalidDocument(err))
		return
	}

	phs := s.scanner.Scan(doc)
	sess := session.New(id, docName, path, phs)
	s.store.Put(sess)

	next, _ := sess.NextUnanswered()
	s.log.Info("session created",
		"session_id", id,
		"doc", docName,
		"placeholders", len(phs),
	)

	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id":      id,
		"doc_name":        docName,
		"placeholders":    placeholderItems(phs),
		"total":           len(phs),
		"no_placeholders": len(phs) == 0,
		"next_key":        next,
	})
}

func placeholderItems(phs []*placeholder.Placeholder) []map[string]any {
	items := make([]map[string]any, 0, len(phs))
	for _, ph := range phs {
		items = append(items, map[string]any{
			"key":         ph.Key,
			"label":       ph.Label,
			"occurrences": len(ph.Occurrences),
		})
	}
	return items
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
