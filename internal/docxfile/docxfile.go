// Package docxfile loads and saves .docx documents and provides helpers for
// walking their paragraph/run structure, including paragraphs nested inside
// table cells.
package docxfile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// Parse reads a .docx document from r. go-docx needs a ReaderAt plus the
// total size, so the stream is spooled to a temp file first.
func Parse(r io.Reader) (*docx.Docx, error) {
	tmp, err := os.CreateTemp("", "docfill-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}
	return doc, nil
}

// ParseFile reads a .docx document from path.
func ParseFile(path string) (*docx.Docx, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat docx: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}
	return doc, nil
}

// WriteFile saves doc to path.
func WriteFile(doc *docx.Docx, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write docx: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close docx: %w", err)
	}
	return nil
}

// Paragraphs returns every paragraph in the document in document order,
// descending into tables depth-first (row-major, cell paragraphs in order).
func Paragraphs(doc *docx.Docx) []*docx.Paragraph {
	return FlattenItems(doc.Document.Body.Items)
}

// FlattenItems flattens a body item list (paragraphs interleaved with
// tables) into paragraphs in document order.
func FlattenItems(items []interface{}) []*docx.Paragraph {
	var paras []*docx.Paragraph
	for _, item := range items {
		switch v := item.(type) {
		case *docx.Paragraph:
			paras = append(paras, v)
		case *docx.Table:
			for _, row := range v.TableRows {
				for _, cell := range row.TableCells {
					paras = append(paras, cell.Paragraphs...)
				}
			}
		}
	}
	return paras
}

// RunText returns the concatenated text content of a run.
func RunText(r *docx.Run) string {
	var buf strings.Builder
	for _, rc := range r.Children {
		if t, ok := rc.(*docx.Text); ok {
			buf.WriteString(t.Text)
		}
	}
	return buf.String()
}

// TextOnly reports whether every child of the run is a text node. Runs
// carrying tabs, breaks or drawings are opaque to placeholder scanning.
func TextOnly(r *docx.Run) bool {
	for _, rc := range r.Children {
		if _, ok := rc.(*docx.Text); !ok {
			return false
		}
	}
	return true
}

// SetRunText replaces the run's content with a single text node, keeping the
// run properties (and therefore its formatting) intact.
func SetRunText(r *docx.Run, s string) {
	t := &docx.Text{Text: s}
	if s != strings.TrimSpace(s) {
		t.XMLSpace = "preserve"
	}
	r.Children = []interface{}{t}
}

// ParagraphText returns the visible text of a paragraph: the concatenation
// of the text content of its runs.
func ParagraphText(p *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range p.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		buf.WriteString(RunText(run))
	}
	return buf.String()
}

// HeadingLevel returns the heading level of a paragraph based on its style,
// or 0 for body text.
func HeadingLevel(p *docx.Paragraph) int {
	if p.Properties == nil || p.Properties.Style == nil {
		return 0
	}
	style := p.Properties.Style.Val
	switch {
	case strings.EqualFold(style, "Heading1") || strings.EqualFold(style, "heading 1"):
		return 1
	case strings.EqualFold(style, "Heading2") || strings.EqualFold(style, "heading 2"):
		return 2
	case strings.EqualFold(style, "Heading3") || strings.EqualFold(style, "heading 3"):
		return 3
	case strings.EqualFold(style, "Heading4") || strings.EqualFold(style, "heading 4"):
		return 4
	case strings.EqualFold(style, "Heading5") || strings.EqualFold(style, "heading 5"):
		return 5
	case strings.EqualFold(style, "Heading6") || strings.EqualFold(style, "heading 6"):
		return 6
	}
	return 0
}
