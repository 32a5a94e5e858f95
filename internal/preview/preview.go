// Package preview renders a best-effort HTML view of the template with the
// current answers substituted. The preview is non-authoritative: the
// exported document is the source of truth, and a preview failure never
// blocks export.
package preview

import (
	"bytes"
	"html"
	"sort"
	"strings"

	"github.com/dgallion1/docfill/internal/apperr"
	"github.com/dgallion1/docfill/internal/docxfile"
	"github.com/fumiama/go-docx"
	"github.com/yuin/goldmark"
)

// Renderer converts a substituted document to HTML via an intermediate
// markdown form (headings from paragraph styles, tables as pipe tables).
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// HTML renders the document with answers applied. Unanswered placeholders
// stay bracketed, mirroring what export would produce.
func (r *Renderer) HTML(doc *docx.Docx, answers map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(buildMarkdown(doc, answers)), &buf); err != nil {
		return "", apperr.PreviewFailure(err)
	}
	return buf.String(), nil
}

// Fallback is the minimal rendering used when HTML conversion fails: the
// substituted plain text in a pre block.
func (r *Renderer) Fallback(doc *docx.Docx, answers map[string]string) string {
	return "<pre>" + html.EscapeString(Text(doc, answers)) + "</pre>"
}

// Text returns the substituted plain text of the document, non-empty
// paragraphs joined by blank lines.
func Text(doc *docx.Docx, answers map[string]string) string {
	var parts []string
	for _, para := range docxfile.Paragraphs(doc) {
		t := strings.TrimSpace(substitute(docxfile.ParagraphText(para), answers))
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

func buildMarkdown(doc *docx.Docx, answers map[string]string) string {
	var buf strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			text := strings.TrimSpace(substitute(docxfile.ParagraphText(v), answers))
			if text == "" {
				continue
			}
			if level := docxfile.HeadingLevel(v); level > 0 {
				buf.WriteString(strings.Repeat("#", level))
				buf.WriteString(" ")
			}
			buf.WriteString(text)
			buf.WriteString("\n\n")
		case *docx.Table:
			writeTable(&buf, v, answers)
		}
	}
	return buf.String()
}

// writeTable emits a markdown pipe table. The first row doubles as the
// header row; markdown has no headerless tables.
func writeTable(buf *strings.Builder, table *docx.Table, answers map[string]string) {
	for ri, row := range table.TableRows {
		buf.WriteString("|")
		for _, cell := range row.TableCells {
			var cellParts []string
			for _, para := range cell.Paragraphs {
				t := strings.TrimSpace(substitute(docxfile.ParagraphText(para), answers))
				if t != "" {
					cellParts = append(cellParts, t)
				}
			}
			text := strings.ReplaceAll(strings.Join(cellParts, " "), "|", "\\|")
			buf.WriteString(" ")
			buf.WriteString(text)
			buf.WriteString(" |")
		}
		buf.WriteString("\n")
		if ri == 0 {
			buf.WriteString("|")
			for range row.TableCells {
				buf.WriteString(" --- |")
			}
			buf.WriteString("\n")
		}
	}
	buf.WriteString("\n")
}

// substitute applies filled answers to a text fragment. Keys are replaced in
// sorted order so the preview is stable across calls.
func substitute(text string, answers map[string]string) string {
	if len(answers) == 0 {
		return text
	}
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := answers[k]
		if k == "" || strings.TrimSpace(v) == "" {
			continue
		}
		text = strings.ReplaceAll(text, k, v)
	}
	return text
}
