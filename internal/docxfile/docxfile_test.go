package docxfile

import (
	"testing"

	"github.com/fumiama/go-docx"
)

func textRun(s string) *docx.Run {
	return &docx.Run{Children: []interface{}{&docx.Text{Text: s}}}
}

func para(runs ...*docx.Run) *docx.Paragraph {
	children := make([]interface{}, len(runs))
	for i, r := range runs {
		children[i] = r
	}
	return &docx.Paragraph{Children: children}
}

func cell(paras ...*docx.Paragraph) *docx.WTableCell {
	return &docx.WTableCell{Paragraphs: paras}
}

func TestFlattenItems_TableOrder(t *testing.T) {
	// Top-level paragraphs and tables interleave in document order; within a
	// table, rows first, then cells, then cell paragraphs.
	pBefore := para(textRun("before"))
	pR1C1 := para(textRun("r1c1"))
	pR1C2 := para(textRun("r1c2"))
	pR2C1a := para(textRun("r2c1a"))
	pR2C1b := para(textRun("r2c1b"))
	pAfter := para(textRun("after"))

	table := &docx.Table{
		TableRows: []*docx.WTableRow{
			{TableCells: []*docx.WTableCell{cell(pR1C1), cell(pR1C2)}},
			{TableCells: []*docx.WTableCell{cell(pR2C1a, pR2C1b)}},
		},
	}

	got := FlattenItems([]interface{}{pBefore, table, pAfter})
	want := []*docx.Paragraph{pBefore, pR1C1, pR1C2, pR2C1a, pR2C1b, pAfter}

	if len(got) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d: expected %q, got %q", i, ParagraphText(want[i]), ParagraphText(got[i]))
		}
	}
}

func TestRunText_ConcatenatesTextNodes(t *testing.T) {
	r := &docx.Run{Children: []interface{}{
		&docx.Text{Text: "Hello"},
		&docx.Text{Text: " world"},
	}}
	if got := RunText(r); got != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", got)
	}
}

type notText struct{}

func TestTextOnly(t *testing.T) {
	if !TextOnly(textRun("plain")) {
		t.Error("text-only run misreported")
	}
	mixed := &docx.Run{Children: []interface{}{&docx.Text{Text: "a"}, &notText{}}}
	if TextOnly(mixed) {
		t.Error("run with a non-text child misreported as text-only")
	}
}

func TestSetRunText(t *testing.T) {
	r := &docx.Run{Children: []interface{}{
		&docx.Text{Text: "old"},
		&docx.Text{Text: " pieces"},
	}}
	SetRunText(r, "new value")
	if len(r.Children) != 1 {
		t.Fatalf("expected a single text child, got %d", len(r.Children))
	}
	if got := RunText(r); got != "new value" {
		t.Errorf("expected %q, got %q", "new value", got)
	}
}

func TestSetRunText_PreservesSignificantWhitespace(t *testing.T) {
	r := textRun("x")
	SetRunText(r, " leading and trailing ")
	txt, ok := r.Children[0].(*docx.Text)
	if !ok {
		t.Fatal("expected a text child")
	}
	if txt.XMLSpace != "preserve" {
		t.Errorf("expected xml:space=preserve, got %q", txt.XMLSpace)
	}
}

func TestParagraphText(t *testing.T) {
	p := para(textRun("Hello"), textRun(", "), textRun("world"))
	if got := ParagraphText(p); got != "Hello, world" {
		t.Errorf("expected %q, got %q", "Hello, world", got)
	}
}
