package session

import (
	"errors"
	"testing"

	"github.com/dgallion1/docfill/internal/apperr"
	"github.com/dgallion1/docfill/internal/placeholder"
)

func testPlaceholders() []*placeholder.Placeholder {
	return []*placeholder.Placeholder{
		{Key: "[Company Name]", Label: "Company Name"},
		{Key: "[Investor Name]", Label: "Investor Name"},
		{Key: "[Purchase Amount]", Label: "Purchase Amount"},
	}
}

func TestSession_AnswerFlow(t *testing.T) {
	s := New(NewID(), "safe.docx", "", testPlaceholders())

	next, ok := s.NextUnanswered()
	if !ok || next != "[Company Name]" {
		t.Fatalf("expected first key next, got %q (%v)", next, ok)
	}

	if err := s.SetAnswer("[Company Name]", "Acme Inc."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filled, total := s.Progress(); filled != 1 || total != 3 {
		t.Errorf("expected progress 1/3, got %d/%d", filled, total)
	}

	next, _ = s.NextUnanswered()
	if next != "[Investor Name]" {
		t.Errorf("expected next %q, got %q", "[Investor Name]", next)
	}
}

func TestSession_UnknownKeyRejected(t *testing.T) {
	s := New(NewID(), "safe.docx", "", testPlaceholders())

	err := s.SetAnswer("[Nope]", "value")
	if err == nil {
		t.Fatal("expected an error for an unknown key")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindUnknownPlaceholder {
		t.Errorf("expected unknown_placeholder kind, got %v", err)
	}
	if filled, _ := s.Progress(); filled != 0 {
		t.Error("state must be unchanged after a rejected answer")
	}
}

func TestSession_ClearMakesKeyNextAgain(t *testing.T) {
	s := New(NewID(), "safe.docx", "", testPlaceholders())
	for _, ph := range testPlaceholders() {
		if err := s.SetAnswer(ph.Key, "x"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, ok := s.NextUnanswered(); ok {
		t.Fatal("expected everything answered")
	}

	if err := s.ClearAnswer("[Investor Name]"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next, ok := s.NextUnanswered()
	if !ok || next != "[Investor Name]" {
		t.Errorf("expected cleared key to be next, got %q (%v)", next, ok)
	}
	if filled, total := s.Progress(); filled != 2 || total != 3 {
		t.Errorf("expected 2/3, got %d/%d", filled, total)
	}
}

func TestSession_BlankValueClears(t *testing.T) {
	s := New(NewID(), "safe.docx", "", testPlaceholders())
	s.SetAnswer("[Company Name]", "Acme Inc.")
	s.SetAnswer("[Company Name]", "   ")
	if _, ok := s.Answer("[Company Name]"); ok {
		t.Error("expected blank value to clear the answer")
	}
}

func TestSession_SheetOrderedWithUnanswered(t *testing.T) {
	s := New(NewID(), "safe.docx", "", testPlaceholders())
	s.SetAnswer("[Investor Name]", "Jane Doe")

	sheet := s.Sheet()
	if len(sheet) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(sheet))
	}
	if sheet[0].Key != "[Company Name]" || sheet[0].Filled {
		t.Errorf("entry 0 wrong: %+v", sheet[0])
	}
	if sheet[1].Key != "[Investor Name]" || !sheet[1].Filled || sheet[1].Value != "Jane Doe" {
		t.Errorf("entry 1 wrong: %+v", sheet[1])
	}
}

func TestSession_AnswersReturnsCopy(t *testing.T) {
	s := New(NewID(), "safe.docx", "", testPlaceholders())
	s.SetAnswer("[Company Name]", "Acme Inc.")

	m := s.Answers()
	m["[Company Name]"] = "tampered"

	if v, _ := s.Answer("[Company Name]"); v != "Acme Inc." {
		t.Errorf("session answer changed through the copy: %q", v)
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if len(id) != 26 {
			t.Fatalf("expected 26-char id, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
