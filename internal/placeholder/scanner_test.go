package placeholder

import (
	"reflect"
	"testing"

	"github.com/dgallion1/docfill/internal/docxfile"
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

func TestScan_DistinctTokensInOrder(t *testing.T) {
	s := NewScanner(nil)
	paras := []*docx.Paragraph{
		para(textRun("SAFE between [Company Name] and [Investor Name].")),
		para(textRun("Dated [Date of Safe].")),
	}

	phs := s.ScanParagraphs(paras)
	want := []string{"[Company Name]", "[Investor Name]", "[Date of Safe]"}
	if !reflect.DeepEqual(Keys(phs), want) {
		t.Errorf("expected keys %v, got %v", want, Keys(phs))
	}
}

func TestScan_DuplicateKeySingleEntry(t *testing.T) {
	s := NewScanner(nil)
	paras := []*docx.Paragraph{
		para(textRun("[Company Name] agrees.")),
		para(textRun("Signed by [Company Name] on behalf of [Company Name].")),
	}

	phs := s.ScanParagraphs(paras)
	if len(phs) != 1 {
		t.Fatalf("expected 1 placeholder, got %d", len(phs))
	}
	if got := len(phs[0].Occurrences); got != 3 {
		t.Errorf("expected 3 occurrences, got %d", got)
	}
}

func TestScan_TokenSplitAcrossRuns(t *testing.T) {
	s := NewScanner(nil)
	p := para(textRun("between "), textRun("[Compa"), textRun("ny Name]"), textRun(" and others"))

	phs := s.ScanParagraphs([]*docx.Paragraph{p})
	if len(phs) != 1 {
		t.Fatalf("expected 1 placeholder, got %d", len(phs))
	}
	if phs[0].Key != "[Company Name]" {
		t.Errorf("expected key %q, got %q", "[Company Name]", phs[0].Key)
	}

	occ := phs[0].Occurrences[0]
	if occ.StartChild != 1 || occ.EndChild != 2 {
		t.Errorf("expected span over children 1..2, got %d..%d", occ.StartChild, occ.EndChild)
	}
	if occ.StartOff != 0 || occ.EndOff != 8 {
		t.Errorf("expected offsets 0 and 8, got %d and %d", occ.StartOff, occ.EndOff)
	}
}

func TestScan_BracketEdgeCases(t *testing.T) {
	s := NewScanner(nil)
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"empty brackets", "an [] empty pair", nil},
		{"unmatched open", "dangling [bracket here", nil},
		{"unmatched close", "dangling] bracket", nil},
		{"nested", "a [b [c] d]", []string{"[c]"}},
		{"adjacent", "[A][B]", []string{"[A]", "[B]"}},
		{"whitespace kept", "[ padded ]", []string{"[ padded ]"}},
	}

	for _, tc := range cases {
		phs := s.ScanParagraphs([]*docx.Paragraph{para(textRun(tc.text))})
		if got := Keys(phs); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestScan_DistinctTextDistinctPlaceholders(t *testing.T) {
	// Identity is exact bracket text; "[Company Name]" and "[Company_Name]"
	// humanize the same but stay separate.
	s := NewScanner(nil)
	phs := s.ScanParagraphs([]*docx.Paragraph{para(textRun("[Company Name] vs [Company_Name]"))})
	if len(phs) != 2 {
		t.Fatalf("expected 2 placeholders, got %d", len(phs))
	}
	if phs[0].Label != phs[1].Label {
		t.Errorf("expected identical labels, got %q and %q", phs[0].Label, phs[1].Label)
	}
}

type notText struct{}

func TestScan_NonTextRunIsHardBoundary(t *testing.T) {
	// A run carrying a break or tab splits the logical text; a token cannot
	// span it.
	s := NewScanner(nil)
	breakRun := &docx.Run{Children: []interface{}{&notText{}}}
	p := para(textRun("[Compa"), breakRun, textRun("ny Name]"))

	if phs := s.ScanParagraphs([]*docx.Paragraph{p}); len(phs) != 0 {
		t.Errorf("expected no placeholders across a run boundary break, got %v", Keys(phs))
	}
}

func TestScan_DoesNotMutate(t *testing.T) {
	s := NewScanner(nil)
	p := para(textRun("["), textRun("Company Name"), textRun("]"))
	before := docxfile.ParagraphText(p)
	childCount := len(p.Children)

	s.ScanParagraphs([]*docx.Paragraph{p})

	if got := docxfile.ParagraphText(p); got != before {
		t.Errorf("scan mutated paragraph text: %q -> %q", before, got)
	}
	if len(p.Children) != childCount {
		t.Errorf("scan changed child count: %d -> %d", childCount, len(p.Children))
	}
}

func TestScan_CustomPattern(t *testing.T) {
	re, err := CompilePattern(`\{\{[^{}]+\}\}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := NewScanner(re)
	phs := s.ScanParagraphs([]*docx.Paragraph{para(textRun("between {{company}} and [not me]"))})
	if got := Keys(phs); !reflect.DeepEqual(got, []string{"{{company}}"}) {
		t.Errorf("expected {{company}}, got %v", got)
	}
}
