// Package placeholder detects bracketed template tokens in the run structure
// of a .docx document.
package placeholder

import (
	"regexp"

	"github.com/dgallion1/docfill/internal/docxfile"
	"github.com/fumiama/go-docx"
)

// Occurrence is one physical location of a placeholder: the paragraph it
// lives in and the span of run children its text covers. A token may start
// in one run and end in another when Word has fragmented the surrounding
// formatting.
type Occurrence struct {
	Para       *docx.Paragraph
	StartChild int // index into Para.Children of the run holding the opening bracket
	EndChild   int // index into Para.Children of the run holding the closing bracket
	StartOff   int // offset of the token within the start run's text
	EndOff     int // exclusive end offset within the end run's text
}

// Placeholder is a unique token, identified by its exact bracketed text.
// Two textually distinct tokens are distinct placeholders even if their
// labels coincide.
type Placeholder struct {
	Key         string       `json:"key"`
	Label       string       `json:"label"`
	Occurrences []Occurrence `json:"-"`
}

// Scanner finds placeholder occurrences. Scanning never mutates the
// document.
type Scanner struct {
	re *regexp.Regexp
}

// NewScanner returns a scanner for the given token pattern. A nil pattern
// selects DefaultPattern.
func NewScanner(re *regexp.Regexp) *Scanner {
	if re == nil {
		re = regexp.MustCompile(DefaultPattern)
	}
	return &Scanner{re: re}
}

// Scan walks the document in order (table cells included, depth-first) and
// returns the unique placeholders it finds. List position is determined by
// each key's first occurrence; later occurrences of the same key are
// recorded under the existing entry.
func (s *Scanner) Scan(doc *docx.Docx) []*Placeholder {
	return s.ScanParagraphs(docxfile.Paragraphs(doc))
}

// ScanParagraphs scans an already-flattened paragraph sequence.
func (s *Scanner) ScanParagraphs(paras []*docx.Paragraph) []*Placeholder {
	var ordered []*Placeholder
	index := make(map[string]*Placeholder)

	for _, para := range paras {
		for _, occ := range s.scanParagraph(para) {
			key := s.occurrenceText(occ)
			ph, seen := index[key]
			if !seen {
				ph = &Placeholder{Key: key, Label: Humanize(key)}
				index[key] = ph
				ordered = append(ordered, ph)
			}
			ph.Occurrences = append(ph.Occurrences, occ)
		}
	}
	return ordered
}

// charRef maps one character of a paragraph's logical text back to the run
// child and in-run offset that produced it.
type charRef struct {
	child int
	off   int
}

// scanParagraph matches the pattern against the paragraph's logical text.
// The logical text is built per segment: consecutive text-only runs join
// into one searchable string, while anything else (hyperlinks, runs carrying
// tabs, breaks or drawings) is a hard boundary a token cannot span.
// Paragraph boundaries are likewise hard boundaries.
func (s *Scanner) scanParagraph(para *docx.Paragraph) []Occurrence {
	var occs []Occurrence
	var text []byte
	var refs []charRef

	flush := func() {
		if len(text) == 0 {
			return
		}
		for _, span := range s.re.FindAllIndex(text, -1) {
			start, end := refs[span[0]], refs[span[1]-1]
			occs = append(occs, Occurrence{
				Para:       para,
				StartChild: start.child,
				EndChild:   end.child,
				StartOff:   start.off,
				EndOff:     end.off + 1,
			})
		}
		text = text[:0]
		refs = refs[:0]
	}

	for ci, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok || !docxfile.TextOnly(run) {
			flush()
			continue
		}
		rt := docxfile.RunText(run)
		for i := 0; i < len(rt); i++ {
			text = append(text, rt[i])
			refs = append(refs, charRef{child: ci, off: i})
		}
	}
	flush()
	return occs
}

// occurrenceText reads the matched token back out of the run structure.
func (s *Scanner) occurrenceText(occ Occurrence) string {
	if occ.StartChild == occ.EndChild {
		rt := docxfile.RunText(occ.Para.Children[occ.StartChild].(*docx.Run))
		return rt[occ.StartOff:occ.EndOff]
	}
	out := docxfile.RunText(occ.Para.Children[occ.StartChild].(*docx.Run))[occ.StartOff:]
	for ci := occ.StartChild + 1; ci < occ.EndChild; ci++ {
		if run, ok := occ.Para.Children[ci].(*docx.Run); ok {
			out += docxfile.RunText(run)
		}
	}
	out += docxfile.RunText(occ.Para.Children[occ.EndChild].(*docx.Run))[:occ.EndOff]
	return out
}

// Keys returns the ordered key list of a scan result.
func Keys(phs []*Placeholder) []string {
	if len(phs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(phs))
	for _, ph := range phs {
		keys = append(keys, ph.Key)
	}
	return keys
}
