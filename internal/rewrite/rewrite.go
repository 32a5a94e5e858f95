// Package rewrite substitutes answered placeholders back into a document's
// run structure while preserving formatting.
package rewrite

import (
	"sort"

	"github.com/dgallion1/docfill/internal/docxfile"
	"github.com/dgallion1/docfill/internal/placeholder"
	"github.com/fumiama/go-docx"
)

// edit is one pending substitution within a paragraph.
type edit struct {
	occ  placeholder.Occurrence
	text string
}

// Apply replaces every occurrence of an answered placeholder with its value.
// Unanswered (absent or blank) placeholders keep their original bracketed
// text, so unresolved fields stay visible in the output. Paragraphs are
// edited back-to-front so earlier spans remain valid while runs are spliced.
//
// The result is deterministic for a given (document, answers) pair: runs
// outside a replaced span are untouched, and the block/paragraph/table
// skeleton never changes.
func Apply(phs []*placeholder.Placeholder, answers map[string]string) {
	perPara := make(map[*docx.Paragraph][]edit)
	var paras []*docx.Paragraph

	for _, ph := range phs {
		value, ok := answers[ph.Key]
		if !ok || !placeholder.Filled(value) {
			continue
		}
		for _, occ := range ph.Occurrences {
			if _, seen := perPara[occ.Para]; !seen {
				paras = append(paras, occ.Para)
			}
			perPara[occ.Para] = append(perPara[occ.Para], edit{occ: occ, text: value})
		}
	}

	for _, para := range paras {
		applyParagraph(para, perPara[para])
	}
}

// applyParagraph splices the paragraph's run list. Edits never overlap (the
// scanner produces maximal non-nested matches), so applying them in
// descending document order keeps every remaining edit's child indices and
// offsets valid.
func applyParagraph(para *docx.Paragraph, edits []edit) {
	sort.Slice(edits, func(i, j int) bool {
		a, b := edits[i].occ, edits[j].occ
		if a.StartChild != b.StartChild {
			return a.StartChild > b.StartChild
		}
		return a.StartOff > b.StartOff
	})

	for _, e := range edits {
		occ := e.occ
		if occ.StartChild == occ.EndChild {
			run := para.Children[occ.StartChild].(*docx.Run)
			rt := docxfile.RunText(run)
			docxfile.SetRunText(run, rt[:occ.StartOff]+e.text+rt[occ.EndOff:])
			continue
		}

		// The span crosses runs. Trim the closing run, drop fully consumed
		// runs in between, and fold the replacement into the opening run so
		// the value inherits the opening bracket's formatting.
		endRun := para.Children[occ.EndChild].(*docx.Run)
		suffix := docxfile.RunText(endRun)[occ.EndOff:]

		removeFrom := occ.StartChild + 1
		removeTo := occ.EndChild // exclusive
		if suffix == "" {
			removeTo = occ.EndChild + 1
		} else {
			docxfile.SetRunText(endRun, suffix)
		}
		para.Children = append(para.Children[:removeFrom], para.Children[removeTo:]...)

		startRun := para.Children[occ.StartChild].(*docx.Run)
		prefix := docxfile.RunText(startRun)[:occ.StartOff]
		docxfile.SetRunText(startRun, prefix+e.text)
	}
}
