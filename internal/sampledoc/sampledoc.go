// Package sampledoc bundles a financing-agreement (SAFE) template so the
// guided fill flow can be tried without uploading a real file.
package sampledoc

import (
	"fmt"
	"io"
	"os"

	"github.com/fumiama/go-docx"
)

// Name is the display name used for sessions seeded from the sample.
const Name = "YC SAFE (sample)"

// New builds the sample template. One placeholder is deliberately split
// across two differently-styled runs, the way Word fragments tokens after
// manual edits.
func New() *docx.Docx {
	w := docx.New().WithDefaultTheme()

	w.AddParagraph().AddText("SAFE").Size("36")
	w.AddParagraph().AddText("(Simple Agreement for Future Equity)").Size("24").Color("595959")

	p := w.AddParagraph()
	p.AddText("THIS CERTIFIES THAT in exchange for the payment by ")
	p.AddText("[Investor Name]")
	p.AddText(" (the \"Investor\") of ")
	p.AddText("[Purchase Amount]")
	p.AddText(" (the \"Purchase Amount\") on or about ")
	p.AddText("[Date of Safe]")
	p.AddText(", ")
	p.AddText("[Company Name]")
	p.AddText(", a ")
	p.AddText("[State of Incorporation]")
	p.AddText(" corporation (the \"Company\"), issues to the Investor the right to certain shares of the Company's Capital Stock, subject to the terms described below.")

	p = w.AddParagraph()
	p.AddText("The \"Post-Money Valuation Cap\" is ")
	// Token split across two runs on purpose.
	p.AddText("[Valuation").Color("1F4E79")
	p.AddText(" Cap]")
	p.AddText(". See Section 2 for certain additional defined terms.")

	w.AddParagraph().AddText("1. Events").Size("28")

	p = w.AddParagraph()
	p.AddText("(a) Equity Financing. If there is an Equity Financing before the termination of this Safe, on the initial closing of such Equity Financing, this Safe will automatically convert into the greater of the number of shares of Standard Preferred Stock or Safe Preferred Stock.")

	p = w.AddParagraph()
	p.AddText("(b) Liquidity Event. If there is a Liquidity Event before the termination of this Safe, the Investor will, at its option, either receive a cash payment equal to the Purchase Amount or automatically receive shares of Common Stock equal to the Purchase Amount divided by the Liquidity Price.")

	w.AddParagraph().AddText("2. Definitions").Size("28")

	p = w.AddParagraph()
	p.AddText("\"Governing Law\" means the laws of ")
	p.AddText("[Governing Law Jurisdiction]")
	p.AddText(", without regard to conflict of law principles.")

	w.AddParagraph().AddText("IN WITNESS WHEREOF, the undersigned have caused this Safe to be duly executed and delivered.")

	p = w.AddParagraph()
	p.AddText("[Company Name]")
	p.AddText("    By: ")
	p.AddText("[Company Signatory Name]")
	p.AddText(", ")
	p.AddText("[Company Signatory Title]")

	p = w.AddParagraph()
	p.AddText("[Investor Name]")

	return w
}

// WriteTo writes the sample template to w.
func WriteTo(w io.Writer) error {
	if _, err := New().WriteTo(w); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}
	return nil
}

// WriteFile saves the sample template to path.
func WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sample: %w", err)
	}
	if err := WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
