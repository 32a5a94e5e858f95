package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgallion1/docfill/internal/docxfile"
	"github.com/dgallion1/docfill/internal/placeholder"
	"github.com/spf13/cobra"
)

var scanJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan [template.docx]",
	Short: "List a template's placeholders",
	Long:  `Scan a .docx template and print its placeholders in document order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner, err := newScanner()
		if err != nil {
			return err
		}

		doc, err := docxfile.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		phs := scanner.Scan(doc)

		if scanJSON {
			type item struct {
				Key         string `json:"key"`
				Label       string `json:"label"`
				Occurrences int    `json:"occurrences"`
			}
			items := make([]item, 0, len(phs))
			for _, ph := range phs {
				items = append(items, item{Key: ph.Key, Label: ph.Label, Occurrences: len(ph.Occurrences)})
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		}

		if len(phs) == 0 {
			fmt.Println("no placeholders found")
			return nil
		}
		for i, ph := range phs {
			suffix := ""
			if n := len(ph.Occurrences); n > 1 {
				suffix = fmt.Sprintf("  (%d occurrences)", n)
			}
			fmt.Printf("%2d. %-30s %s%s\n", i+1, ph.Label, ph.Key, suffix)
		}
		return nil
	},
}

func newScanner() (*placeholder.Scanner, error) {
	re, err := placeholder.CompilePattern(patternExpr)
	if err != nil {
		return nil, err
	}
	return placeholder.NewScanner(re), nil
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output in JSON format")
}
