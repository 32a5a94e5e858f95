package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dgallion1/docfill/internal/docxfile"
	"github.com/dgallion1/docfill/internal/placeholder"
	"github.com/dgallion1/docfill/internal/rewrite"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	fillAnswersPath string
	fillOutPath     string
	fillLoose       bool
)

var fillCmd = &cobra.Command{
	Use:   "fill [template.docx]",
	Short: "Fill a template from a YAML answers file",
	Long: `Fill a .docx template in one pass. The answers file maps placeholder
names to values; keys may be written with or without brackets:

    Company Name: Acme Inc.
    "[Investor Name]": Jane Doe

Placeholders missing from the answers file keep their bracketed text in the
output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner, err := newScanner()
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(fillAnswersPath)
		if err != nil {
			return fmt.Errorf("read answers file: %w", err)
		}
		var given map[string]string
		if err := yaml.Unmarshal(raw, &given); err != nil {
			return fmt.Errorf("parse answers file: %w", err)
		}

		doc, err := docxfile.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		phs := scanner.Scan(doc)

		known := make(map[string]bool, len(phs))
		for _, ph := range phs {
			known[ph.Key] = true
		}

		answers := make(map[string]string, len(given))
		for k, v := range given {
			key := strings.TrimSpace(k)
			if !strings.HasPrefix(key, "[") {
				key = "[" + key + "]"
			}
			if !known[key] {
				if fillLoose {
					continue
				}
				return fmt.Errorf("answers file references unknown placeholder %q", k)
			}
			answers[key] = placeholder.NormalizeValue(v)
		}

		rewrite.Apply(phs, answers)

		if err := docxfile.WriteFile(doc, fillOutPath); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		filled := 0
		for _, ph := range phs {
			if placeholder.Filled(answers[ph.Key]) {
				filled++
			}
		}
		fmt.Printf("filled %d of %d placeholders -> %s\n", filled, len(phs), fillOutPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().StringVarP(&fillAnswersPath, "answers", "a", "", "YAML answers file (required)")
	fillCmd.Flags().StringVarP(&fillOutPath, "out", "o", "filled.docx", "Output path")
	fillCmd.Flags().BoolVar(&fillLoose, "loose", false, "Ignore answers for placeholders not present in the template")
	fillCmd.MarkFlagRequired("answers")
}
