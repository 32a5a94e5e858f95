package main

import (
	"fmt"

	"github.com/dgallion1/docfill/internal/sampledoc"
	"github.com/spf13/cobra"
)

var sampleOutPath string

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the bundled SAFE sample template",
	Long:  `Write the bundled financing-agreement sample template to disk, ready to scan or fill.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sampledoc.WriteFile(sampleOutPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", sampleOutPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().StringVarP(&sampleOutPath, "out", "o", "sample_safe.docx", "Output path")
}
