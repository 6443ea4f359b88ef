package cmd

import (
	"fmt"
	"os"

	"github.com/kelsall/chatline/internal"
	"github.com/kelsall/chatline/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <chat-id>",
	Short: "Export a session to a portable document",
	Long: `Export a session in one of several formats (json, jsonl, yaml, md).

The JSON format is the interchange format: a file exported as JSON can be
fed back to 'chatline import'. Without --out the document goes to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		store, _ := newStore()
		if err := store.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}

		sess, err := store.Get(args[0])
		if err != nil {
			return err
		}
		doc := internal.ExportDocument(sess)

		if exportOut == "" {
			return exporter.Export(doc, os.Stdout)
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if err := exporter.Export(doc, f); err != nil {
			return fmt.Errorf("failed to export session: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Exported %s to %s", sess.ID, exportOut))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, jsonl, yaml, md)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
