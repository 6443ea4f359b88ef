package cmd

import (
	"fmt"
	"os"

	"github.com/kelsall/chatline/internal"
	"github.com/spf13/cobra"
)

var importModel string

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a previously exported session",
	Long: `Replay an exported document against the backend, one message at a time,
into a freshly created session.

If a step fails the import stops there; the half-filled backend session is
left behind and nothing is retried.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}

		doc, err := internal.ParseDocument(data)
		if err != nil {
			return err
		}

		store, client := newStore()
		if err := store.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}

		fallback := importModel
		if fallback == "" && doc.Model == "" {
			fallback, err = resolveModel(store, "")
			if err != nil {
				return err
			}
		}

		importer := internal.NewImporter(store, client)
		sess, err := importer.Import(cmd.Context(), doc, fallback, func(p internal.Progress) {
			fmt.Fprintf(os.Stderr, "\r%s replaying messages", internal.RenderStep(p))
		})
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Imported %q (%s), %d messages", sess.Title, sess.ID, len(sess.Messages)))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importModel, "model", "m", "", "Model when the document names none (default: first available)")
	rootCmd.AddCommand(importCmd)
}
