package cmd

import (
	"fmt"

	"github.com/kelsall/chatline/internal"
	"github.com/spf13/cobra"
)

var newModel string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _ := newStore()
		if err := store.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}

		model, err := resolveModel(store, newModel)
		if err != nil {
			return err
		}

		sess, err := store.NewChat(cmd.Context(), model)
		if err != nil {
			return fmt.Errorf("failed to create chat: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Created %q (%s) with model %s", sess.Title, sess.ID, sess.Model))
		return nil
	},
}

// resolveModel picks the model to use: the explicit flag when given,
// otherwise the first model the backend offers.
func resolveModel(store *internal.Store, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	models := store.Models()
	if len(models) == 0 {
		return "", fmt.Errorf("backend offers no models; use --model")
	}
	return models[0].ID, nil
}

func init() {
	newCmd.Flags().StringVarP(&newModel, "model", "m", "", "Model identifier (default: first available)")
	rootCmd.AddCommand(newCmd)
}
