package cmd

import (
	"fmt"

	"github.com/kelsall/chatline/internal"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <chat-id>",
	Short: "Delete a session",
	Long:  `Delete a session on the backend. The session stays visible if the backend refuses.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _ := newStore()
		if err := store.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Deleted %s", args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
