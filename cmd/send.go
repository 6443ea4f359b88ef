package cmd

import (
	"fmt"
	"strings"

	"github.com/kelsall/chatline/internal"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <chat-id> <message>",
	Short: "Send one message to a session",
	Long: `Send a message to an existing session and print the reply.

The message appears in the session history immediately; if the backend
round trip fails the message stays there, marked as failed.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chatID := args[0]
		content := strings.Join(args[1:], " ")

		store, client := newStore()
		if err := store.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}

		syncer := internal.NewSynchronizer(store, client)
		reply, err := syncer.Send(cmd.Context(), chatID, content)
		if err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}

		fmt.Println(reply.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
