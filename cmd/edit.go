package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kelsall/chatline/internal"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <chat-id> <message-index> <new-content>",
	Short: "Edit an earlier message and replay from there",
	Long: `Rewrite the user message at the given index. The edited message and
everything after it are dropped from the session, and the new content is
sent as a fresh message. The discarded turns cannot be recovered.`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		chatID := args[0]
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("message index must be a number: %q", args[1])
		}
		content := strings.Join(args[2:], " ")

		store, client := newStore()
		if err := store.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}

		editor := internal.NewEditor(store, internal.NewSynchronizer(store, client))
		if err := editor.Begin(chatID, index); err != nil {
			return err
		}
		editor.SetDraft(content)

		reply, err := editor.Save(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to replay edited message: %w", err)
		}

		fmt.Println(reply.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
