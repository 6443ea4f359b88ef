package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kelsall/chatline/internal"
	"github.com/spf13/cobra"
)

var chatModel string

var chatCmd = &cobra.Command{
	Use:   "chat [chat-id]",
	Short: "Chat interactively",
	Long: `Open an interactive conversation. With a chat id the existing session
is resumed; without one a new session is created.

Type /quit to leave.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, client := newStore()
		if err := store.Load(ctx); err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}

		var sess *internal.Session
		if len(args) == 1 {
			if err := store.Select(args[0]); err != nil {
				return err
			}
			sess = store.Selected()
		} else {
			model, err := resolveModel(store, chatModel)
			if err != nil {
				return err
			}
			created, err := store.NewChat(ctx, model)
			if err != nil {
				return fmt.Errorf("failed to create chat: %w", err)
			}
			sess = created
		}

		fmt.Printf("Session: %s (%s)\n", sess.Title, sess.ID)
		fmt.Printf("Model: %s\n", sess.Model)
		fmt.Println("Type /quit to exit")
		fmt.Println()

		for _, msg := range sess.Messages {
			fmt.Printf("%s: %s\n", msg.Role, msg.Content)
		}

		syncer := internal.NewSynchronizer(store, client)
		scanner := bufio.NewScanner(os.Stdin)

		for {
			fmt.Print("You: ")
			if !scanner.Scan() {
				break
			}

			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			if input == "/quit" || input == "/exit" {
				break
			}

			reply, err := syncer.Send(ctx, sess.ID, input)
			if err != nil {
				internal.PrintError(fmt.Sprintf("send failed: %v", err))
				continue
			}

			fmt.Printf("Assistant: %s\n\n", reply.Content)
		}

		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatModel, "model", "m", "", "Model for a new session (default: first available)")
	rootCmd.AddCommand(chatCmd)
}
