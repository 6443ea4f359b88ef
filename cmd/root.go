package cmd

import (
	"fmt"
	"os"

	"github.com/kelsall/chatline/internal"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	serverURL string
	version   string = "dev"
	commit    string = "unknown"
	date      string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatline",
	Short: "Chat with an inference backend from the command line",
	Long: `A CLI client for a conversational chat service.

chatline keeps its sessions on the backend: every command talks to the
server's REST API, so there is no local state to manage.

Features:
  • Start, list and delete chat sessions
  • Send messages and read the replies, or chat interactively
  • Edit an earlier message and replay the conversation from there
  • Export sessions in multiple formats (JSON, JSONL, YAML, Markdown)
  • Re-import an exported session by replaying it against the backend

Quick Start:
  chatline new --model gpt-4            # Start a session
  chatline chat                         # Chat interactively
  chatline export <chat-id> -o chat.json
  chatline import chat.json`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", internal.DefaultServerURL, "Backend server base URL")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// newStore builds a client and an unloaded store for the current flags.
func newStore() (*internal.Store, *internal.Client) {
	client := internal.NewClient(serverURL)
	return internal.NewStore(client), client
}
