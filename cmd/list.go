package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions",
	Long:  `List every chat session stored on the backend, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _ := newStore()
		if err := store.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}

		snap := store.Snapshot()
		if len(snap.Sessions) == 0 {
			fmt.Println("No sessions yet. Start one with: chatline new")
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Sessions (%d)", len(snap.Sessions))))
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, sess := range snap.Sessions {
			title := sess.Title
			if title == "" {
				title = "New Chat"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				titleStyle.Render(title),
				idStyle.Render(sess.ID),
				countStyle.Render(fmt.Sprintf("%d msgs", len(sess.Messages))),
				dateStyle.Render(formatTimestamp(sess.Timestamp)),
			)
		}
		return w.Flush()
	},
}

// formatTimestamp renders a session timestamp relative to today.
func formatTimestamp(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	parsed = parsed.Local()

	now := time.Now()
	clock := parsed.Format("3:04 PM")

	switch {
	case sameDay(parsed, now):
		return "Today, " + clock
	case sameDay(parsed, now.AddDate(0, 0, -1)):
		return "Yesterday, " + clock
	default:
		return parsed.Format("Jan 2") + ", " + clock
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func init() {
	rootCmd.AddCommand(listCmd)
}
