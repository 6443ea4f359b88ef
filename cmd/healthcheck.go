package cmd

import (
	"fmt"

	"github.com/kelsall/chatline/internal"
	"github.com/spf13/cobra"
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, client := newStore()

		var models []internal.Model
		err := internal.ShowProgress(ctx, fmt.Sprintf("Contacting %s", serverURL), func() error {
			var err error
			models, err = client.ListModels(ctx)
			return err
		})
		if err != nil {
			internal.PrintError(fmt.Sprintf("backend unreachable: %v", err))
			return err
		}

		chats, err := client.ListChats(ctx)
		if err != nil {
			internal.PrintError(fmt.Sprintf("models ok, but listing chats failed: %v", err))
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Backend ok: %d models, %d sessions", len(models), len(chats)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
