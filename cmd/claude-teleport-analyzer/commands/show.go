package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/N3mes1s/claude-teleport-analyzer/internal/api"
	"github.com/N3mes1s/claude-teleport-analyzer/internal/display"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the metadata of one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessionID := args[0]

			if err := api.ValidateSessionID(sessionID); err != nil {
				return err
			}

			client, err := api.NewClient(ctx)
			if err != nil {
				return err
			}

			session, err := client.GetSession(ctx, sessionID)
			if err != nil {
				return err
			}

			fmt.Print(display.SessionDetail(session))
			return nil
		},
	}
}
