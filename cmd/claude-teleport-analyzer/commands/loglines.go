package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/N3mes1s/claude-teleport-analyzer/internal/api"
	"github.com/N3mes1s/claude-teleport-analyzer/internal/display"
)

// NewLoglinesCommand creates the loglines command.
func NewLoglinesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "loglines <session-id>",
		Short: "Print the raw ingress loglines of a session",
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

			loglines, err := client.GetLoglines(ctx, sessionID)
			if err != nil {
				return err
			}
			if len(loglines) == 0 {
				fmt.Println("No loglines found for this session.")
				return nil
			}

			fmt.Printf("%d loglines\n\n", len(loglines))
			for i := range loglines {
				fmt.Print(display.Logline(&loglines[i]))
			}
			return nil
		},
	}
}
