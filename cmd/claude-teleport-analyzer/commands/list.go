package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/N3mes1s/claude-teleport-analyzer/internal/api"
	"github.com/N3mes1s/claude-teleport-analyzer/internal/display"
	"github.com/N3mes1s/claude-teleport-analyzer/internal/filter"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var (
		limit     int
		status    string
		afterStr  string
		beforeStr string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List remote sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			after, before, err := parseDateRange(afterStr, beforeStr)
			if err != nil {
				return err
			}

			client, err := api.NewClient(ctx)
			if err != nil {
				return err
			}

			sessions, err := client.ListSessions(ctx)
			if err != nil {
				return err
			}

			sessions = filter.FilterSessions(sessions, status, after, before)
			if len(sessions) == 0 {
				fmt.Println("No remote sessions found.")
				return nil
			}

			shown := sessions
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			for i := range shown {
				fmt.Print(display.SessionRow(&shown[i]))
			}
			if len(shown) < len(sessions) {
				fmt.Printf("\n  Showing %d of %d sessions (use --limit to see more)\n", len(shown), len(sessions))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of sessions to show (0 = all)")
	cmd.Flags().StringVar(&status, "status", "", "only show sessions with this status")
	cmd.Flags().StringVar(&afterStr, "after", "", "only show sessions created after this date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&beforeStr, "before", "", "only show sessions created before this date (YYYY-MM-DD or RFC 3339)")

	return cmd
}

// parseDateRange turns the optional --after/--before flag values into
// time bounds, nil when unset.
func parseDateRange(afterStr, beforeStr string) (after, before *time.Time, err error) {
	if afterStr != "" {
		t, err := filter.ParseDateFilter(afterStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --after value: %w", err)
		}
		after = &t
	}
	if beforeStr != "" {
		t, err := filter.ParseDateFilter(beforeStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --before value: %w", err)
		}
		before = &t
	}
	return after, before, nil
}
