package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/N3mes1s/claude-teleport-analyzer/internal/api"
	"github.com/N3mes1s/claude-teleport-analyzer/internal/display"
	"github.com/N3mes1s/claude-teleport-analyzer/internal/filter"
)

// NewReadCommand creates the read command.
func NewReadCommand() *cobra.Command {
	var (
		conversationOnly bool
		eventType        string
		maxEvents        int
		search           string
		afterStr         string
		beforeStr        string
	)

	cmd := &cobra.Command{
		Use:   "read <session-id>",
		Short: "Print the full transcript of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessionID := args[0]

			if err := api.ValidateSessionID(sessionID); err != nil {
				return err
			}

			after, before, err := parseDateRange(afterStr, beforeStr)
			if err != nil {
				return err
			}

			client, err := api.NewClient(ctx)
			if err != nil {
				return err
			}
			done := attachProgress(client)
			events, err := client.GetEvents(ctx, sessionID, maxEvents)
			done()
			if err != nil {
				return err
			}

			criteria := filter.Criteria{
				Type:             eventType,
				ConversationOnly: conversationOnly,
				Search:           search,
				After:            after,
				Before:           before,
			}
			events = filter.Apply(events, criteria)

			fmt.Println(readLabel(len(events), criteria))
			fmt.Println()
			for i := range events {
				fmt.Print(display.Event(&events[i]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&conversationOnly, "conversation-only", false, "only show user and assistant messages")
	cmd.Flags().StringVar(&eventType, "type", "", "only show events of this type")
	cmd.Flags().IntVar(&maxEvents, "max-events", 0, "stop fetching after this many events (0 = all)")
	cmd.Flags().StringVar(&search, "search", "", "only show events containing this text (case-insensitive)")
	cmd.Flags().StringVar(&afterStr, "after", "", "only show events after this date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&beforeStr, "before", "", "only show events before this date (YYYY-MM-DD or RFC 3339)")

	return cmd
}

// readLabel produces the header line above the transcript, naming the
// active filters.
func readLabel(count int, c filter.Criteria) string {
	parts := []string{fmt.Sprintf("%d events", count)}
	if c.ConversationOnly {
		parts = append(parts, "conversation only")
	}
	if c.Type != "" {
		parts = append(parts, "type: "+c.Type)
	}
	if c.Search != "" {
		parts = append(parts, "search: "+c.Search)
	}
	return strings.Join(parts, " - ")
}
