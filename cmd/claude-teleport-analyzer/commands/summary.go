package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/N3mes1s/claude-teleport-analyzer/internal/api"
	"github.com/N3mes1s/claude-teleport-analyzer/internal/display"
	"github.com/N3mes1s/claude-teleport-analyzer/pkg/models"
)

const userPreviewChars = 120

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	var maxEvents int

	cmd := &cobra.Command{
		Use:   "summary <session-id>",
		Short: "Summarise a session: event histogram, tool activity and user messages",
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

			done := attachProgress(client)
			events, err := client.GetEvents(ctx, sessionID, maxEvents)
			done()
			if err != nil {
				return err
			}

			printSummary(session, events)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxEvents, "max-events", 0, "stop fetching after this many events (0 = all)")

	return cmd
}

func printSummary(session *models.Session, events []models.SessionEvent) {
	fmt.Print(display.SessionDetail(session))

	fmt.Printf("\nEvents: %d\n\n", len(events))

	counts := map[string]int{}
	for i := range events {
		counts[events[i].EventType()]++
	}
	for _, tc := range sortedCounts(counts) {
		fmt.Printf("  %-20s %d\n", tc.name, tc.count)
	}

	summaries := toolSummaries(events)
	if len(summaries) > 0 {
		fmt.Printf("\nTool activity:\n")
		for i, s := range summaries {
			prefix := "├─"
			if i == len(summaries)-1 {
				prefix = "└─"
			}
			fmt.Printf("  %s %s\n", prefix, s)
		}
	}

	previews := userPreviews(events)
	if len(previews) > 0 {
		fmt.Printf("\nUser messages:\n")
		for _, p := range previews {
			fmt.Printf("  - %s\n", display.Truncate(p, userPreviewChars))
		}
	}
}

type typeCount struct {
	name  string
	count int
}

// sortedCounts orders a histogram by descending count, name as the
// tie-breaker so output is stable.
func sortedCounts(counts map[string]int) []typeCount {
	out := make([]typeCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, typeCount{name: name, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}

func toolSummaries(events []models.SessionEvent) []string {
	var out []string
	for i := range events {
		if s := events[i].ToolUseSummary; s != nil && s.Summary != "" {
			out = append(out, s.Summary)
		}
	}
	return out
}

func userPreviews(events []models.SessionEvent) []string {
	var out []string
	for i := range events {
		u := events[i].User
		if u == nil {
			continue
		}
		if text, ok := u.Message.Content.AsText(); ok && text != "" {
			out = append(out, text)
		}
	}
	return out
}
