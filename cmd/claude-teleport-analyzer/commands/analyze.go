package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/N3mes1s/claude-teleport-analyzer/internal/db"
	"github.com/N3mes1s/claude-teleport-analyzer/internal/display"
)

// NewAnalyzeCommand creates the analyze command. It works entirely on a
// local export file and never touches the network.
func NewAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <export-file>",
		Short: "Analyze a previously exported session file offline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := db.AnalyzeExport(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nSession: %s\n", stats.SessionID)
			if stats.Title != "" {
				fmt.Printf("Title:   %s\n", stats.Title)
			}
			fmt.Printf("Events:  %d\n", stats.TotalEvents)

			if len(stats.EventTypeCounts) > 0 {
				fmt.Printf("\nEvent types:\n")
				for _, tc := range stats.EventTypeCounts {
					fmt.Printf("  %-20s %d\n", tc.Name, tc.Count)
				}
			}

			if len(stats.ToolCounts) > 0 {
				fmt.Printf("\nTool invocations:\n")
				for _, tc := range stats.ToolCounts {
					fmt.Printf("  %-20s %d\n", tc.Name, tc.Count)
				}
			}

			if len(stats.UserMessages) > 0 {
				fmt.Printf("\nUser messages:\n")
				for _, msg := range stats.UserMessages {
					fmt.Printf("  - %s\n", display.Truncate(msg, userPreviewChars))
				}
			}
			return nil
		},
	}
}
