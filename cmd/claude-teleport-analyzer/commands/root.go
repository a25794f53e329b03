// Package commands wires the CLI surface: an interactive session browser
// as the default action plus subcommands for listing, inspecting and
// exporting remote sessions.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/N3mes1s/claude-teleport-analyzer/internal/api"
	"github.com/N3mes1s/claude-teleport-analyzer/internal/display"
	"github.com/N3mes1s/claude-teleport-analyzer/internal/tui"
)

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "claude-teleport-analyzer",
		Short: "Browse and inspect remote Claude Code sessions",
		Long: `claude-teleport-analyzer retrieves remote Claude Code sessions over the
sessions API and renders them in the terminal: an interactive browser,
plain listings, full transcripts, summaries and offline analysis of
exported sessions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, debug)
		},
	}

	rootCmd.Flags().BoolVar(&debug, "debug", false, "print the session list instead of starting the interactive browser")

	rootCmd.AddCommand(
		NewListCommand(),
		NewShowCommand(),
		NewReadCommand(),
		NewSummaryCommand(),
		NewLoglinesCommand(),
		NewExportCommand(),
		NewAnalyzeCommand(),
	)

	return rootCmd
}

// runBrowse starts the interactive browser and prints the details of the
// session picked for resuming. --debug skips the browser entirely.
func runBrowse(cmd *cobra.Command, debug bool) error {
	ctx := cmd.Context()

	client, err := api.NewClient(ctx)
	if err != nil {
		return err
	}

	if debug {
		sessions, err := client.ListSessions(ctx)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No remote sessions found.")
			return nil
		}
		for i := range sessions {
			fmt.Print(display.SessionRow(&sessions[i]))
		}
		return nil
	}

	selected, err := tui.ShowTUI(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to run interactive browser: %w", err)
	}
	if selected == nil {
		return nil
	}

	fmt.Print(display.SessionDetail(selected))
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
