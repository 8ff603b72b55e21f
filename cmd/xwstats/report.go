package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/xwstats/internal/browse"
	"github.com/verte-zerg/xwstats/internal/export"
	"github.com/verte-zerg/xwstats/internal/leaderboard"
	"github.com/verte-zerg/xwstats/internal/stats"
)

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard <csv_file_path>",
		Short: "Print the fastest solves from a CSV file",
		Args:  cobra.ArbitraryArgs,
		RunE:  runLeaderboardCmd,
	}
}

func runLeaderboardCmd(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Usage: xwstats leaderboard <csv_file_path>")
		return err
	}
	return leaderboard.Run(args[0], cmd.OutOrStdout())
}

func newSummaryCmd() *cobra.Command {
	var window int
	cmd := &cobra.Command{
		Use:   "summary <csv_file_path>",
		Short: "Summarize a CSV written by fetch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if window <= 0 {
				return fmt.Errorf("--window must be > 0")
			}
			return runSummary(cmd, args[0], window)
		},
	}
	cmd.Flags().IntVar(&window, "window", stats.DefaultTrendWindow, "moving average window for the trend line")
	return cmd
}

func runSummary(cmd *cobra.Command, path string, window int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	recs, err := export.Read(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return stats.RenderSummary(cmd.OutOrStdout(), stats.Summarize(recs), window)
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <csv_file_path>",
		Short: "Browse the leaderboard interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runBrowseCmd,
	}
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	rows, err := leaderboard.Load(path, cmd.ErrOrStderr())
	if err != nil {
		leaderboard.ReportLoadError(cmd.ErrOrStderr(), path, err)
		return nil
	}
	entries := leaderboard.Rank(rows, leaderboard.MaxEntries, cmd.ErrOrStderr())

	program := tea.NewProgram(browse.NewModel(path, entries), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}
