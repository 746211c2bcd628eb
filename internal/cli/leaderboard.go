package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cinequiz/internal/domain"
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Scoreboards",
	}

	global := &cobra.Command{
		Use:   "global",
		Short: "All-time global scoreboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			entries, err := app.Backend.GlobalLeaderboard(cmd.Context())
			if err != nil {
				return err
			}
			printEntries(cmd, entries)
			return nil
		},
	}

	movies := &cobra.Command{
		Use:   "movies",
		Short: "Movies with per-movie scoreboards",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			boards, err := app.Backend.LeaderboardMovies(cmd.Context())
			if err != nil {
				return err
			}
			for _, board := range boards {
				title := board.Title
				// Enrich with the catalog title when the backend stores only the ID.
				if title == "" {
					if details, err := app.Details.GetDetails(cmd.Context(), board.MovieID); err == nil {
						title = details.Title
					} else {
						title = "Movie " + board.MovieID
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%8s  %s\n", board.MovieID, title)
			}
			if len(boards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No movie scoreboards yet.")
			}
			return nil
		},
	}

	movie := &cobra.Command{
		Use:   "movie <movie-id>",
		Short: "Scoreboard for one movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			board, err := app.Backend.MovieLeaderboard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printEntries(cmd, board.Entries)
			return nil
		},
	}

	cmd.AddCommand(global, movies, movie)
	return cmd
}

func printEntries(cmd *cobra.Command, entries []domain.LeaderboardEntry) {
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores yet.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(out, "#%-4d %-24s %d\n", e.Rank, e.Username, e.Score)
	}
}
