package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cinequiz/internal/domain"
)

func newWatchlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage your watchlist",
	}
	cmd.AddCommand(newWatchlistShowCmd(), newWatchlistAddCmd(), newWatchlistRemoveCmd())
	return cmd
}

func newWatchlistShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List saved movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			if err := app.Watchlist.Refresh(cmd.Context()); err != nil {
				return err
			}
			entries := app.Watchlist.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Your watchlist is empty.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%8s  %-40s %s\n", e.MovieID, e.Title, e.Year)
			}
			return nil
		},
	}
}

func newWatchlistAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <movie-id>",
		Short: "Add a movie by catalog ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("movie id must be numeric: %q", args[0])
			}
			if err := app.Watchlist.Refresh(cmd.Context()); err != nil {
				return err
			}

			details, err := app.Details.GetDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			entry := domain.WatchlistEntry{
				MovieID:   args[0],
				Title:     details.Title,
				PosterURL: app.Catalog.ImageURL("w500", details.PosterPath),
				Year:      details.Year(),
			}
			return app.Watchlist.Add(cmd.Context(), entry)
		},
	}
}

func newWatchlistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <movie-id>",
		Short: "Remove a movie by catalog ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			if err := app.Watchlist.Refresh(cmd.Context()); err != nil {
				return err
			}
			return app.Watchlist.Remove(cmd.Context(), args[0])
		},
	}
}
