package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cinequiz/internal/browse"
	"cinequiz/internal/catalog"
	"cinequiz/internal/config"
	"cinequiz/internal/domain"
	"cinequiz/internal/search"
)

func newSearchCmd() *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the movie catalog by title",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			if interactive {
				return runInteractiveSearch(cmd.Context(), cmd, app)
			}
			query := strings.Join(args, " ")
			if query == "" {
				return fmt.Errorf("search: query required (or use --interactive)")
			}
			movies, err := app.Catalog.Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			printMovies(cmd, movies)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "debounced as-you-type search")
	return cmd
}

// runInteractiveSearch re-runs the search after each entered line, debounced
// so rapid edits only hit the catalog once per quiet period.
func runInteractiveSearch(ctx context.Context, cmd *cobra.Command, app *App) error {
	quiet := config.Duration(app.Cfg.Search.Debounce, search.DefaultQuiet)
	results := make(chan []domain.Movie, 1)

	deb := search.NewDebouncer(quiet,
		func(ctx context.Context, query string) ([]domain.Movie, error) {
			return app.Catalog.Search(ctx, query)
		},
		func(query string, movies []domain.Movie, err error) {
			if err != nil {
				app.Notifier.Error("Search failed: " + err.Error())
				return
			}
			select {
			case results <- movies:
			default:
			}
		})
	defer deb.Stop()

	fmt.Fprintln(cmd.OutOrStdout(), "Type to search, empty line to quit.")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(cmd.OutOrStdout(), "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return nil
		}
		deb.Query(ctx, line)

		select {
		case movies := <-results:
			printMovies(cmd, movies)
		case <-time.After(quiet + 10*time.Second):
			app.Notifier.Error("Search timed out")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func newBrowseCmd() *cobra.Command {
	var pages int
	cmd := &cobra.Command{
		Use:   "browse <popular|top-rated|now-playing|upcoming>",
		Short: "Browse a catalog category with seamless paging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			category, err := catalog.ParseCategory(args[0])
			if err != nil {
				return err
			}

			pager := browse.NewPager(app.Catalog, category)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for i := 0; pager.More(); i++ {
				if pages > 0 && i >= pages {
					break
				}
				if err := pager.LoadMore(cmd.Context()); err != nil {
					return err
				}
				printMovies(cmd, pager.Movies())
				if !pager.More() {
					fmt.Fprintln(cmd.OutOrStdout(), "You've reached the end of the list.")
					break
				}
				if pages > 0 {
					continue
				}
				fmt.Fprint(cmd.OutOrStdout(), "More? [Y/n] ")
				if !scanner.Scan() || strings.EqualFold(strings.TrimSpace(scanner.Text()), "n") {
					break
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&pages, "pages", "p", 0, "fetch this many pages without prompting")
	return cmd
}

func newMovieCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movie <id>",
		Short: "Show movie details with cast and trailer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			details, err := app.Details.GetDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)  %.1f/10\n", details.Title, details.Year(), details.VoteAverage)
			if len(details.Genres) > 0 {
				names := make([]string, len(details.Genres))
				for i, g := range details.Genres {
					names[i] = g.Name
				}
				fmt.Fprintln(out, strings.Join(names, ", "))
			}
			fmt.Fprintln(out, details.Overview)
			if url := app.Catalog.ImageURL("w500", details.PosterPath); url != "" {
				fmt.Fprintln(out, "Poster:", url)
			}
			for i, member := range details.Cast {
				if i == 8 {
					break
				}
				fmt.Fprintf(out, "  %s as %s\n", member.Name, member.Character)
			}
			if trailer, ok := details.Trailer(); ok {
				fmt.Fprintln(out, "Trailer: https://www.youtube.com/watch?v="+trailer.Key)
			}
			return nil
		},
	}
}

func printMovies(cmd *cobra.Command, movies []domain.Movie) {
	out := cmd.OutOrStdout()
	for _, m := range movies {
		fmt.Fprintf(out, "%8d  %-40s %s\n", m.ID, m.Title, m.Year())
	}
	if len(movies) == 0 {
		fmt.Fprintln(out, "No results.")
	}
}
