package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"cinequiz/internal/backend"
	"cinequiz/internal/catalog"
	"cinequiz/internal/config"
	"cinequiz/internal/friends"
	"cinequiz/internal/notify"
	"cinequiz/internal/session"
	"cinequiz/internal/watchlist"
)

var configPath string

// sessionExpiredKey dedupes the forced-logout notice within one login epoch.
const sessionExpiredKey = "session-expired"

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CINEQUIZ_CONFIG")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:           "cinequiz",
		Short:         "Movie discovery and trivia from your terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newRegisterCmd(),
		newPasswordCmd(),
		newSearchCmd(),
		newBrowseCmd(),
		newMovieCmd(),
		newWatchlistCmd(),
		newQuizCmd(),
		newLeaderboardCmd(),
		newFriendsCmd(),
		newProfileCmd(),
		newAdminCmd(),
	)
	return cmd
}

// App bundles the stores and clients the commands share.
type App struct {
	Cfg       config.Config
	Log       *slog.Logger
	Notifier  notify.Notifier
	Dedup     *notify.Deduper
	Session   *session.Store
	Backend   *backend.Client
	Catalog   *catalog.Client
	Details   *catalog.DetailCache
	Watchlist *watchlist.Store
	Friends   *friends.Manager
}

func newApp(path string) (*App, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
	notifier := notify.NewLogger(log)
	dedup := notify.NewDeduper(notifier)

	sess := session.New(cfg.Session.File)
	sess.OnExpire(func() {
		dedup.ErrorOnce(sessionExpiredKey, "Session expired. Please log in again with `cinequiz login`.")
	})

	be := backend.NewClient(cfg.Backend.BaseURL, config.Duration(cfg.Backend.Timeout, 10*time.Second), sess, log)
	cat := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.ImageURL, cfg.Catalog.APIKey)
	details := catalog.NewDetailCache(cat, config.Duration(cfg.Catalog.TTL, 10*time.Minute))

	return &App{
		Cfg:       cfg,
		Log:       log,
		Notifier:  notifier,
		Dedup:     dedup,
		Session:   sess,
		Backend:   be,
		Catalog:   cat,
		Details:   details,
		Watchlist: watchlist.NewStore(be, sess, notifier),
		Friends:   friends.NewManager(be, notifier),
	}, nil
}
