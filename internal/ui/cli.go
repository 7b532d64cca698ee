package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/applog"
	"github.com/javiermolinar/almanac/internal/clock"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/db"
	"github.com/javiermolinar/almanac/internal/store"
	"github.com/javiermolinar/almanac/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  *store.Store
	kv     db.KV
	config *config.Config
	now    clock.Clock
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application. A nil store is opened lazily from
// the storage section of cfg the first time a command needs it.
func NewApp(st *store.Store, cfg *config.Config) *App {
	a := &App{store: st, config: cfg, now: clock.System}

	a.root = &cobra.Command{
		Use:   "almanac",
		Short: "A terminal calendar",
		Long: `Almanac is a terminal calendar and event manager.

Run it without arguments to open the month view. Use the subcommands
to add, list, search, import and export events from scripts, or run
"almanac watch" to deliver reminders in the background.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.initLogging()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			return tui.Run(a.store, a.config)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+applog.DefaultPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.monthCmd())
	a.root.AddCommand(a.upcomingCmd())
	a.root.AddCommand(a.searchCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.watchCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "almanac %s (commit: %s)\n", Version, Commit)
		},
	}
}

// initLogging opens the log file. --debug wins over the [log] section.
func (a *App) initLogging() error {
	if a.debug {
		return applog.Init(applog.DefaultPath, applog.LevelDebug)
	}
	if a.config == nil || a.config.Log.Path == "" {
		return nil
	}
	level, err := applog.ParseLevel(a.config.Log.Level)
	if err != nil {
		return err
	}
	return applog.Init(a.config.Log.Path, level)
}

// ensureStore opens the configured backend and loads the events once.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}

	ctx := context.Background()
	kv, err := db.Open(ctx, a.config.Storage)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	st := store.New(kv)
	if err := st.Load(ctx); err != nil {
		_ = kv.Close()
		return fmt.Errorf("loading events: %w", err)
	}

	a.kv = kv
	a.store = st
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the storage backend and flushes the log.
func (a *App) Close() error {
	var err error
	if a.kv != nil {
		err = a.kv.Close()
	}
	applog.Close()
	return err
}

// reportStoreErr turns store sentinels into messages a CLI user can act on.
func reportStoreErr(action string, err error) error {
	switch {
	case errors.Is(err, store.ErrEventNotFound):
		return fmt.Errorf("%s: no event with that id (see 'almanac list')", action)
	case errors.Is(err, store.ErrIndexOutOfRange):
		return fmt.Errorf("%s: no event at that index (see 'almanac list --date')", action)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
