package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/ics"
	"github.com/javiermolinar/almanac/internal/store"
)

func (a *App) importCmd() *cobra.Command {
	var (
		from   string
		until  string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import [file.ics]",
		Short: "Import events from an iCalendar file",
		Long: `Import every VEVENT from an iCalendar (.ics) file.

Recurring events are expanded from --from (default today) to --until
(default 90 days later); each occurrence becomes its own event. Single
events are imported whatever their date. Use "-" to read stdin.`,
		Example: `  almanac import ~/Downloads/work.ics
  almanac import holidays.ics --until=2026-12-31 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			opts, err := importOptions(from, until, a.now)
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			source := "stdin"
			if args[0] != "-" {
				path, err := resolvePath(args[0])
				if err != nil {
					return err
				}
				f, err := openCalendar(path)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				r, source = f, path
			}

			events, err := ics.Import(r, opts)
			if err != nil {
				return fmt.Errorf("importing %s: %w", source, err)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				printEventList(out, events)
				fmt.Fprintf(out, "Would import %d events from %s\n", len(events), source)
				return nil
			}

			count, err := importEvents(context.Background(), a.store, events)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %d events from %s\n", formatSuccess("Imported"), count, source)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Expand recurring events from this date (default today)")
	cmd.Flags().StringVar(&until, "until", "", "Expand recurring events up to this date (default 90 days after --from)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the events without saving them")

	return cmd
}

// importOptions turns the --from/--until flags into an expansion window.
func importOptions(from, until string, now func() time.Time) (ics.ImportOptions, error) {
	opts := ics.DefaultImportOptions(now())
	if from != "" {
		d, err := dateutil.ParseRelativeDate(from, now())
		if err != nil {
			return opts, fmt.Errorf("--from: %w", err)
		}
		opts.From = d
		opts.To = d.Add(ics.DefaultHorizon)
	}
	if until != "" {
		d, err := dateutil.ParseRelativeDate(until, now())
		if err != nil {
			return opts, fmt.Errorf("--until: %w", err)
		}
		// Inclusive of the whole last day.
		opts.To = d.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if opts.To.Before(opts.From) {
		return opts, dateutil.ErrEndDateBeforeStart
	}
	return opts, nil
}

// importEvents saves events in one commit, so a failure imports nothing.
func importEvents(ctx context.Context, dest *store.Store, events []event.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	added, err := dest.AddAll(ctx, events)
	if err != nil {
		return 0, fmt.Errorf("saving imported events: %w", err)
	}
	return len(added), nil
}

func openCalendar(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("calendar file does not exist: %s", path)
		}
		return nil, fmt.Errorf("checking calendar file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("calendar path is a directory: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening calendar file: %w", err)
	}
	return f, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
