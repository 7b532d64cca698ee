package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/export"
	"github.com/javiermolinar/almanac/internal/ics"
)

// Export formats.
const (
	formatICS  = "ics"
	formatJSON = "json"
	formatCSV  = "csv"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export events as iCalendar, JSON or CSV",
		Long: `Export every stored event.

ics writes an iCalendar file other calendars can import. json writes
the same date-keyed shape almanac stores. csv writes one row per event.
Without --output the export goes to stdout.`,
		Example: `  almanac export --format=ics -o almanac.ics
  almanac export --format=csv > events.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				path, err := resolvePath(output)
				if err != nil {
					return err
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("creating %s: %w", path, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			snapshot := a.store.Snapshot()
			if err := a.writeExport(w, format, snapshot); err != nil {
				return err
			}
			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %d events to %s\n", formatSuccess("Exported"), snapshot.Len(), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatICS, "Output format: ics, json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func (a *App) writeExport(w io.Writer, format string, days event.Days) error {
	switch strings.ToLower(format) {
	case formatICS:
		now := a.now()
		return ics.Export(w, days, now.Location(), now)
	case formatJSON:
		return export.ToJSON(w, days)
	case formatCSV:
		return export.ToCSV(w, days)
	default:
		return fmt.Errorf("unknown export format %q (want ics, json or csv)", format)
	}
}
