package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		Example: `  almanac config
  almanac config --show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath(), show)
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the configuration and exit")
	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string, showOnly bool) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(out, cfg)
	if showOnly {
		return nil
	}

	reader := bufio.NewReader(in)

	// Ask if user wants to edit
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	cal := &cfg.Calendar
	cal.UpcomingLimit = promptInt(reader, out, "Upcoming events shown", cal.UpcomingLimit)
	cal.EventsPerCell = promptInt(reader, out, "Events per grid cell", cal.EventsPerCell)
	cal.CurrentWindowMinutes = promptInt(reader, out, "Current-event window (minutes)", cal.CurrentWindowMinutes)
	cal.DefaultReminder = promptInt(reader, out, "Default reminder (0, 5, 10, 15, 30, 60, -1 for none)", cal.DefaultReminder)
	cfg.Storage.Driver = promptValue(reader, out, "Storage driver (sqlite, postgres)", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverPostgres {
		cfg.Storage.DSN = promptValue(reader, out, "Postgres DSN", cfg.Storage.DSN)
	} else {
		cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	}
	cfg.Reminders.Enabled = promptBool(reader, out, "Reminders enabled", cfg.Reminders.Enabled)
	cfg.Reminders.Resync = promptValue(reader, out, "Reminder resync schedule (cron)", cfg.Reminders.Resync)
	cfg.Reminders.Bell = promptBool(reader, out, "Ring the terminal bell", cfg.Reminders.Bell)
	cfg.Telegram.Token = promptValue(reader, out, "Telegram bot token (empty to disable)", cfg.Telegram.Token)
	if cfg.Telegram.Token != "" {
		cfg.Telegram.ChatID = int64(promptInt(reader, out, "Telegram chat id", int(cfg.Telegram.ChatID)))
	} else {
		cfg.Telegram.ChatID = 0
	}
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.Log.Path = promptValue(reader, out, "Log file (empty to disable)", cfg.Log.Path)
	cfg.Log.Level = promptValue(reader, out, "Log level (debug, info, error)", cfg.Log.Level)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[calendar]")
	fmt.Fprintf(out, "  upcoming_limit         = %d\n", cfg.Calendar.UpcomingLimit)
	fmt.Fprintf(out, "  events_per_cell        = %d\n", cfg.Calendar.EventsPerCell)
	fmt.Fprintf(out, "  current_window_minutes = %d\n", cfg.Calendar.CurrentWindowMinutes)
	fmt.Fprintf(out, "  default_reminder       = %d\n", cfg.Calendar.DefaultReminder)
	fmt.Fprintf(out, "  min_year               = %d\n", cfg.Calendar.MinYear)
	fmt.Fprintf(out, "  max_year               = %d\n", cfg.Calendar.MaxYear)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  driver                 = %s\n", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverPostgres {
		fmt.Fprintf(out, "  dsn                    = %s\n", maskSecret(cfg.Storage.DSN))
	} else {
		fmt.Fprintf(out, "  db_path                = %s\n", cfg.Storage.DBPath)
	}
	fmt.Fprintln(out, "\n[reminders]")
	fmt.Fprintf(out, "  enabled                = %t\n", cfg.Reminders.Enabled)
	fmt.Fprintf(out, "  resync                 = %s\n", cfg.Reminders.Resync)
	fmt.Fprintf(out, "  bell                   = %t\n", cfg.Reminders.Bell)
	if cfg.HasTelegram() {
		fmt.Fprintln(out, "\n[telegram]")
		fmt.Fprintf(out, "  token                  = %s\n", maskSecret(cfg.Telegram.Token))
		fmt.Fprintf(out, "  chat_id                = %d\n", cfg.Telegram.ChatID)
	}
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme                  = %s\n", cfg.UI.Theme)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  path                   = %s\n", cfg.Log.Path)
	fmt.Fprintf(out, "  level                  = %s\n", cfg.Log.Level)
}

// maskSecret keeps the first four characters of a token or DSN.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", 8)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptBool(reader *bufio.Reader, out io.Writer, label string, current bool) bool {
	value := strings.ToLower(promptValue(reader, out, label+" (yes/no)", yesNo(current)))
	switch value {
	case "y", "yes", "true":
		return true
	case "n", "no", "false":
		return false
	default:
		return current
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
