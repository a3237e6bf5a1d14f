package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/padraicb/go-timesheet-sync/internal/api"
	"github.com/padraicb/go-timesheet-sync/internal/config"
	"github.com/padraicb/go-timesheet-sync/internal/notify"
	"github.com/padraicb/go-timesheet-sync/internal/report"
	"github.com/padraicb/go-timesheet-sync/internal/sink"
	"github.com/padraicb/go-timesheet-sync/internal/timesheet"
	"github.com/padraicb/go-timesheet-sync/internal/util"
)

var (
	// Logging related
	debug bool

	// Configuration source
	envFile  string
	timezone string

	rootCmd = &cobra.Command{
		Use:   "go-timesheet-sync",
		Short: "Approved timesheet and leave synchronization tool",
		Long: `go-timesheet-sync pulls approved timesheet and leave records for the most
recent complete 14-day pay period from a workforce-management API and appends
the rows not yet present to a tabular sink (CSV file or SQLite database).

Examples:
  go-timesheet-sync                          # one sync run with config from the environment
  go-timesheet-sync --env-file ./sync.env    # load options from a .env file first
  go-timesheet-sync daemon                   # keep running on the configured cadence`,
		RunE: runSync,
	}
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass and exit",
	RunE:  runSync,
}

const defaultLogFile = "~/.go-timesheet-sync/logs/app.log"

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "",
		"Path to a .env file with configuration options")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone for pay-period calculation (e.g., UTC, Australia/Sydney)")
}

func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and initializes logging and the time provider.
// A validation failure still notifies the admin when the notification
// options made it into the partial config.
func setup() (*config.Config, error) {
	cfg, cfgErr := config.Load(envFile)
	if cfg == nil {
		return nil, cfgErr
	}

	logLevel := cfg.LogLevel
	if debug {
		logLevel = "debug"
	}
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = expandPath(defaultLogFile)
	}
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(logLevel, logFile, debug); err != nil {
		return nil, err
	}

	if cfgErr != nil {
		var confErr *config.ConfigError
		if errors.As(cfgErr, &confErr) {
			util.LogErrorf("Configuration invalid: %v", confErr)
			notify.New(cfg).Notify("Timesheet sync: configuration error", confErr.Error())
		}
		return nil, cfgErr
	}

	if timezone != "" {
		cfg.Timezone = timezone
	}
	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	rep := runOnce(cmd.Context(), cfg)
	return rep.Err
}

// runOnce performs a single sync pass against a freshly opened sink and
// prints the run summary.
func runOnce(ctx context.Context, cfg *config.Config) timesheet.RunReport {
	if ctx == nil {
		ctx = context.Background()
	}
	notifier := notify.New(cfg)

	snk, err := sink.Open(cfg)
	if err != nil {
		util.LogErrorf("Failed to open sink: %v", err)
		notifier.Notify("Timesheet sync: sink unavailable", err.Error())
		return timesheet.RunReport{Err: err}
	}
	defer snk.Close()

	rep := timesheet.Run(ctx, cfg, timesheet.Deps{
		Client:   api.NewClient(cfg),
		Sink:     snk,
		Notifier: notifier,
	}, util.GetTimeProvider().Now())

	if err := report.NewSummaryFormatter().Format(rep); err != nil {
		util.LogWarnf("Failed to print run summary: %v", err)
	}
	return rep
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
