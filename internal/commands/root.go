package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/tock/internal/clock"
	"github.com/balkashynov/tock/internal/config"
	"github.com/balkashynov/tock/internal/db"
	"github.com/balkashynov/tock/internal/logging"
	"github.com/balkashynov/tock/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Shared state for the running command, set up by withDB
var (
	cfg    config.Config
	logger = zap.NewNop()
	store  *db.Store
	now    = clock.System.Now
)

var rootCmd = &cobra.Command{
	Use:   "tock",
	Short: "Stopwatches and countdown timers in your terminal",
	Long: `tock keeps any number of named stopwatches and countdown timers.
Run it without arguments for the interactive view, or use the sw and timer
subcommands to drive them from scripts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: withDB(true, func(cmd *cobra.Command, args []string) {
		if err := tui.RunApp(tuiDeps()); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
		}
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tock version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tock %s (commit %s, built %s)\n", version, commit, date)
	},
}

// initDB loads config, opens the log and the database
func initDB(watch bool) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = log

	store, err = db.Open(cfg.DBPath, logger, db.Options{
		WatchFile: watch,
		Debug:     cfg.LogLevel == "debug",
	})
	if err != nil {
		logger.Error("failed to open database", zap.String("path", cfg.DBPath), zap.Error(err))
		return err
	}

	logger.Debug("database ready", zap.String("path", cfg.DBPath), zap.Bool("watch", watch))
	return nil
}

func closeDB() {
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
		store = nil
	}
	_ = logger.Sync()
}

// withDB wraps a command function to initialize the database first. watch
// subscribes to writes made by other tock processes.
func withDB(watch bool, fn func(*cobra.Command, []string)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := initDB(watch); err != nil {
			return err
		}
		defer closeDB()

		fn(cmd, args)
		return nil
	}
}

func tuiDeps() tui.Deps {
	return tui.Deps{
		Store:        store,
		Clock:        clock.Func(now),
		TickInterval: cfg.TickInterval,
		Log:          logger,
	}
}

// parseID parses a stopwatch or timer ID argument
func parseID(kind, arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s ID '%s'", kind, arg)
	}
	return uint(id), nil
}

func parseIDs(kind string, args []string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, arg := range args {
		id, err := parseID(kind, arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(stopwatchCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
