package cmd

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"hmss/internal/config"
	"hmss/internal/logger"
)

// debug indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// configPath is the JSON configuration file, `--config`.
var configPath string

// logPath is the append-only run log, `--log-file`.
var logPath string

// rootCmd is the base command for the CLI tool `hmss`.
var rootCmd = &cobra.Command{
	Use:          "hmss",
	Short:        "His Majesty's Software Suite: provision a Linux workstation and back up the royal repos",
	SilenceUsage: true,

	// PersistentPreRun runs before any subcommand: set up console logging and
	// pull secrets such as HMSS_GIT_PAT in from ~/.hmss.env.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
		loadEnv(config.DefaultEnvPath())
	},
}

// loadEnv loads KEY=value pairs from path without overriding variables that
// are already set. A missing file is fine.
func loadEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		logger.Warn("[WARN] Failed to load %s: %v\n", path, err)
		return
	}
	logger.Debug("[DEBUG] Loaded environment from %s\n", path)
}

// Execute registers flags and subcommands and runs the CLI.
// Ctrl-C cancels the context, which stops the running child process.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", config.DefaultLogPath(), "Path to the run log")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// openRunLog opens the run log named by --log-file.
func openRunLog() (*logger.RunLog, error) {
	log, err := logger.NewRunLog(logPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("[DEBUG] Logging run to %s\n", log.Path())
	return log, nil
}
