package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hmss/internal/config"
	"hmss/internal/installer"
	"hmss/internal/logger"
	"hmss/internal/runner"
)

var (
	// minimal stops after the essential steps.
	minimal bool
	// installTestRun runs the catalog without executing any external command.
	installTestRun bool
	// showOutput lets apt and pip print to the terminal.
	showOutput bool
)

// installCmd walks the install catalog against the configuration file.
// A missing config file is replaced with the defaults and the user is asked to
// review it; a malformed one stops the run before any step executes.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install packages, set up git, clone the royal repos and set the wallpaper",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadForHuman(configPath)
		if errors.Is(err, config.ErrNoConfig) {
			return nil
		}
		if err != nil {
			return err
		}

		log, err := openRunLog()
		if err != nil {
			return err
		}
		defer log.Close()

		inst := installer.New(cfg, runner.NewExec(installTestRun, showOutput), log,
			installer.WithMinimal(minimal),
			installer.WithTestRun(installTestRun),
			installer.WithShowOutput(showOutput),
		)
		if inst.Run(cmd.Context()) == installer.Failed {
			return fmt.Errorf("installation failed: %v", inst.FailureLog())
		}
		return nil
	},
}

// loadForHuman loads the config, explaining to the user what to do when it is
// missing or does not have the expected shape.
func loadForHuman(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}

	var schemaErr *config.SchemaError
	switch {
	case errors.Is(err, config.ErrNoConfig):
		logger.Warn("[WARN] No config file found, so wrote the defaults to %s\n", path)
		logger.Warn("[WARN] Check it over, then run this command again.\n")
	case errors.As(err, &schemaErr):
		logger.Error("[ERROR] %v\n", schemaErr)
		if shape, jerr := config.DefaultJSON(); jerr == nil {
			logger.Error("[ERROR] A config file should look something like this:\n%s", shape)
		}
	}
	return nil, err
}

func init() {
	installCmd.Flags().BoolVar(&minimal, "minimal", false, "Run only the essential steps")
	installCmd.Flags().BoolVar(&installTestRun, "test-run", false, "Do not execute external commands")
	installCmd.Flags().BoolVar(&showOutput, "show-output", false, "Show the output of apt, pip and git")
}
