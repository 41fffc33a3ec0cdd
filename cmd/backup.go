package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"hmss/internal/backup"
	"hmss/internal/config"
	"hmss/internal/runner"
)

// backupTestRun runs the backup without executing git.
var backupTestRun bool

// backupCmd fetches and pulls every royal repo. It is what the .bashrc hook
// runs in the background, so a missing config file is an error here rather
// than a prompt to write the defaults.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Fetch and pull every royal repo",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Read(configPath)
		if err != nil {
			return err
		}

		log, err := openRunLog()
		if err != nil {
			return err
		}
		defer log.Close()

		// Output is hidden; the hook sends it to /dev/null anyway.
		b := backup.New(cfg, runner.NewExec(backupTestRun, false), log)
		if !b.BackUpAll(cmd.Context()) {
			return errors.New("some royal repos were not backed up")
		}
		return nil
	},
}

func init() {
	backupCmd.Flags().BoolVar(&backupTestRun, "test-run", false, "Do not execute git")
}
