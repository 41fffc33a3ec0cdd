package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"hmss/internal/config"
	"hmss/internal/logger"
)

var (
	// overwrite lets `config init` replace an existing file.
	overwrite bool
	// outputFormat is json or yaml for `config show`.
	outputFormat string
)

// configCmd groups the configuration file subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the hmss configuration file",
}

// configInitCmd writes the default configuration.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !overwrite {
			if _, err := os.Stat(configPath); err == nil {
				logger.Warn("[WARN] %s already exists; use --overwrite to replace it\n", configPath)
				return nil
			}
		}
		if err := config.WriteDefaults(configPath, overwrite); err != nil {
			return err
		}
		logger.Info("[INFO] Wrote default configuration to %s\n", configPath)
		return nil
	},
}

// configShowCmd prints the fully resolved configuration, derived paths included.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Read(configPath)
		if err != nil {
			return err
		}

		var out []byte
		switch outputFormat {
		case "json":
			out, err = json.MarshalIndent(cfg, "", "    ")
			out = append(out, '\n')
		case "yaml":
			out, err = yaml.Marshal(cfg)
		default:
			return fmt.Errorf("unknown output format %q (want json or yaml)", outputFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	configShowCmd.Flags().StringVarP(&outputFormat, "output", "o", "json", "Output format: json or yaml")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
