package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvictor/payroll/config"
	"github.com/tranvictor/payroll/ui"
)

var overwriteConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the payroll config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to the config file",
	Long: `Writes the network, ENS network, contract, debounce window and cache
settings currently in effect, flags included, to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ConfigFile
		if path == "" {
			path = config.DefaultConfigFile()
		}
		return writeConfig(appUI, path, overwriteConfig)
	},
}

func writeConfig(u ui.UI, path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s already exists, use --force to overwrite it", path)
	}
	if err := config.CurrentFile().Write(path); err != nil {
		return fmt.Errorf("couldn't write %s: %w", path, err)
	}
	u.Success("Config written to %s", path)
	return nil
}

func init() {
	AddContractFlag(configInitCmd)
	configInitCmd.Flags().BoolVarP(&overwriteConfig, "force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
