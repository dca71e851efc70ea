// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/tranvictor/payroll/config"
	"github.com/tranvictor/payroll/debounce"
	"github.com/tranvictor/payroll/metrics"
	"github.com/tranvictor/payroll/networks"
	"github.com/tranvictor/payroll/ui"
	"github.com/tranvictor/payroll/util/cache"
)

var (
	appUI  ui.UI = ui.NewTerminalUI()
	logger       = logr.Discard()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Pay a list of addresses or ENS names in one transaction",
	Long: fmt.Sprintf(`Payroll collects a list of recipients, typed as addresses or ENS names,
and pays all of them with a single distributePayments call to the Payroll
contract.

ENS names are resolved while you type. A recipient is added only once it
resolved to an address, and the same address can't be added twice.

Supported networks: %s. Node urls can be added per network
with the <NETWORK>_NODE env vars (for example ETHEREUM_MAINNET_NODE) or in
the config file (%s).

The signing key is read from the %s env var by default, see
"payroll distribute --help" for the other options.`,
		strings.Join(networks.GetSupportedNetworkNames(), ", "),
		config.DefaultConfigFile(),
		config.DefaultKeyEnv,
	),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if config.Verbose {
			printMetrics(appUI)
		}
	},
}

func loadConfig(cmd *cobra.Command, args []string) error {
	path := config.ConfigFile
	required := cmd.Flags().Changed("config")
	if path == "" {
		path = config.DefaultConfigFile()
	}
	f, err := config.LoadFile(path, required)
	if err != nil {
		return err
	}
	if err := f.Apply(cmd.Flags().Changed); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}
	networks.SetNetwork(config.Network)

	verbosity := -1
	if config.Verbose {
		verbosity = 1
	}
	logger = ui.NewLogger(appUI, verbosity)
	return nil
}

func printMetrics(u ui.UI) {
	rows, err := metrics.Summary()
	if err != nil {
		u.Warn("%s", err)
		return
	}
	if len(rows) == 0 {
		return
	}
	u.Section("Metrics")
	u.Table([]string{"Metric", "Value"}, rows)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&config.Network, "network", "k", config.DefaultNetwork, fmt.Sprintf(
		"network the Payroll contract lives on. Valid values: %s.",
		strings.Join(networks.GetSupportedNetworkNames(), ", ")))
	pf.StringVar(&config.ENSNetwork, "ens-network", config.DefaultENSNetwork, "network used to resolve ENS names")
	pf.StringVar(&config.ConfigFile, "config", "", fmt.Sprintf("config file (default %s)", config.DefaultConfigFile()))
	pf.DurationVar(&config.Debounce, "debounce", debounce.DefaultWindow, "quiet period before a typed recipient is resolved")
	pf.IntVar(&config.CacheSize, "cache-size", cache.DefaultSize, "number of ENS lookups kept in memory")
	pf.DurationVar(&config.CacheTTL, "cache-ttl", cache.DefaultTTL, "how long an ENS lookup is cached")
	pf.BoolVarP(&config.Verbose, "verbose", "v", false, "show component logs and a metrics summary")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		appUI.Error("%s", err)
		os.Exit(1)
	}
}
