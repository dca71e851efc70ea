package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tranvictor/payroll/config"
)

// AddContractFlag registers --contract on c.
func AddContractFlag(c *cobra.Command) {
	c.Flags().
		StringVarP(&config.Contract, "contract", "c", "", "Payroll contract address. Defaults to the config file value, then to the canonical deployment")
}

func AddCommonFlagsToTransactionalCmds(c *cobra.Command) {
	AddContractFlag(c)
	c.Flags().
		StringVar(&config.FromKeyEnv, "from-key-env", config.DefaultKeyEnv, "env var holding the hex private key of the sender")
	c.Flags().
		StringVar(&config.Keystore, "keystore", "", "keystore file of the sender, the password is asked interactively. Can't be used with a custom --from-key-env")
	c.Flags().
		Float64VarP(&config.GasPrice, "gas-price", "p", 0, "Max gas price in gwei. If default value is used, it is suggested by the nodes")
	c.Flags().
		Float64VarP(&config.TipGas, "tip", "s", 0, "tip in gwei, used in dynamic fee txs. If default value is used, it is suggested by the nodes")
	c.Flags().
		Uint64VarP(&config.ExtraGasLimit, "extra-gas", "G", config.DefaultExtraGas, "Extra gas limit added on top of the estimation")
	c.Flags().
		BoolVarP(&config.DontBroadcast, "dry-run", "d", false, "Will not broadcast the tx, only show the signed tx.")
	c.Flags().
		BoolVarP(&config.DontWaitToBeMined, "no-wait", "F", false, "Will not wait the tx to be mined.")
	c.Flags().
		BoolVarP(&config.Yes, "yes", "y", false, "Don't ask for confirmation before signing.")
}
