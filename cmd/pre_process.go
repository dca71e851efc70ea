package cmd

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tranvictor/payroll/config"
	"github.com/tranvictor/payroll/ens"
	"github.com/tranvictor/payroll/networks"
	"github.com/tranvictor/payroll/payroll"
	"github.com/tranvictor/payroll/ui"
	"github.com/tranvictor/payroll/util/account"
	"github.com/tranvictor/payroll/util/broadcaster"
	"github.com/tranvictor/payroll/util/monitor"
	"github.com/tranvictor/payroll/util/reader"
)

func nodesOf(network networks.Network) map[string]string {
	return config.NodesFor(network.GetName(), networks.GetNodes(network))
}

// chainReader reads from the network selected in loadConfig.
func chainReader() (networks.Network, *reader.EthReader, error) {
	network := networks.CurrentNetwork()
	return network, reader.NewEthReaderGeneric(nodesOf(network)), nil
}

// ensService resolves names on the ENS network, which can differ from the
// network the batch is paid on.
func ensService() (*ens.Service, error) {
	network, err := networks.GetNetwork(config.ENSNetwork)
	if err != nil {
		return nil, fmt.Errorf("ens network: %w", err)
	}
	return ens.NewService(reader.NewEthReaderGeneric(nodesOf(network)), ens.Options{
		CacheSize: config.CacheSize,
		CacheTTL:  config.CacheTTL,
		Logger:    logger,
	}), nil
}

func contract(r payroll.ContractReader) *payroll.Contract {
	return payroll.NewContract(config.Contract, r)
}

func loadAccount(u ui.UI) (*account.Account, error) {
	if config.Keystore != "" {
		u.Info("Keystore password for %s:", config.Keystore)
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return nil, fmt.Errorf("couldn't read the keystore password: %w", err)
		}
		return account.NewKeystoreAccount(config.Keystore, string(password))
	}
	key := strings.TrimSpace(os.Getenv(config.FromKeyEnv))
	acc, err := account.NewPrivateKeyAccount(key)
	if err != nil {
		return nil, fmt.Errorf("couldn't load the sender key from $%s: %w", config.FromKeyEnv, err)
	}
	return acc, nil
}

// newSubmitter wires the signer, broadcaster and tx monitor of network into
// a payroll.Submitter.
func newSubmitter(u ui.UI, network networks.Network, r *reader.EthReader, acc *account.Account) *payroll.Submitter {
	nodes := nodesOf(network)
	return payroll.NewSubmitter(
		contract(r),
		r,
		broadcaster.NewGenericBroadcaster(nodes),
		monitor.NewGenericTxMonitor(r),
		acc,
		payroll.SubmitterOptions{
			ChainID:      network.GetChainID(),
			GasPriceGwei: config.GasPrice,
			TipGwei:      config.TipGas,
			ExtraGas:     config.ExtraGasLimit,
			DryRun:       config.DontBroadcast,
			NoWait:       config.DontWaitToBeMined,
			OnSigned:     reportSigned(u),
			Logger:       logger,
		},
	)
}
