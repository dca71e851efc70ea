package config

import (
	"fmt"

	"github.com/tranvictor/payroll/common"
	"github.com/tranvictor/payroll/networks"
)

// Validate checks the values gathered from flags and the config file.
func Validate() error {
	if _, err := networks.GetNetwork(Network); err != nil {
		return err
	}
	if _, err := networks.GetNetwork(ENSNetwork); err != nil {
		return fmt.Errorf("ens network: %w", err)
	}
	if Contract != "" && !common.IsValidAddress(Contract) {
		return fmt.Errorf("%w: %q", ErrInvalidContract, Contract)
	}
	if Debounce <= 0 {
		return ErrInvalidDebounce
	}
	if Keystore != "" && FromKeyEnv != "" && FromKeyEnv != DefaultKeyEnv {
		return ErrConflictingKeys
	}
	if GasPrice < 0 || TipGas < 0 {
		return ErrInvalidGasConfig
	}
	return nil
}
