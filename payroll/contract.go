// Package payroll talks to the Payroll contract that pays every recipient of
// a batch in a single distributePayments transaction.
package payroll

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	pcommon "github.com/tranvictor/payroll/common"
)

// ContractReader is implemented by reader.EthReader.
type ContractReader interface {
	ReadContractWithABI(
		result interface{},
		caddr string,
		abi *abi.ABI,
		method string,
		args ...interface{},
	) error
}

type Contract struct {
	Address string
	reader  ContractReader
	Abi     *abi.ABI
}

func NewContract(address string, r ContractReader) *Contract {
	if address == "" {
		address = DefaultContract
	}
	return &Contract{
		Address: pcommon.ChecksumAddress(address),
		reader:  r,
		Abi:     PayrollABI,
	}
}

func (c *Contract) Owner() (string, error) {
	r := new(common.Address)
	if err := c.reader.ReadContractWithABI(r, c.Address, c.Abi, "owner"); err != nil {
		return "", err
	}
	return r.Hex(), nil
}

// TotalDeposited returns the amount held by the contract, in wei.
func (c *Contract) TotalDeposited() (*big.Int, error) {
	r := big.NewInt(0)
	if err := c.reader.ReadContractWithABI(&r, c.Address, c.Abi, "totalDeposited"); err != nil {
		return nil, err
	}
	return r, nil
}

func (c *Contract) HasWithdrawn(address string) (bool, error) {
	if !pcommon.IsValidAddress(address) {
		return false, fmt.Errorf("%w: %q", ErrInvalidRecipient, address)
	}
	r := new(bool)
	if err := c.reader.ReadContractWithABI(r, c.Address, c.Abi, "hasWithdrawn", common.HexToAddress(address)); err != nil {
		return false, err
	}
	return *r, nil
}

// PendingRecipients returns the addresses among addresses that have not
// withdrawn yet, as reported by the contract.
func (c *Contract) PendingRecipients(addresses []string) ([]string, error) {
	addrs, err := toAddresses(addresses)
	if err != nil {
		return nil, err
	}
	r := new([]common.Address)
	if err := c.reader.ReadContractWithABI(r, c.Address, c.Abi, "getPendingRecipients", addrs); err != nil {
		return nil, err
	}
	return pcommon.AddressesToHexes(*r), nil
}

// DistributePaymentsData is the calldata paying every address, in order.
func (c *Contract) DistributePaymentsData(addresses []string) ([]byte, error) {
	if len(addresses) == 0 {
		return nil, ErrNoRecipients
	}
	addrs, err := toAddresses(addresses)
	if err != nil {
		return nil, err
	}
	return c.Abi.Pack("distributePayments", addrs)
}

func toAddresses(addresses []string) ([]common.Address, error) {
	result := make([]common.Address, 0, len(addresses))
	for _, a := range addresses {
		if !pcommon.IsValidAddress(a) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRecipient, a)
		}
		result = append(result, common.HexToAddress(a))
	}
	return result, nil
}
