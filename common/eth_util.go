package common

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// MustParseABI parses a JSON ABI definition and panics on malformed input.
// It is meant for ABIs embedded in the binary.
func MustParseABI(definition string) *abi.ABI {
	result, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}
	return &result
}

func HexToAddress(hex string) common.Address {
	return common.HexToAddress(hex)
}

func AddressesToHexes(addrs []common.Address) []string {
	result := []string{}
	for _, a := range addrs {
		result = append(result, a.Hex())
	}
	return result
}

func HexToHash(hex string) common.Hash {
	return common.HexToHash(hex)
}
