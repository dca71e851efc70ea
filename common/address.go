package common

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	ZeroAddress string = "0x0000000000000000000000000000000000000000"

	truncateSeparator = "..."
)

var addressRegexp = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

// IsValidAddress reports whether text is a 0x prefixed, 20 byte hex address.
// Mixed case input is accepted without checking the EIP-55 checksum.
func IsValidAddress(text string) bool {
	return addressRegexp.MatchString(text)
}

// ChecksumAddress returns the EIP-55 form of a valid address. Callers must
// check the input with IsValidAddress first.
func ChecksumAddress(addr string) string {
	return common.HexToAddress(addr).Hex()
}

// SameAddress compares two hex addresses ignoring case.
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

// TruncateAddress shortens an address for display: the first 6 characters,
// "..." and the last 4 characters. Inputs too short to shorten are returned
// as is.
func TruncateAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + truncateSeparator + addr[len(addr)-4:]
}

func ScanForAddresses(para string) []string {
	re := regexp.MustCompile("0x[0-9a-fA-F]{40}([^0-9a-fA-F]|$)")
	result := re.FindAllString(para, -1)
	if result == nil {
		return []string{}
	}
	for i := 0; i < len(result); i++ {
		result[i] = result[i][0:42]
	}
	return result
}
