package ens

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/text/unicode/norm"
)

const reverseSuffix = "addr.reverse"

// Normalize lower cases name and puts it in NFC form.
func Normalize(name string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(name)))
}

// NameHash computes the EIP-137 node of name. The empty name is the root
// node.
func NameHash(name string) (common.Hash, error) {
	node := common.Hash{}
	name = Normalize(name)
	if name == "" {
		return node, nil
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		if labels[i] == "" {
			return common.Hash{}, fmt.Errorf("%w: empty label in %q", ErrInvalidName, name)
		}
		labelHash := crypto.Keccak256Hash([]byte(labels[i]))
		node = crypto.Keccak256Hash(node.Bytes(), labelHash.Bytes())
	}
	return node, nil
}

// ReverseName is the name under which address registers its primary name.
func ReverseName(address common.Address) string {
	return strings.ToLower(address.Hex()[2:]) + "." + reverseSuffix
}
