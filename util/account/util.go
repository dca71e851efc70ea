package account

import (
	"crypto/ecdsa"
	"errors"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrEmptyKey = errors.New("empty private key")

func AddressFromPrivateKey(key *ecdsa.PrivateKey) string {
	return crypto.PubkeyToAddress(key.PublicKey).Hex()
}

func PrivateKeyFromKeystore(file string, password string) (string, *ecdsa.PrivateKey, error) {
	json, err := os.ReadFile(file)
	if err != nil {
		return "", nil, err
	}
	key, err := keystore.DecryptKey(json, password)
	if err != nil {
		return "", nil, err
	}
	pubhex := AddressFromPrivateKey(key.PrivateKey)
	return pubhex, key.PrivateKey, nil
}

// works with both 0x prefix form and naked form
func PrivateKeyFromHex(hex string) (string, *ecdsa.PrivateKey, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "0x")
	if hex == "" {
		return "", nil, ErrEmptyKey
	}
	privkey, err := crypto.HexToECDSA(hex)
	if err != nil {
		return "", nil, err
	}
	return AddressFromPrivateKey(privkey), privkey, nil
}
