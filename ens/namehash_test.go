package ens

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameHash(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "0x0000000000000000000000000000000000000000000000000000000000000000"},
		{"eth", "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae"},
		{"foo.eth", "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"},
		{"FOO.eth", "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"},
		{" foo.eth ", "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"},
	}
	for _, tc := range tests {
		got, err := NameHash(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got.Hex(), tc.name)
	}
}

func TestNameHashRejectsEmptyLabels(t *testing.T) {
	for _, name := range []string{"foo..eth", ".eth", "eth."} {
		_, err := NameHash(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestNormalizeComposes(t *testing.T) {
	// "e" followed by a combining acute accent becomes a single rune
	assert.Equal(t, "caf\u00e9.eth", Normalize("CAFE\u0301.eth"))
}

func TestReverseName(t *testing.T) {
	addr := common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	assert.Equal(t, "d8da6bf26964af9d7eed9e03e53415d37aa96045.addr.reverse", ReverseName(addr))
}
