package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/payroll/networks"
)

func resetVars(t *testing.T) {
	t.Helper()
	Network = DefaultNetwork
	ENSNetwork = DefaultENSNetwork
	Contract = ""
	Debounce = 500 * time.Millisecond
	Keystore = ""
	FromKeyEnv = DefaultKeyEnv
	GasPrice = 0
	TipGas = 0
	CacheSize = 0
	CacheTTL = 0
	ExtraNodes = map[string]map[string]string{}
}

func noFlags(string) bool { return false }

const sample = `
network: sepolia
contract: "0x67968Dea9e69199D96E71439e381d4A145FC9c18"
debounce: 300ms
nodes:
  sepolia:
    my-node: https://rpc.example.com
networks:
  - name: payroll-devnet
    chainID: 31337
    nodeVariableName: DEVNET_NODE
    defaultNodes:
      local: http://127.0.0.1:8545
cache:
  size: 64
  ttl: 1m
`

func TestParseAndApply(t *testing.T) {
	resetVars(t)
	f, err := ParseFile([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, f.Apply(noFlags))

	assert.Equal(t, "sepolia", Network)
	assert.Equal(t, "0x67968Dea9e69199D96E71439e381d4A145FC9c18", Contract)
	assert.Equal(t, 300*time.Millisecond, Debounce)
	assert.Equal(t, 64, CacheSize)
	assert.Equal(t, time.Minute, CacheTTL)
	assert.Equal(t, map[string]string{"a": "b", "my-node": "https://rpc.example.com"},
		NodesFor("sepolia", map[string]string{"a": "b"}))

	devnet, err := networks.GetNetwork("payroll-devnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), devnet.GetChainID())
	assert.NoError(t, Validate())
}

func TestFlagsWinOverFile(t *testing.T) {
	resetVars(t)
	Network = "base"
	f, err := ParseFile([]byte("network: sepolia\ndebounce: 1s\n"))
	require.NoError(t, err)
	require.NoError(t, f.Apply(func(flag string) bool { return flag == "network" }))

	assert.Equal(t, "base", Network)
	assert.Equal(t, time.Second, Debounce)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := ParseFile([]byte("netwerk: sepolia\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyRejectsBadDuration(t *testing.T) {
	resetVars(t)
	f, err := ParseFile([]byte("debounce: soon\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, f.Apply(noFlags), ErrInvalidConfig)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.yaml")

	f, err := LoadFile(missing, false)
	require.NoError(t, err)
	assert.Equal(t, &File{}, f)

	_, err = LoadFile(missing, true)
	assert.Error(t, err)

	path := filepath.Join(dir, "sub", "config.yaml")
	resetVars(t)
	Network = "sepolia"
	Contract = "0x67968Dea9e69199D96E71439e381d4A145FC9c18"
	require.NoError(t, CurrentFile().Write(path))
	_, err = os.Stat(path)
	require.NoError(t, err)

	f, err = LoadFile(path, true)
	require.NoError(t, err)
	assert.Equal(t, "sepolia", f.Network)
	assert.Equal(t, "500ms", f.Debounce)
}

func TestValidate(t *testing.T) {
	resetVars(t)
	require.NoError(t, Validate())

	Network = "narnia"
	assert.ErrorIs(t, Validate(), networks.ErrNetworkNotFound)

	resetVars(t)
	Contract = "0x1234"
	assert.ErrorIs(t, Validate(), ErrInvalidContract)

	resetVars(t)
	Debounce = 0
	assert.ErrorIs(t, Validate(), ErrInvalidDebounce)

	resetVars(t)
	Keystore = "/tmp/key.json"
	FromKeyEnv = "OTHER_KEY"
	assert.ErrorIs(t, Validate(), ErrConflictingKeys)

	resetVars(t)
	GasPrice = -1
	assert.ErrorIs(t, Validate(), ErrInvalidGasConfig)
}
