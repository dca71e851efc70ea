package config

import (
	"time"
)

var (
	Network    string
	ENSNetwork string
	ConfigFile string
	Verbose    bool
	Debounce   time.Duration

	CacheSize int
	CacheTTL  time.Duration
)

var (
	Contract          string
	FromKeyEnv        string
	Keystore          string
	GasPrice          float64
	TipGas            float64
	ExtraGasLimit     uint64
	DontBroadcast     bool
	DontWaitToBeMined bool
	Yes               bool
)

// ExtraNodes are node urls from the config file, by network name then node
// name.
var ExtraNodes = map[string]map[string]string{}

const (
	DefaultNetwork    = "mainnet"
	DefaultENSNetwork = "mainnet"
	DefaultKeyEnv     = "PAYROLL_PRIVATE_KEY"
	DefaultExtraGas   = 20000
)

// NodesFor merges the config file nodes of network into nodes.
func NodesFor(network string, nodes map[string]string) map[string]string {
	for name, url := range ExtraNodes[network] {
		nodes[name] = url
	}
	return nodes
}
