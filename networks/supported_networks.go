package networks

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Insert more Network implementation here to support
// more chains
var supportedNetworks = []Network{
	EthereumMainnet,
	Sepolia,
	BaseMainnet,
	ArbitrumMainnet,
	OptimismMainnet,
}

var globalSupportedNetworks = newSupportedNetworks()
var ErrNetworkNotFound = fmt.Errorf("network not found")

type networks struct {
	mu           sync.RWMutex
	networks     map[string]Network
	networksByID map[uint64]Network
}

func (n *networks) getSupportedNetworkNames() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res := []string{}
	for name := range n.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d is not supported", id)
	}
	return res, nil
}

func (n *networks) getNetwork(name string) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networks[strings.ToLower(name)]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) add(network Network) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	names := append([]string{network.GetName()}, network.GetAlternativeNames()...)
	for _, name := range names {
		if existing, found := n.networks[name]; found && existing.GetName() != network.GetName() {
			return fmt.Errorf("network with name or alternative name of '%s' already exists", name)
		}
	}
	for _, name := range names {
		n.networks[name] = network
	}
	n.networksByID[network.GetChainID()] = network
	return nil
}

func newSupportedNetworks() *networks {
	result := &networks{
		networks:     map[string]Network{},
		networksByID: map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if err := result.add(n); err != nil {
			panic(err)
		}
	}
	return result
}

func GetSupportedNetworks() []Network {
	globalSupportedNetworks.mu.RLock()
	defer globalSupportedNetworks.mu.RUnlock()
	res := []Network{}
	for _, n := range globalSupportedNetworks.networksByID {
		res = append(res, n)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].GetChainID() < res[j].GetChainID() })
	return res
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	return globalSupportedNetworks.getSupportedNetworkNames()
}

// AddNetwork registers a network declared outside of the binary, replacing a
// built-in network of the same name.
func AddNetwork(network Network) error {
	return globalSupportedNetworks.add(network)
}

// GetNodes returns the default nodes of a network plus the custom node set
// through the network's node env var, if any.
func GetNodes(network Network) map[string]string {
	nodes := map[string]string{}
	for name, url := range network.GetDefaultNodes() {
		nodes[name] = url
	}
	customNode := strings.Trim(os.Getenv(network.GetNodeVariableName()), " ")
	if customNode != "" {
		nodes["custom-node"] = customNode
	}
	return nodes
}
