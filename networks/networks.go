package networks

import (
	"sync"
)

var (
	cachedNetwork Network
	mu            sync.Mutex
)

var NetworkString string

// CurrentNetwork returns the network selected by NetworkString, falling back
// to mainnet when the name is unknown.
func CurrentNetwork() Network {
	mu.Lock()
	defer mu.Unlock()
	if cachedNetwork != nil {
		return cachedNetwork
	}
	cachedNetwork = resolve(NetworkString)
	return cachedNetwork
}

func SetNetwork(networkStr string) Network {
	mu.Lock()
	defer mu.Unlock()
	NetworkString = networkStr
	cachedNetwork = resolve(networkStr)
	return cachedNetwork
}

func resolve(networkStr string) Network {
	n, err := GetNetwork(networkStr)
	if err != nil {
		return EthereumMainnet
	}
	return n
}
