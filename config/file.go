package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/tranvictor/payroll/networks"
)

// File is the content of the optional yaml config file. Command line flags
// take precedence over it.
type File struct {
	Network    string                          `json:"network,omitempty"`
	ENSNetwork string                          `json:"ensNetwork,omitempty"`
	Contract   string                          `json:"contract,omitempty"`
	Debounce   string                          `json:"debounce,omitempty"`
	Nodes      map[string]map[string]string    `json:"nodes,omitempty"`
	Networks   []networks.GenericNetworkConfig `json:"networks,omitempty"`
	Cache      CacheConfig                     `json:"cache,omitempty"`
}

type CacheConfig struct {
	Size int    `json:"size,omitempty"`
	TTL  string `json:"ttl,omitempty"`
}

func getHomeDir() string {
	usr, err := user.Current()
	if err != nil {
		return os.Getenv("HOME")
	}
	return usr.HomeDir
}

func DefaultConfigFile() string {
	return filepath.Join(getHomeDir(), ".payroll", "config.yaml")
}

// LoadFile reads and parses path. A missing file is not an error unless
// required is set.
func LoadFile(path string, required bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return &File{}, nil
		}
		return nil, fmt.Errorf("couldn't read config %s: %w", path, err)
	}
	return ParseFile(data)
}

func ParseFile(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.UnmarshalStrict(data, f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return f, nil
}

// Apply copies the file values into the package variables. isSet reports
// whether a flag was given on the command line, those values are kept.
func (f *File) Apply(isSet func(flag string) bool) error {
	for _, n := range f.Networks {
		if err := networks.AddNetwork(networks.NewGenericNetwork(n)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	for network, nodes := range f.Nodes {
		if ExtraNodes[network] == nil {
			ExtraNodes[network] = map[string]string{}
		}
		for name, url := range nodes {
			ExtraNodes[network][name] = url
		}
	}
	if f.Network != "" && !isSet("network") {
		Network = f.Network
	}
	if f.ENSNetwork != "" && !isSet("ens-network") {
		ENSNetwork = f.ENSNetwork
	}
	if f.Contract != "" && !isSet("contract") {
		Contract = f.Contract
	}
	if f.Debounce != "" && !isSet("debounce") {
		d, err := time.ParseDuration(f.Debounce)
		if err != nil {
			return fmt.Errorf("%w: debounce: %w", ErrInvalidConfig, err)
		}
		Debounce = d
	}
	if f.Cache.Size > 0 && !isSet("cache-size") {
		CacheSize = f.Cache.Size
	}
	if f.Cache.TTL != "" && !isSet("cache-ttl") {
		d, err := time.ParseDuration(f.Cache.TTL)
		if err != nil {
			return fmt.Errorf("%w: cache ttl: %w", ErrInvalidConfig, err)
		}
		CacheTTL = d
	}
	return nil
}

// Write stores f as yaml at path, creating the parent directory.
func (f *File) Write(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// CurrentFile captures the package variables as a File.
func CurrentFile() *File {
	f := &File{
		Network:    Network,
		ENSNetwork: ENSNetwork,
		Contract:   Contract,
		Debounce:   Debounce.String(),
		Cache: CacheConfig{
			Size: CacheSize,
			TTL:  CacheTTL.String(),
		},
	}
	if len(ExtraNodes) > 0 {
		f.Nodes = ExtraNodes
	}
	return f
}
