package networks

import (
	"time"
)

type GenericNetworkConfig struct {
	Name               string            `json:"name"`
	AlternativeNames   []string          `json:"alternativeNames,omitempty"`
	ChainID            uint64            `json:"chainID"`
	NativeTokenSymbol  string            `json:"nativeTokenSymbol"`
	NativeTokenDecimal uint64            `json:"nativeTokenDecimal"`
	BlockTime          uint64            `json:"blockTime"`
	NodeVariableName   string            `json:"nodeVariableName"`
	DefaultNodes       map[string]string `json:"defaultNodes"`
}

// GenericNetwork is a Network fully described by its config. Built-in
// networks and networks declared in the config file are both GenericNetworks.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	if config.NativeTokenSymbol == "" {
		config.NativeTokenSymbol = "ETH"
	}
	if config.NativeTokenDecimal == 0 {
		config.NativeTokenDecimal = 18
	}
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericNetwork) GetNativeTokenDecimal() uint64 {
	return gn.config.NativeTokenDecimal
}

func (gn *GenericNetwork) GetBlockTime() time.Duration {
	return time.Duration(gn.config.BlockTime) * time.Second
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}
