package networks

var OptimismMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "optimism",
	AlternativeNames: []string{"op"},
	ChainID:          10,
	BlockTime:        2,
	NodeVariableName: "OPTIMISM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"public-optimism": "https://mainnet.optimism.io",
	},
})
