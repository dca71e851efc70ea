package networks

var ArbitrumMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "arbitrum",
	AlternativeNames: []string{"arb"},
	ChainID:          42161,
	BlockTime:        1,
	NodeVariableName: "ARBITRUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"public-arbitrum": "https://arb1.arbitrum.io/rpc",
	},
})
