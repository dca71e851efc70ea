package networks

var BaseMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "base",
	ChainID:          8453,
	BlockTime:        2,
	NodeVariableName: "BASE_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"public-base": "https://mainnet.base.org",
	},
})
