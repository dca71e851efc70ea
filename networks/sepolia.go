package networks

var Sepolia Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "sepolia",
	AlternativeNames: []string{"sepolia-testnet"},
	ChainID:          11155111,
	BlockTime:        12,
	NodeVariableName: "ETHEREUM_SEPOLIA_NODE",
	DefaultNodes: map[string]string{
		"sepolia-publicnode": "https://ethereum-sepolia-rpc.publicnode.com",
	},
})
