package ens

import (
	pcommon "github.com/tranvictor/payroll/common"
)

// MainnetRegistry is the ENS registry address, the same on mainnet and the
// public testnets.
const MainnetRegistry = "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"

const registryABI = `[
	{"constant":true,"inputs":[{"name":"node","type":"bytes32"}],"name":"resolver","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

const resolverABI = `[
	{"constant":true,"inputs":[{"name":"node","type":"bytes32"}],"name":"addr","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"node","type":"bytes32"}],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"node","type":"bytes32"},{"name":"key","type":"string"}],"name":"text","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}
]`

var (
	RegistryABI = pcommon.MustParseABI(registryABI)
	ResolverABI = pcommon.MustParseABI(resolverABI)
)
