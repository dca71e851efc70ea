package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pcommon "github.com/tranvictor/payroll/common"
)

func TestIsValidAddress(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"0xabc123000000000000000000000000000000DEAd", true},
		{"0x67968Dea9e69199D96E71439e381d4A145FC9c18", true},
		{"0x67968dea9e69199d96e71439e381d4a145fc9c18", true},
		{"67968Dea9e69199D96E71439e381d4A145FC9c18", false},
		{"0xAbC1230000000000000000000000000000dEaD", false},
		{"0x67968Dea9e69199D96E71439e381d4A145FC9c18aa", false},
		{"0x67968Dea9e69199D96E71439e381d4A145FC9cZZ", false},
		{"alice.eth", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, pcommon.IsValidAddress(c.input), c.input)
	}
}

func TestTruncateAddress(t *testing.T) {
	addrs := []string{
		"0x67968Dea9e69199D96E71439e381d4A145FC9c18",
		"0xabc123000000000000000000000000000000DEAd",
		"0x1111111111111111111111111111111111112222",
	}
	for _, a := range addrs {
		got := pcommon.TruncateAddress(a)
		assert.Equal(t, a[:6]+"..."+a[len(a)-4:], got)
		assert.Len(t, got, 13)
	}
	assert.Equal(t, "0x6796...9c18", pcommon.TruncateAddress(addrs[0]))
	assert.Equal(t, "0x12", pcommon.TruncateAddress("0x12"))
}

func TestChecksumAddress(t *testing.T) {
	assert.Equal(t,
		"0x67968Dea9e69199D96E71439e381d4A145FC9c18",
		pcommon.ChecksumAddress("0x67968dea9e69199d96e71439e381d4a145fc9c18"),
	)
	assert.True(t, pcommon.SameAddress(
		"0x67968dea9e69199d96e71439e381d4a145fc9c18",
		"0x67968Dea9e69199D96E71439e381d4A145FC9c18",
	))
}

func TestScanForAddresses(t *testing.T) {
	found := pcommon.ScanForAddresses(
		"pay 0x67968Dea9e69199D96E71439e381d4A145FC9c18, then 0x1111111111111111111111111111111111112222",
	)
	assert.Equal(t, []string{
		"0x67968Dea9e69199D96E71439e381d4A145FC9c18",
		"0x1111111111111111111111111111111111112222",
	}, found)
}
