package recipient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	addrA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1"
	addrB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb2"
	addrC = "0xcccccccccccccccccccccccccccccccccccccc3c"
)

func TestAddPreservesOrder(t *testing.T) {
	l := List{}
	l, out := l.Add(addrA, "alice.eth")
	require.Equal(t, Added, out)
	l, out = l.Add(addrB, "")
	require.Equal(t, Added, out)
	l, out = l.Add(addrC, "carol.eth")
	require.Equal(t, Added, out)

	addrs := l.Addresses()
	require.Len(t, addrs, 3)
	assert.True(t, strings.EqualFold(addrA, addrs[0]))
	assert.True(t, strings.EqualFold(addrB, addrs[1]))
	assert.True(t, strings.EqualFold(addrC, addrs[2]))
}

func TestAddStoresChecksummedAddress(t *testing.T) {
	l, _ := List{}.Add("0xd8da6bf26964af9d7eed9e03e53415d37aa96045", "vitalik.eth")
	assert.Equal(t, []string{"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"}, l.Addresses())
}

func TestAddDuplicateIsNoop(t *testing.T) {
	l, _ := List{}.Add(addrA, "alice.eth")
	l, _ = l.Add(addrB, "")
	before := l.Entries()

	l2, out := l.Add(addrA, "other name")
	assert.Equal(t, Duplicate, out)
	assert.Equal(t, before, l2.Entries())

	// case differences do not make a different address
	l2, out = l.Add("0x"+strings.ToUpper(addrA[2:]), "")
	assert.Equal(t, Duplicate, out)
	assert.Equal(t, 2, l2.Len())
}

func TestAddInvalid(t *testing.T) {
	for _, in := range []string{"", "alice.eth", "0x123", "0xAbC1230000000000000000000000000000dEaD"} {
		l, out := List{}.Add(in, "")
		assert.Equal(t, Invalid, out, "input %q", in)
		assert.True(t, l.IsEmpty())
	}
}

func TestAddDoesNotMutateReceiver(t *testing.T) {
	l1, _ := List{}.Add(addrA, "")
	l2, _ := l1.Add(addrB, "")
	l3, _ := l1.Add(addrC, "")

	assert.Equal(t, 1, l1.Len())
	assert.Equal(t, 2, l2.Len())
	assert.True(t, l2.Contains(addrB))
	assert.False(t, l2.Contains(addrC))
	assert.True(t, l3.Contains(addrC))
	assert.False(t, l3.Contains(addrB))
}

func TestRemove(t *testing.T) {
	l := NewList(Entry{Address: addrA}, Entry{Address: addrB}, Entry{Address: addrC})

	l2, ok := l.Remove(addrB)
	require.True(t, ok)
	assert.Equal(t, 2, l2.Len())
	assert.False(t, l2.Contains(addrB))
	assert.Equal(t, 3, l.Len(), "receiver is untouched")

	l3, ok := l2.Remove(addrB)
	assert.False(t, ok)
	assert.Equal(t, l2.Entries(), l3.Entries())
}

func TestViews(t *testing.T) {
	l := NewList(Entry{Address: addrA, DisplayName: "alice.eth"}, Entry{Address: addrB})

	names := l.Names()
	require.Len(t, names, 2)
	e, ok := l.Get(addrA)
	require.True(t, ok)
	assert.Equal(t, "alice.eth", names[e.Address])
	assert.Equal(t, "alice.eth", e.Label())

	e, ok = l.Get(addrB)
	require.True(t, ok)
	assert.Equal(t, "", names[e.Address])
	assert.True(t, strings.EqualFold("0xbbbb...bbb2", e.Label()), e.Label())

	entries := l.Entries()
	entries[0].DisplayName = "mallory"
	got, _ := l.Get(addrA)
	assert.Equal(t, "alice.eth", got.DisplayName, "views are copies")

	_, ok = l.Get(addrC)
	assert.False(t, ok)
}

func TestNewListDropsDuplicates(t *testing.T) {
	l := NewList(Entry{Address: addrA}, Entry{Address: addrA}, Entry{Address: "bogus"})
	assert.Equal(t, 1, l.Len())
}

func TestAddOutcomeString(t *testing.T) {
	assert.Equal(t, "added", Added.String())
	assert.Equal(t, "duplicate", Duplicate.String())
	assert.Equal(t, "invalid", Invalid.String())
}
