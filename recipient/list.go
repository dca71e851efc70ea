// Package recipient holds the ordered, duplicate free list of payout
// recipients.
package recipient

import (
	"strings"

	"github.com/tranvictor/payroll/common"
)

type Entry struct {
	// Address is the EIP-55 form of the recipient address and the unique
	// key of the list.
	Address     string
	DisplayName string
}

// Label is the display name when there is one, the truncated address
// otherwise.
func (e Entry) Label() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return common.TruncateAddress(e.Address)
}

type AddOutcome int

const (
	Added AddOutcome = iota
	Duplicate
	Invalid
)

func (o AddOutcome) String() string {
	switch o {
	case Added:
		return "added"
	case Duplicate:
		return "duplicate"
	default:
		return "invalid"
	}
}

// List is an immutable snapshot. Add and Remove return a new List and never
// touch the receiver, so a List handed out keeps showing the same entries.
type List struct {
	entries []Entry
}

func NewList(entries ...Entry) List {
	l := List{}
	for _, e := range entries {
		l, _ = l.Add(e.Address, e.DisplayName)
	}
	return l
}

func (l List) indexOf(address string) int {
	for i, e := range l.entries {
		if common.SameAddress(e.Address, address) {
			return i
		}
	}
	return -1
}

// Add appends address at the end of the list. An invalid address or one
// already in the list leaves the list unchanged.
func (l List) Add(address, displayName string) (List, AddOutcome) {
	address = strings.TrimSpace(address)
	if !common.IsValidAddress(address) {
		return l, Invalid
	}
	if l.indexOf(address) >= 0 {
		return l, Duplicate
	}
	entries := make([]Entry, len(l.entries), len(l.entries)+1)
	copy(entries, l.entries)
	entries = append(entries, Entry{
		Address:     common.ChecksumAddress(address),
		DisplayName: strings.TrimSpace(displayName),
	})
	return List{entries: entries}, Added
}

// Remove drops the entry for address. It reports false and returns the same
// list when the address is absent.
func (l List) Remove(address string) (List, bool) {
	i := l.indexOf(strings.TrimSpace(address))
	if i < 0 {
		return l, false
	}
	entries := make([]Entry, 0, len(l.entries)-1)
	entries = append(entries, l.entries[:i]...)
	entries = append(entries, l.entries[i+1:]...)
	return List{entries: entries}, true
}

func (l List) Len() int {
	return len(l.entries)
}

func (l List) IsEmpty() bool {
	return len(l.entries) == 0
}

func (l List) Contains(address string) bool {
	return l.indexOf(address) >= 0
}

func (l List) Get(address string) (Entry, bool) {
	i := l.indexOf(address)
	if i < 0 {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Entries returns the entries in insertion order.
func (l List) Entries() []Entry {
	return append([]Entry{}, l.entries...)
}

// Addresses returns the addresses in insertion order.
func (l List) Addresses() []string {
	result := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		result = append(result, e.Address)
	}
	return result
}

// Names maps every address to its display name, empty when unknown.
func (l List) Names() map[string]string {
	result := make(map[string]string, len(l.entries))
	for _, e := range l.entries {
		result[e.Address] = e.DisplayName
	}
	return result
}
