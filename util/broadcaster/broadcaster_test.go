package broadcaster

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeSender) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, method)
	return f.err
}

// an empty legacy tx, rlp encoded
const rawTx = "0xc0"

func TestBroadcastReachesEveryNode(t *testing.T) {
	a, b := &fakeSender{}, &fakeSender{err: errors.New("down")}
	bc := NewBroadcasterWithClients(map[string]RawTxSender{"a": a, "b": b})

	hash, ok, err := bc.Broadcast(rawTx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, hash)
	assert.Equal(t, []string{"eth_sendRawTransaction"}, a.calls)
	assert.Equal(t, []string{"eth_sendRawTransaction"}, b.calls)
}

func TestBroadcastFailsWhenAllNodesFail(t *testing.T) {
	bc := NewBroadcasterWithClients(map[string]RawTxSender{
		"a": &fakeSender{err: errors.New("nonce too low")},
		"b": &fakeSender{err: errors.New("nonce too low")},
	})

	_, ok, err := bc.Broadcast(rawTx)
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonce too low")
}

func TestMakeErrorIsSorted(t *testing.T) {
	err := makeError(map[string]error{"b": errors.New("2"), "a": errors.New("1")})
	assert.EqualError(t, err, "a(1).b(2).")
	assert.NoError(t, makeError(nil))
}
