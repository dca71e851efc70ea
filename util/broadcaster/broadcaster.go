package broadcaster

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/tranvictor/payroll/common"
)

const TIMEOUT time.Duration = 4 * time.Second

// RawTxSender is the part of an rpc client the broadcaster needs.
type RawTxSender interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// Broadcaster takes a signed tx and try to broadcast it to all
// nodes that it manages as fast as possible. It reports the tx hash
// and whether the tx reached at least 1 node.
type Broadcaster struct {
	nodes   map[string]string
	mu      sync.Mutex
	clients map[string]RawTxSender
}

func NewGenericBroadcaster(nodes map[string]string) *Broadcaster {
	return &Broadcaster{
		nodes: nodes,
	}
}

// NewBroadcasterWithClients is used when the caller already holds the
// connections, mostly in tests.
func NewBroadcasterWithClients(clients map[string]RawTxSender) *Broadcaster {
	return &Broadcaster{
		clients: clients,
	}
}

func (b *Broadcaster) getClients() (map[string]RawTxSender, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.clients != nil {
		return b.clients, nil
	}
	clients := map[string]RawTxSender{}
	errs := map[string]error{}
	for name, url := range b.nodes {
		client, err := rpc.Dial(url)
		if err != nil {
			errs[name] = err
			continue
		}
		clients[name] = client
	}
	if len(clients) == 0 {
		return nil, fmt.Errorf("couldn't connect to any node: %w", makeError(errs))
	}
	b.clients = clients
	return clients, nil
}

func (b *Broadcaster) BroadcastTx(tx *types.Transaction) (string, bool, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return "", false, fmt.Errorf("tx is not valid, couldn't use rlp to encode it: %w", err)
	}
	return b.Broadcast(hexutil.Encode(data))
}

// data must be hex encoded of the signed tx
func (b *Broadcaster) Broadcast(data string) (string, bool, error) {
	hash := common.RawTxToHash(data)
	clients, err := b.getClients()
	if err != nil {
		return hash, false, err
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	parallelTasks := []func() error{}
	for name := range clients {
		name, cli := name, clients[name]
		parallelTasks = append(parallelTasks, func() error {
			if err := cli.CallContext(timeout, nil, "eth_sendRawTransaction", data); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	err, numErrs := common.RunParallel(parallelTasks...)
	if numErrs == len(clients) {
		return hash, false, err
	}
	return hash, true, nil
}
