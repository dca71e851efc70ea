package reader

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	pcommon "github.com/tranvictor/payroll/common"
)

var DEFAULT_ADDRESS string = pcommon.ZeroAddress

var ErrNoNodes = errors.New("no nodes configured")

// EthReader fans every read out to all of its nodes and returns the first
// successful answer. It only fails when every node fails.
type EthReader struct {
	nodes map[string]EthereumNode
}

func NewEthReaderGeneric(nodes map[string]string) *EthReader {
	ns := map[string]EthereumNode{}
	for name, c := range nodes {
		ns[name] = NewOneNodeReader(name, c)
	}
	return NewEthReaderWithNodes(ns)
}

// NewEthReaderWithNodes builds a reader over already constructed nodes.
func NewEthReaderWithNodes(nodes map[string]EthereumNode) *EthReader {
	return &EthReader{
		nodes: nodes,
	}
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type nodeResponse[T any] struct {
	Value T
	Error error
}

func readFromNodes[T any](er *EthReader, read func(n EthereumNode) (T, error)) (T, error) {
	var zero T
	if len(er.nodes) == 0 {
		return zero, ErrNoNodes
	}
	resCh := make(chan nodeResponse[T], len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			value, err := read(n)
			resCh <- nodeResponse[T]{
				Value: value,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return zero, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) EstimateExactGas(
	from, to string,
	priceGwei float64,
	value *big.Int,
	data []byte,
) (uint64, error) {
	return readFromNodes(er, func(n EthereumNode) (uint64, error) {
		return n.EstimateGas(from, to, priceGwei, value, data)
	})
}

func (er *EthReader) GetBalance(address string) (*big.Int, error) {
	return readFromNodes(er, func(n EthereumNode) (*big.Int, error) {
		return n.GetBalance(address)
	})
}

func (er *EthReader) GetPendingNonce(address string) (uint64, error) {
	return readFromNodes(er, func(n EthereumNode) (uint64, error) {
		return n.GetPendingNonce(address)
	})
}

func (er *EthReader) TransactionReceipt(txHash string) (*types.Receipt, error) {
	return readFromNodes(er, func(n EthereumNode) (*types.Receipt, error) {
		return n.TransactionReceipt(txHash)
	})
}

type txByHash struct {
	tx        *pcommon.Transaction
	isPending bool
}

func (er *EthReader) TransactionByHash(txHash string) (*pcommon.Transaction, bool, error) {
	res, err := readFromNodes(er, func(n EthereumNode) (txByHash, error) {
		tx, isPending, err := n.TransactionByHash(txHash)
		return txByHash{tx, isPending}, err
	})
	return res.tx, res.isPending, err
}

// TxInfoFromHash reports where a transaction is in its lifecycle. A
// transaction that no node knows about is reported as notfound without an
// error.
func (er *EthReader) TxInfoFromHash(tx string) (pcommon.TxInfo, error) {
	txObj, isPending, err := er.TransactionByHash(tx)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return pcommon.TxInfo{Status: pcommon.TxStatusNotFound}, nil
		}
		return pcommon.TxInfo{Status: pcommon.TxStatusError}, err
	}
	if isPending {
		return pcommon.TxInfo{Status: pcommon.TxStatusPending, Tx: txObj}, nil
	}

	receipt, err := er.TransactionReceipt(tx)
	if receipt == nil {
		return pcommon.TxInfo{Status: pcommon.TxStatusPending, Tx: txObj}, err
	}
	// pre-byzantium receipts carry a post state root instead of a status
	if len(receipt.PostState) == len(common.Hash{}) || receipt.Status == types.ReceiptStatusSuccessful {
		return pcommon.TxInfo{Status: pcommon.TxStatusDone, Tx: txObj, Receipt: receipt}, nil
	}
	return pcommon.TxInfo{Status: pcommon.TxStatusReverted, Tx: txObj, Receipt: receipt}, nil
}

func (er *EthReader) ReadContractToBytes(
	atBlock int64,
	from string,
	caddr string,
	abi *abi.ABI,
	method string,
	args ...interface{},
) ([]byte, error) {
	return readFromNodes(er, func(n EthereumNode) ([]byte, error) {
		return n.ReadContractToBytes(atBlock, from, caddr, abi, method, args...)
	})
}

func (er *EthReader) ReadContractWithABI(
	result interface{},
	caddr string,
	abi *abi.ABI,
	method string,
	args ...interface{},
) error {
	responseBytes, err := er.ReadContractToBytes(-1, DEFAULT_ADDRESS, caddr, abi, method, args...)
	if err != nil {
		return err
	}
	return abi.UnpackIntoInterface(result, method, responseBytes)
}

func (er *EthReader) HeaderByNumber(number int64) (*types.Header, error) {
	return readFromNodes(er, func(n EthereumNode) (*types.Header, error) {
		return n.HeaderByNumber(number)
	})
}

// CheckDynamicFeeTxAvailable detects EIP-1559 support by looking for a
// positive base fee in the latest block header.
func (er *EthReader) CheckDynamicFeeTxAvailable() (bool, error) {
	header, err := er.HeaderByNumber(-1)
	if err != nil {
		return false, err
	}
	return header.BaseFee != nil && header.BaseFee.Cmp(common.Big0) > 0, nil
}

// add 20% tip to miners compared to what returned from the node to improve UX
// a bit more
func (er *EthReader) GetSuggestedGasTipCap() (float64, error) {
	tip, err := readFromNodes(er, func(n EthereumNode) (*big.Int, error) {
		return n.SuggestedGasTipCap()
	})
	if err != nil {
		return 0, err
	}
	return pcommon.BigToFloat(tip, 9) * 1.2, nil
}

// add 50% to max gas price because the next blocks based price can be increased
// according to ethereum protocol
func (er *EthReader) RecommendedGasPrice() (float64, error) {
	price, err := readFromNodes(er, func(n EthereumNode) (*big.Int, error) {
		return n.SuggestedGasPrice()
	})
	if err != nil {
		return 0, err
	}
	return pcommon.BigToFloat(price, 9) * 1.5, nil
}

// SuggestedGasSettings returns the max gas price and, on chains supporting
// dynamic fee transactions, the max tip, both in gwei.
func (er *EthReader) SuggestedGasSettings() (maxGasPriceGwei, maxTipGwei float64, dynamicFee bool, err error) {
	dynamicFee, err = er.CheckDynamicFeeTxAvailable()
	if err != nil {
		return 0, 0, false, err
	}
	maxGasPriceGwei, err = er.RecommendedGasPrice()
	if err != nil {
		return 0, 0, false, err
	}
	if dynamicFee {
		maxTipGwei, err = er.GetSuggestedGasTipCap()
		if err != nil {
			return 0, 0, false, err
		}
	}
	return maxGasPriceGwei, maxTipGwei, dynamicFee, nil
}
