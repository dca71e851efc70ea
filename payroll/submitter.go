package payroll

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/go-logr/logr"

	pcommon "github.com/tranvictor/payroll/common"
)

// ChainReader is the part of reader.EthReader the submitter needs.
type ChainReader interface {
	ContractReader
	GetPendingNonce(address string) (uint64, error)
	EstimateExactGas(from, to string, priceGwei float64, value *big.Int, data []byte) (uint64, error)
	SuggestedGasSettings() (maxGasPriceGwei, maxTipGwei float64, dynamicFee bool, err error)
}

type Broadcaster interface {
	BroadcastTx(tx *types.Transaction) (string, bool, error)
}

type Waiter interface {
	BlockingWait(ctx context.Context, tx string) (pcommon.TxInfo, error)
}

// Signer is implemented by account.Account.
type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainId *big.Int) (*types.Transaction, error)
}

type SubmitterOptions struct {
	ChainID uint64
	// GasPriceGwei overrides the suggested max gas price when positive.
	GasPriceGwei float64
	// TipGwei overrides the suggested tip when positive.
	TipGwei float64
	// ExtraGas is added on top of the estimated gas limit.
	ExtraGas uint64
	// DryRun signs the transaction but never broadcasts it.
	DryRun bool
	// NoWait returns as soon as the transaction reached a node.
	NoWait bool
	// OnSigned is called with every signed transaction and its raw hex
	// encoding before it is broadcast.
	OnSigned func(tx *types.Transaction, raw string)
	Logger   logr.Logger
}

// Submitter sends a batch as one distributePayments transaction. It
// implements distribution.BatchService.
type Submitter struct {
	contract    *Contract
	reader      ChainReader
	broadcaster Broadcaster
	waiter      Waiter
	signer      Signer
	opts        SubmitterOptions
	log         logr.Logger
}

func NewSubmitter(
	contract *Contract,
	r ChainReader,
	b Broadcaster,
	w Waiter,
	s Signer,
	opts SubmitterOptions,
) *Submitter {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Submitter{
		contract:    contract,
		reader:      r,
		broadcaster: b,
		waiter:      w,
		signer:      s,
		opts:        opts,
		log:         log.WithName("payroll"),
	}
}

func (s *Submitter) SubmitBatch(ctx context.Context, addresses []string) error {
	_, err := s.SubmitBatchWithHash(ctx, addresses)
	return err
}

// BuildTx returns the signed distributePayments transaction for addresses.
func (s *Submitter) BuildTx(addresses []string) (*types.Transaction, error) {
	data, err := s.contract.DistributePaymentsData(addresses)
	if err != nil {
		return nil, err
	}
	from := s.signer.Address().Hex()

	nonce, err := s.reader.GetPendingNonce(from)
	if err != nil {
		return nil, fmt.Errorf("couldn't get nonce of %s: %w", from, err)
	}

	priceGwei, tipGwei, dynamicFee, err := s.reader.SuggestedGasSettings()
	if err != nil {
		return nil, fmt.Errorf("couldn't get gas settings: %w", err)
	}
	if s.opts.GasPriceGwei > 0 {
		priceGwei = s.opts.GasPriceGwei
	}
	if s.opts.TipGwei > 0 {
		tipGwei = s.opts.TipGwei
	}
	if dynamicFee && tipGwei > priceGwei {
		tipGwei = priceGwei
	}

	gasLimit, err := s.reader.EstimateExactGas(from, s.contract.Address, priceGwei, big.NewInt(0), data)
	if err != nil {
		return nil, fmt.Errorf("couldn't estimate gas, the batch would likely revert: %w", err)
	}
	gasLimit += s.opts.ExtraGas

	tx := pcommon.BuildExactTx(
		nonce, s.contract.Address, big.NewInt(0),
		gasLimit, priceGwei, tipGwei,
		data, dynamicFee, int64(s.opts.ChainID),
	)
	s.log.V(1).Info("built transaction",
		"from", from, "nonce", nonce, "gas", gasLimit,
		"gasPriceGwei", priceGwei, "tipGwei", tipGwei, "dynamicFee", dynamicFee)

	signed, err := s.signer.SignTx(tx, new(big.Int).SetUint64(s.opts.ChainID))
	if err != nil {
		return nil, err
	}
	return signed, nil
}

// SubmitBatchWithHash signs, broadcasts and, unless NoWait is set, waits for
// the distributePayments transaction. It returns the transaction hash.
func (s *Submitter) SubmitBatchWithHash(ctx context.Context, addresses []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tx, err := s.BuildTx(addresses)
	if err != nil {
		return "", err
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("couldn't encode the signed tx: %w", err)
	}
	if s.opts.OnSigned != nil {
		s.opts.OnSigned(tx, hexutil.Encode(raw))
	}
	hash := tx.Hash().Hex()
	log := s.log.WithValues("tx", hash, "recipients", len(addresses))

	if s.opts.DryRun {
		log.Info("dry run, not broadcasting")
		return hash, nil
	}

	hash, broadcasted, err := s.broadcaster.BroadcastTx(tx)
	if !broadcasted {
		if err == nil {
			return hash, ErrBroadcastFailed
		}
		return hash, fmt.Errorf("%w: %w", ErrBroadcastFailed, err)
	}
	log.Info("broadcasted")
	if s.opts.NoWait {
		return hash, nil
	}

	info, err := s.waiter.BlockingWait(ctx, hash)
	if err != nil {
		return hash, fmt.Errorf("stopped waiting for %s: %w", hash, err)
	}
	switch info.Status {
	case pcommon.TxStatusDone:
		log.Info("mined")
		return hash, nil
	case pcommon.TxStatusReverted:
		return hash, fmt.Errorf("%w: %s", ErrReverted, hash)
	case pcommon.TxStatusLost:
		return hash, fmt.Errorf("%w: %s", ErrTxLost, hash)
	default:
		return hash, fmt.Errorf("transaction %s ended as %s", hash, info.Status)
	}
}
