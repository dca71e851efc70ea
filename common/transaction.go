package common

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// RawTxToHash returns valid hex data of a transaction to
// transaction hash
func RawTxToHash(data string) string {
	return crypto.Keccak256Hash(hexutil.MustDecode(data)).Hex()
}

// BuildExactTx builds an unsigned transaction. A dynamic fee tx is built when
// dynamicFee is true, priceGwei is then used as the fee cap and tipGwei as
// the tip cap.
func BuildExactTx(
	nonce uint64, to string, ethAmount *big.Int,
	gasLimit uint64, priceGwei float64, tipGwei float64,
	data []byte, dynamicFee bool, chainID int64,
) (tx *types.Transaction) {
	toAddress := common.HexToAddress(to)
	gasPrice := GweiToWei(priceGwei)
	if ethAmount == nil {
		ethAmount = big.NewInt(0)
	}
	if dynamicFee {
		return types.NewTx(&types.DynamicFeeTx{
			ChainID:   big.NewInt(chainID),
			Nonce:     nonce,
			GasTipCap: GweiToWei(tipGwei),
			GasFeeCap: gasPrice,
			Gas:       gasLimit,
			To:        &toAddress,
			Value:     ethAmount,
			Data:      data,
		})
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &toAddress,
		Value:    ethAmount,
		Data:     data,
	})
}
