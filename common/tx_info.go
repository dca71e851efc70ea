package common

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	TxStatusError    = "error"
	TxStatusNotFound = "notfound"
	TxStatusPending  = "pending"
	TxStatusDone     = "done"
	TxStatusReverted = "reverted"
	TxStatusLost     = "lost"
)

type TxInfo struct {
	Status  string
	Tx      *Transaction
	Receipt *types.Receipt
}

func (self TxInfo) Hash() string {
	if self.Tx != nil {
		return self.Tx.Hash().Hex()
	}
	if self.Receipt != nil {
		return self.Receipt.TxHash.Hex()
	}
	return ""
}

type Transaction struct {
	*types.Transaction
	Extra TxExtraInfo `json:"extra"`
}

type TxExtraInfo struct {
	BlockNumber *string         `json:"blockNumber,omitempty"`
	BlockHash   *common.Hash    `json:"blockHash,omitempty"`
	From        *common.Address `json:"from,omitempty"`
}

func (tx *Transaction) UnmarshalJSON(msg []byte) error {
	if err := json.Unmarshal(msg, &tx.Transaction); err != nil {
		return err
	}
	return json.Unmarshal(msg, &tx.Extra)
}
