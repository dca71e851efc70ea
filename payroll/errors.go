package payroll

import "errors"

var (
	ErrNoRecipients     = errors.New("no recipients")
	ErrInvalidRecipient = errors.New("invalid recipient address")
	ErrBroadcastFailed  = errors.New("couldn't broadcast the transaction to any node")
	ErrReverted         = errors.New("transaction reverted")
	ErrTxLost           = errors.New("transaction was dropped by the network")
)
