package ens

import "errors"

var (
	ErrInvalidName    = errors.New("invalid ens name")
	ErrInvalidAddress = errors.New("invalid address")
)
