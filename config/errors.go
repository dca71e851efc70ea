package config

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid config file")
	ErrInvalidContract  = errors.New("invalid contract address")
	ErrInvalidDebounce  = errors.New("debounce window must be positive")
	ErrConflictingKeys  = errors.New("--keystore and --from-key-env can't be used together")
	ErrInvalidGasConfig = errors.New("gas price and tip must not be negative")
)
