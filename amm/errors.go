package amm

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrDivisionByZero means the snapshot has no liquidity where a ratio is needed,
	// an uninitialized pool rather than bad input.
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("amount overflows u64")
)

// CheckBalance is the caller-side pre-flight check of a token balance against a planned amount.
func CheckBalance(available uint64, required uint64) error {
	if available < required {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, available, required)
	}
	return nil
}
