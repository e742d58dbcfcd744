package env

import (
	"errors"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"math"
	"math/big"
)

var ErrInvalidUiAmount = errors.New("invalid token amount")

type Token struct {
	Symbol   string
	Mint     solana.PublicKey
	Decimals uint8
}

// AmountUi converts raw base units to the token's display amount.
func (token *Token) AmountUi(amount uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(token.Decimals))
}

// AmountRaw converts a display amount to base units, dropping digits beyond the token's
// decimals.
func (token *Token) AmountRaw(amountUi decimal.Decimal) (uint64, error) {
	if amountUi.IsNegative() {
		return 0, fmt.Errorf("%w: %s is negative", ErrInvalidUiAmount, amountUi)
	}
	raw := amountUi.Shift(int32(token.Decimals)).Truncate(0)
	if raw.GreaterThan(decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)) {
		return 0, fmt.Errorf("%w: %s %s overflows u64", ErrInvalidUiAmount, amountUi, token.Symbol)
	}
	return raw.BigInt().Uint64(), nil
}

func (token *Token) ParseAmount(s string) (uint64, error) {
	amountUi, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidUiAmount, err)
	}
	return token.AmountRaw(amountUi)
}

func (token *Token) Format(amount uint64) string {
	return fmt.Sprintf("%s %s", token.AmountUi(amount).StringFixed(int32(token.Decimals)), token.Symbol)
}

func (e *Env) SetToken(token *Token) {
	e.tokens[token.Mint] = token
}

func (e *Env) Token(key solana.PublicKey) *Token {
	if item, ok := e.tokens[key]; ok {
		return item
	}
	return nil
}
