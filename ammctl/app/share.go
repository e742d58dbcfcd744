package app

import (
	"github.com/shopspring/decimal"
	"math/big"
)

// share is part/total as a percentage with four decimals.
func share(part, total uint64) string {
	if total == 0 {
		return "0.0000"
	}
	p := decimal.NewFromBigInt(new(big.Int).SetUint64(part), 2)
	return p.Div(decimal.NewFromBigInt(new(big.Int).SetUint64(total), 0)).StringFixed(4)
}
