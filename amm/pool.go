package amm

import (
	"fmt"
	"github.com/shopspring/decimal"
	"math"
	"math/big"
	"strings"
)

const (
	BpsDenominator     = 10000
	DefaultFeeBps      = 30
	DefaultSlippageBps = 100
)

type Token int8

const (
	X Token = iota
	Y
)

func (t Token) String() string {
	if t == X {
		return "X"
	}
	return "Y"
}

func (t Token) Other() Token {
	if t == X {
		return Y
	}
	return X
}

// ParseToken accepts x/y as well as the a/b naming used in the console prompts.
func ParseToken(s string) (Token, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "a":
		return X, nil
	case "y", "b":
		return Y, nil
	}
	return X, fmt.Errorf("unknown token %q, expected x or y", s)
}

// Pool is a point-in-time copy of the on-chain pool. The program owns the real state;
// a Pool is only used to plan the next instruction.
type Pool struct {
	ReserveX uint64 `json:"reserve_x"`
	ReserveY uint64 `json:"reserve_y"`
	LPSupply uint64 `json:"lp_supply"`
	FeeBps   uint16 `json:"fee_bps"`
}

func (p Pool) IsEmpty() bool {
	return p.LPSupply == 0 && p.ReserveX == 0 && p.ReserveY == 0
}

func (p Pool) reserves(token Token) (uint64, uint64) {
	if token == X {
		return p.ReserveX, p.ReserveY
	}
	return p.ReserveY, p.ReserveX
}

// Ratio is the price of one X in Y, for display.
func (p Pool) Ratio() (decimal.Decimal, error) {
	if p.ReserveX == 0 {
		return decimal.Zero, fmt.Errorf("%w: reserve x is zero", ErrDivisionByZero)
	}
	return decimal.NewFromBigInt(new(big.Int).SetUint64(p.ReserveY), 0).
		Div(decimal.NewFromBigInt(new(big.Int).SetUint64(p.ReserveX), 0)), nil
}

// AfterSwap returns the reserves once the swap settles; the full input, fee included,
// stays in the pool.
func (p Pool) AfterSwap(plan *SwapPlan) (Pool, error) {
	next := p
	reserveIn, reserveOut := &next.ReserveX, &next.ReserveY
	if plan.Input == Y {
		reserveIn, reserveOut = &next.ReserveY, &next.ReserveX
	}
	if *reserveIn > math.MaxUint64-plan.AmountIn {
		return p, fmt.Errorf("%w: reserve %d plus %d", ErrOverflow, *reserveIn, plan.AmountIn)
	}
	if plan.AmountOut > *reserveOut {
		return p, fmt.Errorf("%w: output %d above reserve %d", ErrInsufficientBalance, plan.AmountOut, *reserveOut)
	}
	*reserveIn += plan.AmountIn
	*reserveOut -= plan.AmountOut
	return next, nil
}

// PriceImpact is the relative change of Ratio caused by the swap, in percent.
func (p Pool) PriceImpact(plan *SwapPlan) (decimal.Decimal, error) {
	before, err := p.Ratio()
	if err != nil {
		return decimal.Zero, err
	}
	next, err := p.AfterSwap(plan)
	if err != nil {
		return decimal.Zero, err
	}
	after, err := next.Ratio()
	if err != nil {
		return decimal.Zero, err
	}
	return after.Sub(before).Div(before).Mul(decimal.NewFromInt(100)), nil
}

type DepositPlan struct {
	LPTokensToMint uint64 `json:"lp_tokens_to_mint"`
	RequiredX      uint64 `json:"required_x"`
	RequiredY      uint64 `json:"required_y"`
}

func (d *DepositPlan) Required(token Token) uint64 {
	if token == X {
		return d.RequiredX
	}
	return d.RequiredY
}

type WithdrawPlan struct {
	LPTokensToBurn uint64 `json:"lp_tokens_to_burn"`
	OutX           uint64 `json:"out_x"`
	OutY           uint64 `json:"out_y"`
}

type SwapPlan struct {
	Input            Token    `json:"-"`
	AmountIn         uint64   `json:"amount_in"`
	AmountInAfterFee uint64   `json:"amount_in_after_fee"`
	AmountOut        uint64   `json:"amount_out"`
	MinAmountOut     uint64   `json:"min_amount_out"`
	EffectivePrice   *big.Rat `json:"-"`
}

// EffectivePriceDecimal renders EffectivePrice (output units per input unit) with the given precision.
func (s *SwapPlan) EffectivePriceDecimal(places int32) decimal.Decimal {
	if s.EffectivePrice == nil {
		return decimal.Zero
	}
	d, _ := decimal.NewFromString(s.EffectivePrice.FloatString(int(places)))
	return d
}
