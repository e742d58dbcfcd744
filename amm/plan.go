package amm

import (
	"fmt"
	"math/big"
)

// mulDiv returns floor(a*b/c) without intermediate overflow.
func mulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrDivisionByZero
	}
	r := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	r.Quo(r, new(big.Int).SetUint64(c))
	if !r.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrOverflow, r)
	}
	return r.Uint64(), nil
}

func geometricMean(a, b uint64) uint64 {
	r := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	// sqrt(a*b) <= max(a, b), so it always fits
	return r.Sqrt(r).Uint64()
}

// PlanInitialDeposit sizes the first deposit into an empty pool. The LP issued is the
// geometric mean of the two amounts.
func PlanInitialDeposit(x0, y0 uint64) (*DepositPlan, error) {
	if x0 == 0 || y0 == 0 {
		return nil, fmt.Errorf("%w: initial deposit needs both tokens, got x=%d y=%d", ErrInvalidAmount, x0, y0)
	}
	lp := geometricMean(x0, y0)
	if lp == 0 {
		return nil, fmt.Errorf("%w: deposit mints no lp tokens", ErrInvalidAmount)
	}
	return &DepositPlan{
		LPTokensToMint: lp,
		RequiredX:      x0,
		RequiredY:      y0,
	}, nil
}

// PlanDepositForLP gives the exact reserve amounts the program charges for minting lp tokens.
func PlanDepositForLP(pool Pool, lp uint64) (*DepositPlan, error) {
	if lp == 0 {
		return nil, fmt.Errorf("%w: lp amount is zero", ErrInvalidAmount)
	}
	if pool.LPSupply == 0 {
		return nil, fmt.Errorf("%w: pool has no lp supply", ErrDivisionByZero)
	}
	x, err := mulDiv(lp, pool.ReserveX, pool.LPSupply)
	if err != nil {
		return nil, err
	}
	y, err := mulDiv(lp, pool.ReserveY, pool.LPSupply)
	if err != nil {
		return nil, err
	}
	return &DepositPlan{
		LPTokensToMint: lp,
		RequiredX:      x,
		RequiredY:      y,
	}, nil
}

// PlanDeposit sizes a deposit into a pool that already holds liquidity, starting from an
// amount of one token. The other side follows the pool ratio and the LP minted is the
// proportional share, the smaller of the two sides.
func PlanDeposit(pool Pool, amountIn uint64, token Token) (*DepositPlan, error) {
	if amountIn == 0 {
		return nil, fmt.Errorf("%w: deposit amount is zero", ErrInvalidAmount)
	}
	reserveIn, reserveOther := pool.reserves(token)
	if pool.LPSupply == 0 || reserveIn == 0 || reserveOther == 0 {
		return nil, fmt.Errorf("%w: pool is empty, plan an initial deposit", ErrDivisionByZero)
	}
	other, err := mulDiv(amountIn, reserveOther, reserveIn)
	if err != nil {
		return nil, err
	}
	lpIn, err := mulDiv(amountIn, pool.LPSupply, reserveIn)
	if err != nil {
		return nil, err
	}
	lpOther, err := mulDiv(other, pool.LPSupply, reserveOther)
	if err != nil {
		return nil, err
	}
	lp := lpIn
	if lpOther < lp {
		lp = lpOther
	}
	if lp == 0 {
		return nil, fmt.Errorf("%w: %d of token %s mints no lp tokens", ErrInvalidAmount, amountIn, token)
	}
	return PlanDepositForLP(pool, lp)
}

// PlanGeometricDeposit reproduces the console scripts: the geometric mean of the two sides
// is used as the LP amount even for a funded pool. It over-issues compared with
// PlanDeposit whenever the pool's LP supply differs from sqrt(x*y).
func PlanGeometricDeposit(pool Pool, amountIn uint64, token Token) (*DepositPlan, error) {
	if amountIn == 0 {
		return nil, fmt.Errorf("%w: deposit amount is zero", ErrInvalidAmount)
	}
	reserveIn, reserveOther := pool.reserves(token)
	if reserveIn == 0 {
		return nil, fmt.Errorf("%w: reserve %s is zero", ErrDivisionByZero, token)
	}
	other, err := mulDiv(amountIn, reserveOther, reserveIn)
	if err != nil {
		return nil, err
	}
	lp := geometricMean(amountIn, other)
	if lp == 0 {
		return nil, fmt.Errorf("%w: deposit mints no lp tokens", ErrInvalidAmount)
	}
	return PlanDepositForLP(pool, lp)
}

// PlanWithdraw gives the reserve amounts returned for burning lp tokens.
func PlanWithdraw(pool Pool, lp uint64) (*WithdrawPlan, error) {
	if lp == 0 {
		return nil, fmt.Errorf("%w: lp amount is zero", ErrInvalidAmount)
	}
	if pool.LPSupply == 0 {
		return nil, fmt.Errorf("%w: pool has no lp supply", ErrDivisionByZero)
	}
	if lp > pool.LPSupply {
		return nil, fmt.Errorf("%w: burning %d exceeds lp supply %d", ErrInvalidAmount, lp, pool.LPSupply)
	}
	x, err := mulDiv(lp, pool.ReserveX, pool.LPSupply)
	if err != nil {
		return nil, err
	}
	y, err := mulDiv(lp, pool.ReserveY, pool.LPSupply)
	if err != nil {
		return nil, err
	}
	return &WithdrawPlan{
		LPTokensToBurn: lp,
		OutX:           x,
		OutY:           y,
	}, nil
}

// PlanSwap predicts the output of a constant-product swap. The fee is truncated off the
// input before the curve is applied, the same rounding the program uses. MinAmountOut is
// the slippage guard passed along with the instruction.
func PlanSwap(pool Pool, input Token, amountIn uint64, slippageBps uint16) (*SwapPlan, error) {
	if amountIn == 0 {
		return nil, fmt.Errorf("%w: swap amount is zero", ErrInvalidAmount)
	}
	if pool.FeeBps > BpsDenominator {
		return nil, fmt.Errorf("%w: fee %d bps", ErrInvalidAmount, pool.FeeBps)
	}
	if slippageBps > BpsDenominator {
		return nil, fmt.Errorf("%w: slippage tolerance %d bps", ErrInvalidAmount, slippageBps)
	}
	if pool.LPSupply == 0 {
		return nil, fmt.Errorf("%w: pool has no lp supply", ErrDivisionByZero)
	}
	reserveIn, reserveOut := pool.reserves(input)
	if reserveIn == 0 || reserveOut == 0 {
		return nil, fmt.Errorf("%w: pool reserves %d/%d", ErrDivisionByZero, pool.ReserveX, pool.ReserveY)
	}
	afterFee, err := mulDiv(amountIn, uint64(BpsDenominator-pool.FeeBps), BpsDenominator)
	if err != nil {
		return nil, err
	}
	denominator := new(big.Int).Add(new(big.Int).SetUint64(reserveIn), new(big.Int).SetUint64(afterFee))
	out := new(big.Int).Mul(new(big.Int).SetUint64(afterFee), new(big.Int).SetUint64(reserveOut))
	out.Quo(out, denominator)
	amountOut := out.Uint64()
	minOut, err := mulDiv(amountOut, uint64(BpsDenominator-slippageBps), BpsDenominator)
	if err != nil {
		return nil, err
	}
	return &SwapPlan{
		Input:            input,
		AmountIn:         amountIn,
		AmountInAfterFee: afterFee,
		AmountOut:        amountOut,
		MinAmountOut:     minOut,
		EffectivePrice:   new(big.Rat).SetFrac(new(big.Int).SetUint64(amountOut), new(big.Int).SetUint64(amountIn)),
	}, nil
}
