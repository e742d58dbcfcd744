package amm

import (
	"github.com/stretchr/testify/require"
	"math"
	"math/big"
	"testing"
)

func expectedSwapOut(amountIn, feeBps, reserveIn, reserveOut uint64) uint64 {
	afterFee := new(big.Int).Mul(new(big.Int).SetUint64(amountIn), new(big.Int).SetUint64(BpsDenominator-feeBps))
	afterFee.Quo(afterFee, big.NewInt(BpsDenominator))
	num := new(big.Int).Mul(afterFee, new(big.Int).SetUint64(reserveOut))
	den := new(big.Int).Add(new(big.Int).SetUint64(reserveIn), afterFee)
	return num.Quo(num, den).Uint64()
}

func TestPlanInitialDeposit(t *testing.T) {
	plan, err := PlanInitialDeposit(100_000, 11_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(1_048_808), plan.LPTokensToMint)
	require.Equal(t, uint64(100_000), plan.RequiredX)
	require.Equal(t, uint64(11_000_000), plan.RequiredY)

	again, err := PlanInitialDeposit(100_000, 11_000_000)
	require.NoError(t, err)
	require.Equal(t, plan, again)
}

func TestPlanInitialDeposit_FloorSqrt(t *testing.T) {
	cases := [][2]uint64{
		{1, 1},
		{2, 3},
		{999_999, 1_000_001},
		{math.MaxUint64, math.MaxUint64},
		{math.MaxUint64, 7},
	}
	for _, c := range cases {
		plan, err := PlanInitialDeposit(c[0], c[1])
		require.NoError(t, err)
		product := new(big.Int).Mul(new(big.Int).SetUint64(c[0]), new(big.Int).SetUint64(c[1]))
		lp := new(big.Int).SetUint64(plan.LPTokensToMint)
		require.True(t, new(big.Int).Mul(lp, lp).Cmp(product) <= 0)
		next := new(big.Int).Add(lp, big.NewInt(1))
		require.True(t, new(big.Int).Mul(next, next).Cmp(product) > 0)
	}
}

func TestPlanInitialDeposit_InvalidAmount(t *testing.T) {
	_, err := PlanInitialDeposit(0, 10)
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = PlanInitialDeposit(10, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	cases := [][2]uint64{
		{100_000, 11_000_000},
		{1, 1},
		{123_456_789, 987},
		{1 << 60, 1 << 62},
	}
	for _, c := range cases {
		deposit, err := PlanInitialDeposit(c[0], c[1])
		require.NoError(t, err)
		pool := Pool{ReserveX: deposit.RequiredX, ReserveY: deposit.RequiredY, LPSupply: deposit.LPTokensToMint, FeeBps: DefaultFeeBps}
		withdraw, err := PlanWithdraw(pool, deposit.LPTokensToMint)
		require.NoError(t, err)
		require.Equal(t, c[0], withdraw.OutX)
		require.Equal(t, c[1], withdraw.OutY)
	}
}

func TestPlanWithdraw(t *testing.T) {
	pool := Pool{ReserveX: 1_000_000, ReserveY: 110_000_000, LPSupply: 10_000, FeeBps: 30}
	plan, err := PlanWithdraw(pool, 500)
	require.NoError(t, err)
	require.Equal(t, uint64(50_000), plan.OutX)
	require.Equal(t, uint64(5_500_000), plan.OutY)
	require.Equal(t, uint64(500), plan.LPTokensToBurn)
}

func TestPlanWithdraw_Errors(t *testing.T) {
	pool := Pool{ReserveX: 1_000_000, ReserveY: 110_000_000, LPSupply: 10_000}
	_, err := PlanWithdraw(pool, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = PlanWithdraw(pool, 10_001)
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = PlanWithdraw(Pool{}, 1)
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestPlanWithdraw_LargeValues(t *testing.T) {
	// lp * reserve overflows u64 and float64 mantissas alike
	pool := Pool{ReserveX: 9_000_000_000_000_000_000, ReserveY: 3, LPSupply: 9_000_000_000_000_000_001}
	plan, err := PlanWithdraw(pool, 9_000_000_000_000_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(8_999_999_999_999_999_999), plan.OutX)
	require.Equal(t, uint64(2), plan.OutY)
}

func TestPlanDepositForLP(t *testing.T) {
	pool := Pool{ReserveX: 1_000_000, ReserveY: 110_000_000, LPSupply: 10_000}
	plan, err := PlanDepositForLP(pool, 333)
	require.NoError(t, err)
	require.Equal(t, uint64(33_300), plan.RequiredX)
	require.Equal(t, uint64(3_663_000), plan.RequiredY)

	_, err = PlanDepositForLP(Pool{}, 1)
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = PlanDepositForLP(pool, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPlanDeposit_Proportional(t *testing.T) {
	pool := Pool{ReserveX: 1_000_000, ReserveY: 110_000_000, LPSupply: 10_000}

	plan, err := PlanDeposit(pool, 50_000, X)
	require.NoError(t, err)
	require.Equal(t, uint64(500), plan.LPTokensToMint)
	require.Equal(t, uint64(50_000), plan.RequiredX)
	require.Equal(t, uint64(5_500_000), plan.RequiredY)

	plan, err = PlanDeposit(pool, 5_500_000, Y)
	require.NoError(t, err)
	require.Equal(t, uint64(500), plan.LPTokensToMint)
	require.Equal(t, uint64(50_000), plan.RequiredX)
	require.Equal(t, uint64(5_500_000), plan.RequiredY)
}

func TestPlanDeposit_NeverChargesMoreThanOffered(t *testing.T) {
	pool := Pool{ReserveX: 1_234_567, ReserveY: 89_012_345, LPSupply: 10_482_111}
	for _, amount := range []uint64{1, 7, 999, 12_345, 1_000_001} {
		plan, err := PlanDeposit(pool, amount, X)
		if err != nil {
			require.ErrorIs(t, err, ErrInvalidAmount)
			continue
		}
		require.LessOrEqual(t, plan.RequiredX, amount)
	}
}

func TestPlanDeposit_Errors(t *testing.T) {
	_, err := PlanDeposit(Pool{}, 100, X)
	require.ErrorIs(t, err, ErrDivisionByZero)

	pool := Pool{ReserveX: 1_000_000, ReserveY: 110_000_000, LPSupply: 10_000}
	_, err = PlanDeposit(pool, 0, X)
	require.ErrorIs(t, err, ErrInvalidAmount)
	// 1 unit of Y is worth less than one lp token
	_, err = PlanDeposit(pool, 1, Y)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPlanGeometricDeposit(t *testing.T) {
	pool := Pool{ReserveX: 100_000, ReserveY: 11_000_000, LPSupply: 1_048_808}
	plan, err := PlanGeometricDeposit(pool, 2_000, X)
	require.NoError(t, err)
	// sqrt(2000 * 220000)
	require.Equal(t, uint64(20_976), plan.LPTokensToMint)
	require.Equal(t, uint64(20_976*100_000/1_048_808), plan.RequiredX)
	require.Equal(t, uint64(20_976*11_000_000/1_048_808), plan.RequiredY)
}

func TestPlanSwap_Example(t *testing.T) {
	pool := Pool{ReserveX: 100_000_000, ReserveY: 11_000_000_000, LPSupply: 1_048_808_848, FeeBps: 30}
	plan, err := PlanSwap(pool, X, 1_000_000, DefaultSlippageBps)
	require.NoError(t, err)
	require.Equal(t, uint64(997_000), plan.AmountInAfterFee)
	require.Equal(t, expectedSwapOut(1_000_000, 30, 100_000_000, 11_000_000_000), plan.AmountOut)
	require.Equal(t, uint64(108_587_383), plan.AmountOut)
	require.Equal(t, uint64(107_501_509), plan.MinAmountOut)
	require.Equal(t, 0, plan.EffectivePrice.Cmp(big.NewRat(108_587_383, 1_000_000)))
}

func TestPlanSwap_YForX(t *testing.T) {
	pool := Pool{ReserveX: 1_000_000, ReserveY: 110_000_000, LPSupply: 10_000, FeeBps: 30}
	plan, err := PlanSwap(pool, Y, 1_000_000, 0)
	require.NoError(t, err)
	require.Equal(t, expectedSwapOut(1_000_000, 30, 110_000_000, 1_000_000), plan.AmountOut)
	require.Equal(t, plan.AmountOut, plan.MinAmountOut)
}

func TestPlanSwap_Monotonic(t *testing.T) {
	pool := Pool{ReserveX: 100_000_000, ReserveY: 11_000_000_000, LPSupply: 1, FeeBps: 30}
	prev := uint64(0)
	for amount := uint64(1_000_000); amount <= 50_000_000; amount += 1_000_000 {
		plan, err := PlanSwap(pool, X, amount, DefaultSlippageBps)
		require.NoError(t, err)
		require.Greater(t, plan.AmountOut, prev)
		prev = plan.AmountOut
	}

	prev = math.MaxUint64
	for fee := uint16(0); fee <= 1000; fee += 25 {
		pool.FeeBps = fee
		plan, err := PlanSwap(pool, X, 10_000_000, DefaultSlippageBps)
		require.NoError(t, err)
		require.Less(t, plan.AmountOut, prev)
		prev = plan.AmountOut
	}
}

func TestPlanSwap_NeverDrains(t *testing.T) {
	pool := Pool{ReserveX: 10, ReserveY: 1_000, LPSupply: 100, FeeBps: 0}
	for _, amount := range []uint64{1, 1_000, 1 << 40, math.MaxUint64} {
		plan, err := PlanSwap(pool, X, amount, 0)
		require.NoError(t, err)
		require.Less(t, plan.AmountOut, pool.ReserveY)
		plan, err = PlanSwap(pool, Y, amount, 0)
		require.NoError(t, err)
		require.Less(t, plan.AmountOut, pool.ReserveX)
	}
}

func TestPlanSwap_Errors(t *testing.T) {
	pool := Pool{ReserveX: 1_000, ReserveY: 1_000, LPSupply: 1_000, FeeBps: 30}
	_, err := PlanSwap(pool, X, 0, DefaultSlippageBps)
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = PlanSwap(pool, X, 10, 10_001)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = PlanSwap(Pool{ReserveX: 1_000, ReserveY: 1_000}, X, 10, DefaultSlippageBps)
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = PlanSwap(Pool{ReserveX: 0, ReserveY: 1_000, LPSupply: 10}, X, 10, DefaultSlippageBps)
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = PlanSwap(Pool{ReserveX: 1_000, ReserveY: 0, LPSupply: 10}, Y, 10, DefaultSlippageBps)
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestCheckBalance(t *testing.T) {
	require.NoError(t, CheckBalance(10, 10))
	require.ErrorIs(t, CheckBalance(9, 10), ErrInsufficientBalance)
}
