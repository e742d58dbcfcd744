package amm

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func TestParseToken(t *testing.T) {
	for in, want := range map[string]Token{"x": X, "A": X, " y ": Y, "b": Y} {
		got, err := ParseToken(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseToken("z")
	require.Error(t, err)
	require.Equal(t, Y, X.Other())
}

func TestPool_Ratio(t *testing.T) {
	ratio, err := Pool{ReserveX: 100_000, ReserveY: 11_000_000}.Ratio()
	require.NoError(t, err)
	require.True(t, ratio.Equal(decimal.NewFromInt(110)))

	_, err = Pool{ReserveY: 1}.Ratio()
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestPool_PriceImpact(t *testing.T) {
	pool := Pool{ReserveX: 1_000_000, ReserveY: 1_000_000, LPSupply: 1_000_000}
	plan, err := PlanSwap(pool, X, 1_000_000, DefaultSlippageBps)
	require.NoError(t, err)
	require.Equal(t, uint64(500_000), plan.AmountOut)

	after, err := pool.AfterSwap(plan)
	require.NoError(t, err)
	require.Equal(t, uint64(2_000_000), after.ReserveX)
	require.Equal(t, uint64(500_000), after.ReserveY)

	impact, err := pool.PriceImpact(plan)
	require.NoError(t, err)
	require.Equal(t, "-75", impact.String())
}

func TestPool_AfterSwapOverflow(t *testing.T) {
	pool := Pool{ReserveX: 100_000_000, ReserveY: 11_000_000_000, LPSupply: 1_000_000, FeeBps: 30}
	plan, err := PlanSwap(pool, X, math.MaxUint64, DefaultSlippageBps)
	require.NoError(t, err)
	require.Less(t, plan.AmountOut, pool.ReserveY)

	_, err = pool.AfterSwap(plan)
	require.ErrorIs(t, err, ErrOverflow)
	_, err = pool.PriceImpact(plan)
	require.ErrorIs(t, err, ErrOverflow)

	plan, err = PlanSwap(pool, Y, math.MaxUint64-pool.ReserveY, DefaultSlippageBps)
	require.NoError(t, err)
	after, err := pool.AfterSwap(plan)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), after.ReserveY)
}

func TestSwapPlan_EffectivePriceDecimal(t *testing.T) {
	pool := Pool{ReserveX: 100_000_000, ReserveY: 11_000_000_000, LPSupply: 1, FeeBps: 30}
	plan, err := PlanSwap(pool, X, 1_000_000, DefaultSlippageBps)
	require.NoError(t, err)
	require.Equal(t, "108.587383", plan.EffectivePriceDecimal(6).String())
	require.True(t, (&SwapPlan{}).EffectivePriceDecimal(6).IsZero())
}
