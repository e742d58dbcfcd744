package app

import (
	"context"
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/pool"
	"github.com/egaotan/solana-amm/store"
	"github.com/spf13/cobra"
)

type swapArgs struct {
	token       string
	amount      string
	slippageBps int
}

func newSwapCmd(ctx context.Context, opts *options) *cobra.Command {
	args := &swapArgs{}
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Swap one pool token for the other",
		Long: `Sell an amount of token A (x) or B (y) for the other one.

Example:
  $ ammctl swap --token a --amount 0.5 --slippage-bps 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(ctx, func(a *App) error {
				return a.Swap(args)
			})
		},
	}
	cmd.Flags().StringVar(&args.token, "token", "", "token to sell: a|x or b|y")
	cmd.Flags().StringVar(&args.amount, "amount", "", "amount to sell, in token units")
	cmd.Flags().IntVar(&args.slippageBps, "slippage-bps", -1, "slippage tolerance in basis points (default from config)")
	return cmd
}

func (a *App) planSwap(args *swapArgs) (amm.Pool, *amm.SwapPlan, error) {
	input, err := a.chooseToken(args.token, "Token to sell")
	if err != nil {
		return amm.Pool{}, nil, err
	}
	amountIn, err := a.readAmount(args.amount, a.token(input), "Amount of "+a.token(input).Symbol+" to sell")
	if err != nil {
		return amm.Pool{}, nil, err
	}
	slippage := a.cfg.SlippageBps
	if args.slippageBps >= 0 {
		if args.slippageBps > amm.BpsDenominator {
			return amm.Pool{}, nil, amm.ErrInvalidAmount
		}
		slippage = uint16(args.slippageBps)
	}
	snapshot, err := a.pool.Snapshot()
	if err != nil {
		return amm.Pool{}, nil, err
	}
	plan, err := amm.PlanSwap(snapshot, input, amountIn, slippage)
	if err != nil {
		return snapshot, nil, err
	}
	return snapshot, plan, nil
}

func (a *App) Swap(args *swapArgs) error {
	snapshot, plan, err := a.planSwap(args)
	if err != nil {
		return err
	}
	a.printSwapPlan(snapshot, plan)

	balances, err := a.pool.Balances(a.pool.Owner())
	if err != nil {
		return err
	}
	if err := amm.CheckBalance(balances.Of(plan.Input), plan.AmountIn); err != nil {
		return err
	}
	if err := a.confirm("Proceed with swap"); err != nil {
		return err
	}

	receipt, err := a.pool.Swap(plan)
	output := plan.Input.Other()
	a.record(&store.Operation{
		Kind:      store.KindSwap,
		TokenIn:   a.token(plan.Input).Mint.String(),
		AmountIn:  plan.AmountIn,
		TokenOut:  a.token(output).Mint.String(),
		AmountOut: received(receipt, output, plan.AmountOut),
	}, receipt, err)
	if err != nil {
		return err
	}
	a.printReceipt(receipt)
	return nil
}

// received is what a confirmed receipt shows arriving in token, or planned without one.
func received(receipt *pool.Receipt, token amm.Token, planned uint64) uint64 {
	if receipt == nil || receipt.Before == nil || receipt.After == nil {
		return planned
	}
	before, after := receipt.Before.Of(token), receipt.After.Of(token)
	if after < before {
		return 0
	}
	return after - before
}
