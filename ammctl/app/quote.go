package app

import (
	"context"
	"github.com/egaotan/solana-amm/amm"
	"github.com/spf13/cobra"
)

func newQuoteCmd(ctx context.Context, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Plan an operation against the live pool without sending anything",
	}

	swap := &swapArgs{}
	swapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Quote a swap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(ctx, func(a *App) error {
				snapshot, plan, err := a.planSwap(swap)
				if err != nil {
					return err
				}
				a.printSwapPlan(snapshot, plan)
				return nil
			})
		},
	}
	swapCmd.Flags().StringVar(&swap.token, "token", "", "token to sell: a|x or b|y")
	swapCmd.Flags().StringVar(&swap.amount, "amount", "", "amount to sell, in token units")
	swapCmd.Flags().IntVar(&swap.slippageBps, "slippage-bps", -1, "slippage tolerance in basis points (default from config)")

	deposit := &depositArgs{}
	depositCmd := &cobra.Command{
		Use:   "deposit",
		Short: "Quote a deposit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(ctx, func(a *App) error {
				snapshot, plan, err := a.planDeposit(deposit)
				if err != nil {
					return err
				}
				a.printDepositPlan(snapshot, plan)
				return nil
			})
		},
	}
	depositCmd.Flags().StringVar(&deposit.token, "token", "", "token the amount is given in: a|x or b|y")
	depositCmd.Flags().StringVar(&deposit.amount, "amount", "", "amount of --token to deposit")
	depositCmd.Flags().StringVar(&deposit.amountX, "amount-x", "", "token A amount for the first deposit")
	depositCmd.Flags().StringVar(&deposit.amountY, "amount-y", "", "token B amount for the first deposit")
	depositCmd.Flags().BoolVar(&deposit.geometric, "geometric", false, "size the lp amount by the geometric mean of both sides")

	withdraw := &withdrawArgs{}
	withdrawCmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Quote a withdrawal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(ctx, func(a *App) error {
				lp, err := a.readAmount(withdraw.amount, a.lpToken(), "LP tokens to burn")
				if err != nil {
					return err
				}
				snapshot, err := a.pool.Snapshot()
				if err != nil {
					return err
				}
				plan, err := amm.PlanWithdraw(snapshot, lp)
				if err != nil {
					return err
				}
				a.printWithdrawPlan(snapshot, plan)
				return nil
			})
		},
	}
	withdrawCmd.Flags().StringVar(&withdraw.amount, "amount", "", "lp tokens to burn")

	cmd.AddCommand(swapCmd, depositCmd, withdrawCmd)
	return cmd
}
