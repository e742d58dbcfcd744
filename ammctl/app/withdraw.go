package app

import (
	"context"
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/store"
	"github.com/spf13/cobra"
)

type withdrawArgs struct {
	amount string
}

func newWithdrawCmd(ctx context.Context, opts *options) *cobra.Command {
	args := &withdrawArgs{}
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Burn LP tokens for a share of both reserves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(ctx, func(a *App) error {
				return a.Withdraw(args)
			})
		},
	}
	cmd.Flags().StringVar(&args.amount, "amount", "", "lp tokens to burn")
	return cmd
}

func (a *App) Withdraw(args *withdrawArgs) error {
	balances, err := a.pool.Balances(a.pool.Owner())
	if err != nil {
		return err
	}
	lpToken := a.lpToken()
	a.printf("Your LP balance: %s\n", lpToken.Format(balances.LP))
	if balances.LP == 0 {
		return amm.CheckBalance(0, 1)
	}
	lp, err := a.readAmount(args.amount, lpToken, "LP tokens to burn")
	if err != nil {
		return err
	}
	if err := amm.CheckBalance(balances.LP, lp); err != nil {
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
	if err := a.confirm("Proceed with withdrawal"); err != nil {
		return err
	}

	receipt, err := a.pool.Withdraw(plan)
	a.record(&store.Operation{
		Kind:      store.KindWithdraw,
		TokenIn:   a.tokenX.Mint.String(),
		AmountIn:  plan.OutX,
		TokenOut:  a.tokenY.Mint.String(),
		AmountOut: plan.OutY,
		LPAmount:  plan.LPTokensToBurn,
	}, receipt, err)
	if err != nil {
		return err
	}
	a.printReceipt(receipt)
	return nil
}
