package app

import (
	"context"
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/store"
	"github.com/spf13/cobra"
)

type depositArgs struct {
	token     string
	amount    string
	amountX   string
	amountY   string
	geometric bool
}

func newDepositCmd(ctx context.Context, opts *options) *cobra.Command {
	args := &depositArgs{}
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Add liquidity and receive LP tokens",
		Long: `Deposit one side; the other side is taken at the pool ratio. An empty pool takes
both sides and sets the ratio.

Example:
  $ ammctl deposit --token a --amount 0.1
  $ ammctl deposit --amount-x 0.1 --amount-y 11`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(ctx, func(a *App) error {
				return a.Deposit(args)
			})
		},
	}
	cmd.Flags().StringVar(&args.token, "token", "", "token the amount is given in: a|x or b|y")
	cmd.Flags().StringVar(&args.amount, "amount", "", "amount of --token to deposit")
	cmd.Flags().StringVar(&args.amountX, "amount-x", "", "token A amount for the first deposit")
	cmd.Flags().StringVar(&args.amountY, "amount-y", "", "token B amount for the first deposit")
	cmd.Flags().BoolVar(&args.geometric, "geometric", false, "size the lp amount by the geometric mean of both sides")
	return cmd
}

func (a *App) planDeposit(args *depositArgs) (amm.Pool, *amm.DepositPlan, error) {
	snapshot, err := a.pool.Snapshot()
	if err != nil {
		return amm.Pool{}, nil, err
	}
	if snapshot.IsEmpty() {
		a.printf("Pool is empty, this deposit sets the price.\n")
		x, err := a.readAmount(args.amountX, a.tokenX, "Amount of "+a.tokenX.Symbol)
		if err != nil {
			return snapshot, nil, err
		}
		y, err := a.readAmount(args.amountY, a.tokenY, "Amount of "+a.tokenY.Symbol)
		if err != nil {
			return snapshot, nil, err
		}
		plan, err := amm.PlanInitialDeposit(x, y)
		return snapshot, plan, err
	}
	token, err := a.chooseToken(args.token, "Token to deposit")
	if err != nil {
		return snapshot, nil, err
	}
	amount, err := a.readAmount(args.amount, a.token(token), "Amount of "+a.token(token).Symbol)
	if err != nil {
		return snapshot, nil, err
	}
	if args.geometric {
		plan, err := amm.PlanGeometricDeposit(snapshot, amount, token)
		return snapshot, plan, err
	}
	plan, err := amm.PlanDeposit(snapshot, amount, token)
	return snapshot, plan, err
}

func (a *App) Deposit(args *depositArgs) error {
	snapshot, plan, err := a.planDeposit(args)
	if err != nil {
		return err
	}
	a.printDepositPlan(snapshot, plan)

	balances, err := a.pool.Balances(a.pool.Owner())
	if err != nil {
		return err
	}
	if err := amm.CheckBalance(balances.X, plan.RequiredX); err != nil {
		return err
	}
	if err := amm.CheckBalance(balances.Y, plan.RequiredY); err != nil {
		return err
	}
	if err := a.confirm("Proceed with deposit"); err != nil {
		return err
	}

	receipt, err := a.pool.Deposit(plan)
	a.record(&store.Operation{
		Kind:      store.KindDeposit,
		TokenIn:   a.tokenX.Mint.String(),
		AmountIn:  plan.RequiredX,
		TokenOut:  a.tokenY.Mint.String(),
		AmountOut: plan.RequiredY,
		LPAmount:  plan.LPTokensToMint,
	}, receipt, err)
	if err != nil {
		return err
	}
	a.printReceipt(receipt)
	return nil
}
