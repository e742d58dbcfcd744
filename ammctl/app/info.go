package app

import (
	"context"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newInfoCmd(ctx context.Context, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the pool addresses and reserves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(ctx, func(a *App) error {
				return a.Info()
			})
		},
	}
}

func newBalancesCmd(ctx context.Context, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show the wallet's pool token balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(ctx, func(a *App) error {
				return a.Balances()
			})
		},
	}
}

func (a *App) Info() error {
	info, err := a.env.Pool()
	if err != nil {
		return err
	}
	a.printf("Pool information\n")
	a.printf("Program: %s\n", a.pool.Id())
	a.printf("Config PDA: %s\n", info.ConfigPda)
	a.printf("LP Mint: %s\n", info.LPMint)
	a.printf("Vault X: %s\n", info.VaultX)
	a.printf("Vault Y: %s\n", info.VaultY)
	a.printf("Token X Mint: %s\n", info.MintX)
	a.printf("Token Y Mint: %s\n", info.MintY)
	a.printf("Seed: %d\n", info.Seed)
	a.printf("Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	if config := a.pool.Config(); config != nil {
		authority := "None"
		if config.Authority != nil {
			authority = config.Authority.String()
		}
		a.printf("Authority: %s\n", authority)
		a.printf("Locked: %t\n", config.Locked)
	}
	snapshot, err := a.pool.Snapshot()
	if err != nil {
		return err
	}
	a.printf("\n")
	a.printPool(snapshot)
	return nil
}

func (a *App) Balances() error {
	owner := a.pool.Owner()
	balances, err := a.pool.Balances(owner)
	if err != nil {
		return err
	}
	a.printf("Wallet: %s\n", owner)
	if a.backend != nil {
		lamports, err := a.backend.Balance(owner)
		if err != nil {
			return err
		}
		a.printf("SOL: %s\n", decimal.NewFromInt(int64(lamports)).Shift(-9).StringFixed(9))
	}
	a.printBalances(balances)
	return nil
}
