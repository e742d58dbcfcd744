package app

import (
	"context"
	"fmt"
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/env"
	"github.com/egaotan/solana-amm/pool"
	"github.com/egaotan/solana-amm/program"
	"github.com/egaotan/solana-amm/spltoken"
	"github.com/egaotan/solana-amm/store"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"time"
)

const DefaultSeed = 42

type initPoolArgs struct {
	mintX       string
	mintY       string
	seed        uint64
	fee         int
	authority   string
	amountX     string
	amountY     string
	skipDeposit bool
}

func newInitPoolCmd(ctx context.Context, opts *options) *cobra.Command {
	args := &initPoolArgs{}
	cmd := &cobra.Command{
		Use:   "init-pool",
		Short: "Create a pool for two mints and add the initial liquidity",
		Long: `Create the config, LP mint and vaults of a new pool, save them to the pool info
file, then make the first deposit which sets the price.

Example:
  $ ammctl init-pool --mint-x AWJPoHZMzLRxzbw3mtbZjAwWSxqvGpUjGNL676LFLeb2 \
    --mint-y 95jWSX2bi7KLvWGtUYLx4pqdkFvoMQrU8g15eVpFewNX \
    --seed 42 --fee 30 --amount-x 0.1 --amount-y 11`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(ctx)
			if err != nil {
				return err
			}
			if err := a.Start(); err != nil {
				return err
			}
			defer a.Stop()
			return a.InitPool(args)
		},
	}
	cmd.Flags().StringVar(&args.mintX, "mint-x", "", "mint of token A")
	cmd.Flags().StringVar(&args.mintY, "mint-y", "", "mint of token B")
	cmd.Flags().Uint64Var(&args.seed, "seed", DefaultSeed, "pool seed")
	cmd.Flags().IntVar(&args.fee, "fee", -1, "swap fee in basis points (default from config)")
	cmd.Flags().StringVar(&args.authority, "authority", "", "optional authority allowed to lock the pool")
	cmd.Flags().StringVar(&args.amountX, "amount-x", "", "initial token A liquidity")
	cmd.Flags().StringVar(&args.amountY, "amount-y", "", "initial token B liquidity")
	cmd.Flags().BoolVar(&args.skipDeposit, "skip-deposit", false, "only create the pool")
	cmd.MarkFlagRequired("mint-x")
	cmd.MarkFlagRequired("mint-y")
	return cmd
}

func (a *App) InitPool(args *initPoolArgs) error {
	mintX, err := solana.PublicKeyFromBase58(args.mintX)
	if err != nil {
		return fmt.Errorf("mint-x: %w", err)
	}
	mintY, err := solana.PublicKeyFromBase58(args.mintY)
	if err != nil {
		return fmt.Errorf("mint-y: %w", err)
	}
	if mintX == mintY {
		return fmt.Errorf("mint-x and mint-y are the same mint")
	}
	fee := a.cfg.FeeBps
	if args.fee >= 0 {
		if args.fee > 10000 {
			return fmt.Errorf("fee %d bps is above 10000", args.fee)
		}
		fee = uint16(args.fee)
	}
	var authority *solana.PublicKey
	if args.authority != "" {
		key, err := solana.PublicKeyFromBase58(args.authority)
		if err != nil {
			return fmt.Errorf("authority: %w", err)
		}
		authority = &key
	}
	accounts, err := program.DerivePool(a.cfg.Program, mintX, mintY, args.seed)
	if err != nil {
		return err
	}
	a.printf("Pool addresses\n")
	a.printf("Config PDA: %s\n", accounts.Config)
	a.printf("LP Mint: %s\n", accounts.LPMint)
	a.printf("Vault X: %s\n", accounts.VaultX)
	a.printf("Vault Y: %s\n", accounts.VaultY)
	if a.backend.HasAccount(accounts.Config) {
		return fmt.Errorf("pool with seed %d already exists: %s", args.seed, accounts.Config)
	}
	if err := a.checkRent(); err != nil {
		return err
	}
	if err := a.bindPool(pool.NewProgram(a.backend, accounts, a.logger)); err != nil {
		return err
	}
	if err := a.confirm(fmt.Sprintf("Initialize pool with %d bps fee", fee)); err != nil {
		return err
	}

	receipt, err := a.pool.Initialize(fee, authority)
	a.record(&store.Operation{Kind: store.KindInitialize}, receipt, err)
	if err != nil {
		return err
	}
	a.printReceipt(receipt)
	if receipt.Simulated {
		return nil
	}
	if err := a.env.SavePool(env.NewPoolInfo(accounts, fee, time.Now())); err != nil {
		return err
	}
	a.printf("Pool info saved to %s\n", a.cfg.PoolInfo)
	if args.skipDeposit {
		return nil
	}
	return a.Deposit(&depositArgs{amountX: args.amountX, amountY: args.amountY})
}

// checkRent makes sure the payer can fund the config, lp mint and both vaults.
func (a *App) checkRent() error {
	var rent uint64
	for _, size := range []uint64{program.ConfigAccountSize, uint64(spltoken.MintLayoutSize), uint64(spltoken.TokenLayoutSize), uint64(spltoken.TokenLayoutSize)} {
		lamports, err := a.backend.GetMinimumBalanceForRentExemption(size)
		if err != nil {
			return err
		}
		rent += lamports
	}
	balance, err := a.backend.Balance(a.backend.Player())
	if err != nil {
		return err
	}
	a.printf("Rent for new accounts: %s SOL\n", decimal.NewFromInt(int64(rent)).Shift(-9).StringFixed(9))
	if err := amm.CheckBalance(balance, rent); err != nil {
		return fmt.Errorf("SOL: %w", err)
	}
	return nil
}
