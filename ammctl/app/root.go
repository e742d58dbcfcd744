package app

import (
	"context"
	"github.com/egaotan/solana-amm/config"
	"github.com/spf13/cobra"
)

type options struct {
	configFile string
	yes        bool
	simulate   bool
}

func NewRootCmd(ctx context.Context) *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "ammctl",
		Short:         "Client for the constant-product AMM program",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", config.ConfigFile, "config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.yes, "yes", "y", false, "skip confirmation prompts")
	rootCmd.PersistentFlags().BoolVar(&opts.simulate, "simulate", false, "simulate transactions instead of sending them")

	rootCmd.AddCommand(
		newInitPoolCmd(ctx, opts),
		newDepositCmd(ctx, opts),
		newWithdrawCmd(ctx, opts),
		newSwapCmd(ctx, opts),
		newInfoCmd(ctx, opts),
		newBalancesCmd(ctx, opts),
		newQuoteCmd(ctx, opts),
		newServeCmd(ctx, opts),
		newNodesCmd(ctx, opts),
		newWatchCmd(ctx, opts),
	)
	return rootCmd
}

func (opts *options) newApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.simulate {
		cfg.Simulate = true
	}
	return NewApp(ctx, cfg, NewTerminalPrompter(opts.yes)), nil
}

// withPool runs fn with the app started and the recorded pool bound.
func (opts *options) withPool(ctx context.Context, fn func(a *App) error) error {
	a, err := opts.newApp(ctx)
	if err != nil {
		return err
	}
	if err := a.Start(); err != nil {
		return err
	}
	defer a.Stop()
	if err := a.OpenPool(); err != nil {
		return err
	}
	return fn(a)
}
