package app

import (
	"context"
	"github.com/egaotan/solana-amm/config"
	"github.com/egaotan/solana-amm/networkdetect"
	"github.com/egaotan/solana-amm/server"
	"github.com/egaotan/solana-amm/utils"
	"github.com/spf13/cobra"
	"time"
)

const LatencyThreshold = 200 * time.Millisecond

func newServeCmd(ctx context.Context, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve pool state and quotes over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(ctx, func(a *App) error {
				return a.Serve()
			})
		},
	}
}

func (a *App) Serve() error {
	logger := utils.NewLog(a.cfg.LogDir, config.ServerLog)
	s := server.NewServer(a.ctx, logger, a.cfg.Listen, a.pool.Accounts().Config.String(), a.cfg.SlippageBps, a.pool)
	if a.store != nil {
		s.SetOperations(a.store)
	}
	if a.notifier != nil {
		monitor, err := networkdetect.NewMonitor(a.cfg.Nodes[0].Rpc, networkdetect.PingProber, LatencyThreshold,
			a.notifier, utils.NewLog(a.cfg.LogDir, config.NetworkLog))
		if err != nil {
			return err
		}
		monitor.Start(a.ctx)
		defer monitor.Stop()
	}
	a.printf("Serving %s on %s\n", a.pool.Accounts().Config, a.cfg.Listen)
	return s.Service()
}
