package app

import (
	"context"
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/config"
	"github.com/egaotan/solana-amm/utils"
	"github.com/egaotan/solana-amm/watch"
	"github.com/spf13/cobra"
	"time"
)

func newWatchCmd(ctx context.Context, opts *options) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the pool and report reserve changes until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withPool(ctx, func(a *App) error {
				return a.Watch(interval)
			})
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", watch.DefaultInterval, "poll interval")
	return cmd
}

func (a *App) Watch(interval time.Duration) error {
	name := a.pool.Accounts().Config.String()
	w := watch.NewWatcher(name, a.pool, interval, utils.NewLog(a.cfg.LogDir, config.WatchLog))
	if a.notifier != nil {
		w.SetNotifier(a.notifier)
	}
	w.OnChange(func(before, after amm.Pool) {
		a.printf("\n%s\n", time.Now().Format("2006-01-02 15:04:05"))
		a.printPool(after)
	})
	snapshot, err := a.pool.Snapshot()
	if err != nil {
		return err
	}
	a.printPool(snapshot)
	w.Start(a.ctx)
	w.Wait()
	return nil
}
