package app

import (
	"context"
	"fmt"
	"github.com/egaotan/solana-amm/networkdetect"
	"github.com/spf13/cobra"
)

func newNodesCmd(ctx context.Context, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "Ping the configured rpc nodes, fastest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(ctx)
			if err != nil {
				return err
			}
			return a.Nodes(networkdetect.PingProber)
		},
	}
}

func (a *App) Nodes(probe networkdetect.Prober) error {
	peers := networkdetect.DetectPeers(a.cfg.Rpcs(), probe)
	for _, peer := range peers {
		status := fmt.Sprintf("%d ms, loss %.0f%%", peer.AvgRtt.Milliseconds(), peer.Loss)
		if !peer.Reachable() {
			status = "unreachable"
			if peer.Err != nil {
				status += ": " + peer.Err.Error()
			}
		}
		a.printf("%-48s %s\n", peer.Rpc, status)
	}
	if len(peers) == 0 || !peers[0].Reachable() {
		return networkdetect.ErrNoPeer
	}
	a.printf("fastest: %s\n", peers[0].Rpc)
	return nil
}
