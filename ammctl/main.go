package main

import (
	"context"
	"fmt"
	"github.com/egaotan/solana-amm/ammctl/app"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go shutdown(cancel, quit)

	if err := app.NewRootCmd(ctx).Execute(); err != nil {
		os.Exit(1)
	}
}

func shutdown(cancel context.CancelFunc, quit <-chan os.Signal) {
	osCall := <-quit
	fmt.Printf("System call: %v, ammctl is shutting down......\n", osCall)
	cancel()
}
