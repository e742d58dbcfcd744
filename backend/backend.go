package backend

import (
	"context"
	"errors"
	"github.com/egaotan/solana-amm/config"
	"github.com/egaotan/solana-amm/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"log"
	"time"
)

var (
	ErrNoWallet          = errors.New("no wallet imported")
	ErrNotConfirmed      = errors.New("transaction not confirmed")
	ErrTransactionFailed = errors.New("transaction failed")
	ErrSimulate          = errors.New("simulation failed")
)

type Backend struct {
	logger          *log.Logger
	rpcClient       *rpc.Client
	ctx             context.Context
	wallets         []*Wallet
	player          solana.PublicKey
	retryAttempts   int
	retryDelay      time.Duration
	confirmAttempts int
	confirmDelay    time.Duration
}

func NewBackend(ctx context.Context, cfg *config.Config) *Backend {
	backend := &Backend{
		rpcClient:       rpc.New(cfg.Nodes[0].Rpc),
		ctx:             ctx,
		logger:          utils.NewLog(cfg.LogDir, config.BackendLog),
		wallets:         make([]*Wallet, 0, 1),
		retryAttempts:   cfg.RetryAttempts,
		retryDelay:      time.Duration(cfg.RetryDelayMs) * time.Millisecond,
		confirmAttempts: cfg.ConfirmAttempts,
		confirmDelay:    time.Duration(cfg.ConfirmDelayMs) * time.Millisecond,
	}
	return backend
}

func (backend *Backend) Logger() *log.Logger {
	return backend.logger
}
