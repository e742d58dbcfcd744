package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/backend"
	"github.com/egaotan/solana-amm/config"
	"github.com/egaotan/solana-amm/env"
	"github.com/egaotan/solana-amm/notify"
	"github.com/egaotan/solana-amm/pool"
	"github.com/egaotan/solana-amm/store"
	"github.com/egaotan/solana-amm/utils"
	"io"
	"log"
	"os"
	"time"
)

// App holds what one command invocation needs. Components are started lazily so that
// offline commands never touch the network.
type App struct {
	ctx      context.Context
	cfg      *config.Config
	logger   *log.Logger
	out      io.Writer
	prompter Prompter
	backend  *backend.Backend
	env      *env.Env
	pool     *pool.Program
	store    *store.Store
	notifier *notify.Notifier
	tokenX   *env.Token
	tokenY   *env.Token
}

func NewApp(ctx context.Context, cfg *config.Config, prompter Prompter) *App {
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		logger:   utils.NewLog(cfg.LogDir, config.CommandLog),
		out:      os.Stdout,
		prompter: prompter,
	}
}

func (a *App) Start() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	a.backend = backend.NewBackend(a.ctx, a.cfg)
	if err := a.backend.LoadWallet(a.cfg.Wallet); err != nil {
		return err
	}
	a.env = env.NewEnv(a.logger, a.cfg.PoolInfo)
	if err := a.env.Start(); err != nil {
		return err
	}
	if a.cfg.TokenList != "" {
		if err := a.env.LoadTokenList(a.cfg.TokenList); err != nil {
			return err
		}
	}
	if a.cfg.JournalEnabled() {
		dao, err := store.NewDao(a.cfg.DBUrl, a.cfg.DBScheme, a.cfg.DBUser, a.cfg.DBPasswd)
		if err != nil {
			return err
		}
		a.store = store.NewStore(a.ctx, utils.NewLog(a.cfg.LogDir, config.StoreLog), dao)
		a.store.Start()
	}
	if a.cfg.DingUrl != "" {
		a.notifier = notify.NewNotifier(a.cfg.DingUrl)
	}
	return nil
}

func (a *App) Stop() {
	if a.store != nil {
		a.store.Stop()
	}
	if a.pool != nil {
		a.pool.Stop()
	}
	if a.env != nil {
		a.env.Stop()
	}
}

// OpenPool binds the pool recorded in pool-info.json.
func (a *App) OpenPool() error {
	info, err := a.env.Pool()
	if err != nil {
		return err
	}
	accounts, err := info.Accounts(a.cfg.Program)
	if err != nil {
		return err
	}
	if err := a.bindPool(pool.NewProgram(a.backend, accounts, a.logger)); err != nil {
		return err
	}
	return a.pool.Start()
}

// bindPool makes p the pool every command works on. Decimals come from the mints, symbols
// from the token list with the configured symbols as fallback.
func (a *App) bindPool(p *pool.Program) error {
	a.pool = p
	a.pool.SetSimulate(a.cfg.Simulate)
	decimalsX, decimalsY, err := p.MintDecimals()
	if err != nil {
		return err
	}
	if decimalsX != a.cfg.TokenX.Decimals || decimalsY != a.cfg.TokenY.Decimals {
		a.logger.Printf("configured decimals %d/%d differ from mints %d/%d, using mints",
			a.cfg.TokenX.Decimals, a.cfg.TokenY.Decimals, decimalsX, decimalsY)
	}
	accounts := p.Accounts()
	a.tokenX = a.env.Resolve(accounts.MintX, decimalsX, a.cfg.TokenX.Symbol)
	a.tokenY = a.env.Resolve(accounts.MintY, decimalsY, a.cfg.TokenY.Symbol)
	return nil
}

func (a *App) token(t amm.Token) *env.Token {
	if t == amm.X {
		return a.tokenX
	}
	return a.tokenY
}

func (a *App) lpToken() *env.Token {
	return &env.Token{Symbol: "LP", Mint: a.pool.Accounts().LPMint, Decimals: a.pool.LPDecimals()}
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// record journals and announces an executed operation. Neither is allowed to fail the command.
func (a *App) record(op *store.Operation, receipt *pool.Receipt, err error) {
	if receipt == nil || receipt.Simulated {
		return
	}
	op.Pool = a.pool.Accounts().Config.String()
	op.User = a.pool.Owner().String()
	op.Signature = receipt.Signature.String()
	op.CreatedAt = time.Now()
	op.Status = store.StatusConfirmed
	if err != nil {
		op.Status = store.StatusFailed
		if !receipt.Signature.IsZero() && !errors.Is(err, backend.ErrTransactionFailed) {
			op.Status = store.StatusUnconfirmed
		}
		op.Error = err.Error()
	}
	a.logger.Printf("%s %s: %s", op.Kind, op.Status, op.Signature)
	if a.store != nil {
		a.store.StoreOperation(op)
	}
	if a.notifier != nil {
		if err := a.notifier.Notify(a.ctx, describe(op)); err != nil {
			a.logger.Printf("notify err: %s", err.Error())
		}
	}
}

func describe(op *store.Operation) string {
	text := fmt.Sprintf("amm %s %s\npool: %s\nuser: %s\nsignature: %s", op.Kind, op.Status, op.Pool, op.User, op.Signature)
	if op.AmountIn > 0 {
		text += fmt.Sprintf("\nin: %d %s", op.AmountIn, op.TokenIn)
	}
	if op.AmountOut > 0 {
		text += fmt.Sprintf("\nout: %d %s", op.AmountOut, op.TokenOut)
	}
	if op.LPAmount > 0 {
		text += fmt.Sprintf("\nlp: %d", op.LPAmount)
	}
	if op.Error != "" {
		text += "\nerror: " + op.Error
	}
	return text
}
