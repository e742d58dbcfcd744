package env

import (
	"errors"
	"github.com/gagliardetto/solana-go"
	"log"
	"os"
)

var ErrNoPool = errors.New("pool info not found, run init-pool first")

// Env is what the commands know about the deployed pool: its addresses and the display
// metadata of the two mints.
type Env struct {
	logger       *log.Logger
	poolInfoFile string
	pool         *PoolInfo
	tokens       map[solana.PublicKey]*Token
}

func NewEnv(logger *log.Logger, poolInfoFile string) *Env {
	env := &Env{
		logger:       logger,
		poolInfoFile: poolInfoFile,
		tokens:       make(map[solana.PublicKey]*Token),
	}
	return env
}

func (e *Env) Start() error {
	e.logger.Printf("start env......")
	pool, err := LoadPoolInfo(e.poolInfoFile)
	if errors.Is(err, os.ErrNotExist) {
		e.logger.Printf("no pool info at %s", e.poolInfoFile)
		return nil
	}
	if err != nil {
		return err
	}
	e.pool = pool
	return nil
}

func (e *Env) Stop() {
	e.logger.Printf("stop env......")
}

func (e *Env) Pool() (*PoolInfo, error) {
	if e.pool == nil {
		return nil, ErrNoPool
	}
	return e.pool, nil
}

func (e *Env) SavePool(pool *PoolInfo) error {
	if err := pool.Save(e.poolInfoFile); err != nil {
		return err
	}
	e.pool = pool
	return nil
}
