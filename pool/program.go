package pool

import (
	"errors"
	"fmt"
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/backend"
	"github.com/egaotan/solana-amm/program"
	"github.com/egaotan/solana-amm/spltoken"
	"github.com/gagliardetto/solana-go"
	"log"
	"sync"
)

var (
	ErrPoolNotFound = errors.New("pool config account not found")
	ErrPoolLocked   = errors.New("pool is locked")
	ErrVaultMissing = errors.New("pool vault not found")
	ErrMintMissing  = errors.New("token mint not found")
)

type Backend interface {
	Accounts(pubkeys []solana.PublicKey) ([]*backend.Account, error)
	Account(pubkey solana.PublicKey) (*backend.Account, error)
	Commit(ins []solana.Instruction) (solana.Signature, error)
	Simulate(ins []solana.Instruction) (*backend.SimulateResult, error)
	Player() solana.PublicKey
}

// Program binds one deployed pool: it reads snapshots of the vaults and LP mint and turns
// engine plans into signed AMM instructions.
type Program struct {
	mu              sync.Mutex
	backend         Backend
	log             *log.Logger
	accounts        *program.PoolAccounts
	config          *program.Config
	splTokenProgram *spltoken.Program
	simulate        bool
}

func NewProgram(be Backend, accounts *program.PoolAccounts, logger *log.Logger) *Program {
	p := &Program{
		backend:         be,
		log:             logger,
		accounts:        accounts,
		splTokenProgram: spltoken.NewProgram(be, logger),
	}
	return p
}

func (p *Program) Name() string {
	return "amm"
}

func (p *Program) Id() solana.PublicKey {
	return p.accounts.Program
}

// Owner is the wallet every flow signs and pays with.
func (p *Program) Owner() solana.PublicKey {
	return p.backend.Player()
}

func (p *Program) Accounts() *program.PoolAccounts {
	return p.accounts
}

// SetSimulate makes every flow simulate its transaction instead of sending it.
func (p *Program) SetSimulate(simulate bool) {
	p.simulate = simulate
}

func (p *Program) Start() error {
	p.log.Printf("start %s, program: %s, config: %s", p.Name(), p.Id(), p.accounts.Config)
	_, err := p.LoadConfig()
	return err
}

func (p *Program) Stop() error {
	p.log.Printf("stop %s, program: %s", p.Name(), p.Id())
	return nil
}

func (p *Program) Config() *program.Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config
}

// LoadConfig reads and decodes the pool's config account.
func (p *Program) LoadConfig() (*program.Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadConfig()
}

func (p *Program) loadConfig() (*program.Config, error) {
	account, err := p.backend.Account(p.accounts.Config)
	if err != nil {
		return nil, err
	}
	if !account.Exists {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, p.accounts.Config)
	}
	if account.Owner != p.Id() {
		return nil, fmt.Errorf("config(%s) is not owned by %s, actual: %s", p.accounts.Config, p.Id(), account.Owner)
	}
	config, err := program.ParseConfig(account.Data)
	if err != nil {
		return nil, err
	}
	if config.MintX != p.accounts.MintX || config.MintY != p.accounts.MintY {
		return nil, fmt.Errorf("config(%s) mints %s/%s do not match %s/%s", p.accounts.Config,
			config.MintX, config.MintY, p.accounts.MintX, p.accounts.MintY)
	}
	p.config = config
	return config, nil
}

// Snapshot reads both vaults and the LP mint in one call. The returned pool is a value; it
// is stale as soon as anyone else trades.
func (p *Program) Snapshot() (amm.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.config == nil {
		if _, err := p.loadConfig(); err != nil {
			return amm.Pool{}, err
		}
	}
	err := p.splTokenProgram.Retrieve([]solana.PublicKey{p.accounts.VaultX, p.accounts.VaultY}, []solana.PublicKey{p.accounts.LPMint})
	if err != nil {
		return amm.Pool{}, err
	}
	vaultX := p.splTokenProgram.GetUser(p.accounts.VaultX)
	vaultY := p.splTokenProgram.GetUser(p.accounts.VaultY)
	if vaultX == nil || vaultY == nil {
		return amm.Pool{}, fmt.Errorf("%w: %s/%s", ErrVaultMissing, p.accounts.VaultX, p.accounts.VaultY)
	}
	pool := amm.Pool{
		ReserveX: vaultX.Amount,
		ReserveY: vaultY.Amount,
		FeeBps:   p.config.Fee,
	}
	if lpMint := p.splTokenProgram.GetToken(p.accounts.LPMint); lpMint != nil {
		pool.LPSupply = lpMint.Supply
	}
	return pool, nil
}

func (p *Program) LPDecimals() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if lpMint := p.splTokenProgram.GetToken(p.accounts.LPMint); lpMint != nil {
		return lpMint.Decimals
	}
	return 0
}

// MintDecimals reads the decimals of both pool mints.
func (p *Program) MintDecimals() (uint8, uint8, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.splTokenProgram.RetrieveTokens([]solana.PublicKey{p.accounts.MintX, p.accounts.MintY}); err != nil {
		return 0, 0, err
	}
	mintX := p.splTokenProgram.GetToken(p.accounts.MintX)
	mintY := p.splTokenProgram.GetToken(p.accounts.MintY)
	if mintX == nil || mintY == nil {
		return 0, 0, fmt.Errorf("%w: %s/%s", ErrMintMissing, p.accounts.MintX, p.accounts.MintY)
	}
	return mintX.Decimals, mintY.Decimals, nil
}
