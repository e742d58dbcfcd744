package env

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/egaotan/solana-amm/program"
	"github.com/gagliardetto/solana-go"
	"os"
	"time"
)

var ErrPoolMismatch = errors.New("pool info does not match derived addresses")

// PoolInfo is the pool-info.json written by init-pool and read by every other command.
type PoolInfo struct {
	Program   solana.PublicKey `json:"programId"`
	ConfigPda solana.PublicKey `json:"configPda"`
	LPMint    solana.PublicKey `json:"lpMint"`
	VaultX    solana.PublicKey `json:"vaultX"`
	VaultY    solana.PublicKey `json:"vaultY"`
	MintX     solana.PublicKey `json:"mintX"`
	MintY     solana.PublicKey `json:"mintY"`
	Seed      uint64           `json:"seed"`
	Fee       uint16           `json:"fee"`
	CreatedAt time.Time        `json:"createdAt"`
}

func NewPoolInfo(pool *program.PoolAccounts, fee uint16, createdAt time.Time) *PoolInfo {
	return &PoolInfo{
		Program:   pool.Program,
		ConfigPda: pool.Config,
		LPMint:    pool.LPMint,
		VaultX:    pool.VaultX,
		VaultY:    pool.VaultY,
		MintX:     pool.MintX,
		MintY:     pool.MintY,
		Seed:      pool.Seed,
		Fee:       fee,
		CreatedAt: createdAt.UTC(),
	}
}

func LoadPoolInfo(file string) (*PoolInfo, error) {
	infoJson, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	info := &PoolInfo{}
	err = json.Unmarshal(infoJson, info)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return info, nil
}

func (info *PoolInfo) Save(file string) error {
	infoJson, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, infoJson, 0644)
}

// Accounts re-derives the pool addresses from program, mints and seed and checks them
// against the recorded ones. Files written before programId was recorded use fallback.
func (info *PoolInfo) Accounts(fallback solana.PublicKey) (*program.PoolAccounts, error) {
	programId := info.Program
	if programId.IsZero() {
		programId = fallback
	}
	pool, err := program.DerivePool(programId, info.MintX, info.MintY, info.Seed)
	if err != nil {
		return nil, err
	}
	if pool.Config != info.ConfigPda || pool.LPMint != info.LPMint || pool.VaultX != info.VaultX || pool.VaultY != info.VaultY {
		return nil, fmt.Errorf("%w: config %s, derived %s", ErrPoolMismatch, info.ConfigPda, pool.Config)
	}
	return pool, nil
}
