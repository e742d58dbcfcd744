package program

import (
	"encoding/binary"
	"fmt"
	"github.com/gagliardetto/solana-go"
)

// PoolAccounts are the addresses of one pool: the config PDA keyed by seed, the LP mint
// PDA keyed by the config, and the two vaults, ATAs owned by the config.
type PoolAccounts struct {
	Program solana.PublicKey
	Seed    uint64
	Config  solana.PublicKey
	LPMint  solana.PublicKey
	MintX   solana.PublicKey
	MintY   solana.PublicKey
	VaultX  solana.PublicKey
	VaultY  solana.PublicKey
}

type UserAccounts struct {
	Owner solana.PublicKey
	AtaX  solana.PublicKey
	AtaY  solana.PublicKey
	AtaLP solana.PublicKey
}

func SeedBytes(seed uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, seed)
	return b
}

func FindConfigAddress(programID solana.PublicKey, seed uint64) (solana.PublicKey, error) {
	config, _, err := solana.FindProgramAddress([][]byte{ConfigSeed, SeedBytes(seed)}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("config pda (seed %d): %w", seed, err)
	}
	return config, nil
}

func FindLPMintAddress(programID solana.PublicKey, config solana.PublicKey) (solana.PublicKey, error) {
	lp, _, err := solana.FindProgramAddress([][]byte{LPSeed, config.Bytes()}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("lp mint pda (config %s): %w", config, err)
	}
	return lp, nil
}

// FindAssociatedTokenAddress works for off-curve owners too, which the vaults need.
func FindAssociatedTokenAddress(owner solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindProgramAddress([][]byte{owner.Bytes(), Token.Bytes(), mint.Bytes()}, AssociatedToken)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("associated token address (owner %s, mint %s): %w", owner, mint, err)
	}
	return ata, nil
}

func DerivePool(programID, mintX, mintY solana.PublicKey, seed uint64) (*PoolAccounts, error) {
	config, err := FindConfigAddress(programID, seed)
	if err != nil {
		return nil, err
	}
	lpMint, err := FindLPMintAddress(programID, config)
	if err != nil {
		return nil, err
	}
	vaultX, err := FindAssociatedTokenAddress(config, mintX)
	if err != nil {
		return nil, err
	}
	vaultY, err := FindAssociatedTokenAddress(config, mintY)
	if err != nil {
		return nil, err
	}
	return &PoolAccounts{
		Program: programID,
		Seed:    seed,
		Config:  config,
		LPMint:  lpMint,
		MintX:   mintX,
		MintY:   mintY,
		VaultX:  vaultX,
		VaultY:  vaultY,
	}, nil
}

func (p *PoolAccounts) UserAccounts(owner solana.PublicKey) (*UserAccounts, error) {
	ataX, err := FindAssociatedTokenAddress(owner, p.MintX)
	if err != nil {
		return nil, err
	}
	ataY, err := FindAssociatedTokenAddress(owner, p.MintY)
	if err != nil {
		return nil, err
	}
	ataLP, err := FindAssociatedTokenAddress(owner, p.LPMint)
	if err != nil {
		return nil, err
	}
	return &UserAccounts{
		Owner: owner,
		AtaX:  ataX,
		AtaY:  ataY,
		AtaLP: ataLP,
	}, nil
}
