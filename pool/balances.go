package pool

import (
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/program"
	"github.com/gagliardetto/solana-go"
)

// Balances are a wallet's holdings in the pool's three tokens; a missing ATA holds 0.
type Balances struct {
	Owner solana.PublicKey `json:"owner"`
	X     uint64           `json:"x"`
	Y     uint64           `json:"y"`
	LP    uint64           `json:"lp"`
}

func (b *Balances) Of(token amm.Token) uint64 {
	if token == amm.X {
		return b.X
	}
	return b.Y
}

func (p *Program) UserAccounts(owner solana.PublicKey) (*program.UserAccounts, error) {
	return p.accounts.UserAccounts(owner)
}

func (p *Program) Balances(owner solana.PublicKey) (*Balances, error) {
	user, err := p.UserAccounts(owner)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.splTokenProgram.RetrieveUsers([]solana.PublicKey{user.AtaX, user.AtaY, user.AtaLP})
	if err != nil {
		return nil, err
	}
	return &Balances{
		Owner: owner,
		X:     p.splTokenProgram.Balance(user.AtaX),
		Y:     p.splTokenProgram.Balance(user.AtaY),
		LP:    p.splTokenProgram.Balance(user.AtaLP),
	}, nil
}
