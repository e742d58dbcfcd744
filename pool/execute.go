package pool

import (
	"fmt"
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/program"
	"github.com/gagliardetto/solana-go"
)

// Receipt describes one executed (or simulated) operation.
type Receipt struct {
	Signature  solana.Signature
	Simulated  bool
	Logs       []string
	Before     *Balances
	After      *Balances
	PoolBefore amm.Pool
	PoolAfter  amm.Pool
}

// Initialize creates the config, LP mint and vaults of the pool. authority may be nil for
// a pool nobody can lock.
func (p *Program) Initialize(fee uint16, authority *solana.PublicKey) (*Receipt, error) {
	ins, err := program.InstructionInitialize(p.accounts, p.backend.Player(), fee, authority)
	if err != nil {
		return nil, err
	}
	receipt := &Receipt{}
	if err := p.execute(receipt, []solana.Instruction{ins}); err != nil {
		return receipt, err
	}
	if !receipt.Simulated {
		if _, err := p.LoadConfig(); err != nil {
			return receipt, err
		}
	}
	return receipt, nil
}

// Deposit mints plan.LPTokensToMint, letting the program pull at most the planned amounts.
func (p *Program) Deposit(plan *amm.DepositPlan) (*Receipt, error) {
	owner := p.backend.Player()
	receipt, user, err := p.prepare(owner)
	if err != nil {
		return nil, err
	}
	if err := amm.CheckBalance(receipt.Before.X, plan.RequiredX); err != nil {
		return nil, fmt.Errorf("token x: %w", err)
	}
	if err := amm.CheckBalance(receipt.Before.Y, plan.RequiredY); err != nil {
		return nil, fmt.Errorf("token y: %w", err)
	}
	createLP, err := p.splTokenProgram.InstructionCreateAssociatedAccount(owner, owner, p.accounts.LPMint)
	if err != nil {
		return nil, err
	}
	deposit, err := program.InstructionDeposit(p.accounts, user, plan.LPTokensToMint, plan.RequiredX, plan.RequiredY)
	if err != nil {
		return nil, err
	}
	return receipt, p.execute(receipt, []solana.Instruction{createLP, deposit})
}

// Withdraw burns plan.LPTokensToBurn and refuses to receive less than the planned amounts.
func (p *Program) Withdraw(plan *amm.WithdrawPlan) (*Receipt, error) {
	owner := p.backend.Player()
	receipt, user, err := p.prepare(owner)
	if err != nil {
		return nil, err
	}
	if err := amm.CheckBalance(receipt.Before.LP, plan.LPTokensToBurn); err != nil {
		return nil, fmt.Errorf("lp: %w", err)
	}
	ins := make([]solana.Instruction, 0, 3)
	for _, mint := range []solana.PublicKey{p.accounts.MintX, p.accounts.MintY} {
		create, err := p.splTokenProgram.InstructionCreateAssociatedAccount(owner, owner, mint)
		if err != nil {
			return nil, err
		}
		ins = append(ins, create)
	}
	withdraw, err := program.InstructionWithdraw(p.accounts, user, plan.LPTokensToBurn, plan.OutX, plan.OutY)
	if err != nil {
		return nil, err
	}
	ins = append(ins, withdraw)
	return receipt, p.execute(receipt, ins)
}

// Swap sells plan.AmountIn of plan.Input and fails on chain below plan.MinAmountOut.
func (p *Program) Swap(plan *amm.SwapPlan) (*Receipt, error) {
	owner := p.backend.Player()
	receipt, user, err := p.prepare(owner)
	if err != nil {
		return nil, err
	}
	if err := amm.CheckBalance(receipt.Before.Of(plan.Input), plan.AmountIn); err != nil {
		return nil, fmt.Errorf("token %s: %w", plan.Input, err)
	}
	outMint := p.accounts.MintY
	if plan.Input == amm.Y {
		outMint = p.accounts.MintX
	}
	createOut, err := p.splTokenProgram.InstructionCreateAssociatedAccount(owner, owner, outMint)
	if err != nil {
		return nil, err
	}
	swap, err := program.InstructionSwap(p.accounts, user, plan.Input == amm.X, plan.AmountIn, plan.MinAmountOut)
	if err != nil {
		return nil, err
	}
	return receipt, p.execute(receipt, []solana.Instruction{createOut, swap})
}

func (p *Program) prepare(owner solana.PublicKey) (*Receipt, *program.UserAccounts, error) {
	user, err := p.UserAccounts(owner)
	if err != nil {
		return nil, nil, err
	}
	pool, err := p.Snapshot()
	if err != nil {
		return nil, nil, err
	}
	if p.Config().Locked {
		return nil, nil, ErrPoolLocked
	}
	before, err := p.Balances(owner)
	if err != nil {
		return nil, nil, err
	}
	return &Receipt{Before: before, PoolBefore: pool}, user, nil
}

// execute commits or simulates ins, then refreshes balances and the pool into the receipt.
// A refresh failure is logged, not returned: the transaction itself already went through.
func (p *Program) execute(receipt *Receipt, ins []solana.Instruction) error {
	if p.simulate {
		receipt.Simulated = true
		result, err := p.backend.Simulate(ins)
		if result != nil {
			receipt.Logs = result.Logs
		}
		return err
	}
	signature, err := p.backend.Commit(ins)
	receipt.Signature = signature
	if err != nil && signature.IsZero() {
		return err
	}
	if receipt.Before != nil {
		after, refreshErr := p.Balances(receipt.Before.Owner)
		if refreshErr != nil {
			p.log.Printf("refresh balances after %s err: %s", signature, refreshErr.Error())
		}
		receipt.After = after
		pool, refreshErr := p.Snapshot()
		if refreshErr != nil {
			p.log.Printf("refresh pool after %s err: %s", signature, refreshErr.Error())
		}
		receipt.PoolAfter = pool
	}
	return err
}
