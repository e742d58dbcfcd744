package program

import (
	"github.com/gagliardetto/solana-go"
)

type initializeArgs struct {
	Seed      uint64
	Fee       uint16
	Authority *solana.PublicKey
}

type depositArgs struct {
	Amount uint64
	MaxX   uint64
	MaxY   uint64
}

type withdrawArgs struct {
	Amount uint64
	MinX   uint64
	MinY   uint64
}

type swapArgs struct {
	IsX    bool
	Amount uint64
	Min    uint64
}

func InstructionInitialize(pool *PoolAccounts, initializer solana.PublicKey, fee uint16, authority *solana.PublicKey) (solana.Instruction, error) {
	data, err := encodeInstruction("initialize", &initializeArgs{Seed: pool.Seed, Fee: fee, Authority: authority})
	if err != nil {
		return nil, err
	}
	return &Instruction{
		IsAccounts: []*solana.AccountMeta{
			signer(initializer),
			readonly(pool.MintX),
			readonly(pool.MintY),
			writable(pool.LPMint),
			writable(pool.Config),
			writable(pool.VaultX),
			writable(pool.VaultY),
			readonly(Token),
			readonly(AssociatedToken),
			readonly(System),
		},
		IsData:      data,
		IsProgramID: pool.Program,
	}, nil
}

func liquidityAccounts(pool *PoolAccounts, user *UserAccounts) []*solana.AccountMeta {
	return []*solana.AccountMeta{
		signer(user.Owner),
		readonly(pool.MintX),
		readonly(pool.MintY),
		readonly(pool.Config),
		writable(pool.LPMint),
		writable(pool.VaultX),
		writable(pool.VaultY),
		writable(user.AtaX),
		writable(user.AtaY),
		writable(user.AtaLP),
		readonly(Token),
		readonly(AssociatedToken),
		readonly(System),
	}
}

// InstructionDeposit mints lp tokens; maxX/maxY cap what the program may pull from the user.
func InstructionDeposit(pool *PoolAccounts, user *UserAccounts, lp, maxX, maxY uint64) (solana.Instruction, error) {
	data, err := encodeInstruction("deposit", &depositArgs{Amount: lp, MaxX: maxX, MaxY: maxY})
	if err != nil {
		return nil, err
	}
	return &Instruction{
		IsAccounts:  liquidityAccounts(pool, user),
		IsData:      data,
		IsProgramID: pool.Program,
	}, nil
}

func InstructionWithdraw(pool *PoolAccounts, user *UserAccounts, lp, minX, minY uint64) (solana.Instruction, error) {
	data, err := encodeInstruction("withdraw", &withdrawArgs{Amount: lp, MinX: minX, MinY: minY})
	if err != nil {
		return nil, err
	}
	return &Instruction{
		IsAccounts:  liquidityAccounts(pool, user),
		IsData:      data,
		IsProgramID: pool.Program,
	}, nil
}

func InstructionSwap(pool *PoolAccounts, user *UserAccounts, isX bool, amountIn, minOut uint64) (solana.Instruction, error) {
	data, err := encodeInstruction("swap", &swapArgs{IsX: isX, Amount: amountIn, Min: minOut})
	if err != nil {
		return nil, err
	}
	return &Instruction{
		IsAccounts: []*solana.AccountMeta{
			signer(user.Owner),
			readonly(pool.MintX),
			readonly(pool.MintY),
			readonly(pool.Config),
			writable(pool.LPMint),
			writable(pool.VaultX),
			writable(pool.VaultY),
			writable(user.AtaX),
			writable(user.AtaY),
			readonly(Token),
			readonly(AssociatedToken),
			readonly(System),
		},
		IsData:      data,
		IsProgramID: pool.Program,
	}, nil
}
