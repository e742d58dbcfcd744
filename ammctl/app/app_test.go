package app

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/backend"
	"github.com/egaotan/solana-amm/config"
	"github.com/egaotan/solana-amm/env"
	"github.com/egaotan/solana-amm/pool"
	"github.com/egaotan/solana-amm/program"
	"github.com/egaotan/solana-amm/spltoken"
	"github.com/egaotan/solana-amm/store"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"io"
	"log"
	"strings"
	"testing"
	"time"
)

var (
	mintX = solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
	mintY = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	owner = solana.MustPublicKeyFromBase58("HhUVfHYvGby6k7zHrAcmA52YQLB7sWD41wkcb1WyUw8Z")
)

type scriptedPrompter struct {
	selects  []int
	inputs   []string
	confirms []bool
	asked    []string
}

func (p *scriptedPrompter) Select(label string, items []string) (int, error) {
	p.asked = append(p.asked, label)
	if len(p.selects) == 0 {
		return 0, errors.New("unexpected select: " + label)
	}
	index := p.selects[0]
	p.selects = p.selects[1:]
	return index, nil
}

func (p *scriptedPrompter) Input(label string, validate func(string) error) (string, error) {
	p.asked = append(p.asked, label)
	if len(p.inputs) == 0 {
		return "", errors.New("unexpected input: " + label)
	}
	input := p.inputs[0]
	p.inputs = p.inputs[1:]
	if validate != nil {
		if err := validate(input); err != nil {
			return "", err
		}
	}
	return input, nil
}

func (p *scriptedPrompter) Confirm(label string) (bool, error) {
	p.asked = append(p.asked, label)
	if len(p.confirms) == 0 {
		return true, nil
	}
	ok := p.confirms[0]
	p.confirms = p.confirms[1:]
	return ok, nil
}

type chainBackend struct {
	accounts  map[solana.PublicKey]*backend.Account
	committed [][]solana.Instruction
	commitErr error
}

func (b *chainBackend) Accounts(pubkeys []solana.PublicKey) ([]*backend.Account, error) {
	accounts := make([]*backend.Account, 0, len(pubkeys))
	for _, pubkey := range pubkeys {
		account, _ := b.Account(pubkey)
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (b *chainBackend) Account(pubkey solana.PublicKey) (*backend.Account, error) {
	if account, ok := b.accounts[pubkey]; ok {
		return account, nil
	}
	return &backend.Account{PubKey: pubkey}, nil
}

func (b *chainBackend) Commit(ins []solana.Instruction) (solana.Signature, error) {
	b.committed = append(b.committed, ins)
	return solana.Signature{9, 9, 9}, b.commitErr
}

func (b *chainBackend) Simulate(ins []solana.Instruction) (*backend.SimulateResult, error) {
	return &backend.SimulateResult{Logs: []string{"Program log: ok"}}, nil
}

func (b *chainBackend) Player() solana.PublicKey {
	return owner
}

func (b *chainBackend) put(t *testing.T, pubkey, accountOwner solana.PublicKey, data []byte) {
	b.accounts[pubkey] = &backend.Account{PubKey: pubkey, Exists: true, Owner: accountOwner, Data: data, Height: 1}
}

func (b *chainBackend) putTokenAccount(t *testing.T, pubkey, mint, holder solana.PublicKey, amount uint64) {
	buf := new(bytes.Buffer)
	layout := &spltoken.UserLayout{Mint: mint, Owner: holder, Amount: amount, State: spltoken.AccountInitialized}
	require.NoError(t, binary.Write(buf, binary.LittleEndian, layout))
	b.put(t, pubkey, program.Token, buf.Bytes())
}

type testApp struct {
	*App
	chain    *chainBackend
	prompter *scriptedPrompter
	out      *bytes.Buffer
	user     *program.UserAccounts
}

func newTestApp(t *testing.T) *testApp {
	accounts, err := program.DerivePool(program.AMM, mintX, mintY, DefaultSeed)
	require.NoError(t, err)
	user, err := accounts.UserAccounts(owner)
	require.NoError(t, err)

	chain := &chainBackend{accounts: make(map[solana.PublicKey]*backend.Account)}
	configData, err := (&program.Config{Seed: DefaultSeed, MintX: mintX, MintY: mintY, Fee: 30}).MarshalBinary()
	require.NoError(t, err)
	chain.put(t, accounts.Config, program.AMM, configData)
	chain.putTokenAccount(t, accounts.VaultX, mintX, accounts.Config, 100_000)
	chain.putTokenAccount(t, accounts.VaultY, mintY, accounts.Config, 11_000_000)
	mint := new(bytes.Buffer)
	require.NoError(t, binary.Write(mint, binary.LittleEndian, &spltoken.TokenLayout{MintAuthorityOption: [4]byte{1}, MintAuthority: accounts.Config, Supply: 1_048_808, Decimals: 6, IsInitialized: 1}))
	chain.put(t, accounts.LPMint, program.Token, mint.Bytes())
	for _, key := range []solana.PublicKey{mintX, mintY} {
		buf := new(bytes.Buffer)
		require.NoError(t, binary.Write(buf, binary.LittleEndian, &spltoken.TokenLayout{Supply: 1_000_000_000_000, Decimals: 6, IsInitialized: 1}))
		chain.put(t, key, program.Token, buf.Bytes())
	}
	chain.putTokenAccount(t, user.AtaX, mintX, owner, 5_000_000)
	chain.putTokenAccount(t, user.AtaY, mintY, owner, 500_000_000)

	cfg := config.Default()
	cfg.LogDir = ""
	cfg.TokenX = config.Token{Symbol: "SOL", Decimals: 6}
	cfg.TokenY = config.Token{Symbol: "Y", Decimals: 9}
	logger := log.New(io.Discard, "", 0)
	prompter := &scriptedPrompter{}
	out := new(bytes.Buffer)
	a := &App{
		ctx:      context.Background(),
		cfg:      cfg,
		logger:   logger,
		out:      out,
		prompter: prompter,
		env:      env.NewEnv(logger, ""),
	}
	a.env.SetToken(&env.Token{Symbol: "USDC", Mint: mintY, Decimals: 6})
	require.NoError(t, a.bindPool(pool.NewProgram(chain, accounts, logger)))
	require.NoError(t, a.pool.Start())
	return &testApp{App: a, chain: chain, prompter: prompter, out: out, user: user}
}

func TestApp_Swap(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Swap(&swapArgs{token: "a", amount: "0.001", slippageBps: -1}))
	require.Len(t, a.chain.committed, 1)
	require.Equal(t, []string{"Proceed with swap"}, a.prompter.asked)

	out := a.out.String()
	require.Contains(t, out, "You pay: 0.001000 SOL")
	require.Contains(t, out, "You receive: 0.108587 USDC")
	require.Contains(t, out, "Minimum received: 0.107501 USDC")
	require.Contains(t, out, "Transaction: ")
}

type memJournal struct {
	operations []*store.Operation
}

func (j *memJournal) SaveOperation(op *store.Operation) error {
	j.operations = append(j.operations, op)
	return nil
}

func (j *memJournal) SelectOperations(pool string, limit int) ([]*store.Operation, error) {
	return j.operations, nil
}

func TestApp_SwapRecordStatus(t *testing.T) {
	for _, c := range []struct {
		name   string
		err    error
		status string
	}{
		{"confirmed", nil, store.StatusConfirmed},
		{"rejected", fmt.Errorf("%w: %v", backend.ErrTransactionFailed, "custom program error: 0x1771"), store.StatusFailed},
		{"unconfirmed", backend.ErrNotConfirmed, store.StatusUnconfirmed},
		{"interrupted", context.Canceled, store.StatusUnconfirmed},
	} {
		t.Run(c.name, func(t *testing.T) {
			a := newTestApp(t)
			journal := &memJournal{}
			a.store = store.NewStore(context.Background(), a.logger, journal)
			a.store.Start()
			a.chain.commitErr = c.err

			err := a.Swap(&swapArgs{token: "x", amount: "0.001", slippageBps: -1})
			a.store.Stop()
			if c.err == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, c.err)
			}
			require.Len(t, journal.operations, 1)
			op := journal.operations[0]
			require.Equal(t, c.status, op.Status)
			require.Equal(t, solana.Signature{9, 9, 9}.String(), op.Signature)
		})
	}
}

func TestApp_SwapPrompts(t *testing.T) {
	a := newTestApp(t)
	a.prompter.selects = []int{1}
	a.prompter.inputs = []string{"1"}
	require.NoError(t, a.Swap(&swapArgs{slippageBps: 50}))
	require.Len(t, a.chain.committed, 1)
	require.Equal(t, []string{"Token to sell", "Amount of USDC to sell", "Proceed with swap"}, a.prompter.asked)
	require.Contains(t, a.out.String(), "You pay: 1.000000 USDC")
}

func TestApp_SwapCancelled(t *testing.T) {
	a := newTestApp(t)
	a.prompter.confirms = []bool{false}
	err := a.Swap(&swapArgs{token: "x", amount: "0.001", slippageBps: -1})
	require.ErrorIs(t, err, ErrCancelled)
	require.Empty(t, a.chain.committed)
}

func TestApp_SwapInvalid(t *testing.T) {
	a := newTestApp(t)
	err := a.Swap(&swapArgs{token: "x", amount: "0.0000001", slippageBps: -1})
	require.ErrorIs(t, err, amm.ErrInvalidAmount)

	err = a.Swap(&swapArgs{token: "x", amount: "6", slippageBps: -1})
	require.ErrorIs(t, err, amm.ErrInsufficientBalance)

	err = a.Swap(&swapArgs{token: "x", amount: "1", slippageBps: 10001})
	require.ErrorIs(t, err, amm.ErrInvalidAmount)
	require.Empty(t, a.chain.committed)
}

func TestApp_Deposit(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Deposit(&depositArgs{token: "a", amount: "0.01"}))
	require.Len(t, a.chain.committed, 1)
	out := a.out.String()
	require.Contains(t, out, "SOL: 0.009999 SOL")
	require.Contains(t, out, "USDC: 1.099991 USDC")
	require.Contains(t, out, "LP tokens to mint: 0.104880 LP")
}

func TestApp_DepositInsufficient(t *testing.T) {
	a := newTestApp(t)
	err := a.Deposit(&depositArgs{token: "b", amount: "1000"})
	require.ErrorIs(t, err, amm.ErrInsufficientBalance)
	require.Empty(t, a.chain.committed)
}

func TestApp_Withdraw(t *testing.T) {
	a := newTestApp(t)
	err := a.Withdraw(&withdrawArgs{amount: "0.1"})
	require.ErrorIs(t, err, amm.ErrInsufficientBalance)

	a.chain.putTokenAccount(t, a.user.AtaLP, a.pool.Accounts().LPMint, owner, 500_000)
	require.NoError(t, a.Withdraw(&withdrawArgs{amount: "0.1"}))
	require.Len(t, a.chain.committed, 1)
	require.Contains(t, a.out.String(), "LP tokens to burn: 0.100000 LP")

	err = a.Withdraw(&withdrawArgs{amount: "0.6"})
	require.ErrorIs(t, err, amm.ErrInsufficientBalance)
}

func TestApp_Simulate(t *testing.T) {
	a := newTestApp(t)
	a.pool.SetSimulate(true)
	require.NoError(t, a.Swap(&swapArgs{token: "a", amount: "0.001", slippageBps: -1}))
	require.Empty(t, a.chain.committed)
	require.Contains(t, a.out.String(), "Simulation succeeded")
}

func TestApp_Nodes(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Nodes = []*config.Node{{Rpc: "https://slow.example.com"}, {Rpc: "https://fast.example.com"}}
	probe := func(host string) (time.Duration, float64, error) {
		if host == "fast.example.com" {
			return 10 * time.Millisecond, 0, nil
		}
		return 90 * time.Millisecond, 0, nil
	}
	require.NoError(t, a.Nodes(probe))
	require.Contains(t, a.out.String(), "fastest: https://fast.example.com")

	down := func(host string) (time.Duration, float64, error) {
		return 0, 100, errors.New("timeout")
	}
	require.Error(t, a.Nodes(down))
}

func TestApp_Watch(t *testing.T) {
	a := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a.ctx = ctx
	require.NoError(t, a.Watch(time.Millisecond))
	require.Contains(t, a.out.String(), "Reserves: 0.100000 SOL / 11.000000 USDC")
}

func TestReceived(t *testing.T) {
	require.Equal(t, uint64(42), received(nil, amm.Y, 42))
	receipt := &pool.Receipt{
		Before: &pool.Balances{Y: 1_000},
		After:  &pool.Balances{Y: 1_500},
	}
	require.Equal(t, uint64(500), received(receipt, amm.Y, 42))
	require.Equal(t, uint64(0), received(&pool.Receipt{Before: &pool.Balances{X: 5}, After: &pool.Balances{}}, amm.X, 42))
}

func TestShare(t *testing.T) {
	require.Equal(t, "0.0000", share(1, 0))
	require.Equal(t, "50.0000", share(1, 2))
	require.Equal(t, "9.0908", share(104_880, 1_153_688))
}

func TestDescribe(t *testing.T) {
	text := describe(&store.Operation{
		Kind:      store.KindSwap,
		Status:    store.StatusFailed,
		Signature: "sig",
		AmountIn:  1_000,
		TokenIn:   "x",
		Error:     "slippage",
	})
	require.True(t, strings.HasPrefix(text, "amm swap failed"))
	require.Contains(t, text, "in: 1000 x")
	require.NotContains(t, text, "out:")
	require.Contains(t, text, "error: slippage")
}
