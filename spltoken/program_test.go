package spltoken

import (
	"bytes"
	"encoding/binary"
	"errors"
	"github.com/egaotan/solana-amm/backend"
	"github.com/egaotan/solana-amm/program"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"io"
	"log"
	"testing"
)

type fakeFetcher struct {
	accounts map[solana.PublicKey]*backend.Account
	err      error
}

func (f *fakeFetcher) Accounts(pubkeys []solana.PublicKey) ([]*backend.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	accounts := make([]*backend.Account, 0, len(pubkeys))
	for _, pubkey := range pubkeys {
		account, ok := f.accounts[pubkey]
		if !ok {
			account = &backend.Account{PubKey: pubkey}
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func encode(t *testing.T, v interface{}) []byte {
	buf := new(bytes.Buffer)
	require.NoError(t, binary.Write(buf, binary.LittleEndian, v))
	return buf.Bytes()
}

var (
	mint  = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	owner = solana.MustPublicKeyFromBase58("HhUVfHYvGby6k7zHrAcmA52YQLB7sWD41wkcb1WyUw8Z")
	ata   = solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
)

func newTestProgram(t *testing.T) (*Program, *fakeFetcher) {
	fetcher := &fakeFetcher{accounts: map[solana.PublicKey]*backend.Account{
		ata: {
			PubKey: ata,
			Height: 7,
			Exists: true,
			Owner:  program.Token,
			Data:   encode(t, &UserLayout{Mint: mint, Owner: owner, Amount: 1_500_000, State: AccountInitialized}),
		},
		mint: {
			PubKey: mint,
			Height: 7,
			Exists: true,
			Owner:  program.Token,
			Data:   encode(t, &TokenLayout{MintAuthorityOption: [4]byte{1}, MintAuthority: owner, Supply: 42, Decimals: 6, IsInitialized: 1}),
		},
	}}
	return NewProgram(fetcher, log.New(io.Discard, "", 0)), fetcher
}

func TestLayoutSizes(t *testing.T) {
	require.Len(t, encode(t, &UserLayout{}), TokenLayoutSize)
	require.Len(t, encode(t, &TokenLayout{}), MintLayoutSize)
}

func TestProgram_Retrieve(t *testing.T) {
	p, _ := newTestProgram(t)
	missing := solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	require.NoError(t, p.Retrieve([]solana.PublicKey{ata, missing}, []solana.PublicKey{mint}))

	user := p.GetUser(ata)
	require.NotNil(t, user)
	require.Equal(t, uint64(1_500_000), user.Amount)
	require.Equal(t, owner, user.Owner)
	require.Equal(t, uint64(7), user.Height)
	require.False(t, user.Frozen())

	token := p.GetToken(mint)
	require.NotNil(t, token)
	require.Equal(t, byte(6), token.Decimals)
	require.Equal(t, uint64(42), token.Supply)
	require.Equal(t, owner, *token.Authority())

	require.Nil(t, p.GetUser(missing))
	require.Equal(t, uint64(0), p.Balance(missing))
}

func TestProgram_GetBalance(t *testing.T) {
	p, fetcher := newTestProgram(t)
	balance, err := p.GetBalance(ata)
	require.NoError(t, err)
	require.Equal(t, uint64(1_500_000), balance)

	fetcher.err = errors.New("rpc down")
	_, err = p.GetBalance(ata)
	require.Error(t, err)
}

func TestProgram_WrongOwner(t *testing.T) {
	p, fetcher := newTestProgram(t)
	fetcher.accounts[ata].Owner = program.System
	require.NoError(t, p.RetrieveUsers([]solana.PublicKey{ata}))
	require.Nil(t, p.GetUser(ata))
}

func TestParse_InvalidSize(t *testing.T) {
	_, err := ParseUser(make([]byte, 10))
	require.Error(t, err)
	_, err = ParseToken(make([]byte, TokenLayoutSize))
	require.Error(t, err)
}

func TestProgram_InstructionCreateAssociatedAccount(t *testing.T) {
	p, _ := newTestProgram(t)
	ins, err := p.InstructionCreateAssociatedAccount(owner, owner, mint)
	require.NoError(t, err)
	require.Equal(t, program.AssociatedToken, ins.ProgramID())
	expected, err := program.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)
	require.Equal(t, expected, ins.Accounts()[1].PublicKey)
	data, err := ins.Data()
	require.NoError(t, err)
	require.Equal(t, []byte{1}, data)
}
