package spltoken

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"github.com/egaotan/solana-amm/backend"
	"github.com/egaotan/solana-amm/program"
	"github.com/gagliardetto/solana-go"
	"log"
)

type Fetcher interface {
	Accounts(pubkeys []solana.PublicKey) ([]*backend.Account, error)
}

// Program caches the token accounts and mints it has retrieved, keyed by address.
type Program struct {
	backend Fetcher
	log     *log.Logger
	id      solana.PublicKey
	tokens  map[solana.PublicKey]*KeyedToken
	users   map[solana.PublicKey]*KeyedUser
}

func NewProgram(be Fetcher, logger *log.Logger) *Program {
	p := &Program{
		backend: be,
		log:     logger,
		id:      program.Token,
		tokens:  make(map[solana.PublicKey]*KeyedToken),
		users:   make(map[solana.PublicKey]*KeyedUser),
	}
	return p
}

func (p *Program) Name() string {
	return "spl token"
}

func (p *Program) Id() solana.PublicKey {
	return p.id
}

// Retrieve fetches token accounts and mints in one batch. Missing accounts are skipped and
// simply stay out of the cache.
func (p *Program) Retrieve(users []solana.PublicKey, mints []solana.PublicKey) error {
	pubkeys := make([]solana.PublicKey, 0, len(users)+len(mints))
	pubkeys = append(pubkeys, users...)
	pubkeys = append(pubkeys, mints...)
	accounts, err := p.backend.Accounts(pubkeys)
	if err != nil {
		return err
	}
	for i, account := range accounts {
		if !account.Exists {
			delete(p.users, account.PubKey)
			delete(p.tokens, account.PubKey)
			continue
		}
		if i < len(users) {
			user, err := p.parseUser(account)
			if err != nil {
				p.log.Printf("account(%s) err: %s", account.PubKey, err)
				continue
			}
			p.upsertUser(account.PubKey, account.Height, user)
		} else {
			token, err := p.parseToken(account)
			if err != nil {
				p.log.Printf("account(%s) err: %s", account.PubKey, err)
				continue
			}
			p.upsertToken(account.PubKey, account.Height, token)
		}
	}
	return nil
}

func (p *Program) RetrieveUsers(pubkeys []solana.PublicKey) error {
	return p.Retrieve(pubkeys, nil)
}

func (p *Program) RetrieveTokens(pubkeys []solana.PublicKey) error {
	return p.Retrieve(nil, pubkeys)
}

func (p *Program) GetUser(key solana.PublicKey) *KeyedUser {
	user, ok := p.users[key]
	if !ok {
		return nil
	}
	return user
}

func (p *Program) GetToken(key solana.PublicKey) *KeyedToken {
	token, ok := p.tokens[key]
	if !ok {
		return nil
	}
	return token
}

// Balance reads a cached token account; an account that does not exist holds nothing.
func (p *Program) Balance(key solana.PublicKey) uint64 {
	user := p.GetUser(key)
	if user == nil {
		return 0
	}
	return user.Amount
}

func (p *Program) GetBalance(key solana.PublicKey) (uint64, error) {
	err := p.RetrieveUsers([]solana.PublicKey{key})
	if err != nil {
		return 0, err
	}
	return p.Balance(key), nil
}

func (p *Program) parseUser(account *backend.Account) (UserLayout, error) {
	if account.Owner != p.id {
		return UserLayout{}, fmt.Errorf("account(%s) is not spl token program account, expected: %s, actual: %s", account.PubKey, p.id, account.Owner)
	}
	return ParseUser(account.Data)
}

func (p *Program) parseToken(account *backend.Account) (TokenLayout, error) {
	if account.Owner != p.id {
		return TokenLayout{}, fmt.Errorf("account(%s) is not spl token program account, expected: %s, actual: %s", account.PubKey, p.id, account.Owner)
	}
	return ParseToken(account.Data)
}

func ParseUser(data []byte) (UserLayout, error) {
	user := UserLayout{}
	if len(data) != TokenLayoutSize {
		return user, fmt.Errorf("spl token account data size is not valid, expected: %d, actual: %d", TokenLayoutSize, len(data))
	}
	buf := bytes.NewReader(data)
	err := binary.Read(buf, binary.LittleEndian, &user)
	if err != nil {
		return user, fmt.Errorf("spl token account data is not valid, err: %w", err)
	}
	return user, nil
}

func ParseToken(data []byte) (TokenLayout, error) {
	token := TokenLayout{}
	if len(data) != MintLayoutSize {
		return token, fmt.Errorf("mint data size is not valid, expected: %d, actual: %d", MintLayoutSize, len(data))
	}
	buf := bytes.NewReader(data)
	err := binary.Read(buf, binary.LittleEndian, &token)
	if err != nil {
		return token, fmt.Errorf("mint data is not valid, err: %w", err)
	}
	return token, nil
}

func (p *Program) upsertUser(pubkey solana.PublicKey, height uint64, account UserLayout) *KeyedUser {
	keyedUser, ok := p.users[pubkey]
	if !ok {
		keyedUser = &KeyedUser{
			Key:        pubkey,
			Height:     height,
			UserLayout: account,
		}
		p.users[pubkey] = keyedUser
	} else {
		keyedUser.UserLayout = account
		keyedUser.Height = height
	}
	return keyedUser
}

func (p *Program) upsertToken(pubkey solana.PublicKey, height uint64, mint TokenLayout) *KeyedToken {
	keyedMint, ok := p.tokens[pubkey]
	if !ok {
		keyedMint = &KeyedToken{
			Key:         pubkey,
			Height:      height,
			TokenLayout: mint,
		}
		p.tokens[pubkey] = keyedMint
	} else {
		keyedMint.TokenLayout = mint
		keyedMint.Height = height
	}
	return keyedMint
}

// InstructionCreateAssociatedAccount creates owner's ATA for mint, and is a no-op when it
// already exists.
func (p *Program) InstructionCreateAssociatedAccount(payer, owner, mint solana.PublicKey) (solana.Instruction, error) {
	ata, err := program.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, err
	}
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: payer, IsSigner: true, IsWritable: true},
			{PublicKey: ata, IsSigner: false, IsWritable: true},
			{PublicKey: owner, IsSigner: false, IsWritable: false},
			{PublicKey: mint, IsSigner: false, IsWritable: false},
			{PublicKey: program.System, IsSigner: false, IsWritable: false},
			{PublicKey: p.id, IsSigner: false, IsWritable: false},
		},
		// 1 = CreateIdempotent
		IsData:      []byte{1},
		IsProgramID: program.AssociatedToken,
	}
	return instruction, nil
}
