package spltoken

import (
	"github.com/gagliardetto/solana-go"
)

var (
	TokenLayoutSize = 165
	MintLayoutSize  = 82
)

const (
	AccountUninitialized = 0
	AccountInitialized   = 1
	AccountFrozen        = 2
)

// UserLayout is an SPL token account.
type UserLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       [4]byte
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       [4]byte
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption [4]byte
	CloseAuthority       solana.PublicKey
}

func (u *UserLayout) Frozen() bool {
	return u.State == AccountFrozen
}

// TokenLayout is an SPL mint.
type TokenLayout struct {
	MintAuthorityOption   [4]byte
	MintAuthority         solana.PublicKey
	Supply                uint64
	Decimals              byte
	IsInitialized         uint8
	FreezeAuthorityOption [4]byte
	FreezeAuthority       solana.PublicKey
}

// Authority returns the mint authority, nil once it has been revoked.
func (t *TokenLayout) Authority() *solana.PublicKey {
	if t.MintAuthorityOption == [4]byte{} {
		return nil
	}
	authority := t.MintAuthority
	return &authority
}

type KeyedUser struct {
	Key    solana.PublicKey
	Height uint64
	UserLayout
}

type KeyedToken struct {
	Key    solana.PublicKey
	Height uint64
	TokenLayout
}
