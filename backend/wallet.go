package backend

import (
	"fmt"
	"github.com/gagliardetto/solana-go"
)

type Wallet struct {
	pubkey solana.PublicKey
	prikey solana.PrivateKey
}

func (backend *Backend) ImportWallet(priKey string) {
	pri := solana.MustPrivateKeyFromBase58(priKey)
	backend.importPrivateKey(pri)
}

// LoadWallet imports a keypair written by solana-keygen (a JSON array of 64 bytes) and makes
// it the fee payer.
func (backend *Backend) LoadWallet(file string) error {
	pri, err := solana.PrivateKeyFromSolanaKeygenFile(file)
	if err != nil {
		return fmt.Errorf("load wallet %s: %w", file, err)
	}
	backend.importPrivateKey(pri)
	return nil
}

func (backend *Backend) importPrivateKey(pri solana.PrivateKey) {
	pub := pri.PublicKey()
	backend.wallets = append(backend.wallets, &Wallet{
		pubkey: pub,
		prikey: pri,
	})
	if backend.player.IsZero() {
		backend.player = pub
	}
}

func (backend *Backend) getWallet(key solana.PublicKey) *solana.PrivateKey {
	for _, wallet := range backend.wallets {
		if wallet.pubkey == key {
			return &wallet.prikey
		}
	}
	return nil
}

func (backend *Backend) SetPlayer(player solana.PublicKey) {
	backend.player = player
}

func (backend *Backend) Player() solana.PublicKey {
	return backend.player
}
