package backend

import (
	"fmt"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	MultipleAccountSliceSize = 100
)

// Account is a decoded account snapshot. Exists is false when the address holds no account,
// in which case the other fields are zero.
type Account struct {
	PubKey   solana.PublicKey
	Height   uint64
	Exists   bool
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
}

func newAccount(pubkey solana.PublicKey, height uint64, account *rpc.Account) *Account {
	a := &Account{
		PubKey: pubkey,
		Height: height,
	}
	if account == nil {
		return a
	}
	a.Exists = true
	a.Owner = account.Owner
	a.Lamports = account.Lamports
	if account.Data != nil {
		a.Data = account.Data.GetBinary()
	}
	return a
}

func (backend *Backend) Accounts(pubkeys []solana.PublicKey) ([]*Account, error) {
	return backend.getAccountsFromChain(pubkeys)
}

func (backend *Backend) getAccountsFromChain(pubkeys []solana.PublicKey) ([]*Account, error) {
	accounts := make([]*Account, 0, len(pubkeys))
	index, end := 0, 0
	for index < len(pubkeys) {
		if end = index + MultipleAccountSliceSize; end > len(pubkeys) {
			end = len(pubkeys)
		}
		var getMultipleAccountsRsp *rpc.GetMultipleAccountsResult
		err := backend.retry("getMultipleAccounts", func() error {
			var err error
			getMultipleAccountsRsp, err = backend.rpcClient.GetMultipleAccountsWithOpts(backend.ctx, pubkeys[index:end],
				&rpc.GetMultipleAccountsOpts{Encoding: solana.EncodingBase64, Commitment: rpc.CommitmentConfirmed})
			return err
		})
		if err != nil {
			return nil, err
		}
		if len(getMultipleAccountsRsp.Value) != end-index {
			return nil, fmt.Errorf("get accounts err, some account is missing")
		}
		for i, account := range getMultipleAccountsRsp.Value {
			accounts = append(accounts, newAccount(pubkeys[index+i], getMultipleAccountsRsp.Context.Slot, account))
		}
		index = end
	}
	return accounts, nil
}

func (backend *Backend) Account(pubkey solana.PublicKey) (*Account, error) {
	accounts, err := backend.getAccountsFromChain([]solana.PublicKey{pubkey})
	if err != nil {
		return nil, err
	}
	return accounts[0], nil
}

func (backend *Backend) HasAccount(pubkey solana.PublicKey) bool {
	account, err := backend.Account(pubkey)
	if err != nil {
		backend.logger.Printf("HasAccount(%s) err: %s", pubkey, err.Error())
		return false
	}
	return account.Exists
}

// Balance returns the lamports held by pubkey.
func (backend *Backend) Balance(pubkey solana.PublicKey) (uint64, error) {
	var balance uint64
	err := backend.retry("getBalance", func() error {
		response, err := backend.rpcClient.GetBalance(backend.ctx, pubkey, rpc.CommitmentConfirmed)
		if err != nil {
			return err
		}
		balance = response.Value
		return nil
	})
	return balance, err
}

func (backend *Backend) GetMinimumBalanceForRentExemption(size uint64) (uint64, error) {
	return backend.rpcClient.GetMinimumBalanceForRentExemption(backend.ctx, size, rpc.CommitmentFinalized)
}
