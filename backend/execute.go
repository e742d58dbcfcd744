package backend

import (
	"encoding/json"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"time"
)

func (backend *Backend) recentBlockHash() (solana.Hash, error) {
	var blockHash solana.Hash
	err := backend.retry("getRecentBlockhash", func() error {
		getRecentBlockHashResult, err := backend.rpcClient.GetRecentBlockhash(backend.ctx, rpc.CommitmentFinalized)
		if err != nil {
			return err
		}
		blockHash = getRecentBlockHashResult.Value.Blockhash
		return nil
	})
	return blockHash, err
}

func (backend *Backend) buildTransaction(ins []solana.Instruction) (*solana.Transaction, error) {
	if len(backend.wallets) == 0 {
		return nil, ErrNoWallet
	}
	blockHash, err := backend.recentBlockHash()
	if err != nil {
		return nil, err
	}
	builder := solana.NewTransactionBuilder()
	for _, i := range ins {
		builder.AddInstruction(i)
	}
	builder.SetRecentBlockHash(blockHash)
	builder.SetFeePayer(backend.player)
	trx, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build transaction: %w", err)
	}
	_, err = trx.Sign(backend.getWallet)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	return trx, nil
}

// Commit signs and sends the instructions in one transaction, then polls until the
// transaction is confirmed. The signature is returned even when confirmation times out
// or the program rejects the transaction (ErrTransactionFailed).
func (backend *Backend) Commit(ins []solana.Instruction) (solana.Signature, error) {
	trx, err := backend.buildTransaction(ins)
	if err != nil {
		return solana.Signature{}, err
	}
	var signature solana.Signature
	err = backend.retry("sendTransaction", func() error {
		var err error
		signature, err = backend.rpcClient.SendTransactionWithOpts(backend.ctx, trx, false, rpc.CommitmentFinalized)
		return err
	})
	if err != nil {
		trxJson, _ := json.MarshalIndent(trx, "", "    ")
		backend.logger.Printf("send transaction err: %s, transaction: %s", err.Error(), trxJson)
		return solana.Signature{}, err
	}
	backend.logger.Printf("sent transaction %s", signature)

	check := func(signature solana.Signature) (*rpc.GetTransactionResult, error) {
		result, err := backend.rpcClient.GetTransaction(backend.ctx, signature, &rpc.GetTransactionOpts{
			Encoding:   solana.EncodingBase64,
			Commitment: rpc.CommitmentConfirmed,
		})
		if err == nil && result == nil {
			err = rpc.ErrNotFound
		}
		return result, err
	}
	counter := 0
	for counter < backend.confirmAttempts {
		counter++
		result, err := check(signature)
		if err == nil {
			if result.Meta != nil && result.Meta.Err != nil {
				for _, line := range result.Meta.LogMessages {
					backend.logger.Printf("transaction %s log: %s", signature, line)
				}
				backend.logger.Printf("transaction %s failed: %v", signature, result.Meta.Err)
				return signature, fmt.Errorf("%w: %v", ErrTransactionFailed, result.Meta.Err)
			}
			backend.logger.Printf("transaction %s success", signature)
			return signature, nil
		}
		backend.logger.Printf("check %d err: %s", counter, err.Error())
		select {
		case <-time.After(backend.confirmDelay):
		case <-backend.ctx.Done():
			return signature, backend.ctx.Err()
		}
	}
	return signature, fmt.Errorf("%w: %s", ErrNotConfirmed, signature)
}
