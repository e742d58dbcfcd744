package backend

import (
	"encoding/json"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type SimulateResult struct {
	Logs          []string
	UnitsConsumed uint64
	Transaction   []byte
}

// Simulate runs the instructions against the current bank without sending them. The logs are
// returned with the error when the program rejects the transaction.
func (backend *Backend) Simulate(is []solana.Instruction) (*SimulateResult, error) {
	trx, err := backend.buildTransaction(is)
	if err != nil {
		return nil, err
	}
	trxJson, _ := json.MarshalIndent(trx, "", "    ")
	result := &SimulateResult{Transaction: trxJson}

	response, err := backend.rpcClient.SimulateTransactionWithOpts(backend.ctx, trx, &rpc.SimulateTransactionOpts{
		SigVerify:  false,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return result, err
	}
	simulateTransactionResponse := response.Value
	if simulateTransactionResponse.Logs == nil {
		return result, fmt.Errorf("%w: log is nil, simulate failed before the transaction was able to executed, such as signature verification failure or invalid blockhash", ErrSimulate)
	}
	result.Logs = simulateTransactionResponse.Logs
	if simulateTransactionResponse.UnitsConsumed != nil {
		result.UnitsConsumed = *simulateTransactionResponse.UnitsConsumed
	}
	if simulateTransactionResponse.Err != nil {
		return result, fmt.Errorf("%w: %v", ErrSimulate, simulateTransactionResponse.Err)
	}
	return result, nil
}
