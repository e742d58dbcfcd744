package env

import (
	"encoding/json"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"os"
)

// TokenList is the solana-labs token-list file format. Only the fields used for display are
// decoded.
type TokenList struct {
	Name      string            `json:"name"`
	TimeStamp string            `json:"timestamp"`
	Tokens    []*TokenListEntry `json:"tokens"`
}

type TokenListEntry struct {
	ChainId  int    `json:"chainId"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint8  `json:"decimals"`
	LogoURI  string `json:"logoURI"`
}

func ReadTokenList(file string) (*TokenList, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read token list %s: %w", file, err)
	}
	tokenList := &TokenList{}
	if err := json.Unmarshal(data, tokenList); err != nil {
		return nil, fmt.Errorf("parse token list %s: %w", file, err)
	}
	return tokenList, nil
}

// LoadTokenList registers every entry of the list. Entries with an invalid address are
// logged and skipped.
func (e *Env) LoadTokenList(file string) error {
	tokenList, err := ReadTokenList(file)
	if err != nil {
		return err
	}
	for _, entry := range tokenList.Tokens {
		mint, err := solana.PublicKeyFromBase58(entry.Address)
		if err != nil {
			e.logger.Printf("token list %s: %s err: %s", file, entry.Address, err.Error())
			continue
		}
		e.SetToken(&Token{Symbol: entry.Symbol, Mint: mint, Decimals: entry.Decimals})
	}
	e.logger.Printf("load %d tokens from %s", len(e.tokens), file)
	return nil
}

// Resolve returns the registered token for mint with its decimals replaced by the on-chain
// value, or a new token named fallback.
func (e *Env) Resolve(mint solana.PublicKey, decimals uint8, fallback string) *Token {
	token := &Token{Symbol: fallback, Mint: mint, Decimals: decimals}
	if known := e.Token(mint); known != nil && known.Symbol != "" {
		token.Symbol = known.Symbol
	}
	e.SetToken(token)
	return token
}
