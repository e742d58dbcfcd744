package program

import "github.com/gagliardetto/solana-go"

var (
	Token           = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	AssociatedToken = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	System          = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")
	AMM             = solana.MustPublicKeyFromBase58("EHXMkEMsu7eiZ1StSergg8JjJf1b5HvXMYUJ4VnnA29u")
)

var (
	ConfigSeed = []byte("config")
	LPSeed     = []byte("lp")
)
