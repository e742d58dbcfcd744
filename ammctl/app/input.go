package app

import (
	"fmt"
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/env"
)

func (a *App) chooseToken(flag string, label string) (amm.Token, error) {
	if flag != "" {
		return amm.ParseToken(flag)
	}
	items := []string{
		fmt.Sprintf("A: %s (%s)", a.tokenX.Symbol, a.tokenX.Mint),
		fmt.Sprintf("B: %s (%s)", a.tokenY.Symbol, a.tokenY.Mint),
	}
	index, err := a.prompter.Select(label, items)
	if err != nil {
		return amm.X, err
	}
	if index == 0 {
		return amm.X, nil
	}
	return amm.Y, nil
}

// readAmount parses a display amount from flag, or asks for one.
func (a *App) readAmount(flag string, token *env.Token, label string) (uint64, error) {
	if flag == "" {
		input, err := a.prompter.Input(label, func(input string) error {
			_, err := token.ParseAmount(input)
			return err
		})
		if err != nil {
			return 0, err
		}
		flag = input
	}
	amount, err := token.ParseAmount(flag)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, fmt.Errorf("%w: %s is zero in base units", amm.ErrInvalidAmount, flag)
	}
	return amount, nil
}

func (a *App) confirm(label string) error {
	ok, err := a.prompter.Confirm(label)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}
