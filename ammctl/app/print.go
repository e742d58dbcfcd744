package app

import (
	"github.com/egaotan/solana-amm/amm"
	"github.com/egaotan/solana-amm/pool"
	"strings"
)

func (a *App) printPool(snapshot amm.Pool) {
	a.printf("Reserves: %s / %s\n", a.tokenX.Format(snapshot.ReserveX), a.tokenY.Format(snapshot.ReserveY))
	a.printf("LP supply: %s\n", a.lpToken().Format(snapshot.LPSupply))
	a.printf("Fee: %d bps\n", snapshot.FeeBps)
	if ratio, err := snapshot.Ratio(); err == nil {
		a.printf("Price: 1 %s = %s %s (raw units)\n", a.tokenX.Symbol, ratio.StringFixed(6), a.tokenY.Symbol)
	}
}

func (a *App) printSwapPlan(snapshot amm.Pool, plan *amm.SwapPlan) {
	input, output := a.token(plan.Input), a.token(plan.Input.Other())
	a.printf("\nSwap quote\n")
	a.printf("You pay: %s\n", input.Format(plan.AmountIn))
	a.printf("After %d bps fee: %s\n", snapshot.FeeBps, input.Format(plan.AmountInAfterFee))
	a.printf("You receive: %s\n", output.Format(plan.AmountOut))
	a.printf("Minimum received: %s\n", output.Format(plan.MinAmountOut))
	a.printf("Effective price: %s (raw units)\n", plan.EffectivePriceDecimal(6).String())
	if impact, err := snapshot.PriceImpact(plan); err == nil {
		a.printf("Price impact: %s%%\n", impact.StringFixed(4))
	}
}

func (a *App) printDepositPlan(snapshot amm.Pool, plan *amm.DepositPlan) {
	a.printf("\nDeposit quote\n")
	a.printf("%s: %s\n", a.tokenX.Symbol, a.tokenX.Format(plan.RequiredX))
	a.printf("%s: %s\n", a.tokenY.Symbol, a.tokenY.Format(plan.RequiredY))
	a.printf("LP tokens to mint: %s\n", a.lpToken().Format(plan.LPTokensToMint))
	if total := snapshot.LPSupply + plan.LPTokensToMint; total > 0 && total >= snapshot.LPSupply {
		a.printf("Pool share after deposit: %s%%\n", share(plan.LPTokensToMint, total))
	}
}

func (a *App) printWithdrawPlan(snapshot amm.Pool, plan *amm.WithdrawPlan) {
	a.printf("\nWithdraw quote\n")
	a.printf("LP tokens to burn: %s\n", a.lpToken().Format(plan.LPTokensToBurn))
	a.printf("You receive: %s + %s\n", a.tokenX.Format(plan.OutX), a.tokenY.Format(plan.OutY))
	a.printf("Pool share burned: %s%%\n", share(plan.LPTokensToBurn, snapshot.LPSupply))
}

func (a *App) printBalances(balances *pool.Balances) {
	a.printf("%s: %s\n", a.tokenX.Symbol, a.tokenX.Format(balances.X))
	a.printf("%s: %s\n", a.tokenY.Symbol, a.tokenY.Format(balances.Y))
	a.printf("LP: %s\n", a.lpToken().Format(balances.LP))
}

func (a *App) printReceipt(receipt *pool.Receipt) {
	if receipt.Simulated {
		a.printf("\nSimulation succeeded\n%s\n", strings.Join(receipt.Logs, "\n"))
		return
	}
	a.printf("\nTransaction: %s\n", receipt.Signature)
	if receipt.Before == nil || receipt.After == nil {
		return
	}
	a.printf("\nBalances before\n")
	a.printBalances(receipt.Before)
	a.printf("\nBalances after\n")
	a.printBalances(receipt.After)
	a.printf("\nPool after\n")
	a.printPool(receipt.PoolAfter)
}
