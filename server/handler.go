package server

import (
	"errors"
	"fmt"
	"github.com/egaotan/solana-amm/amm"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
)

const (
	DefaultOperationLimit = 20
	pricePlaces           = 6
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type PoolResponse struct {
	Pool  amm.Pool `json:"pool"`
	Empty bool     `json:"empty"`
	Ratio string   `json:"ratio,omitempty"`
}

type SwapQuote struct {
	Token            string `json:"token"`
	AmountIn         uint64 `json:"amount_in"`
	AmountInAfterFee uint64 `json:"amount_in_after_fee"`
	AmountOut        uint64 `json:"amount_out"`
	MinAmountOut     uint64 `json:"min_amount_out"`
	SlippageBps      uint16 `json:"slippage_bps"`
	EffectivePrice   string `json:"effective_price"`
	PriceImpact      string `json:"price_impact"`
}

type DepositQuote struct {
	LPTokensToMint uint64 `json:"lp_tokens_to_mint"`
	RequiredX      uint64 `json:"required_x"`
	RequiredY      uint64 `json:"required_y"`
	Initial        bool   `json:"initial"`
}

type WithdrawQuote struct {
	LPTokensToBurn uint64 `json:"lp_tokens_to_burn"`
	OutX           uint64 `json:"out_x"`
	OutY           uint64 `json:"out_y"`
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, amm.ErrInvalidAmount), errors.Is(err, amm.ErrOverflow):
		return http.StatusBadRequest
	case errors.Is(err, amm.ErrDivisionByZero):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Printf("%s err: %s", c.Request.URL, err.Error())
	}
	c.JSON(status, &ErrorResponse{Error: err.Error()})
}

func queryUint(c *gin.Context, name string, bits int) (uint64, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", amm.ErrInvalidAmount, name)
	}
	v, err := strconv.ParseUint(raw, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %s", amm.ErrInvalidAmount, name, err)
	}
	return v, nil
}

func (s *Server) snapshot(c *gin.Context) (amm.Pool, bool) {
	pool, err := s.source.Snapshot()
	if err != nil {
		s.fail(c, http.StatusBadGateway, err)
		return amm.Pool{}, false
	}
	return pool, true
}

func (s *Server) getPool(c *gin.Context) {
	pool, ok := s.snapshot(c)
	if !ok {
		return
	}
	response := &PoolResponse{Pool: pool, Empty: pool.IsEmpty()}
	if ratio, err := pool.Ratio(); err == nil {
		response.Ratio = ratio.String()
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) quoteSwap(c *gin.Context) {
	token, err := amm.ParseToken(c.DefaultQuery("token", "x"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	amount, err := queryUint(c, "amount", 64)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	slippage := uint64(s.slippageBps)
	if _, ok := c.GetQuery("slippage_bps"); ok {
		if slippage, err = queryUint(c, "slippage_bps", 16); err != nil {
			s.fail(c, http.StatusBadRequest, err)
			return
		}
	}
	pool, ok := s.snapshot(c)
	if !ok {
		return
	}
	plan, err := amm.PlanSwap(pool, token, amount, uint16(slippage))
	if err != nil {
		s.fail(c, errorStatus(err), err)
		return
	}
	impact, err := pool.PriceImpact(plan)
	if err != nil {
		s.fail(c, errorStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, &SwapQuote{
		Token:            token.String(),
		AmountIn:         plan.AmountIn,
		AmountInAfterFee: plan.AmountInAfterFee,
		AmountOut:        plan.AmountOut,
		MinAmountOut:     plan.MinAmountOut,
		SlippageBps:      uint16(slippage),
		EffectivePrice:   plan.EffectivePriceDecimal(pricePlaces).String(),
		PriceImpact:      impact.StringFixed(4),
	})
}

// quoteDeposit takes token+amount for a funded pool, x+y for the first deposit.
func (s *Server) quoteDeposit(c *gin.Context) {
	pool, ok := s.snapshot(c)
	if !ok {
		return
	}
	var plan *amm.DepositPlan
	var err error
	if pool.IsEmpty() {
		var x, y uint64
		if x, err = queryUint(c, "x", 64); err == nil {
			if y, err = queryUint(c, "y", 64); err == nil {
				plan, err = amm.PlanInitialDeposit(x, y)
			}
		}
	} else {
		var token amm.Token
		var amount uint64
		if token, err = amm.ParseToken(c.DefaultQuery("token", "x")); err == nil {
			if amount, err = queryUint(c, "amount", 64); err == nil {
				plan, err = amm.PlanDeposit(pool, amount, token)
			}
		}
	}
	if err != nil {
		s.fail(c, errorStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, &DepositQuote{
		LPTokensToMint: plan.LPTokensToMint,
		RequiredX:      plan.RequiredX,
		RequiredY:      plan.RequiredY,
		Initial:        pool.IsEmpty(),
	})
}

func (s *Server) quoteWithdraw(c *gin.Context) {
	lp, err := queryUint(c, "lp", 64)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	pool, ok := s.snapshot(c)
	if !ok {
		return
	}
	plan, err := amm.PlanWithdraw(pool, lp)
	if err != nil {
		s.fail(c, errorStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, &WithdrawQuote{
		LPTokensToBurn: plan.LPTokensToBurn,
		OutX:           plan.OutX,
		OutY:           plan.OutY,
	})
}

func (s *Server) getOperations(c *gin.Context) {
	if s.operations == nil {
		s.fail(c, http.StatusNotFound, errors.New("operation journal is disabled"))
		return
	}
	limit := uint64(DefaultOperationLimit)
	if _, ok := c.GetQuery("limit"); ok {
		var err error
		if limit, err = queryUint(c, "limit", 16); err != nil || limit == 0 {
			s.fail(c, http.StatusBadRequest, fmt.Errorf("invalid limit"))
			return
		}
	}
	operations, err := s.operations.GetOperations(s.pool, int(limit))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, operations)
}
