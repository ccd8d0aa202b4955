package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"daechul/internal/services"
)

// PortfolioHandler handles derived lending metric endpoints.
type PortfolioHandler struct {
	portfolio services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolio services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// PortfolioSummaryResponse is the summary with a JSON-safe health factor.
// HealthFactor is null when nothing is borrowed (the internal value is +Inf,
// which JSON cannot encode).
type PortfolioSummaryResponse struct {
	TotalCollateralValue float64  `json:"total_collateral_value"`
	TotalBorrowedValue   float64  `json:"total_borrowed_value"`
	HealthFactor         *float64 `json:"health_factor"`
	LiquidationRatio     float64  `json:"liquidation_ratio"`
	CurrentInterestRate  float64  `json:"current_interest_rate"`
	MaxBorrowAmount      float64  `json:"max_borrow_amount"`
}

// Summary godoc
// @Summary Get the portfolio summary
// @Description Returns collateral, borrow, health factor, liquidation ratio, interest rate, and borrow capacity. health_factor is null when nothing is borrowed.
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PortfolioSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Router /portfolio/summary [get]
func (h *PortfolioHandler) Summary(c *gin.Context) {
	summary, err := h.portfolio.Summary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := PortfolioSummaryResponse{
		TotalCollateralValue: summary.TotalCollateralValue,
		TotalBorrowedValue:   summary.TotalBorrowedValue,
		LiquidationRatio:     summary.LiquidationRatio,
		CurrentInterestRate:  summary.CurrentInterestRate,
		MaxBorrowAmount:      summary.MaxBorrowAmount,
	}
	if !math.IsInf(summary.HealthFactor, 1) {
		hf := summary.HealthFactor
		resp.HealthFactor = &hf
	}
	c.JSON(http.StatusOK, resp)
}
