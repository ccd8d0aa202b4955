package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "daechul/internal/errors"
	"daechul/internal/services"
)

// AssetHandler handles token and brokerage account endpoints.
type AssetHandler struct {
	assets services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assets services.AssetServicer) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// ListTokens godoc
// @Summary List wallet tokens
// @Description Returns every token with its current balance and KRW value
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Token
// @Failure 401 {object} ErrorResponse
// @Router /tokens [get]
func (h *AssetHandler) ListTokens(c *gin.Context) {
	tokens, err := h.assets.GetTokens()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// GetToken godoc
// @Summary Get a token by symbol
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param symbol path string true "Token symbol"
// @Success 200 {object} models.Token
// @Failure 404 {object} ErrorResponse
// @Router /tokens/{symbol} [get]
func (h *AssetHandler) GetToken(c *gin.Context) {
	token, err := h.assets.GetTokenBySymbol(c.Param("symbol"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// ListStockAccounts godoc
// @Summary List brokerage accounts
// @Description Returns every brokerage account with its holdings and totals
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.StockAccount
// @Failure 401 {object} ErrorResponse
// @Router /stock-accounts [get]
func (h *AssetHandler) ListStockAccounts(c *gin.Context) {
	accounts, err := h.assets.GetStockAccounts()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// GetStockAccount godoc
// @Summary Get a brokerage account by slug
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Account slug"
// @Success 200 {object} models.StockAccount
// @Failure 404 {object} ErrorResponse
// @Router /stock-accounts/{slug} [get]
func (h *AssetHandler) GetStockAccount(c *gin.Context) {
	account, err := h.assets.GetStockAccountBySlug(c.Param("slug"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// SwapRequest represents a token swap request body
type SwapRequest struct {
	FromSymbol string  `json:"from_symbol" binding:"required"`
	ToSymbol   string  `json:"to_symbol" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

// Swap godoc
// @Summary Swap one token for another
// @Description Converts amount of the source token into the target token at cached prices
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SwapRequest true "Swap parameters"
// @Success 200 {object} services.SwapResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tokens/swap [post]
func (h *AssetHandler) Swap(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.assets.BuyToken(userID, req.FromSymbol, req.ToSymbol, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RefreshPrices godoc
// @Summary Refresh all prices now
// @Description Re-fetches crypto and stock prices and recomputes token and account values
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /prices/refresh [post]
func (h *AssetHandler) RefreshPrices(c *gin.Context) {
	if err := h.assets.RefreshPrices(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}
