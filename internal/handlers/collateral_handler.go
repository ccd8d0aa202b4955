package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "daechul/internal/errors"
	"daechul/internal/services"
)

// CollateralHandler handles pledge endpoints.
type CollateralHandler struct {
	collateral services.CollateralServicer
}

// NewCollateralHandler creates a new CollateralHandler.
func NewCollateralHandler(collateral services.CollateralServicer) *CollateralHandler {
	return &CollateralHandler{collateral: collateral}
}

// AddCollateralRequest represents a pledge request body. Stock pledges take the
// whole account, so amount is only meaningful for crypto.
type AddCollateralRequest struct {
	Type   string  `json:"type" binding:"required,collateral_type"`
	RefID  string  `json:"ref_id" binding:"required"`
	Amount float64 `json:"amount" binding:"omitempty,gt=0"`
}

// ListCollateral godoc
// @Summary List pledged collateral
// @Tags collateral
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CollateralItem
// @Failure 401 {object} ErrorResponse
// @Router /collateral [get]
func (h *CollateralHandler) ListCollateral(c *gin.Context) {
	items, err := h.collateral.GetCollateral()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddCollateral godoc
// @Summary Pledge collateral
// @Description Pledges a whole brokerage account (type=stock) or a crypto amount (type=crypto)
// @Tags collateral
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddCollateralRequest true "Pledge parameters"
// @Success 201 {object} models.CollateralItem
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /collateral [post]
func (h *CollateralHandler) AddCollateral(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddCollateralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var item interface{}
	switch req.Type {
	case "stock":
		item, err = h.collateral.AddStockCollateral(userID, req.RefID)
	case "crypto":
		if req.Amount <= 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount is required for crypto collateral"))
			return
		}
		item, err = h.collateral.AddCryptoCollateral(userID, req.RefID, req.Amount)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// RemoveCollateral godoc
// @Summary Withdraw a pledge
// @Description Removes a pledge by its reference ID and credits crypto back to its token
// @Tags collateral
// @Produce json
// @Security BearerAuth
// @Param refId path string true "Pledge reference ID (account slug or token symbol)"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /collateral/{refId} [delete]
func (h *CollateralHandler) RemoveCollateral(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.collateral.RemoveCollateral(userID, c.Param("refId")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
