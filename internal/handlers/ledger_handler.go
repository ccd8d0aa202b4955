package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "daechul/internal/errors"
	"daechul/internal/models"
	"daechul/internal/pagination"
	"daechul/internal/services"
)

// LedgerHandler handles the activity log endpoints.
type LedgerHandler struct {
	ledger services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger services.LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// ledgerQuery holds the query parameters for listing entries.
type ledgerQuery struct {
	pagination.PageRequest
	Type  string `form:"type" binding:"omitempty,entry_type"`
	Token string `form:"token"`
	From  string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To    string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ListEntries godoc
// @Summary List activity log entries
// @Description Returns ledger entries, newest first, optionally filtered by type, token, and date range
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param type query string false "Entry type" Enums(borrow, repay, collateral_add, swap, send, receive)
// @Param token query string false "Token symbol or account label"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} pagination.PageResponse[models.LedgerEntry]
// @Failure 400 {object} ErrorResponse
// @Router /ledger [get]
func (h *LedgerHandler) ListEntries(c *gin.Context) {
	var query ledgerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	query.Defaults()

	var filter services.LedgerFilter
	if query.Type != "" {
		entryType := models.LedgerEntryType(query.Type)
		filter.Type = &entryType
	}
	if query.Token != "" {
		filter.Token = &query.Token
	}
	if query.From != "" {
		from, _ := time.Parse("2006-01-02", query.From)
		filter.FromDate = &from
	}
	if query.To != "" {
		to, _ := time.Parse("2006-01-02", query.To)
		// Inclusive end date.
		to = to.AddDate(0, 0, 1)
		filter.ToDate = &to
	}

	page, err := h.ledger.GetEntries(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
