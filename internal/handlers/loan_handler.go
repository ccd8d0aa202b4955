package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	apperrors "daechul/internal/errors"
	"daechul/internal/models"
	"daechul/internal/services"
)

// LoanHandler handles loan lifecycle endpoints.
type LoanHandler struct {
	loans services.LoanServicer
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loans services.LoanServicer) *LoanHandler {
	return &LoanHandler{loans: loans}
}

// CreateLoanRequest represents a borrow request body
type CreateLoanRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// RepayLoanRequest represents a repay request body
type RepayLoanRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// LoanResponse is a loan with its display-only accrued interest.
type LoanResponse struct {
	models.Loan
	AccruedInterest float64 `json:"accrued_interest"`
}

func (h *LoanHandler) toResponse(loan models.Loan, asOf time.Time) LoanResponse {
	return LoanResponse{
		Loan:            loan,
		AccruedInterest: h.loans.AccruedInterest(&loan, asOf),
	}
}

// CreateLoan godoc
// @Summary Borrow against pledged collateral
// @Description Creates a loan and disburses the amount into the KRW1 token
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLoanRequest true "Borrow parameters"
// @Success 201 {object} LoanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /loans [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	loan, err := h.loans.CreateLoan(userID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toResponse(*loan, time.Now()))
}

// ListLoans godoc
// @Summary List loans
// @Description Returns all loans, newest first, with accrued interest
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} LoanResponse
// @Failure 401 {object} ErrorResponse
// @Router /loans [get]
func (h *LoanHandler) ListLoans(c *gin.Context) {
	loans, err := h.loans.GetLoans()
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, lo.Map(loans, func(loan models.Loan, _ int) LoanResponse {
		return h.toResponse(loan, now)
	}))
}

// GetLoan godoc
// @Summary Get a loan by ID
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} LoanResponse
// @Failure 404 {object} ErrorResponse
// @Router /loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	loan, err := h.loans.GetLoanByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*loan, time.Now()))
}

// RepayLoan godoc
// @Summary Repay a loan
// @Description Pays down principal from the KRW1 balance; full repayment releases the loan's collateral
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Param request body RepayLoanRequest true "Repay parameters"
// @Success 200 {object} LoanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /loans/{id}/repay [post]
func (h *LoanHandler) RepayLoan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RepayLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	loan, err := h.loans.RepayLoan(userID, c.Param("id"), req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*loan, time.Now()))
}
