package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"daechul/internal/services"
)

// stubPortfolio serves a fixed summary.
type stubPortfolio struct {
	summary services.PortfolioSummary
}

func (s *stubPortfolio) TotalCollateralValue() (float64, error) {
	return s.summary.TotalCollateralValue, nil
}
func (s *stubPortfolio) TotalBorrowedValue() (float64, error) {
	return s.summary.TotalBorrowedValue, nil
}
func (s *stubPortfolio) HealthFactor() (float64, error)        { return s.summary.HealthFactor, nil }
func (s *stubPortfolio) LiquidationRatio() (float64, error)    { return s.summary.LiquidationRatio, nil }
func (s *stubPortfolio) CurrentInterestRate() (float64, error) { return s.summary.CurrentInterestRate, nil }
func (s *stubPortfolio) MaxBorrowAmount() (float64, error)     { return s.summary.MaxBorrowAmount, nil }
func (s *stubPortfolio) Summary() (*services.PortfolioSummary, error) {
	summary := s.summary
	return &summary, nil
}

func serveSummary(t *testing.T, summary services.PortfolioSummary) map[string]json.RawMessage {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewPortfolioHandler(&stubPortfolio{summary: summary})
	router := gin.New()
	router.GET("/portfolio/summary", handler.Summary)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portfolio/summary", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	return body
}

func TestPortfolioSummaryHealthFactorEncoding(t *testing.T) {
	t.Run("infinite health factor encodes as null", func(t *testing.T) {
		body := serveSummary(t, services.PortfolioSummary{
			TotalCollateralValue: 50_000_000,
			HealthFactor:         math.Inf(1),
			CurrentInterestRate:  2.0,
			MaxBorrowAmount:      35_000_000,
		})

		if string(body["health_factor"]) != "null" {
			t.Errorf("expected null health_factor, got %s", body["health_factor"])
		}
	})

	t.Run("finite health factor encodes as a number", func(t *testing.T) {
		body := serveSummary(t, services.PortfolioSummary{
			TotalCollateralValue: 50_000_000,
			TotalBorrowedValue:   20_000_000,
			HealthFactor:         2.5,
			LiquidationRatio:     0.4,
			CurrentInterestRate:  4.0,
			MaxBorrowAmount:      15_000_000,
		})

		var hf float64
		if err := json.Unmarshal(body["health_factor"], &hf); err != nil {
			t.Fatalf("health_factor is not a number: %s", body["health_factor"])
		}
		if hf != 2.5 {
			t.Errorf("expected 2.5, got %v", hf)
		}
	})
}
