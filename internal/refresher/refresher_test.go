package refresher

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"daechul/internal/models"
	"daechul/internal/services"
)

// blockingAssets counts RefreshPrices calls and blocks each one until
// release is closed.
type blockingAssets struct {
	calls   atomic.Int64
	release chan struct{}
}

func (b *blockingAssets) RefreshPrices(ctx context.Context) error {
	b.calls.Add(1)
	<-b.release
	return nil
}

func (b *blockingAssets) InitializeAssets(ctx context.Context) error { return nil }
func (b *blockingAssets) GetTokens() ([]models.Token, error)         { return nil, nil }
func (b *blockingAssets) GetTokenBySymbol(symbol string) (*models.Token, error) {
	return nil, nil
}
func (b *blockingAssets) GetStockAccounts() ([]models.StockAccount, error) { return nil, nil }
func (b *blockingAssets) GetStockAccountBySlug(slug string) (*models.StockAccount, error) {
	return nil, nil
}
func (b *blockingAssets) BuyToken(userID, fromSymbol, toSymbol string, amount float64) (*services.SwapResult, error) {
	return nil, nil
}

func TestRefreshSkipsWhileInFlight(t *testing.T) {
	assets := &blockingAssets{release: make(chan struct{})}
	r := New(assets, time.Hour)

	done := make(chan struct{})
	go func() {
		r.refresh(context.Background())
		close(done)
	}()

	// Wait until the first refresh is in flight.
	deadline := time.After(time.Second)
	for assets.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("first refresh never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	// A refresh arriving while one is in flight must be dropped.
	r.refresh(context.Background())
	if got := assets.calls.Load(); got != 1 {
		t.Fatalf("expected overlapping refresh to be skipped, got %d calls", got)
	}

	close(assets.release)
	<-done

	// Once the first finishes, the next tick refreshes again.
	r.refresh(context.Background())
	if got := assets.calls.Load(); got != 2 {
		t.Fatalf("expected refresh after completion, got %d calls", got)
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	assets := &blockingAssets{release: make(chan struct{})}
	close(assets.release)
	r := New(assets, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(stopped)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop after context cancellation")
	}
}
