package oracle

import "testing"

func TestGetStockPrice(t *testing.T) {
	tests := []struct {
		symbol string
		want   float64
	}{
		{"005930", 97_224},
		{"000660", 488_773},
		{"035420", 260_559},
		{"035720", 58_831},
		{"999999", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := GetStockPrice(tt.symbol); got != tt.want {
			t.Errorf("GetStockPrice(%q) = %v, want %v", tt.symbol, got, tt.want)
		}
	}
}
