package oracle

// stockPrices is the static KRX price table, keyed by ticker. Prices in KRW.
var stockPrices = map[string]float64{
	"005930": 97_224,  // Samsung Electronics Co Ltd
	"000660": 488_773, // SK Hynix Inc
	"035420": 260_559, // Naver Corporation
	"035720": 58_831,  // Kakao Corp
}

// GetStockPrice returns the KRW price for a KRX ticker. Unknown tickers
// return 0. Pure lookup, no I/O.
func GetStockPrice(symbol string) float64 {
	return stockPrices[symbol]
}
