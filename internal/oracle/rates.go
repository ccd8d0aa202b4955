package oracle

// Interest rate curve parameters (AAVE-style kinked model).
const (
	baseRate           = 2.0  // % annual at zero utilization
	slope1             = 4.0  // % added across [0, optimal]
	slope2             = 60.0 // % added across (optimal, 1]
	optimalUtilization = 0.8
)

// CalculateInterestRate maps pool totals to an annualized interest rate in
// percent. Utilization is borrowed/collateral and is not clamped; past 100%
// the rate keeps growing on the steep slope. Zero collateral yields a zero
// rate; callers must not read that as free borrowing without checking
// collateral separately.
func CalculateInterestRate(totalBorrowed, totalCollateral float64) float64 {
	if totalCollateral == 0 {
		return 0
	}

	utilizationRate := totalBorrowed / totalCollateral
	if utilizationRate <= optimalUtilization {
		return baseRate + (utilizationRate/optimalUtilization)*slope1
	}
	excess := utilizationRate - optimalUtilization
	return baseRate + slope1 + (excess/(1-optimalUtilization))*slope2
}
