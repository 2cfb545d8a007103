package calc

type ValuationInput struct {
	Price            float64
	EarningsPerShare float64
	GrowthRate       float64 // expected annual earnings growth in percent
}

type ValuationResult struct {
	PriceEarnings float64 `json:"price_earnings"`
	EarningsYield float64 `json:"earnings_yield"` // percent
	PEG           float64 `json:"peg"`
}

// Valuation computes the P/E family of ratios. Callers validate that EPS and
// growth are positive; a zero divisor yields a zero ratio rather than an Inf.
func Valuation(in ValuationInput) ValuationResult {
	var pe, yield, peg float64

	if in.EarningsPerShare != 0 {
		pe = in.Price / in.EarningsPerShare
	}
	if in.Price != 0 {
		yield = in.EarningsPerShare / in.Price * 100
	}
	if in.GrowthRate != 0 {
		peg = pe / in.GrowthRate
	}

	return ValuationResult{
		PriceEarnings: pe,
		EarningsYield: yield,
		PEG:           peg,
	}
}
