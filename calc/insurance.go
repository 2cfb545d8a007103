package calc

type InsuranceInput struct {
	LossProbability float64 // annual probability of the insured event, 0..1
	LossSeverity    float64 // expected loss amount when the event occurs
	LoadingFactor   float64 // insurer margin over expected loss, e.g. 0.35
	FixedCost       float64 // flat administrative cost per policy
	SumInsured      float64
}

type InsuranceResult struct {
	ExpectedLoss float64 `json:"expected_loss"`
	PurePremium  float64 `json:"pure_premium"`
	GrossPremium float64 `json:"gross_premium"`
	PremiumRate  float64 `json:"premium_rate"` // gross premium as % of sum insured
}

// InsurancePremium estimates a yearly premium from expected loss plus
// loading and fixed costs.
func InsurancePremium(in InsuranceInput) InsuranceResult {
	expectedLoss := in.LossProbability * in.LossSeverity
	gross := expectedLoss*(1+in.LoadingFactor) + in.FixedCost

	rate := 0.0
	if in.SumInsured > 0 {
		rate = gross / in.SumInsured * 100
	}

	return InsuranceResult{
		ExpectedLoss: expectedLoss,
		PurePremium:  expectedLoss,
		GrossPremium: gross,
		PremiumRate:  rate,
	}
}
