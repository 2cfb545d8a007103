// Package calc holds the economic calculators. Every function is a pure
// mapping from explicit numeric inputs to a result record: no I/O, no shared
// state, safe to call concurrently from any number of simulation sessions.
// All rates are percentage points suitable for two-decimal display.
package calc

type InflationInput struct {
	InflationRate     float64 // observed headline inflation
	CoreInflationRate float64 // core inflation, used as the expectation proxy
	InflationTarget   float64
	PolicyRate        float64
	OutputGap         float64
	InflationCoeff    float64 // Taylor responsiveness to the core gap
	OutputCoeff       float64 // Taylor responsiveness to the output gap
	NeutralRate       float64
}

type InflationResult struct {
	RealRateExPost      float64 `json:"real_rate_ex_post"`
	RealRateExAnte      float64 `json:"real_rate_ex_ante"`
	InflationGap        float64 `json:"inflation_gap"`
	CoreInflationGap    float64 `json:"core_inflation_gap"`
	TaylorRate          float64 `json:"taylor_rate"`
	PolicyRateDeviation float64 `json:"policy_rate_deviation"`
}

// Inflation derives the real-rate and Taylor-rule indicators for one
// scenario. The Taylor reference rate is
// target + neutral + a*(core - target) + b*outputGap.
func Inflation(in InflationInput) InflationResult {
	coreGap := in.CoreInflationRate - in.InflationTarget
	taylor := in.InflationTarget + in.NeutralRate + in.InflationCoeff*coreGap + in.OutputCoeff*in.OutputGap

	return InflationResult{
		RealRateExPost:      in.PolicyRate - in.InflationRate,
		RealRateExAnte:      in.PolicyRate - in.CoreInflationRate,
		InflationGap:        in.InflationRate - in.InflationTarget,
		CoreInflationGap:    coreGap,
		TaylorRate:          taylor,
		PolicyRateDeviation: in.PolicyRate - taylor,
	}
}
