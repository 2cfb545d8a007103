package dto

// Calculator requests mirror the calc package inputs; validation happens
// here so the calc package can stay a pure arithmetic layer.

type InflationCalcRequest struct {
	InflationRate     float64 `json:"inflation_rate" validate:"gte=-50,lte=1000" example:"4.5"`
	CoreInflationRate float64 `json:"core_inflation_rate" validate:"gte=-50,lte=1000" example:"3.8"`
	InflationTarget   float64 `json:"inflation_target" validate:"gte=-10,lte=100" example:"3"`
	PolicyRate        float64 `json:"policy_rate" validate:"gte=-10,lte=1000" example:"11"`
	OutputGap         float64 `json:"output_gap" validate:"gte=-50,lte=50" example:"-1.2"`
	InflationCoeff    float64 `json:"inflation_coeff" validate:"gte=0,lte=10" example:"0.5"`
	OutputCoeff       float64 `json:"output_coeff" validate:"gte=0,lte=10" example:"0.5"`
	NeutralRate       float64 `json:"neutral_rate" validate:"gte=-10,lte=50" example:"2.5"`
}

func (i InflationCalcRequest) Validate() error {
	return GetValidator().Struct(i)
}

type HalvingCalcRequest struct {
	InitialReward   float64 `json:"initial_reward" validate:"gt=0" example:"50"`
	HalvingInterval int     `json:"halving_interval" validate:"gt=0" example:"210000"`
	CurrentBlock    int     `json:"current_block" validate:"gte=0" example:"840000"`
	BlockTimeMins   float64 `json:"block_time_mins" validate:"gt=0" example:"10"`
}

func (h HalvingCalcRequest) Validate() error {
	return GetValidator().Struct(h)
}

type InsuranceCalcRequest struct {
	LossProbability float64 `json:"loss_probability" validate:"gte=0,lte=1" example:"0.02"`
	LossSeverity    float64 `json:"loss_severity" validate:"gte=0" example:"150000"`
	LoadingFactor   float64 `json:"loading_factor" validate:"gte=0,lte=5" example:"0.35"`
	FixedCost       float64 `json:"fixed_cost" validate:"gte=0" example:"120"`
	SumInsured      float64 `json:"sum_insured" validate:"gt=0" example:"200000"`
}

func (i InsuranceCalcRequest) Validate() error {
	return GetValidator().Struct(i)
}

type ValuationCalcRequest struct {
	Price            float64 `json:"price" validate:"gt=0" example:"185.5"`
	EarningsPerShare float64 `json:"earnings_per_share" validate:"gt=0" example:"6.1"`
	GrowthRate       float64 `json:"growth_rate" validate:"gt=0,lte=1000" example:"12"`
}

func (v ValuationCalcRequest) Validate() error {
	return GetValidator().Struct(v)
}
