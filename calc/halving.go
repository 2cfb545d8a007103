package calc

import "math"

type HalvingInput struct {
	InitialReward   float64 // block reward before the first halving
	HalvingInterval int     // blocks between halvings
	CurrentBlock    int
	BlockTimeMins   float64
}

type HalvingResult struct {
	HalvingsOccurred   int     `json:"halvings_occurred"`
	CurrentReward      float64 `json:"current_reward"`
	NextHalvingBlock   int     `json:"next_halving_block"`
	BlocksToNext       int     `json:"blocks_to_next"`
	YearsToNext        float64 `json:"years_to_next"`
	EmittedSupply      float64 `json:"emitted_supply"`
	MaxSupply          float64 `json:"max_supply"`
	EmittedSupplyShare float64 `json:"emitted_supply_share"`
}

// Halving computes the emission schedule state at CurrentBlock. Supply of a
// geometrically halved emission converges to
// initialReward * interval * 2.
func Halving(in HalvingInput) HalvingResult {
	halvings := in.CurrentBlock / in.HalvingInterval
	reward := in.InitialReward / math.Pow(2, float64(halvings))

	// Sum the fully completed eras, then the partial current era.
	emitted := 0.0
	for i := 0; i < halvings; i++ {
		emitted += in.InitialReward / math.Pow(2, float64(i)) * float64(in.HalvingInterval)
	}
	blocksIntoEra := in.CurrentBlock % in.HalvingInterval
	emitted += reward * float64(blocksIntoEra)

	maxSupply := in.InitialReward * float64(in.HalvingInterval) * 2

	nextHalvingBlock := (halvings + 1) * in.HalvingInterval
	blocksToNext := nextHalvingBlock - in.CurrentBlock
	yearsToNext := float64(blocksToNext) * in.BlockTimeMins / (60 * 24 * 365)

	share := 0.0
	if maxSupply > 0 {
		share = emitted / maxSupply * 100
	}

	return HalvingResult{
		HalvingsOccurred:   halvings,
		CurrentReward:      reward,
		NextHalvingBlock:   nextHalvingBlock,
		BlocksToNext:       blocksToNext,
		YearsToNext:        yearsToNext,
		EmittedSupply:      emitted,
		MaxSupply:          maxSupply,
		EmittedSupplyShare: share,
	}
}
