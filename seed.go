package macrojournal

import "fmt"

// SeedBiases returns the bundled fallback bias set for a universe: one
// neutral, zero-confidence placeholder per asset for the given month.
//
// It is the ultimate fallback when no live synthesis and no cached snapshot
// is available, so the journal is never left with zero biases. The set is
// non-empty for any non-empty universe and covers every asset in it.
func SeedBiases(universe []Asset, m Month) []MonthlyBias {
	biases := make([]MonthlyBias, 0, len(universe))
	for _, asset := range universe {
		biases = append(biases, seedBias(asset, m))
	}
	return biases
}

func seedBias(asset Asset, m Month) MonthlyBias {
	return MonthlyBias{
		ID:             fmt.Sprintf("placeholder-%s-%s", asset, m),
		Asset:          asset,
		Month:          m,
		Bias:           Neutral,
		Confidence:     0,
		ValidityPeriod: m.Validity(),
		Drivers: []MacroDriver{
			{
				Title: "Awaiting intelligence sync",
				Description: fmt.Sprintf("The fundamental outlook for %s %d has not been synthesized yet. "+
					"Run a sync to fetch the latest monthly bias.", m.Month(), m.Year()),
			},
		},
		CentralBankStance: "Pending",
		InflationTrend:    "Pending",
		EmploymentTrend:   "Pending",
		GrowthOutlook:     "Pending",
		RiskSentiment:     "Neutral",
	}
}
