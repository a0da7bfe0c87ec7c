package macrojournal

import (
	"fmt"
	"slices"
)

// Asset is an instrument identifier, e.g. "EURUSD" or "XAUUSD".
//
// The active universe is configuration, not code: any non-empty symbol is a
// valid Asset, and the bias system covers whatever universe it is given.
type Asset string

// DefaultUniverse is the asset universe used when no configuration overrides it.
var DefaultUniverse = []Asset{"EURUSD", "GBPUSD", "USDJPY", "XAUUSD"}

// BiasType is the directional macro stance assigned to an asset for a month.
type BiasType string

const (
	Bullish BiasType = "BULLISH"
	Bearish BiasType = "BEARISH"
	Neutral BiasType = "NEUTRAL"
)

// MacroDriver is one fundamental force behind a bias. Drivers are ordered,
// the order is a display concern only.
type MacroDriver struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GroundingSource is a provenance pointer for a bias, typically a web page
// the intelligence provider grounded its synthesis on.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// MonthlyBias is the fundamental stance on one asset for one month.
//
// The collection held by the Manager is the authoritative current set. It is
// replaced wholesale on each successful sync, never merged field by field.
type MonthlyBias struct {
	ID                     string            `json:"id"`
	Asset                  Asset             `json:"asset"`
	Month                  Month             `json:"month"`
	Bias                   BiasType          `json:"bias"`
	Confidence             int               `json:"confidence"` // 0-100
	ValidityPeriod         string            `json:"validityPeriod"`
	Drivers                []MacroDriver     `json:"drivers"`
	InvalidationConditions string            `json:"invalidationConditions,omitempty"`
	CentralBankStance      string            `json:"centralBankStance"`
	InflationTrend         string            `json:"inflationTrend"`
	EmploymentTrend        string            `json:"employmentTrend"`
	GrowthOutlook          string            `json:"growthOutlook"`
	RiskSentiment          string            `json:"riskSentiment"`
	Sources                []GroundingSource `json:"sources,omitempty"`
}

// Validate checks the bias invariants.
func (b MonthlyBias) Validate() error {
	if b.Asset == "" {
		return fmt.Errorf("bias %q has no asset", b.ID)
	}
	if b.Confidence < 0 || b.Confidence > 100 {
		return fmt.Errorf("bias %q for %s: confidence %d out of range [0,100]", b.ID, b.Asset, b.Confidence)
	}
	switch b.Bias {
	case Bullish, Bearish, Neutral:
	default:
		return fmt.Errorf("bias %q for %s: unknown bias type %q", b.ID, b.Asset, b.Bias)
	}
	return nil
}

// Clone returns a deep copy of the bias.
//
// Trades freeze the bias that was current at their creation; that snapshot
// must stay independent from later mutations of the live set, so it is a
// value copy, never a shared slice.
func (b MonthlyBias) Clone() MonthlyBias {
	c := b
	c.Drivers = slices.Clone(b.Drivers)
	c.Sources = slices.Clone(b.Sources)
	return c
}
