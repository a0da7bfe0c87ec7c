package macrojournal

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// shared helpers for tests in this package.

// testNow is the reference instant most tests run at: mid-August 2026.
var testNow = time.Date(2026, time.August, 15, 10, 30, 0, 0, time.UTC)

// fixedClock returns a clock frozen at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// sequenceIDs returns an id generator producing "id-1", "id-2", ...
func sequenceIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// testBias builds a plausible bias for tests.
func testBias(asset Asset, bias BiasType, confidence int) MonthlyBias {
	return MonthlyBias{
		ID:             fmt.Sprintf("auto-%s-2026-07-10", asset),
		Asset:          asset,
		Month:          NewMonth(2026, time.July),
		Bias:           bias,
		Confidence:     confidence,
		ValidityPeriod: "July 2026",
		Drivers: []MacroDriver{
			{Title: "Policy divergence", Description: "Central bank paths are diverging."},
		},
		CentralBankStance: "Hawkish",
		InflationTrend:    "Cooling",
		EmploymentTrend:   "Softening",
		GrowthOutlook:     "Below trend",
		RiskSentiment:     "Risk-off",
	}
}

// fakeSource is a scriptable BiasSource.
type fakeSource struct {
	set   []MonthlyBias
	err   error
	calls atomic.Int32
}

func (s *fakeSource) FetchLatestBiases(_ context.Context, _ []Asset, _ time.Time) ([]MonthlyBias, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.set, nil
}

// blockingSource signals when a fetch enters and waits for release, to
// exercise the in-flight sync guard.
type blockingSource struct {
	set     []MonthlyBias
	entered chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (s *blockingSource) FetchLatestBiases(_ context.Context, _ []Asset, _ time.Time) ([]MonthlyBias, error) {
	s.calls.Add(1)
	close(s.entered)
	<-s.release
	return s.set, nil
}
