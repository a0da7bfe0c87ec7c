package macrojournal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// A BiasSource produces the latest monthly bias set for a list of assets.
//
// Implementations are expected to enforce their own timeout, in the
// few-second range, so a caller's sync can never hang indefinitely.
type BiasSource interface {
	FetchLatestBiases(ctx context.Context, assets []Asset, ref time.Time) ([]MonthlyBias, error)
}

// ErrEmptyResult is returned when a source answered successfully but with
// zero biases, which the journal treats the same as a failure.
var ErrEmptyResult = errors.New("bias source returned no biases")

// ErrNoSource is returned when no bias source is configured at all.
var ErrNoSource = errors.New("no bias source configured")

// A SyncError wraps whatever went wrong while fetching the latest bias set.
// The fallback policy is decided by the caller: the Fallback adapter
// substitutes the seed set, the Manager keeps its previous state.
type SyncError struct {
	Cause error
}

func (e *SyncError) Error() string { return fmt.Sprintf("bias sync failed: %v", e.Cause) }
func (e *SyncError) Unwrap() error { return e.Cause }

// Fallback is the bias source adapter: it tries its Source once and falls
// back to the static seed set on any failure or empty result.
//
// Latest therefore always returns a usable, non-empty collection, at the
// cost of potentially returning placeholder data silently. That tradeoff is
// explicit: the returned *SyncError tells the caller the set is the seed,
// and the caller decides whether to use it or keep what it had.
type Fallback struct {
	Source   BiasSource
	Universe []Asset
	Now      func() time.Time // defaults to time.Now
}

// Latest returns the latest bias set for the adapter's universe. The
// returned collection is always usable; err is a *SyncError when it is the
// seed set rather than live data.
func (f *Fallback) Latest(ctx context.Context) ([]MonthlyBias, error) {
	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}
	if f.Source == nil {
		return SeedBiases(f.Universe, MonthOf(now)), &SyncError{Cause: ErrNoSource}
	}
	set, err := f.Source.FetchLatestBiases(ctx, f.Universe, now)
	if err != nil {
		return SeedBiases(f.Universe, MonthOf(now)), &SyncError{Cause: err}
	}
	if len(set) == 0 {
		return SeedBiases(f.Universe, MonthOf(now)), &SyncError{Cause: ErrEmptyResult}
	}
	return set, nil
}
