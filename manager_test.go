package macrojournal

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newTestManager(store Store, source BiasSource) *Manager {
	return NewManager(store, source,
		WithClock(fixedClock(testNow)),
		WithIDFunc(sequenceIDs()),
	)
}

func draft(asset Asset, dir Direction) TradeDraft {
	return TradeDraft{
		Asset:      asset,
		Direction:  dir,
		Timeframe:  Swing,
		EntryPrice: decimal.RequireFromString("1.0850"),
		ExitPrice:  decimal.RequireFromString("1.0720"),
		ResultR:    1.8,
		Notes:      "NFP week",
	}
}

func TestManager_InitDefaults(t *testing.T) {
	m := newTestManager(NewMemStore(), nil)

	if got := m.Trades(); len(got) != 0 {
		t.Errorf("fresh manager has %d trades, want 0", len(got))
	}
	biases := m.Biases()
	if len(biases) != len(DefaultUniverse) {
		t.Fatalf("fresh manager has %d biases, want one per asset (%d)", len(biases), len(DefaultUniverse))
	}
	for i, b := range biases {
		if b.Asset != DefaultUniverse[i] {
			t.Errorf("bias %d is for %s, want %s", i, b.Asset, DefaultUniverse[i])
		}
		if b.Bias != Neutral || b.Confidence != 0 {
			t.Errorf("seed bias for %s is %s/%d, want NEUTRAL/0", b.Asset, b.Bias, b.Confidence)
		}
	}
	if !m.LastSync().IsZero() {
		t.Errorf("fresh manager has last sync %v, want zero", m.LastSync())
	}
}

func TestManager_SyncReplacesWholesale(t *testing.T) {
	store := NewMemStore()
	source := &fakeSource{set: []MonthlyBias{
		testBias("EURUSD", Bearish, 75),
		testBias("XAUUSD", Bullish, 60),
	}}
	m := newTestManager(store, source)

	m.Sync(context.Background())

	biases := m.Biases()
	if len(biases) != 2 {
		t.Fatalf("after sync got %d biases, want 2 (wholesale replacement, not merge)", len(biases))
	}
	for _, b := range biases {
		if b.Bias == Neutral && b.Confidence == 0 {
			t.Errorf("seed bias for %s survived a successful sync", b.Asset)
		}
	}
	if got := m.LastSync(); !got.Equal(testNow) {
		t.Errorf("last sync = %v, want %v", got, testNow)
	}

	// the snapshot and the sync instant are written through.
	if _, ok := store.Read(biasSlot(MonthOf(testNow))); !ok {
		t.Error("bias snapshot was not persisted under the current month's slot")
	}
	if data, ok := store.Read(slotLastSync); !ok || string(data) != "1786789800000" {
		t.Errorf("last sync slot = %q, %v", data, ok)
	}
}

func TestManager_SyncFailureKeepsPreviousState(t *testing.T) {
	store := NewMemStore()
	source := &fakeSource{set: []MonthlyBias{testBias("EURUSD", Bearish, 75)}}
	m := newTestManager(store, source)
	m.Sync(context.Background())

	before := m.Biases()
	beforeSync := m.LastSync()

	for name, fail := range map[string]*fakeSource{
		"provider error": {err: errors.New("network down")},
		"empty result":   {set: nil},
	} {
		m.fallback.Source = fail
		m.Sync(context.Background())

		if got := m.Biases(); !reflect.DeepEqual(got, before) {
			t.Errorf("%s: biases changed after a failed sync", name)
		}
		if got := m.LastSync(); !got.Equal(beforeSync) {
			t.Errorf("%s: last sync changed after a failed sync", name)
		}
		if m.Syncing() {
			t.Errorf("%s: syncing flag stuck after completion", name)
		}
	}
}

func TestManager_SyncInFlightGuard(t *testing.T) {
	source := &blockingSource{
		set:     []MonthlyBias{testBias("EURUSD", Bullish, 50)},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	m := newTestManager(NewMemStore(), source)

	done := make(chan struct{})
	go func() {
		m.Sync(context.Background())
		close(done)
	}()
	<-source.entered

	if !m.Syncing() {
		t.Fatal("syncing flag not set while a sync is in flight")
	}
	// a second call while in flight is a no-op: it returns without
	// invoking the source.
	m.Sync(context.Background())
	if got := source.calls.Load(); got != 1 {
		t.Errorf("source invoked %d times, want 1", got)
	}

	close(source.release)
	<-done
	if m.Syncing() {
		t.Error("syncing flag not cleared after completion")
	}
	if len(m.Biases()) != 1 {
		t.Error("in-flight sync result was lost")
	}
}

func TestManager_AddTradePrependsNewestFirst(t *testing.T) {
	m := newTestManager(NewMemStore(), nil)

	first := m.AddTrade(draft("EURUSD", Sell))
	second := m.AddTrade(draft("GBPUSD", Buy))

	trades := m.Trades()
	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}
	if trades[0].ID != second.ID || trades[1].ID != first.ID {
		t.Errorf("trades not newest first: got [%s %s]", trades[0].ID, trades[1].ID)
	}
}

func TestManager_AddTradeSnapshotIndependence(t *testing.T) {
	store := NewMemStore()
	source := &fakeSource{set: []MonthlyBias{testBias("EURUSD", Bearish, 75)}}
	m := newTestManager(store, source)
	m.Sync(context.Background())

	trade := m.AddTrade(draft("EURUSD", Sell))
	if trade.SnapshotBias.Bias != Bearish {
		t.Fatalf("snapshot bias = %s, want BEARISH", trade.SnapshotBias.Bias)
	}

	// the live bias flips; the frozen snapshot must not.
	m.fallback.Source = &fakeSource{set: []MonthlyBias{testBias("EURUSD", Bullish, 90)}}
	m.Sync(context.Background())

	got := m.Trades()[0]
	if got.SnapshotBias.Bias != Bearish || got.SnapshotBias.Confidence != 75 {
		t.Errorf("snapshot changed after sync: %s/%d", got.SnapshotBias.Bias, got.SnapshotBias.Confidence)
	}
	if got.Alignment != Aligned {
		t.Errorf("alignment = %s, want the value frozen at creation (ALIGNED)", got.Alignment)
	}
}

func TestManager_AddTradeAssetFallback(t *testing.T) {
	store := NewMemStore()
	source := &fakeSource{set: []MonthlyBias{testBias("EURUSD", Bullish, 80)}}
	m := newTestManager(store, source)
	m.Sync(context.Background())

	// no bias exists for USDJPY: the first bias in the set is used. This
	// pins long-standing behavior, see BiasFor.
	trade := m.AddTrade(draft("USDJPY", Buy))
	if trade.SnapshotBias.Asset != "EURUSD" {
		t.Errorf("fallback snapshot is for %s, want EURUSD (first in set)", trade.SnapshotBias.Asset)
	}
	if trade.Alignment != Aligned {
		t.Errorf("alignment = %s, want ALIGNED against the fallback bias", trade.Alignment)
	}
}

func TestManager_DeleteTrade(t *testing.T) {
	m := newTestManager(NewMemStore(), nil)
	kept := m.AddTrade(draft("EURUSD", Sell))
	doomed := m.AddTrade(draft("GBPUSD", Buy))

	m.DeleteTrade(doomed.ID)
	trades := m.Trades()
	if len(trades) != 1 || trades[0].ID != kept.ID {
		t.Fatalf("after delete got %v, want only %s", trades, kept.ID)
	}

	// deleting an unknown id is a no-op.
	before := m.Trades()
	m.DeleteTrade("no-such-id")
	if got := m.Trades(); !reflect.DeepEqual(got, before) {
		t.Errorf("delete of unknown id changed the history")
	}
}

func TestManager_RestartRoundTrip(t *testing.T) {
	store := NewMemStore()
	source := &fakeSource{set: []MonthlyBias{testBias("EURUSD", Bearish, 75)}}
	m1 := newTestManager(store, source)
	m1.Sync(context.Background())
	m1.AddTrade(draft("EURUSD", Sell))
	m1.AddTrade(draft("GBPUSD", Buy))

	m2 := newTestManager(store, nil)
	if !reflect.DeepEqual(m2.Trades(), m1.Trades()) {
		t.Errorf("restart lost or reordered trades:\n got %v\nwant %v", m2.Trades(), m1.Trades())
	}
	if !reflect.DeepEqual(m2.Biases(), m1.Biases()) {
		t.Errorf("restart lost the synced bias set")
	}
	if !m2.LastSync().Equal(m1.LastSync()) {
		t.Errorf("restart lost the last sync instant: %v != %v", m2.LastSync(), m1.LastSync())
	}
}

func TestManager_StalenessGuard(t *testing.T) {
	store := NewMemStore()
	lastMonth := MonthOf(testNow).Add(-1)
	snapshot, err := EncodeBiasSnapshot(lastMonth, []MonthlyBias{testBias("EURUSD", Bearish, 75)})
	if err != nil {
		t.Fatal(err)
	}

	// a snapshot under last month's slot is simply not read this month.
	if err := store.Write(biasSlot(lastMonth), snapshot); err != nil {
		t.Fatal(err)
	}
	m := newTestManager(store, nil)
	if got := m.Biases(); got[0].Bias != Neutral {
		t.Errorf("stale snapshot loaded as current, got %s", got[0].Bias)
	}

	// a snapshot under the current slot but written in another month is
	// discarded too.
	if err := store.Write(biasSlot(MonthOf(testNow)), snapshot); err != nil {
		t.Fatal(err)
	}
	m = newTestManager(store, nil)
	if got := m.Biases(); got[0].Bias != Neutral {
		t.Errorf("cross-month snapshot loaded as current, got %s", got[0].Bias)
	}
}

func TestManager_CorruptSlotsFallBackToDefaults(t *testing.T) {
	store := NewMemStore()
	store.Write(slotTrades, []byte("{not json"))
	store.Write(biasSlot(MonthOf(testNow)), []byte("]["))
	store.Write(slotLastSync, []byte("yesterday"))

	m := newTestManager(store, nil)
	if len(m.Trades()) != 0 {
		t.Error("corrupt trade slot did not fall back to an empty history")
	}
	if len(m.Biases()) != len(DefaultUniverse) {
		t.Error("corrupt bias slot did not fall back to the seed set")
	}
	if !m.LastSync().IsZero() {
		t.Error("corrupt last sync slot did not fall back to absent")
	}
}

func TestManager_AccessorsReturnCopies(t *testing.T) {
	m := newTestManager(NewMemStore(), nil)
	m.AddTrade(draft("EURUSD", Sell))

	m.Trades()[0].ID = "mutated"
	if m.Trades()[0].ID == "mutated" {
		t.Error("Trades() exposes internal state")
	}
	m.Biases()[0].ID = "mutated"
	if m.Biases()[0].ID == "mutated" {
		t.Error("Biases() exposes internal state")
	}
}

func TestManager_EndToEndAlignment(t *testing.T) {
	store := NewMemStore()
	source := &fakeSource{set: []MonthlyBias{testBias("EURUSD", Bearish, 75)}}
	m := newTestManager(store, source)
	m.Sync(context.Background())

	sell := m.AddTrade(draft("EURUSD", Sell))
	if sell.Alignment != Aligned {
		t.Errorf("SELL under a bearish bias = %s, want ALIGNED", sell.Alignment)
	}
	buy := m.AddTrade(draft("EURUSD", Buy))
	if buy.Alignment != Against {
		t.Errorf("BUY under a bearish bias = %s, want AGAINST", buy.Alignment)
	}
}

func TestManager_SyncUpdatesInstantMonotonically(t *testing.T) {
	store := NewMemStore()
	source := &fakeSource{set: []MonthlyBias{testBias("EURUSD", Bullish, 50)}}

	now := testNow
	m := NewManager(store, source,
		WithClock(func() time.Time { return now }),
		WithIDFunc(sequenceIDs()),
	)

	m.Sync(context.Background())
	first := m.LastSync()
	now = now.Add(time.Hour)
	m.Sync(context.Background())
	if got := m.LastSync(); !got.After(first) {
		t.Errorf("last sync did not advance: %v then %v", first, got)
	}
}
