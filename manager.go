package macrojournal

import (
	"bytes"
	"context"
	"log"
	"slices"
	"strconv"
	"sync"
	"time"
)

// syncTimeout bounds one sync attempt end to end. The sources enforce their
// own, shorter timeouts; this is the backstop that guarantees the syncing
// flag always clears.
const syncTimeout = 30 * time.Second

// Manager owns the canonical journal state: the trade history (newest
// first), the current bias set (at most one bias per asset), the in-flight
// sync flag and the last successful sync instant.
//
// Every mutation writes through to the Store immediately. Sync, AddTrade
// and DeleteTrade never fail across this boundary: all failure is absorbed
// internally and reflected only through state.
type Manager struct {
	store    Store
	fallback Fallback
	clock    func() time.Time
	newID    func() string
	universe []Asset

	mu       sync.Mutex
	trades   []Trade
	biases   []MonthlyBias
	syncing  bool
	lastSync time.Time // zero when never synced
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock injects the time source, for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithIDFunc injects the trade id generator, for deterministic tests.
func WithIDFunc(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// WithUniverse sets the asset universe the manager syncs biases for.
func WithUniverse(universe []Asset) Option {
	return func(m *Manager) {
		if len(universe) > 0 {
			m.universe = universe
		}
	}
}

// NewManager loads the journal state from the store and returns a ready
// manager.
//
// The trade history defaults to empty when its slot is absent or corrupt.
// The bias set is loaded from the current month's snapshot slot; an absent
// slot, a corrupt slot, or a snapshot written in a different calendar month
// all fall back to the seed set, so stale cross-month data never survives.
func NewManager(store Store, source BiasSource, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		clock:    time.Now,
		newID:    NewID,
		universe: DefaultUniverse,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.fallback = Fallback{Source: source, Universe: m.universe, Now: m.clock}

	m.trades = m.loadTrades()
	m.biases = m.loadBiases()
	m.lastSync = m.loadLastSync()
	return m
}

func (m *Manager) loadTrades() []Trade {
	data, ok := m.store.Read(slotTrades)
	if !ok {
		return []Trade{}
	}
	trades, err := DecodeTrades(bytes.NewReader(data))
	if err != nil {
		log.Printf("ignoring unreadable trade history: %v", err)
		return []Trade{}
	}
	return trades
}

func (m *Manager) loadBiases() []MonthlyBias {
	month := MonthOf(m.clock())
	data, ok := m.store.Read(biasSlot(month))
	if !ok {
		return SeedBiases(m.universe, month)
	}
	written, biases, err := DecodeBiasSnapshot(data)
	if err != nil {
		log.Printf("ignoring unreadable bias snapshot: %v", err)
		return SeedBiases(m.universe, month)
	}
	if written != month || len(biases) == 0 {
		return SeedBiases(m.universe, month)
	}
	return biases
}

func (m *Manager) loadLastSync() time.Time {
	data, ok := m.store.Read(slotLastSync)
	if !ok {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		log.Printf("ignoring unreadable last sync instant: %v", err)
		return time.Time{}
	}
	return time.UnixMilli(millis).UTC()
}

// Sync refreshes the current bias set from the bias source.
//
// At most one sync is in flight at any time: a call made while another sync
// runs is a no-op, not queued. On live data the bias set is replaced
// wholesale, persisted under the current month's slot, and the last sync
// instant is stamped. On failure or empty result the previous state stands.
// The in-flight flag clears unconditionally on completion.
func (m *Manager) Sync(ctx context.Context) {
	m.mu.Lock()
	if m.syncing {
		m.mu.Unlock()
		return
	}
	m.syncing = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.syncing = false
		m.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	// The fetch runs outside the lock: AddTrade and DeleteTrade stay
	// serialized against the state mutation below, not against the network.
	set, err := m.fallback.Latest(ctx)
	if err != nil {
		// The adapter already substituted the seed set, but a failed sync
		// must not clobber a previously cached live set.
		log.Printf("sync: keeping previous biases: %v", err)
		return
	}

	now := m.clock()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.biases = set
	m.persistBiases(now)
	m.lastSync = now
	if err := m.store.Write(slotLastSync, []byte(strconv.FormatInt(now.UnixMilli(), 10))); err != nil {
		log.Printf("could not persist last sync instant: %v", err)
	}
}

// Syncing reports whether a sync is currently in flight.
func (m *Manager) Syncing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncing
}

// LastSync returns the instant of the last successful sync, or a zero time
// when no sync ever succeeded.
func (m *Manager) LastSync() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSync
}

// AddTrade records a new trade from a draft.
//
// The trade is stamped with a fresh id and timestamp, a deep copy of the
// bias that is current for its asset, and the alignment of its direction
// against that bias. It is prepended to the history (newest first) and the
// history is written through.
//
// When no bias exists for the exact asset, the first bias in the current
// set is used instead. This mirrors long-standing journal behavior; see
// BiasFor.
func (m *Manager) AddTrade(draft TradeDraft) Trade {
	m.mu.Lock()
	defer m.mu.Unlock()

	bias := m.biasFor(draft.Asset)
	trade := Trade{
		ID:           m.newID(),
		Timestamp:    m.clock().UnixMilli(),
		Asset:        draft.Asset,
		Direction:    draft.Direction,
		Timeframe:    draft.Timeframe,
		EntryPrice:   draft.EntryPrice,
		ExitPrice:    draft.ExitPrice,
		ResultR:      draft.ResultR,
		Notes:        draft.Notes,
		SnapshotBias: bias.Clone(),
		Alignment:    AlignmentOf(draft.Direction, bias.Bias),
	}
	m.trades = append([]Trade{trade}, m.trades...)
	m.persistTrades()
	return trade
}

// DeleteTrade permanently removes the trade with the given id from the
// history. It is a no-op when the id is unknown.
func (m *Manager) DeleteTrade(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := slices.DeleteFunc(slices.Clone(m.trades), func(t Trade) bool { return t.ID == id })
	if len(kept) == len(m.trades) {
		return
	}
	m.trades = kept
	m.persistTrades()
}

// Trades returns a copy of the trade history, newest first.
func (m *Manager) Trades() []Trade {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.trades)
}

// Biases returns a copy of the current bias set.
func (m *Manager) Biases() []MonthlyBias {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.biases)
}

// BiasFor returns the current bias for an asset.
//
// When the set holds no bias for that exact asset it falls back to the
// first bias in the set. That fallback is a deliberate, pinned policy: the
// journal always tags a trade with some prevailing stance rather than
// refusing the entry.
func (m *Manager) BiasFor(asset Asset) MonthlyBias {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.biasFor(asset)
}

func (m *Manager) biasFor(asset Asset) MonthlyBias {
	for _, b := range m.biases {
		if b.Asset == asset {
			return b
		}
	}
	if len(m.biases) > 0 {
		return m.biases[0]
	}
	// unreachable as long as initialization and sync keep the set
	// non-empty, but AddTrade must not panic.
	return seedBias(asset, MonthOf(m.clock()))
}

// Summary computes the analytics summary over the whole trade history.
func (m *Manager) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return NewSummary(m.trades)
}

// persistTrades writes the trade history through to the store. Callers hold mu.
func (m *Manager) persistTrades() {
	var buf bytes.Buffer
	if err := EncodeTrades(&buf, m.trades); err != nil {
		log.Printf("could not encode trade history: %v", err)
		return
	}
	if err := m.store.Write(slotTrades, buf.Bytes()); err != nil {
		log.Printf("could not persist trade history: %v", err)
	}
}

// persistBiases writes the bias set under the snapshot slot of the calendar
// month containing now. Callers hold mu.
func (m *Manager) persistBiases(now time.Time) {
	month := MonthOf(now)
	data, err := EncodeBiasSnapshot(month, m.biases)
	if err != nil {
		log.Printf("could not encode bias snapshot: %v", err)
		return
	}
	if err := m.store.Write(biasSlot(month), data); err != nil {
		log.Printf("could not persist bias snapshot: %v", err)
	}
}
