package macrojournal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the side of a trade.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// ParseDirection parses a direction string, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown direction %q, expected buy or sell", s)
	}
}

// Timeframe is the holding-period bucket of a trade. The values are the
// display strings of the journal.
type Timeframe string

const (
	Scalp    Timeframe = "Scalp"
	Day      Timeframe = "Day"
	Swing    Timeframe = "Swing"
	Position Timeframe = "Position"
)

// ParseTimeframe parses a timeframe string, case-insensitively.
func ParseTimeframe(s string) (Timeframe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalp":
		return Scalp, nil
	case "day":
		return Day, nil
	case "swing":
		return Swing, nil
	case "position":
		return Position, nil
	default:
		return "", fmt.Errorf("unknown timeframe %q, expected scalp, day, swing or position", s)
	}
}

// Alignment records whether a trade's direction matched the prevailing bias
// at the time it was opened. It is computed once at creation time and frozen
// inside the trade, never recomputed when bias data later changes.
type Alignment string

const (
	Aligned          Alignment = "ALIGNED"
	Against          Alignment = "AGAINST"
	NeutralAlignment Alignment = "NEUTRAL"
)

// AlignmentOf classifies a trade direction against a bias type.
//
// A neutral bias yields a neutral alignment regardless of direction; a
// bullish bias aligns with buys and a bearish bias with sells.
func AlignmentOf(d Direction, b BiasType) Alignment {
	switch b {
	case Bullish:
		if d == Buy {
			return Aligned
		}
		return Against
	case Bearish:
		if d == Sell {
			return Aligned
		}
		return Against
	default:
		return NeutralAlignment
	}
}

// Trade is one logged position. Trades are immutable once created, except
// for permanent deletion from the history.
type Trade struct {
	ID           string          `json:"id"`
	Timestamp    int64           `json:"timestamp"` // creation instant, epoch milliseconds
	Asset        Asset           `json:"asset"`
	Direction    Direction       `json:"direction"`
	Timeframe    Timeframe       `json:"timeframe"`
	EntryPrice   decimal.Decimal `json:"entryPrice"`
	ExitPrice    decimal.Decimal `json:"exitPrice"`
	ResultR      float64         `json:"resultR"` // risk-adjusted result, as entered by the trader
	Notes        string          `json:"notes"`
	SnapshotBias MonthlyBias     `json:"snapshotBias"`
	Alignment    Alignment       `json:"alignment"`
}

// Time returns the trade's creation instant.
func (t Trade) Time() time.Time { return time.UnixMilli(t.Timestamp).UTC() }

// Won reports whether the trade closed with a positive R result.
func (t Trade) Won() bool { return t.ResultR > 0 }

// TradeDraft carries everything a Trade needs except what the Manager fills
// in at creation time (id, timestamp, bias snapshot and alignment).
type TradeDraft struct {
	Asset      Asset
	Direction  Direction
	Timeframe  Timeframe
	EntryPrice decimal.Decimal
	ExitPrice  decimal.Decimal
	ResultR    float64
	Notes      string
}
