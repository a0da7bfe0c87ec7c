package macrojournal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file contains the code to persist the journal state in a way that is
// still human-readable and git-friendly.
//
// The trade history is a JSONL stream, one trade per line, newest first
// (the in-memory order is written as-is). Bias snapshots are a single JSON
// object wrapping the bias set with the calendar month it was written in.

// EncodeTrades encodes the trade history as JSONL to w, preserving order.
func EncodeTrades(w io.Writer, trades []Trade) error {
	enc := json.NewEncoder(w)
	for _, t := range trades {
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("could not encode trade %q: %w", t.ID, err)
		}
	}
	return nil
}

// DecodeTrades decodes a JSONL stream of trades from r, preserving order.
func DecodeTrades(r io.Reader) ([]Trade, error) {
	trades := make([]Trade, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var t Trade
		if err := json.Unmarshal(line, &t); err != nil {
			return nil, fmt.Errorf("could not decode trade line %q: %w", string(line), err)
		}
		trades = append(trades, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read trade history: %w", err)
	}
	return trades, nil
}

// biasSnapshot is the persisted form of the current bias set. Month is the
// calendar month the snapshot was written in, which backs the staleness
// check; the bias records carry their own target month independently.
type biasSnapshot struct {
	Month  Month         `json:"month"`
	Biases []MonthlyBias `json:"biases"`
}

// EncodeBiasSnapshot encodes the bias set written during month m.
func EncodeBiasSnapshot(m Month, biases []MonthlyBias) ([]byte, error) {
	data, err := json.MarshalIndent(biasSnapshot{Month: m, Biases: biases}, "", " ")
	if err != nil {
		return nil, fmt.Errorf("could not encode bias snapshot for %s: %w", m, err)
	}
	return data, nil
}

// DecodeBiasSnapshot decodes a persisted bias snapshot, returning the
// calendar month it was written in and the bias set.
func DecodeBiasSnapshot(data []byte) (Month, []MonthlyBias, error) {
	var snap biasSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Month{}, nil, fmt.Errorf("could not decode bias snapshot: %w", err)
	}
	return snap.Month, snap.Biases, nil
}
