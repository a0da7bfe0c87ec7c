package macrojournal

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMonthString(t *testing.T) {
	if got := NewMonth(2026, time.August).String(); got != "2026-08" {
		t.Errorf("String() = %q, want %q", got, "2026-08")
	}
}

func TestParseMonth(t *testing.T) {
	testCases := []struct {
		in      string
		want    Month
		wantErr bool
	}{
		{"2026-08", NewMonth(2026, time.August), false},
		{"2024-01", NewMonth(2024, time.January), false},
		{"2026-13", Month{}, true},
		{"2026-8", Month{}, true},
		{"August 2026", Month{}, true},
	}
	for _, tc := range testCases {
		got, err := ParseMonth(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMonth(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMonth(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMonthAdd(t *testing.T) {
	testCases := []struct {
		start Month
		add   int
		want  Month
	}{
		{NewMonth(2026, time.August), -1, NewMonth(2026, time.July)},
		{NewMonth(2026, time.January), -1, NewMonth(2025, time.December)},
		{NewMonth(2026, time.December), 1, NewMonth(2027, time.January)},
		{NewMonth(2026, time.March), 0, NewMonth(2026, time.March)},
	}
	for _, tc := range testCases {
		if got := tc.start.Add(tc.add); got != tc.want {
			t.Errorf("%v.Add(%d) = %v, want %v", tc.start, tc.add, got, tc.want)
		}
	}
}

func TestMonthDays(t *testing.T) {
	testCases := []struct {
		m    Month
		want int
	}{
		{NewMonth(2026, time.February), 28},
		{NewMonth(2024, time.February), 29},
		{NewMonth(2026, time.August), 31},
		{NewMonth(2026, time.April), 30},
	}
	for _, tc := range testCases {
		if got := tc.m.Days(); got != tc.want {
			t.Errorf("%v.Days() = %d, want %d", tc.m, got, tc.want)
		}
	}
}

func TestMonthValidity(t *testing.T) {
	want := "August 1 - August 31, 2026"
	if got := NewMonth(2026, time.August).Validity(); got != want {
		t.Errorf("Validity() = %q, want %q", got, want)
	}
}

func TestMonthJSON(t *testing.T) {
	m := NewMonth(2026, time.August)
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2026-08"` {
		t.Errorf("marshal = %s, want %q", data, `"2026-08"`)
	}
	var back Month
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != m {
		t.Errorf("round trip = %v, want %v", back, m)
	}
}

func TestMonthOf(t *testing.T) {
	if got := MonthOf(testNow); got != NewMonth(2026, time.August) {
		t.Errorf("MonthOf(%v) = %v", testNow, got)
	}
}
