package macrojournal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func factoryServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Client-Platform"); got != "MacroJournal-Institutional" {
			t.Errorf("X-Client-Platform = %q", got)
		}
		w.WriteHeader(status)
		if body != nil {
			json.NewEncoder(w).Encode(body)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFactorySourceBareArray(t *testing.T) {
	want := []MonthlyBias{testBias("EURUSD", Bearish, 75)}
	srv := factoryServer(t, http.StatusOK, want)

	s := &FactorySource{URL: srv.URL}
	got, err := s.FetchLatestBiases(context.Background(), DefaultUniverse, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Asset != "EURUSD" || got[0].Bias != Bearish {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFactorySourceDataEnvelope(t *testing.T) {
	srv := factoryServer(t, http.StatusOK, map[string]any{
		"data": []MonthlyBias{testBias("XAUUSD", Bullish, 60)},
	})

	s := &FactorySource{URL: srv.URL}
	got, err := s.FetchLatestBiases(context.Background(), DefaultUniverse, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Asset != "XAUUSD" {
		t.Errorf("got %v, want the enveloped set", got)
	}
}

func TestFactorySourceRejectsInvalidPayload(t *testing.T) {
	bad := testBias("EURUSD", Bearish, 75)
	bad.Confidence = 180
	srv := factoryServer(t, http.StatusOK, []MonthlyBias{bad})

	s := &FactorySource{URL: srv.URL}
	if _, err := s.FetchLatestBiases(context.Background(), DefaultUniverse, testNow); err == nil {
		t.Fatal("out-of-range confidence accepted")
	}
}

func TestFactorySourceFallsBackOnError(t *testing.T) {
	srv := factoryServer(t, http.StatusBadGateway, nil)
	fallback := &fakeSource{set: []MonthlyBias{testBias("GBPUSD", Bullish, 55)}}

	s := &FactorySource{URL: srv.URL, Fallback: fallback}
	got, err := s.FetchLatestBiases(context.Background(), DefaultUniverse, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if fallback.calls.Load() != 1 {
		t.Errorf("fallback invoked %d times, want 1", fallback.calls.Load())
	}
	if len(got) != 1 || got[0].Asset != "GBPUSD" {
		t.Errorf("got %v, want the fallback's set", got)
	}
}

func TestFactorySourceNoFallback(t *testing.T) {
	srv := factoryServer(t, http.StatusBadGateway, nil)

	s := &FactorySource{URL: srv.URL}
	if _, err := s.FetchLatestBiases(context.Background(), DefaultUniverse, testNow); err == nil {
		t.Fatal("feed failure with no fallback reported success")
	}
}
