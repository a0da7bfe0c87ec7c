package macrojournal

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultFactoryURL is the institutional feed endpoint queried before any
// synthesis is attempted.
const DefaultFactoryURL = "https://api.factory.com/v1/macro/latest"

// factoryTimeout keeps a dead endpoint from hanging a sync; the synthesis
// fallback is the expected path when the feed is unreachable.
const factoryTimeout = 5 * time.Second

// FactorySource fetches the latest bias set from the factory.com feed,
// falling back to a synthesizing BiasSource (typically the intelligence
// service) when the feed is unreachable or unusable.
type FactorySource struct {
	URL      string       // defaults to DefaultFactoryURL
	Fallback BiasSource   // consulted when the feed fails; nil means no fallback
	Client   *http.Client // defaults to a client with a short timeout
}

func (s *FactorySource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: factoryTimeout}
}

func (s *FactorySource) url() string {
	if s.URL != "" {
		return s.URL
	}
	return DefaultFactoryURL
}

// FetchLatestBiases implements BiasSource.
func (s *FactorySource) FetchLatestBiases(ctx context.Context, assets []Asset, ref time.Time) ([]MonthlyBias, error) {
	set, err := s.fetch(ctx)
	if err == nil {
		return set, nil
	}
	if s.Fallback == nil {
		return nil, err
	}
	log.Printf("factory feed unavailable (%v), falling back to synthesis", err)
	return s.Fallback.FetchLatestBiases(ctx, assets, ref)
}

func (s *FactorySource) fetch(ctx context.Context) ([]MonthlyBias, error) {
	header := http.Header{
		"Accept":            []string{"application/json"},
		"X-Client-Platform": []string{"MacroJournal-Institutional"},
	}
	var jobj any
	if err := jwget(ctx, s.client(), s.url(), header, &jobj); err != nil {
		return nil, fmt.Errorf("error retrieving %q: %w", s.url(), err)
	}
	// The feed is supposed to answer with a bare array, but some gateways
	// wrap it in a {"data": [...]} envelope. Accept both.
	payload := jobj
	if _, isList := jobj.([]any); !isList {
		jval, err := jsonpath.Get("$.data", jobj)
		if err != nil {
			return nil, fmt.Errorf("unexpected factory response shape: %w", err)
		}
		payload = jval
	}
	// Round-trip through json to decode the loosely-typed payload into biases.
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var set []MonthlyBias
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("malformed factory response: %w", err)
	}
	for _, b := range set {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("malformed factory response: %w", err)
		}
	}
	return set, nil
}
