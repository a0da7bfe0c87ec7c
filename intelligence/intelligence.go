// Package intelligence synthesizes monthly macro biases and trade
// commentary with a generative model grounded in web search.
//
// It implements the macrojournal.BiasSource contract: FetchLatestBiases
// returns live data or an error, and the journal's fallback policy decides
// what to do with a failure. Nothing in this package ever substitutes
// placeholder data silently.
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/etnz/macrojournal"
	"google.golang.org/genai"
)

// Service generates bias sets and narratives through a genai client.
type Service struct {
	client *genai.Client
	model  string
	cache  *Cache
}

// New returns a Service using the given client and model. A nil cache gets
// a fresh private one; an empty model falls back to the journal default.
func New(client *genai.Client, model string, cache *Cache) *Service {
	if model == "" {
		model = macrojournal.DefaultModel
	}
	if cache == nil {
		cache = NewCache()
	}
	return &Service{client: client, model: model, cache: cache}
}

// biasSchema constrains the synthesis response to a JSON array of monthly
// bias records.
var biasSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"asset":          {Type: genai.TypeString},
			"bias":           {Type: genai.TypeString, Enum: []string{"BULLISH", "BEARISH", "NEUTRAL"}},
			"confidence":     {Type: genai.TypeNumber},
			"validityPeriod": {Type: genai.TypeString},
			"drivers": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
					},
					Required: []string{"title", "description"},
				},
			},
			"invalidationConditions": {Type: genai.TypeString},
			"centralBankStance":      {Type: genai.TypeString},
			"inflationTrend":         {Type: genai.TypeString},
			"employmentTrend":        {Type: genai.TypeString},
			"growthOutlook":          {Type: genai.TypeString},
			"riskSentiment":          {Type: genai.TypeString},
		},
		Required: []string{"asset", "bias", "confidence", "drivers",
			"centralBankStance", "inflationTrend", "growthOutlook", "riskSentiment"},
	},
}

// FetchLatestBiases synthesizes the bias set for the month preceding ref,
// grounded in a live web search. It implements macrojournal.BiasSource.
//
// The completed month is the latest one with a full picture of central bank
// decisions and data releases, which is why synthesis targets it rather
// than the running month.
func (s *Service) FetchLatestBiases(ctx context.Context, assets []macrojournal.Asset, ref time.Time) ([]macrojournal.MonthlyBias, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		genai.Text(synthesisPrompt(assets, ref)),
		&genai.GenerateContentConfig{
			Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
			ResponseMIMEType: "application/json",
			ResponseSchema:   biasSchema,
		})
	if err != nil {
		return nil, fmt.Errorf("bias synthesis failed: %w", err)
	}
	target := macrojournal.MonthOf(ref).Add(-1)
	return decodeSynthesis([]byte(resp.Text()), groundingSources(resp), target, ref)
}

// synthesisPrompt asks for the last completed month's bias per asset.
func synthesisPrompt(assets []macrojournal.Asset, ref time.Time) string {
	target := macrojournal.MonthOf(ref).Add(-1)
	names := make([]string, 0, len(assets))
	for _, a := range assets {
		names = append(names, string(a))
	}
	return fmt.Sprintf(`Analyze global macroeconomic conditions as of %s.
Focus on the %s %d monthly fundamental bias and the latest news.
For each asset state the directional bias, its confidence, the macro drivers
behind it, and the central bank, inflation, employment, growth and risk
context. Return a JSON array covering: %s.`,
		ref.Format("2006-01-02"), target.Month(), target.Year(), strings.Join(names, ", "))
}

// synthBias is the wire shape of one synthesized bias record.
type synthBias struct {
	Asset                  macrojournal.Asset         `json:"asset"`
	Bias                   macrojournal.BiasType      `json:"bias"`
	Confidence             float64                    `json:"confidence"`
	ValidityPeriod         string                     `json:"validityPeriod"`
	Drivers                []macrojournal.MacroDriver `json:"drivers"`
	InvalidationConditions string                     `json:"invalidationConditions"`
	CentralBankStance      string                     `json:"centralBankStance"`
	InflationTrend         string                     `json:"inflationTrend"`
	EmploymentTrend        string                     `json:"employmentTrend"`
	GrowthOutlook          string                     `json:"growthOutlook"`
	RiskSentiment          string                     `json:"riskSentiment"`
}

// decodeSynthesis turns the raw model response into validated bias records
// for the target month, attaching the grounding sources to each.
func decodeSynthesis(raw []byte, sources []macrojournal.GroundingSource, target macrojournal.Month, ref time.Time) ([]macrojournal.MonthlyBias, error) {
	var parsed []synthBias
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("malformed synthesis response: %w", err)
	}
	biases := make([]macrojournal.MonthlyBias, 0, len(parsed))
	for _, p := range parsed {
		validity := p.ValidityPeriod
		if validity == "" {
			validity = fmt.Sprintf("%s %d", target.Month(), target.Year())
		}
		b := macrojournal.MonthlyBias{
			ID:                     fmt.Sprintf("auto-%s-%s-%d", p.Asset, target, ref.Hour()),
			Asset:                  p.Asset,
			Month:                  target,
			Bias:                   p.Bias,
			Confidence:             int(math.Round(p.Confidence)),
			ValidityPeriod:         validity,
			Drivers:                p.Drivers,
			InvalidationConditions: p.InvalidationConditions,
			CentralBankStance:      p.CentralBankStance,
			InflationTrend:         p.InflationTrend,
			EmploymentTrend:        p.EmploymentTrend,
			GrowthOutlook:          p.GrowthOutlook,
			RiskSentiment:          p.RiskSentiment,
			Sources:                sources,
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("malformed synthesis response: %w", err)
		}
		biases = append(biases, b)
	}
	return biases, nil
}

// groundingSources extracts the web provenance pointers the model grounded
// its synthesis on.
func groundingSources(resp *genai.GenerateContentResponse) []macrojournal.GroundingSource {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []macrojournal.GroundingSource
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = "Intelligence Source"
		}
		sources = append(sources, macrojournal.GroundingSource{Title: title, URI: chunk.Web.URI})
	}
	return sources
}
