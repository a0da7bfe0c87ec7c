package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/macrojournal"
	"google.golang.org/genai"
)

// ExplainBias generates a plain-English explanation of why the bias is what
// it is. Results are cached for the session, keyed by bias id.
func (s *Service) ExplainBias(ctx context.Context, bias macrojournal.MonthlyBias) (string, error) {
	key := "explain-" + bias.ID
	if text, ok := s.cache.Get(key); ok {
		return text, nil
	}

	drivers := make([]string, 0, len(bias.Drivers))
	for _, d := range bias.Drivers {
		drivers = append(drivers, fmt.Sprintf("%s: %s", d.Title, d.Description))
	}
	prompt := fmt.Sprintf(`Act as a senior global macro strategist.
Analyze the following monthly fundamental bias for %s:
Bias: %s (%d%% confidence)
Drivers: %s
Central Bank: %s
Inflation: %s

Provide a concise, professional summary explaining the directional context
for a serious trader. DO NOT predict price targets. DO NOT give entry/exit
signals.`,
		bias.Asset, bias.Bias, bias.Confidence, strings.Join(drivers, ", "),
		bias.CentralBankStance, bias.InflationTrend)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("could not generate macro context for %s: %w", bias.Asset, err)
	}
	s.cache.Put(key, text)
	return text, nil
}

// TradeFeedback generates educational feedback on a trade relative to the
// macro bias it was taken under. Results are cached for the session, keyed
// by trade id.
func (s *Service) TradeFeedback(ctx context.Context, trade macrojournal.Trade) (string, error) {
	key := "feedback-" + trade.ID
	if text, ok := s.cache.Get(key); ok {
		return text, nil
	}

	prompt := fmt.Sprintf(`Act as a professional macro trading coach.
A trader took the following trade:
Asset: %s
Direction: %s
Alignment with Monthly Bias: %s
Macro Bias at Time of Trade: %s
Result: %gR

Provide 3 brief educational bullets on why this trade was (or wasn't)
fundamentally sound based on the bias.`,
		trade.Asset, trade.Direction, trade.Alignment, trade.SnapshotBias.Bias, trade.ResultR)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("could not generate feedback for trade %s: %w", trade.ID, err)
	}
	s.cache.Put(key, text)
	return text, nil
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model returned an empty response")
	}
	return text, nil
}
