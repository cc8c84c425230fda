package extraction

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by the disabled oracle's methods.
var ErrNotConfigured = errors.New("extraction provider not configured")

// NewOracle creates an oracle based on configuration. Provider "none" (or
// empty) yields a disabled oracle whose methods fail with ErrNotConfigured,
// so the rest of the service runs without LLM access.
func NewOracle(cfg Config) (Oracle, error) {
	switch cfg.Provider {
	case "", "none":
		return &disabledOracle{}, nil
	case "anthropic":
		client, err := newAnthropicClient(cfg)
		if err != nil {
			return nil, err
		}
		return &llmOracle{client: client}, nil
	case "openai":
		client, err := newOpenAIClient(cfg)
		if err != nil {
			return nil, err
		}
		return &llmOracle{client: client}, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// disabledOracle rejects every extraction.
type disabledOracle struct{}

func (disabledOracle) ExtractAttendance(context.Context, string, []string) (*AttendanceSheet, error) {
	return nil, ErrNotConfigured
}

func (disabledOracle) ExtractGoals(context.Context, string) (*GoalSheet, error) {
	return nil, ErrNotConfigured
}

func (disabledOracle) ExtractChallenges(context.Context, string) (*ChallengeSheet, error) {
	return nil, ErrNotConfigured
}

func (disabledOracle) ExtractMarketing(context.Context, string) (*MarketingSheet, error) {
	return nil, ErrNotConfigured
}

func (disabledOracle) ExtractStucks(context.Context, string) (*StuckSheet, error) {
	return nil, ErrNotConfigured
}

func (disabledOracle) ExtractSentiment(context.Context, string) (*SentimentSheet, error) {
	return nil, ErrNotConfigured
}

func (disabledOracle) Available() bool { return false }

var (
	_ Oracle = (*llmOracle)(nil)
	_ Oracle = (*disabledOracle)(nil)
)
