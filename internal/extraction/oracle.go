// Package extraction turns raw session transcripts into structured category
// payloads using an LLM provider. Extracted entries carry names as heard in
// the transcript; resolving them to members is the reconciler's job.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Oracle extracts the six category payloads from a transcript. Each method
// issues one completion; callers decide whether to run them concurrently.
type Oracle interface {
	ExtractAttendance(ctx context.Context, transcript string, roster []string) (*AttendanceSheet, error)
	ExtractGoals(ctx context.Context, transcript string) (*GoalSheet, error)
	ExtractChallenges(ctx context.Context, transcript string) (*ChallengeSheet, error)
	ExtractMarketing(ctx context.Context, transcript string) (*MarketingSheet, error)
	ExtractStucks(ctx context.Context, transcript string) (*StuckSheet, error)
	ExtractSentiment(ctx context.Context, transcript string) (*SentimentSheet, error)
	Available() bool
}

// llmOracle implements Oracle on top of a chat completion client.
type llmOracle struct {
	client completer
}

func (o *llmOracle) ExtractAttendance(ctx context.Context, transcript string, roster []string) (*AttendanceSheet, error) {
	user := fmt.Sprintf("Here is the roster:\n%s\n\nHere is the transcript:\n%s",
		strings.Join(roster, "\n"), transcript)
	var sheet AttendanceSheet
	if err := o.extract(ctx, CategoryAttendance, attendancePrompt, user, &sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (o *llmOracle) ExtractGoals(ctx context.Context, transcript string) (*GoalSheet, error) {
	var sheet GoalSheet
	if err := o.extract(ctx, CategoryGoals, goalsPrompt, transcriptMessage(transcript), &sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (o *llmOracle) ExtractChallenges(ctx context.Context, transcript string) (*ChallengeSheet, error) {
	var sheet ChallengeSheet
	if err := o.extract(ctx, CategoryChallenges, challengesPrompt, transcriptMessage(transcript), &sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (o *llmOracle) ExtractMarketing(ctx context.Context, transcript string) (*MarketingSheet, error) {
	var sheet MarketingSheet
	if err := o.extract(ctx, CategoryMarketing, marketingPrompt, transcriptMessage(transcript), &sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (o *llmOracle) ExtractStucks(ctx context.Context, transcript string) (*StuckSheet, error) {
	var sheet StuckSheet
	if err := o.extract(ctx, CategoryStucks, stucksPrompt, transcriptMessage(transcript), &sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (o *llmOracle) ExtractSentiment(ctx context.Context, transcript string) (*SentimentSheet, error) {
	var sheet SentimentSheet
	if err := o.extract(ctx, CategorySentiment, sentimentPrompt, transcriptMessage(transcript), &sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (o *llmOracle) Available() bool {
	return o.client != nil
}

func (o *llmOracle) extract(ctx context.Context, category, system, user string, v any) error {
	content, err := o.client.complete(ctx, system, user)
	if err != nil {
		return fmt.Errorf("%s extraction: %w", category, err)
	}
	if err := decodePayload(content, v); err != nil {
		return fmt.Errorf("%s extraction: %w", category, err)
	}
	return nil
}

func transcriptMessage(transcript string) string {
	return "Here is the transcript:\n" + transcript
}

// decodePayload strips markdown code fences that models sometimes wrap JSON
// in, then unmarshals into v.
func decodePayload(content string, v any) error {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
