package extraction

import "time"

// Category names used in logs, reports, and review payloads.
const (
	CategoryAttendance = "attendance"
	CategoryGoals      = "goals"
	CategoryChallenges = "challenges"
	CategoryMarketing  = "marketing"
	CategoryStucks     = "stucks"
	CategorySentiment  = "sentiment"
)

// Config holds the oracle provider settings.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// AttendanceEntry is one speaker's presence as heard in the transcript. Name
// is whatever the oracle transcribed, not yet resolved to a member.
type AttendanceEntry struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// AttendanceSheet is the attendance category payload.
type AttendanceSheet struct {
	Entries []AttendanceEntry `json:"attendance"`
	Date    string            `json:"date,omitempty"`
}

// GoalEntry is one participant's accountability commitment.
type GoalEntry struct {
	Name    string `json:"name"`
	Goal    string `json:"quantifiable_goal"`
	IsVague bool   `json:"is_vague"`
}

// GoalSheet is the goals category payload.
type GoalSheet struct {
	Goals []GoalEntry `json:"goals"`
}

// StrategyEntry is a strategy or tip offered for a challenge. SuggestedBy is
// the suggester's transcribed name, empty when nobody specific offered it.
type StrategyEntry struct {
	SuggestedBy string `json:"suggested_by,omitempty"`
	Summary     string `json:"summary"`
	Tag         string `json:"tag,omitempty"`
}

// ChallengeEntry is one challenge with the strategies shared in response.
type ChallengeEntry struct {
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Strategies  []StrategyEntry `json:"strategies,omitempty"`
}

// MemberChallenges groups a participant's challenges under their name.
type MemberChallenges struct {
	Name       string           `json:"name"`
	Challenges []ChallengeEntry `json:"challenges"`
}

// ChallengeSheet is the challenges category payload.
type ChallengeSheet struct {
	Members []MemberChallenges `json:"challenges"`
}

// OutcomeEntry is the concrete outcome of a marketing activity.
type OutcomeEntry struct {
	Meetings  int    `json:"no_of_meetings"`
	Proposals int    `json:"no_of_proposals"`
	Clients   int    `json:"no_of_clients"`
	Notes     string `json:"notes,omitempty"`
}

// MarketingEntry is one marketing activity a participant reported.
type MarketingEntry struct {
	Stage        string        `json:"stage"`
	Activity     string        `json:"activity"`
	Quantity     int           `json:"quantity"`
	IsWin        bool          `json:"is_win"`
	ContractType *string       `json:"contract_type"`
	Revenue      *float64      `json:"revenue"`
	Outcome      *OutcomeEntry `json:"outcome,omitempty"`
}

// MemberMarketing groups a participant's activities under their name.
type MemberMarketing struct {
	Name       string           `json:"name"`
	Activities []MarketingEntry `json:"activities"`
}

// MarketingSheet is the marketing category payload.
type MarketingSheet struct {
	Members []MemberMarketing `json:"activities"`
}

// StuckEntry is one detection of a participant being stalled.
type StuckEntry struct {
	Name              string   `json:"name"`
	Classification    string   `json:"classification"`
	StuckSummary      string   `json:"stuck_summary"`
	ExactQuotes       []string `json:"exact_quotes"`
	PotentialNextStep string   `json:"potential_next_step,omitempty"`
}

// StuckSheet is the stuck-detection category payload.
type StuckSheet struct {
	Detections []StuckEntry `json:"detections"`
}

// SentimentQuote is one participant's representative emotional evidence.
type SentimentQuote struct {
	Name        string   `json:"name"`
	Emotions    []string `json:"emotions"`
	ExactQuotes []string `json:"exact_quotes"`
	IsNegative  bool     `json:"is_negative"`
}

// SentimentSheet is the call-sentiment category payload. Score runs 1 (very
// negative) to 5 (high positive).
type SentimentSheet struct {
	Score           int              `json:"sentiment_score"`
	Rationale       string           `json:"rationale"`
	DominantEmotion string           `json:"dominant_emotion"`
	Confidence      float64          `json:"confidence_score"`
	Quotes          []SentimentQuote `json:"representative_quotes"`
}

// Result bundles every extracted category for one transcript. A nil sheet
// means that category's extraction failed or was skipped.
type Result struct {
	Attendance *AttendanceSheet
	Goals      *GoalSheet
	Challenges *ChallengeSheet
	Marketing  *MarketingSheet
	Stucks     *StuckSheet
	Sentiment  *SentimentSheet
}
