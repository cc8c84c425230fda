package store

// Input records for SaveSessionExtractions. These are the reconciled,
// member-id-keyed shapes the reconciler hands to the persistence boundary.

// AttendanceRecord is one reconciled attendance entry.
type AttendanceRecord struct {
	MemberID int64
	Status   string
	Notes    string
}

// GoalRecord is one reconciled goal.
type GoalRecord struct {
	MemberID int64
	Goal     string
	IsVague  bool
}

// StrategyRecord is a strategy under a challenge. SuggestedBy is nil when the
// suggester did not resolve to a member.
type StrategyRecord struct {
	SuggestedBy *int64
	Summary     string
	Tag         string
}

// ChallengeRecord is one reconciled challenge with its strategies.
type ChallengeRecord struct {
	MemberID    int64
	Description string
	Category    string
	Strategies  []StrategyRecord
}

// OutcomeRecord is the outcome child of a marketing activity.
type OutcomeRecord struct {
	Meetings  int
	Proposals int
	Clients   int
	Notes     string
}

// MarketingRecord is one reconciled marketing activity.
type MarketingRecord struct {
	MemberID     int64
	Stage        string
	Activity     string
	Quantity     int
	IsWin        bool
	ContractType *string
	Revenue      *float64
	Outcome      *OutcomeRecord
}

// StuckRecord is one reconciled stuck detection.
type StuckRecord struct {
	MemberID          int64
	Classification    string
	StuckSummary      string
	ExactQuotes       []string
	PotentialNextStep string
}

// SentimentQuoteRecord is one per-member representative quote set.
type SentimentQuoteRecord struct {
	MemberID    int64
	Emotions    []string
	ExactQuotes []string
	IsNegative  bool
}

// SentimentRecord is the session-level sentiment with resolved quotes.
type SentimentRecord struct {
	Score           int
	Rationale       string
	DominantEmotion string
	Confidence      float64
	Quotes          []SentimentQuoteRecord
}

// SessionExtractions bundles all six reconciled categories for one save.
type SessionExtractions struct {
	Attendance []AttendanceRecord
	Goals      []GoalRecord
	Challenges []ChallengeRecord
	Marketing  []MarketingRecord
	Stucks     []StuckRecord
	Sentiment  *SentimentRecord
}
