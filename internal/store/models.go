package store

import "time"

// Program is a coaching program (e.g. a founders cohort track).
type Program struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Group is a peer group within a program.
type Group struct {
	ID        int64     `json:"id"`
	ProgramID int64     `json:"program_id"`
	Name      string    `json:"name"`
	Cohort    string    `json:"cohort,omitempty"`
	StartDate string    `json:"start_date,omitempty"`
	EndDate   string    `json:"end_date,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member is a participant identity record. The ID is the stable join key
// every reconciled extraction attaches to.
type Member struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupMember records membership of a member in a group.
type GroupMember struct {
	ID       int64      `json:"id"`
	GroupID  int64      `json:"group_id"`
	MemberID int64      `json:"member_id"`
	Role     string     `json:"role"`
	JoinedAt time.Time  `json:"joined_at"`
	LeftAt   *time.Time `json:"left_at,omitempty"`
	IsActive bool       `json:"is_active"`
	Member   *Member    `json:"member,omitempty"`
}

// Session is one coaching call of a group.
type Session struct {
	ID            int64     `json:"id"`
	GroupID       int64     `json:"group_id"`
	Date          time.Time `json:"session_date"`
	SessionNumber int       `json:"session_number"`
	Notes         string    `json:"notes,omitempty"`
	Transcript    string    `json:"transcript,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Attendance is a persisted per-session attendance row.
type Attendance struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id"`
	MemberID  int64     `json:"member_id"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Goal is a member's weekly goal captured from a session.
type Goal struct {
	ID          int64     `json:"id"`
	MemberID    int64     `json:"member_id"`
	SessionID   int64     `json:"session_id"`
	Goal        string    `json:"goal"`
	IsVague     bool      `json:"is_vague"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Challenge is a challenge a member raised in a session.
type Challenge struct {
	ID          int64      `json:"id"`
	MemberID    int64      `json:"member_id"`
	SessionID   int64      `json:"session_id"`
	Description string     `json:"description"`
	Category    string     `json:"category,omitempty"`
	Strategies  []Strategy `json:"strategies,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Strategy is a suggestion attached to a challenge. SuggestedBy is nil when
// the suggester could not be attributed to a member.
type Strategy struct {
	ID          int64     `json:"id"`
	ChallengeID int64     `json:"challenge_id"`
	SuggestedBy *int64    `json:"suggested_by,omitempty"`
	Summary     string    `json:"summary"`
	Tag         string    `json:"tag,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Stuck is a stuck-detection row for a member.
type Stuck struct {
	ID                int64     `json:"id"`
	MemberID          int64     `json:"member_id"`
	SessionID         int64     `json:"session_id"`
	Classification    string    `json:"classification"`
	StuckSummary      string    `json:"stuck_summary"`
	ExactQuotes       []string  `json:"exact_quotes"`
	PotentialNextStep string    `json:"potential_next_step,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// MarketingActivity is a member's marketing activity with its outcome child.
type MarketingActivity struct {
	ID           int64             `json:"id"`
	MemberID     int64             `json:"member_id"`
	SessionID    int64             `json:"session_id"`
	Stage        string            `json:"stage"`
	Activity     string            `json:"activity"`
	Quantity     int               `json:"quantity"`
	IsWin        bool              `json:"is_win"`
	ContractType *string           `json:"contract_type,omitempty"`
	Revenue      *float64          `json:"revenue,omitempty"`
	Outcome      *MarketingOutcome `json:"outcome,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// MarketingOutcome is the zero-or-one outcome child of an activity.
type MarketingOutcome struct {
	ID          int64  `json:"id"`
	ActivityID  int64  `json:"activity_id"`
	Meetings    int    `json:"no_of_meetings"`
	Proposals   int    `json:"no_of_proposals"`
	Clients     int    `json:"no_of_clients"`
	Notes       string `json:"notes,omitempty"`
}

// Sentiment is the session-level sentiment row with its statements.
type Sentiment struct {
	ID              int64                `json:"id"`
	SessionID       int64                `json:"session_id"`
	Score           int                  `json:"sentiment_score"`
	Rationale       string               `json:"rationale,omitempty"`
	DominantEmotion string               `json:"dominant_emotion,omitempty"`
	Confidence      float64              `json:"confidence_score"`
	Statements      []SentimentStatement `json:"statements,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// SentimentStatement is a per-member representative quote set.
type SentimentStatement struct {
	ID          int64    `json:"id"`
	SentimentID int64    `json:"session_sentiment_id"`
	MemberID    int64    `json:"member_id"`
	Emotions    []string `json:"emotions"`
	ExactQuotes []string `json:"exact_quotes"`
	IsNegative  bool     `json:"is_negative"`
}
