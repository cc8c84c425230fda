// Package reconcile resolves extracted transcript entities to roster members.
//
// Attendance entries are matched fuzzily, because they arrive straight from
// the oracle with names spelled however the call heard them. The remaining
// five categories resolve names by exact lookup against the roster: by the
// time they are persisted, the names have already passed through the
// attendance review step, so a miss there means the entry is dropped rather
// than guessed at.
package reconcile

import (
	"github.com/ownersup/coachd/internal/extraction"
	"github.com/ownersup/coachd/internal/matching"
	"github.com/ownersup/coachd/internal/store"
)

// MatchResult is one name-resolution outcome. It is recomputed on every
// reconciliation pass and never persisted; only the resolved member id (or
// the raw name, when unresolved) flows into downstream records.
type MatchResult struct {
	ExtractedName     string `json:"extracted_name"`
	MatchedMemberID   *int64 `json:"matched_member_id"`
	MatchedMemberName string `json:"matched_member_name,omitempty"`
	Confidence        int    `json:"confidence"`
	NeedsManualReview bool   `json:"needs_manual_review"`
}

// AttendanceMatch is a reconciled attendance entry: the match result plus
// the status and notes carried through from extraction. Status is not
// validated here; the persistence boundary rejects unknown values.
type AttendanceMatch struct {
	MatchResult
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// NameIndex maps exact member names to ids for one roster snapshot.
type NameIndex map[string]int64

// BuildNameIndex builds the exact-match lookup used by the five
// non-attendance categories. Later duplicates of the same name win, matching
// map assignment order over the roster.
func BuildNameIndex(roster []store.Member) NameIndex {
	idx := make(NameIndex, len(roster))
	for _, m := range roster {
		idx[m.Name] = m.ID
	}
	return idx
}

// resolve returns the member id for an exact name, or nil.
func (idx NameIndex) resolve(name string) *int64 {
	if id, ok := idx[name]; ok {
		return &id
	}
	return nil
}

// Reconciler applies fuzzy and exact name resolution to extraction payloads.
type Reconciler struct {
	matcher *matching.Matcher
}

// New returns a Reconciler using the given matcher.
func New(matcher *matching.Matcher) *Reconciler {
	return &Reconciler{matcher: matcher}
}

// MatchName fuzzily resolves one extracted name against the roster. The best
// score is always reported, even below the threshold, so review tooling can
// show the closest guess.
func (r *Reconciler) MatchName(name string, roster []store.Member) MatchResult {
	result := MatchResult{ExtractedName: name, NeedsManualReview: true}

	best, score := r.matcher.Match(name, candidates(roster))
	if best == nil {
		return result
	}

	result.Confidence = score
	if r.matcher.Confident(score) {
		result.MatchedMemberID = &best.ID
		result.MatchedMemberName = best.Name
		result.NeedsManualReview = false
	}
	return result
}

// Attendance matches each extracted attendance entry against the full
// roster. Every entry is matched independently: the same member may match
// several malformed entries, and duplicates are surfaced as-is for review
// rather than merged. Output order follows input order.
func (r *Reconciler) Attendance(entries []extraction.AttendanceEntry, roster []store.Member) []AttendanceMatch {
	out := make([]AttendanceMatch, 0, len(entries))
	for _, entry := range entries {
		out = append(out, AttendanceMatch{
			MatchResult: r.MatchName(entry.Name, roster),
			Status:      entry.Status,
			Notes:       entry.Notes,
		})
	}
	return out
}

// Suggestions returns the top-N roster candidates for a name, for manual
// review tooling.
func (r *Reconciler) Suggestions(name string, roster []store.Member, n int) []matching.Suggestion {
	return r.matcher.Suggestions(name, candidates(roster), n)
}

func candidates(roster []store.Member) []matching.Candidate {
	out := make([]matching.Candidate, len(roster))
	for i, m := range roster {
		out[i] = matching.Candidate{ID: m.ID, Name: m.Name}
	}
	return out
}
