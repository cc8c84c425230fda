package reconcile

import (
	"github.com/ownersup/coachd/internal/extraction"
	"github.com/ownersup/coachd/internal/store"
)

// Category reconcilers: flatten the oracle's nested, name-keyed payloads into
// member-id-keyed records for the persister. Entries whose names do not
// resolve exactly are dropped silently; the review payload surfaces them
// before this stage runs.

// AttendanceRecords converts reviewed attendance matches to persister
// records, keeping only resolved entries. Statuses are canonicalized here;
// the persister still validates them against the enum.
func AttendanceRecords(matches []AttendanceMatch) []store.AttendanceRecord {
	var out []store.AttendanceRecord
	for _, m := range matches {
		if m.MatchedMemberID == nil {
			continue
		}
		out = append(out, store.AttendanceRecord{
			MemberID: *m.MatchedMemberID,
			Status:   NormalizeEnum(m.Status),
			Notes:    m.Notes,
		})
	}
	return out
}

// GoalRecords flattens the goal sheet: one record per goal, dropped when the
// name is absent or unresolved.
func GoalRecords(sheet *extraction.GoalSheet, idx NameIndex) []store.GoalRecord {
	if sheet == nil {
		return nil
	}
	var out []store.GoalRecord
	for _, g := range sheet.Goals {
		id := idx.resolve(g.Name)
		if id == nil || g.Goal == "" {
			continue
		}
		out = append(out, store.GoalRecord{
			MemberID: *id,
			Goal:     g.Goal,
			IsVague:  g.IsVague,
		})
	}
	return out
}

// ChallengeRecords denormalizes participant -> challenges -> strategies into
// one record per challenge. Each strategy's suggested_by is resolved
// independently of the challenge owner (it may be a different member or a
// facilitator) and stays nil when unresolved.
func ChallengeRecords(sheet *extraction.ChallengeSheet, idx NameIndex) []store.ChallengeRecord {
	if sheet == nil {
		return nil
	}
	var out []store.ChallengeRecord
	for _, member := range sheet.Members {
		owner := idx.resolve(member.Name)
		if owner == nil {
			continue
		}
		for _, ch := range member.Challenges {
			rec := store.ChallengeRecord{
				MemberID:    *owner,
				Description: ch.Description,
				Category:    ch.Category,
			}
			for _, strat := range ch.Strategies {
				rec.Strategies = append(rec.Strategies, store.StrategyRecord{
					SuggestedBy: idx.resolve(strat.SuggestedBy),
					Summary:     strat.Summary,
					Tag:         strat.Tag,
				})
			}
			out = append(out, rec)
		}
	}
	return out
}

// MarketingRecords flattens participant -> activities into one record per
// activity, the outcome kept nested one level. Stage, activity type, and
// contract type are canonicalized.
func MarketingRecords(sheet *extraction.MarketingSheet, idx NameIndex) []store.MarketingRecord {
	if sheet == nil {
		return nil
	}
	var out []store.MarketingRecord
	for _, member := range sheet.Members {
		id := idx.resolve(member.Name)
		if id == nil {
			continue
		}
		for _, act := range member.Activities {
			rec := store.MarketingRecord{
				MemberID:     *id,
				Stage:        NormalizeEnum(act.Stage),
				Activity:     NormalizeActivity(act.Activity),
				Quantity:     act.Quantity,
				IsWin:        act.IsWin,
				ContractType: NormalizeContract(act.ContractType),
				Revenue:      act.Revenue,
			}
			if act.Outcome != nil {
				rec.Outcome = &store.OutcomeRecord{
					Meetings:  act.Outcome.Meetings,
					Proposals: act.Outcome.Proposals,
					Clients:   act.Outcome.Clients,
					Notes:     act.Outcome.Notes,
				}
			}
			out = append(out, rec)
		}
	}
	return out
}

// StuckRecords flattens the stuck sheet, dropping unresolved names.
func StuckRecords(sheet *extraction.StuckSheet, idx NameIndex) []store.StuckRecord {
	if sheet == nil {
		return nil
	}
	var out []store.StuckRecord
	for _, d := range sheet.Detections {
		id := idx.resolve(d.Name)
		if id == nil {
			continue
		}
		out = append(out, store.StuckRecord{
			MemberID:          *id,
			Classification:    NormalizeEnum(d.Classification),
			StuckSummary:      d.StuckSummary,
			ExactQuotes:       d.ExactQuotes,
			PotentialNextStep: d.PotentialNextStep,
		})
	}
	return out
}

// SentimentRecord resolves the per-member representative quotes inside the
// session-level sentiment. The sentiment itself has no member resolution;
// only quotes with unresolved speakers are dropped.
func SentimentRecord(sheet *extraction.SentimentSheet, idx NameIndex) *store.SentimentRecord {
	if sheet == nil {
		return nil
	}
	rec := &store.SentimentRecord{
		Score:           sheet.Score,
		Rationale:       sheet.Rationale,
		DominantEmotion: sheet.DominantEmotion,
		Confidence:      sheet.Confidence,
	}
	for _, q := range sheet.Quotes {
		id := idx.resolve(q.Name)
		if id == nil {
			continue
		}
		rec.Quotes = append(rec.Quotes, store.SentimentQuoteRecord{
			MemberID:    *id,
			Emotions:    q.Emotions,
			ExactQuotes: q.ExactQuotes,
			IsNegative:  q.IsNegative,
		})
	}
	return rec
}
