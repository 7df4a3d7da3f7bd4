package market

import (
	"sort"
	"time"

	"postmarket/internal/models"
)

// HistoryPoint is one step of a market's cumulative probability series.
// Yes/No are whole percentages 0-100 rounded to one decimal, unlike the
// Market entity's 0-1 probabilities; API consumers chart them directly.
type HistoryPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Yes        float64   `json:"yes"`
	No         float64   `json:"no"`
	TotalVotes int       `json:"totalVotes"`
}

// BuildHistory replays a market's YES/NO votes in chronological order into a
// cumulative probability series, one point per vote, seeded with a neutral
// 50/50 point at market creation.
//
// Votes without a timestamp are treated as older than every timestamped vote
// and are spread evenly between the market's creation time and the first real
// vote timestamp, or `now` when no vote carries a timestamp. In that last
// case the synthetic timestamps shift on every rebuild; see DESIGN.md.
func BuildHistory(m models.Market, votes []models.Vote, now time.Time) []HistoryPoint {
	ordered := orderVotes(m, votes, now)

	history := []HistoryPoint{{
		Timestamp:  m.CreatedAt,
		Yes:        50,
		No:         50,
		TotalVotes: 0,
	}}

	var yesCount, noCount int
	for _, tv := range ordered {
		switch tv.vote.Vote {
		case models.VoteYes:
			yesCount++
		case models.VoteNo:
			noCount++
		default:
			continue
		}
		total := yesCount + noCount
		// Yes and no are rounded independently on purpose: their sum can
		// land at 99.9 or 100.1, and stored charts depend on the exact
		// values, so this is not normalized away.
		history = append(history, HistoryPoint{
			Timestamp:  tv.at,
			Yes:        roundPct(float64(yesCount) / float64(total)),
			No:         roundPct(float64(noCount) / float64(total)),
			TotalVotes: total,
		})
	}
	return history
}

type timedVote struct {
	vote models.Vote
	at   time.Time
}

func orderVotes(m models.Market, votes []models.Vote, now time.Time) []timedVote {
	var nulls, stamped []models.Vote
	for _, v := range votes {
		if !v.Valid() {
			continue
		}
		if v.CreatedAt == nil {
			nulls = append(nulls, v)
		} else {
			stamped = append(stamped, v)
		}
	}
	sort.SliceStable(stamped, func(i, j int) bool {
		return stamped[i].CreatedAt.Before(*stamped[j].CreatedAt)
	})
	// Insertion order stands in for time on null-timestamp votes.
	sort.SliceStable(nulls, func(i, j int) bool {
		return nulls[i].ID < nulls[j].ID
	})

	start := m.CreatedAt
	end := now
	if len(stamped) > 0 {
		end = *stamped[0].CreatedAt
	}
	gap := time.Duration(0)
	if len(nulls) > 0 {
		gap = end.Sub(start) / time.Duration(len(nulls)+1)
	}

	ordered := make([]timedVote, 0, len(nulls)+len(stamped))
	for k, v := range nulls {
		ordered = append(ordered, timedVote{vote: v, at: start.Add(time.Duration(k+1) * gap)})
	}
	for _, v := range stamped {
		ordered = append(ordered, timedVote{vote: v, at: *v.CreatedAt})
	}
	return ordered
}
