package market

import (
	"postmarket/internal/models"
)

// Aggregate is the recomputed probability state of one market.
type Aggregate struct {
	YesProbability float64
	NoProbability  float64
	// TotalOpinions counts every vote row including ABSTAIN: it is the
	// number of posts that passed the relevance gate, not the number of
	// directional votes. The dashboard displays it as "votes".
	TotalOpinions int
}

// Recompute derives a market's probabilities from its full vote set. ABSTAIN
// rows are excluded from the probability but counted toward TotalOpinions.
// With no valid votes both probabilities fall back to the 0.5 neutral prior.
// Deterministic: the same vote set always yields the same aggregate.
func Recompute(votes []models.Vote) Aggregate {
	var yes, no int
	for _, v := range votes {
		switch v.Vote {
		case models.VoteYes:
			yes++
		case models.VoteNo:
			no++
		}
	}

	agg := Aggregate{
		YesProbability: 0.5,
		NoProbability:  0.5,
		TotalOpinions:  len(votes),
	}
	if valid := yes + no; valid > 0 {
		agg.YesProbability = float64(yes) / float64(valid)
		agg.NoProbability = float64(no) / float64(valid)
	}
	return agg
}
