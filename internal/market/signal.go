package market

import (
	"github.com/shopspring/decimal"

	"postmarket/internal/models"
)

const (
	SignalStrongYes = "strong_yes"
	SignalLeanYes   = "lean_yes"
	SignalNeutral   = "neutral"
	SignalLeanNo    = "lean_no"
	SignalStrongNo  = "strong_no"

	TrendUp     = "trending_yes"
	TrendStable = "stable"
	TrendDown   = "trending_no"
)

// trendWindow is how many of the most recent valid votes form the "recent"
// side of the trend comparison.
const trendWindow = 10

// trendDelta is the minimum YES-share shift between windows to leave stable.
const trendDelta = 0.10

// SignalFor buckets a market's yes probability into a categorical summary.
func SignalFor(yesProbability float64) string {
	switch {
	case yesProbability >= 0.70:
		return SignalStrongYes
	case yesProbability >= 0.55:
		return SignalLeanYes
	case yesProbability <= 0.30:
		return SignalStrongNo
	case yesProbability <= 0.45:
		return SignalLeanNo
	default:
		return SignalNeutral
	}
}

// TrendFor compares the YES share of the most recent votes against the older
// remainder. Votes must already be in chronological order (the order the
// history builder uses). Either window being empty yields stable.
func TrendFor(votes []models.Vote) string {
	var valid []models.Vote
	for _, v := range votes {
		if v.Valid() {
			valid = append(valid, v)
		}
	}
	if len(valid) <= trendWindow {
		return TrendStable
	}
	older := valid[:len(valid)-trendWindow]
	recent := valid[len(valid)-trendWindow:]

	delta := yesShare(recent) - yesShare(older)
	switch {
	case delta > trendDelta:
		return TrendUp
	case delta < -trendDelta:
		return TrendDown
	default:
		return TrendStable
	}
}

func yesShare(votes []models.Vote) float64 {
	if len(votes) == 0 {
		return 0
	}
	var yes int
	for _, v := range votes {
		if v.Vote == models.VoteYes {
			yes++
		}
	}
	return float64(yes) / float64(len(votes))
}

// roundPct converts a 0-1 fraction to a 0-100 percentage rounded to one
// decimal, the unit every API surface exposes.
func roundPct(frac float64) float64 {
	out, _ := decimal.NewFromFloat(frac).
		Mul(decimal.NewFromInt(100)).
		Round(1).
		Float64()
	return out
}

// Pct1 exposes the shared percentage rounding for API formatting.
func Pct1(frac float64) float64 {
	return roundPct(frac)
}
