package scoring

import (
	"fmt"
	"strings"

	"postmarket/internal/keyword"
	"postmarket/internal/models"
)

// confidenceNorm is the saturation divisor for match counts: confidence
// reaches 1.0 at three matched terms. Fixed for compatibility with stored
// votes, not a tunable.
const confidenceNorm = 3.0

// Result is one scored post: a vote direction, a confidence in [0,1], and a
// human-readable trace of which keywords drove the decision.
type Result struct {
	Vote       string
	Confidence float64
	Reasoning  string
	MatchedYes []string
	MatchedNo  []string
}

// PostText is the text a post is matched against: lower-cased title plus
// content. Missing content is treated as empty, never as an error.
func PostText(p models.Post) string {
	return strings.ToLower(strings.TrimSpace(p.Title + " " + p.Content))
}

// IsRelevant applies the two-tier keyword gate: at least one required term
// must whole-word match, then at least one context term. The context tier
// exists to cut false positives that the required tier alone lets through.
func (m *Matcher) IsRelevant(text string, cfg keyword.Config) bool {
	if !m.matchesAny(text, cfg.Required) {
		return false
	}
	return m.matchesAny(text, cfg.Context)
}

func (m *Matcher) matchesAny(text string, terms []string) bool {
	for _, term := range terms {
		if m.Match(text, term) {
			return true
		}
	}
	return false
}

// Score counts whole-word matches of the yes and no term lists and derives
// the vote. Ties with at least one match on each side abstain with a fixed
// 0.3 confidence; no matches at all abstain with zero confidence.
func (m *Matcher) Score(text string, cfg keyword.Config) Result {
	yes := m.MatchedTerms(text, cfg.Yes)
	no := m.MatchedTerms(text, cfg.No)
	yesScore := len(yes)
	noScore := len(no)

	switch {
	case yesScore == 0 && noScore == 0:
		return Result{
			Vote:       models.VoteAbstain,
			Confidence: 0,
			Reasoning:  "no clear position detected",
		}
	case yesScore > noScore:
		return Result{
			Vote:       models.VoteYes,
			Confidence: saturate(yesScore),
			Reasoning:  fmt.Sprintf("matched YES terms: %s", strings.Join(yes, ", ")),
			MatchedYes: yes,
			MatchedNo:  no,
		}
	case noScore > yesScore:
		return Result{
			Vote:       models.VoteNo,
			Confidence: saturate(noScore),
			Reasoning:  fmt.Sprintf("matched NO terms: %s", strings.Join(no, ", ")),
			MatchedYes: yes,
			MatchedNo:  no,
		}
	default:
		return Result{
			Vote:       models.VoteAbstain,
			Confidence: 0.3,
			Reasoning: fmt.Sprintf("mixed signal: YES terms [%s] vs NO terms [%s]",
				strings.Join(yes, ", "), strings.Join(no, ", ")),
			MatchedYes: yes,
			MatchedNo:  no,
		}
	}
}

func saturate(score int) float64 {
	conf := float64(score) / confidenceNorm
	if conf > 1 {
		return 1
	}
	return conf
}
