package agent

import (
	"fmt"

	"postmarket/internal/client/marketapi"
	"postmarket/internal/models"
)

// Input is everything a strategy sees for one market in one cycle: the API
// view, the probability history, and how many research hits the platform
// search returned for the market's question.
type Input struct {
	Market       marketapi.Market
	Trend        string
	History      []marketapi.HistoryPoint
	ResearchHits int
}

type Decision struct {
	Action    string
	Reasoning string
}

// Strategy is a rule-based position picker. Strategies are pure: no I/O, no
// state between cycles.
type Strategy interface {
	Name() string
	Decide(in Input) Decision
}

func NewStrategy(name string) (Strategy, error) {
	switch name {
	case "threshold":
		return &ThresholdStrategy{}, nil
	case "momentum":
		return &MomentumStrategy{}, nil
	case "contrarian":
		return &ContrarianStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// ThresholdStrategy follows strong signals, but only when the platform search
// corroborates that the market is being talked about at all.
type ThresholdStrategy struct{}

func (s *ThresholdStrategy) Name() string { return "threshold" }

func (s *ThresholdStrategy) Decide(in Input) Decision {
	if in.ResearchHits == 0 {
		return Decision{
			Action:    models.AgentActionHold,
			Reasoning: "no research hits for market question, staying out",
		}
	}
	switch in.Market.Signal {
	case "strong_yes":
		return Decision{
			Action:    models.AgentActionBuyYes,
			Reasoning: fmt.Sprintf("strong_yes at %.1f%% with %d research hits", in.Market.Probabilities.Yes, in.ResearchHits),
		}
	case "strong_no":
		return Decision{
			Action:    models.AgentActionBuyNo,
			Reasoning: fmt.Sprintf("strong_no at %.1f%% with %d research hits", in.Market.Probabilities.No, in.ResearchHits),
		}
	default:
		return Decision{
			Action:    models.AgentActionHold,
			Reasoning: fmt.Sprintf("signal %s not actionable", in.Market.Signal),
		}
	}
}

// MomentumStrategy follows the vote trend.
type MomentumStrategy struct{}

func (s *MomentumStrategy) Name() string { return "momentum" }

func (s *MomentumStrategy) Decide(in Input) Decision {
	switch in.Trend {
	case "trending_yes":
		return Decision{
			Action:    models.AgentActionBuyYes,
			Reasoning: fmt.Sprintf("recent votes shifting YES, market at %.1f%%", in.Market.Probabilities.Yes),
		}
	case "trending_no":
		return Decision{
			Action:    models.AgentActionBuyNo,
			Reasoning: fmt.Sprintf("recent votes shifting NO, market at %.1f%%", in.Market.Probabilities.No),
		}
	default:
		return Decision{
			Action:    models.AgentActionHold,
			Reasoning: "trend stable",
		}
	}
}

// thinOpinionCount is the opinion count below which contrarian treats an
// extreme probability as noise worth fading.
const thinOpinionCount = 5

// ContrarianStrategy fades extreme probabilities built on thin opinion
// counts.
type ContrarianStrategy struct{}

func (s *ContrarianStrategy) Name() string { return "contrarian" }

func (s *ContrarianStrategy) Decide(in Input) Decision {
	if in.Market.TotalOpinions >= thinOpinionCount {
		return Decision{
			Action:    models.AgentActionHold,
			Reasoning: fmt.Sprintf("%d opinions is enough consensus, not fading", in.Market.TotalOpinions),
		}
	}
	switch {
	case in.Market.Probabilities.Yes >= 70:
		return Decision{
			Action:    models.AgentActionBuyNo,
			Reasoning: fmt.Sprintf("fading %.1f%% YES built on only %d opinions", in.Market.Probabilities.Yes, in.Market.TotalOpinions),
		}
	case in.Market.Probabilities.Yes <= 30:
		return Decision{
			Action:    models.AgentActionBuyYes,
			Reasoning: fmt.Sprintf("fading %.1f%% NO built on only %d opinions", in.Market.Probabilities.No, in.Market.TotalOpinions),
		}
	default:
		return Decision{
			Action:    models.AgentActionHold,
			Reasoning: "probability not extreme enough to fade",
		}
	}
}
