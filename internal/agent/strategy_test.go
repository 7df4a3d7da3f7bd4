package agent

import (
	"testing"

	"postmarket/internal/client/marketapi"
	"postmarket/internal/market"
	"postmarket/internal/models"
)

func apiMarket(yesPct float64, opinions int, signal string) marketapi.Market {
	return marketapi.Market{
		ID:            1,
		Question:      "Will Bitcoin reach $150k?",
		Probabilities: marketapi.Probabilities{Yes: yesPct, No: 100 - yesPct},
		TotalOpinions: opinions,
		Status:        models.MarketStatusActive,
		Signal:        signal,
	}
}

func TestNewStrategy(t *testing.T) {
	for _, name := range []string{"threshold", "momentum", "contrarian"} {
		s, err := NewStrategy(name)
		if err != nil {
			t.Fatalf("NewStrategy(%q): %v", name, err)
		}
		if s.Name() != name {
			t.Fatalf("Name() = %s, want %s", s.Name(), name)
		}
	}
	if _, err := NewStrategy("yolo"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestThresholdStrategy(t *testing.T) {
	s := &ThresholdStrategy{}

	d := s.Decide(Input{Market: apiMarket(80, 12, market.SignalStrongYes), ResearchHits: 3})
	if d.Action != models.AgentActionBuyYes {
		t.Fatalf("strong_yes with research = %s, want buy yes", d.Action)
	}

	d = s.Decide(Input{Market: apiMarket(20, 12, market.SignalStrongNo), ResearchHits: 3})
	if d.Action != models.AgentActionBuyNo {
		t.Fatalf("strong_no with research = %s, want buy no", d.Action)
	}

	d = s.Decide(Input{Market: apiMarket(80, 12, market.SignalStrongYes), ResearchHits: 0})
	if d.Action != models.AgentActionHold {
		t.Fatalf("no research hits = %s, want hold", d.Action)
	}

	d = s.Decide(Input{Market: apiMarket(60, 12, market.SignalLeanYes), ResearchHits: 3})
	if d.Action != models.AgentActionHold {
		t.Fatalf("lean signal = %s, want hold", d.Action)
	}
}

func TestMomentumStrategy(t *testing.T) {
	s := &MomentumStrategy{}

	if d := s.Decide(Input{Trend: market.TrendUp}); d.Action != models.AgentActionBuyYes {
		t.Fatalf("trending yes = %s", d.Action)
	}
	if d := s.Decide(Input{Trend: market.TrendDown}); d.Action != models.AgentActionBuyNo {
		t.Fatalf("trending no = %s", d.Action)
	}
	if d := s.Decide(Input{Trend: market.TrendStable}); d.Action != models.AgentActionHold {
		t.Fatalf("stable = %s", d.Action)
	}
}

func TestContrarianStrategy(t *testing.T) {
	s := &ContrarianStrategy{}

	d := s.Decide(Input{Market: apiMarket(85, 3, market.SignalStrongYes)})
	if d.Action != models.AgentActionBuyNo {
		t.Fatalf("thin extreme YES = %s, want fade to no", d.Action)
	}

	d = s.Decide(Input{Market: apiMarket(15, 3, market.SignalStrongNo)})
	if d.Action != models.AgentActionBuyYes {
		t.Fatalf("thin extreme NO = %s, want fade to yes", d.Action)
	}

	d = s.Decide(Input{Market: apiMarket(85, 20, market.SignalStrongYes)})
	if d.Action != models.AgentActionHold {
		t.Fatalf("deep consensus = %s, want hold", d.Action)
	}

	d = s.Decide(Input{Market: apiMarket(55, 3, market.SignalLeanYes)})
	if d.Action != models.AgentActionHold {
		t.Fatalf("mild probability = %s, want hold", d.Action)
	}
}

func TestResearchQuery(t *testing.T) {
	got := researchQuery("Will Bitcoin reach $150k before the end of 2026?")
	if got != "will bitcoin reach $150k" {
		t.Fatalf("researchQuery = %q", got)
	}
	if researchQuery("a b c") != "a b c" {
		t.Fatalf("all-short questions must fall back to the raw question")
	}
}
