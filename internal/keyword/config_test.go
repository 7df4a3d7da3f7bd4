package keyword

import (
	"testing"
)

const sampleYAML = `
categories:
  crypto:
    required: [bitcoin, btc]
    context: [price, "$"]
    yes: [bullish, moon]
    no: [crash, bearish]

markets:
  - question: "Will Bitcoin reach $150k?"
    category: crypto
    resolution_date: "2026-12-31"
  - question: "Will Bitcoin crash below $50k?"
    category: crypto
    keywords:
      required: [bitcoin, btc]
      context: [crash, "50k"]
      yes: [crash]
      no: [rally]
`

func TestParse(t *testing.T) {
	book, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(book.Categories) != 1 || len(book.Markets) != 2 {
		t.Fatalf("parsed %d categories, %d markets", len(book.Categories), len(book.Markets))
	}
	crypto := book.Categories["crypto"]
	if len(crypto.Required) != 2 || crypto.Required[0] != "bitcoin" {
		t.Fatalf("crypto required = %v", crypto.Required)
	}
	if book.Markets[1].Keywords == nil {
		t.Fatalf("market override not parsed")
	}
}

func TestParseRejectsCategoryWithoutRequired(t *testing.T) {
	bad := `
categories:
  empty:
    context: [anything]
`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatalf("expected error for category without required terms")
	}
}

func TestParseRejectsMarketWithoutQuestion(t *testing.T) {
	bad := `
categories:
  crypto:
    required: [btc]
markets:
  - question: "   "
    category: crypto
`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatalf("expected error for blank question")
	}
}

func TestParseRejectsUnknownCategoryWithoutOverride(t *testing.T) {
	bad := `
categories:
  crypto:
    required: [btc]
markets:
  - question: "Will it rain?"
    category: weather
`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatalf("expected error for unknown category without override")
	}
}

func TestForQuestion(t *testing.T) {
	book, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg, ok := book.ForQuestion("Will Bitcoin reach $150k?", "crypto")
	if !ok {
		t.Fatalf("expected category config")
	}
	if cfg.Yes[0] != "bullish" {
		t.Fatalf("category config not resolved, yes = %v", cfg.Yes)
	}

	override, ok := book.ForQuestion("Will Bitcoin crash below $50k?", "crypto")
	if !ok {
		t.Fatalf("expected override config")
	}
	if len(override.Yes) != 1 || override.Yes[0] != "crash" {
		t.Fatalf("override not preferred, yes = %v", override.Yes)
	}

	if _, ok := book.ForQuestion("Unknown question", "weather"); ok {
		t.Fatalf("unknown category must not resolve")
	}
}
