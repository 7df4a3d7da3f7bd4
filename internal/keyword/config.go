package keyword

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the per-market keyword gate used by the relevance filter and the
// vote scorer. A post must whole-word match at least one required term and at
// least one context term to be considered relevant; yes/no term match counts
// drive the vote direction.
type Config struct {
	Required []string `yaml:"required"`
	Context  []string `yaml:"context"`
	Yes      []string `yaml:"yes"`
	No       []string `yaml:"no"`
}

// MarketDef declares a market to be created at startup if absent, optionally
// carrying a keyword override; markets without an override use their
// category's config.
type MarketDef struct {
	Question       string  `yaml:"question"`
	Description    string  `yaml:"description"`
	Category       string  `yaml:"category"`
	ResolutionDate string  `yaml:"resolution_date"`
	Keywords       *Config `yaml:"keywords"`
}

// Book is the full keyword configuration file: category-level configs plus
// market definitions.
type Book struct {
	Categories map[string]Config `yaml:"categories"`
	Markets    []MarketDef       `yaml:"markets"`
}

func LoadFile(path string) (*Book, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Book, error) {
	var book Book
	if err := yaml.Unmarshal(raw, &book); err != nil {
		return nil, err
	}
	if err := book.validate(); err != nil {
		return nil, err
	}
	return &book, nil
}

func (b *Book) validate() error {
	for name, cfg := range b.Categories {
		if len(cfg.Required) == 0 {
			return fmt.Errorf("category %q: required terms missing", name)
		}
	}
	for i, def := range b.Markets {
		if strings.TrimSpace(def.Question) == "" {
			return fmt.Errorf("markets[%d]: question missing", i)
		}
		if def.Keywords == nil {
			if _, ok := b.Categories[def.Category]; !ok {
				return fmt.Errorf("markets[%d] %q: unknown category %q and no keyword override", i, def.Question, def.Category)
			}
		}
	}
	return nil
}

// ForQuestion resolves the keyword config for a market: per-market override
// first, then the category config.
func (b *Book) ForQuestion(question, category string) (Config, bool) {
	for _, def := range b.Markets {
		if def.Question == question && def.Keywords != nil {
			return *def.Keywords, true
		}
	}
	cfg, ok := b.Categories[category]
	return cfg, ok
}
