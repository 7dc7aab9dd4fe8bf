// Package grammar holds the declension reference shown with case hints.
package grammar

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/playperu/adjquiz/internal/adjquiz"
)

//go:embed rules.yaml
var embeddedRules []byte

const (
	missingTitle   = "No rules available"
	missingSummary = "There is no declension reference for this case yet."
)

type ruleDoc struct {
	Title   string           `yaml:"title"`
	Summary string           `yaml:"summary"`
	Endings []adjquiz.Ending `yaml:"endings"`
}

// Book maps normalized case names to reference content.
type Book struct {
	rules map[string]adjquiz.Reference
}

// Load parses the embedded reference.
func Load() (*Book, error) {
	return Parse(embeddedRules)
}

// Parse builds a Book from a YAML document keyed by case name.
func Parse(data []byte) (*Book, error) {
	var docs map[string]ruleDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing grammar rules: %w", err)
	}

	b := &Book{rules: make(map[string]adjquiz.Reference, len(docs))}
	for name, d := range docs {
		key := normalize(name)
		if key == "" {
			return nil, fmt.Errorf("grammar rule with empty case name")
		}
		b.rules[key] = adjquiz.Reference{
			Case:    key,
			Title:   d.Title,
			Summary: strings.TrimSpace(d.Summary),
			Endings: d.Endings,
		}
	}
	return b, nil
}

// Lookup returns the reference for caseName, or a placeholder on a miss.
func (b *Book) Lookup(caseName string) adjquiz.Reference {
	key := normalize(caseName)
	if ref, ok := b.rules[key]; ok {
		return ref
	}
	return adjquiz.Reference{Case: key, Title: missingTitle, Summary: missingSummary}
}

// Cases lists the known case names, sorted.
func (b *Book) Cases() []string {
	names := make([]string, 0, len(b.rules))
	for name := range b.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
