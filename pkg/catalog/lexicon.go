package catalog

import (
	"slices"
	"strings"
)

// Lexicon holds the closed word lists the resolver and refiner match against.
type Lexicon struct {
	synonyms     map[string]string
	stopWords    map[string]struct{}
	clauseBreaks map[string]struct{}
}

// UtilityGroup is a set of utility classes. Members of an exclusive group
// replace one another on an element.
type UtilityGroup struct {
	Group     string   `json:"group" yaml:"group"`
	Exclusive bool     `json:"exclusive,omitempty" yaml:"exclusive"`
	Classes   []string `json:"classes" yaml:"classes"`
}

type lexiconFile struct {
	Synonyms     map[string][]string `yaml:"synonyms"`
	StopWords    []string            `yaml:"stop_words"`
	ClauseBreaks []string            `yaml:"clause_breaks"`
	Utilities    []UtilityGroup      `yaml:"utilities"`
}

func newLexicon() *Lexicon {
	return &Lexicon{
		synonyms:     make(map[string]string),
		stopWords:    make(map[string]struct{}),
		clauseBreaks: make(map[string]struct{}),
	}
}

func (l *Lexicon) merge(raw lexiconFile) {
	for canonical, words := range raw.Synonyms {
		canonical = normaliseWord(canonical)
		for _, word := range words {
			l.synonyms[normaliseWord(word)] = canonical
		}
	}
	for _, word := range raw.StopWords {
		l.stopWords[normaliseWord(word)] = struct{}{}
	}
	for _, word := range raw.ClauseBreaks {
		l.clauseBreaks[normaliseWord(word)] = struct{}{}
	}
}

// Canonical maps a synonym onto its canonical word; other words are returned
// lower-cased.
func (l *Lexicon) Canonical(word string) string {
	word = normaliseWord(word)
	if l == nil {
		return word
	}
	if canonical, ok := l.synonyms[word]; ok {
		return canonical
	}
	return word
}

// Synonyms lists the words that map onto canonical, sorted.
func (l *Lexicon) Synonyms(canonical string) []string {
	if l == nil {
		return nil
	}
	canonical = normaliseWord(canonical)
	var out []string
	for word, target := range l.synonyms {
		if target == canonical {
			out = append(out, word)
		}
	}
	slices.Sort(out)
	return out
}

// IsStopWord reports whether word carries no meaning for matching.
func (l *Lexicon) IsStopWord(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.stopWords[normaliseWord(word)]
	return ok
}

// IsClauseBreak reports whether word separates clauses.
func (l *Lexicon) IsClauseBreak(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.clauseBreaks[normaliseWord(word)]
	return ok
}

func normaliseWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
