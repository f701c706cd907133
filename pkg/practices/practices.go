// Package practices serves the handbook guidance bundled with the catalog.
package practices

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/practices.yaml
var embedded embed.FS

const (
	embeddedPath = "data/practices.yaml"
	fallbackSize = 5
)

// Source names the document the practices come from.
type Source struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// Practice is one piece of guidance.
type Practice struct {
	ID       string   `json:"id" yaml:"id"`
	Topic    string   `json:"topic" yaml:"topic"`
	Title    string   `json:"title" yaml:"title"`
	Guidance string   `json:"guidance" yaml:"guidance"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords"`
}

func (p Practice) text() string {
	return strings.ToLower(strings.Join([]string{p.Topic, p.Title, p.Guidance, strings.Join(p.Keywords, " ")}, " "))
}

// KnowledgeBase is a read-only list of practices.
type KnowledgeBase struct {
	Source    Source     `yaml:"source"`
	Practices []Practice `yaml:"practices"`
}

// Result is the answer to a query.
type Result struct {
	Source      Source     `json:"source"`
	Query       string     `json:"query"`
	ResultCount int        `json:"result_count"`
	Practices   []Practice `json:"practices"`
}

var (
	defaultOnce sync.Once
	defaultKB   *KnowledgeBase
)

// Default returns the embedded knowledge base. It panics if the bundled file
// is invalid, which the package tests rule out.
func Default() *KnowledgeBase {
	defaultOnce.Do(func() {
		kb, err := Load(embedded, embeddedPath)
		if err != nil {
			panic(err)
		}
		defaultKB = kb
	})
	return defaultKB
}

// Load reads a knowledge base from path in fsys.
func Load(fsys fs.FS, path string) (*KnowledgeBase, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("practices: read %s: %w", path, err)
	}
	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("practices: parse %s: %w", path, err)
	}
	for idx, practice := range kb.Practices {
		if strings.TrimSpace(practice.Title) == "" || strings.TrimSpace(practice.Guidance) == "" {
			return nil, fmt.Errorf("practices: %s: practice %d needs a title and guidance", path, idx)
		}
	}
	return &kb, nil
}

// Query returns up to limit practices ranked by how many query terms appear
// in their text. Ties keep knowledge base order. An empty query returns the
// first practices; a query matching nothing returns the first five.
func (kb *KnowledgeBase) Query(query string, limit int) Result {
	if limit < 1 {
		limit = 1
	}
	result := Result{Source: kb.Source, Query: query}

	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		result.Practices = head(kb.Practices, limit)
		result.ResultCount = len(result.Practices)
		return result
	}

	type scored struct {
		score    int
		practice Practice
	}
	var hits []scored
	for _, practice := range kb.Practices {
		text := practice.text()
		score := 0
		for _, term := range terms {
			if strings.Contains(text, term) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{score: score, practice: practice})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	for _, hit := range hits {
		if len(result.Practices) == limit {
			break
		}
		result.Practices = append(result.Practices, hit.practice)
	}
	if len(result.Practices) == 0 {
		result.Practices = head(kb.Practices, fallbackSize)
	}
	result.ResultCount = len(result.Practices)
	return result
}

// Topics lists the distinct topics in first-seen order.
func (kb *KnowledgeBase) Topics() []string {
	var out []string
	for _, practice := range kb.Practices {
		if practice.Topic != "" && !slices.Contains(out, practice.Topic) {
			out = append(out, practice.Topic)
		}
	}
	return out
}

func head(practices []Practice, n int) []Practice {
	if n > len(practices) {
		n = len(practices)
	}
	return append(make([]Practice, 0, n), practices[:n]...)
}
