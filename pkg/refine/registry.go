package refine

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-ux4g/pkg/markup"
)

// Built-in operation identifiers.
const (
	OpReplaceText     = "replace-text"
	OpToggleAttribute = "toggle-attribute"
	OpAddClass        = "add-class"
	OpRemoveClass     = "remove-class"
	OpSwapVariant     = "swap-variant"
	OpAddModifier     = "add-modifier"
	OpRemoveModifier  = "remove-modifier"
	OpConvertSyntax   = "convert-syntax"
)

// Edit is a planned change. Matchers never touch the tree; Apply does, and
// it runs only for the edit that wins resolution. A nil Apply leaves the
// tree as it is (syntax conversion).
type Edit struct {
	Operation string
	Component string
	Summary   string
	Syntax    markup.Syntax
	Apply     func()
}

// Matcher inspects the request and the parsed snippet and reports an edit
// when it recognises the request.
type Matcher func(ctx *Context) (Edit, bool)

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects the edit for a change request from registered matchers.
// Higher priority wins; ties fall back to registration order. An empty
// registry never resolves an edit.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher with the provided name and priority. Callers
// should avoid duplicate names; both registrations stay active.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Names lists the matcher names in evaluation order.
func (r *Registry) Names() []string {
	rules := r.sorted()
	names := make([]string, len(rules))
	for idx, entry := range rules {
		names[idx] = entry.name
	}
	return names
}

// Resolve returns the first edit produced by a matcher, in evaluation order,
// together with the matcher name.
func (r *Registry) Resolve(ctx *Context) (Edit, string, bool) {
	for _, entry := range r.sorted() {
		if edit, ok := entry.match(ctx); ok {
			if edit.Operation == "" {
				edit.Operation = entry.name
			}
			return edit, entry.name, true
		}
	}
	return Edit{}, "", false
}

func (r *Registry) sorted() []rule {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	return rules
}

func (r *Registry) registerBuiltins() {
	r.Register(OpReplaceText, 100, matchReplaceText)
	r.Register(OpToggleAttribute, 90, matchToggleAttribute)
	r.Register("class", 80, matchClass)
	r.Register(OpSwapVariant, 70, matchSwapVariant)
	r.Register("modifier", 60, matchModifier)
	r.Register(OpConvertSyntax, 50, matchConvertSyntax)
}
