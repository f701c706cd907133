package intent

import (
	"slices"
	"strings"

	"github.com/goliatone/go-ux4g/pkg/catalog"
)

// Match scores. A component must be mentioned at tag level or better to
// resolve; variant and modifier words only steer the concept they attach to.
const (
	scoreName      = 3
	scoreTag       = 2
	scorePreset    = 2
	scoreAttribute = 1

	// MinScore is the lowest score that produces an intent.
	MinScore = scoreTag
)

type matchKind int

const (
	matchName matchKind = iota
	matchTag
	matchPreset
)

type entry struct {
	component string
	kind      matchKind
	score     int
	preset    int
}

// vocabulary is the closed phrase table built from the registry. Phrases are
// lower-case words joined by single spaces.
type vocabulary struct {
	components map[string][]entry
	attributes map[string]struct{}
	order      map[string]int
	maxWords   int
}

func buildVocabulary(reg *catalog.Registry) *vocabulary {
	v := &vocabulary{
		components: make(map[string][]entry),
		attributes: make(map[string]struct{}),
		order:      make(map[string]int),
		maxWords:   1,
	}

	for idx, def := range reg.Ordered() {
		v.order[def.ID] = idx
		for _, keyword := range def.Keywords {
			v.addComponent(keyword, entry{component: def.ID, kind: matchName, score: scoreName})
		}
		for _, tag := range def.Tags {
			v.addComponent(tag, entry{component: def.ID, kind: matchTag, score: scoreTag})
		}
		for presetIdx, preset := range def.Presets {
			for _, keyword := range preset.Keywords {
				v.addComponent(keyword, entry{component: def.ID, kind: matchPreset, score: scorePreset, preset: presetIdx})
			}
		}
		for _, variant := range def.Variants {
			v.addAttribute(variant.Name)
			for _, part := range strings.Split(variant.Name, "-") {
				v.addAttribute(part)
			}
		}
		for _, modifier := range def.Modifiers {
			v.addAttribute(modifier.Name)
			for _, keyword := range modifier.Keywords {
				v.addAttribute(keyword)
			}
		}
	}
	return v
}

func (v *vocabulary) addComponent(phrase string, e entry) {
	key := phraseKey(phrase)
	if key == "" {
		return
	}
	v.track(key)
	entries := v.components[key]
	for idx, existing := range entries {
		if existing.component != e.component {
			continue
		}
		if e.score > existing.score || (e.score == existing.score && e.kind == matchPreset) {
			entries[idx] = e
		}
		return
	}
	v.components[key] = append(entries, e)
}

func (v *vocabulary) addAttribute(phrase string) {
	key := phraseKey(phrase)
	if key == "" {
		return
	}
	v.track(key)
	v.attributes[key] = struct{}{}
}

func (v *vocabulary) track(key string) {
	if n := strings.Count(key, " ") + 1; n > v.maxWords {
		v.maxWords = n
	}
}

// lookup resolves words against the table. The raw phrase is tried first,
// then the phrase with every word mapped through the lexicon, then (for a
// single word) its singular form. The returned phrase is the key that hit.
func (v *vocabulary) lookup(words []string, lex *catalog.Lexicon) (string, []entry, bool) {
	candidates := []string{strings.Join(words, " ")}

	canonical := make([]string, len(words))
	for idx, word := range words {
		canonical[idx] = lex.Canonical(word)
	}
	candidates = append(candidates, strings.Join(canonical, " "))

	if len(words) == 1 {
		if singular, ok := singularOf(words[0]); ok {
			candidates = append(candidates, singular, lex.Canonical(singular))
		}
	}

	for _, key := range candidates {
		entries := v.components[key]
		_, attribute := v.attributes[key]
		if len(entries) > 0 || attribute {
			return key, entries, attribute
		}
	}
	return "", nil, false
}

func (v *vocabulary) rank(id string) int {
	if idx, ok := v.order[id]; ok {
		return idx
	}
	return len(v.order)
}

func phraseKey(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

func singularOf(word string) (string, bool) {
	if len(word) <= 3 || !strings.HasSuffix(word, "s") || strings.HasSuffix(word, "ss") {
		return "", false
	}
	return strings.TrimSuffix(word, "s"), true
}

// variantParts splits a variant or attribute word on hyphens, keeping the
// whole word as well.
func variantParts(name string) []string {
	parts := strings.Split(name, "-")
	if len(parts) > 1 {
		parts = append(parts, name)
	}
	return parts
}

// recognises reports whether def understands the attribute word, either as a
// part of one of its variant names or as a modifier keyword.
func recognises(def *catalog.ComponentDefinition, word string) bool {
	return matchesVariant(def, word) || modifierFor(def, word) != nil
}

func matchesVariant(def *catalog.ComponentDefinition, word string) bool {
	for _, variant := range def.Variants {
		if slices.Contains(variantParts(variant.Name), word) {
			return true
		}
	}
	return false
}

func modifierFor(def *catalog.ComponentDefinition, word string) *catalog.Modifier {
	for idx := range def.Modifiers {
		modifier := &def.Modifiers[idx]
		if modifier.Name == word || slices.Contains(modifier.Keywords, word) {
			return modifier
		}
	}
	return nil
}
