package intent

import (
	"html"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/errors"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

const (
	maxCandidates = 5

	buttonComponent  = "button"
	categoryForms    = "forms"
	categoryPatterns = "patterns"

	// textSlot stands for the text slot of whichever component a lead word
	// ends up on.
	textSlot = ""
	// deptSlot is captured by "for" and only from a capitalised run.
	deptSlot = "department"
)

// leadWords introduce slot values: "labeled Submit", "title Confirm".
var leadWords = map[string]string{
	"labeled":     textSlot,
	"labelled":    textSlot,
	"label":       textSlot,
	"called":      textSlot,
	"named":       textSlot,
	"saying":      textSlot,
	"reading":     textSlot,
	"text":        textSlot,
	"title":       "title",
	"titled":      "title",
	"heading":     "title",
	"placeholder": "placeholder",
	"body":        "body",
	"content":     "body",
	"for":         deptSlot,
}

// restateConnectors may sit between two mentions of one component that
// describe the same thing: "grid with two columns".
var restateConnectors = map[string]bool{
	"with":       true,
	"having":     true,
	"containing": true,
	"including":  true,
	"of":         true,
}

var countWords = map[string]bool{
	"two": true, "three": true, "four": true, "five": true, "six": true,
	"several": true, "multiple": true, "many": true, "few": true,
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for resolution traces.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSanitizer sets the policy that strips markup from descriptions before
// they are tokenized.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(r *Resolver) {
		if policy != nil {
			r.sanitizer = policy
		}
	}
}

// Resolver maps free text onto catalog intents through a closed vocabulary
// built from the registry. It holds no per-call state and is safe for
// concurrent use.
type Resolver struct {
	registry  *catalog.Registry
	vocab     *vocabulary
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// New builds a resolver over registry; nil selects catalog.Default().
func New(registry *catalog.Registry, opts ...Option) *Resolver {
	if registry == nil {
		registry = catalog.Default()
	}
	r := &Resolver{
		registry:  registry,
		vocab:     buildVocabulary(registry),
		sanitizer: bluemonday.StrictPolicy(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Registry returns the registry the resolver reads from.
func (r *Resolver) Registry() *catalog.Registry {
	return r.registry
}

// Resolve maps description onto an ordered list of intents. An empty syntax
// selects HTML. When no component is mentioned strongly enough the error is
// an *errors.UnresolvedIntentError carrying ranked candidates.
func (r *Resolver) Resolve(description string, syntax markup.Syntax) (Resolution, error) {
	if syntax == "" {
		syntax = markup.HTML
	}
	if !syntax.Valid() {
		return Resolution{}, errors.Newf("intent: unsupported syntax %q", syntax)
	}

	p := &pass{
		registry: r.registry,
		vocab:    r.vocab,
		lex:      r.registry.Lexicon(),
		tokens:   tokenize(r.plainText(description), r.registry.Lexicon()),
	}
	p.consumed = make([]bool, len(p.tokens))
	p.covered = make([]bool, len(p.tokens))

	p.captureLeads()
	p.matchVocabulary()
	p.buildConcepts()
	p.attachAttributes()
	p.assignSlots()
	p.splitPlurals()

	if len(p.concepts) == 0 {
		candidates := p.candidates()
		r.logger.Debug("intent unresolved",
			zap.String("description", description),
			zap.Strings("candidates", candidates),
		)
		return Resolution{}, errors.WithHint(
			&errors.UnresolvedIntentError{Description: description, Candidates: candidates},
			`name a catalog component, for example "primary button" or "form with email and submit button"`,
		)
	}

	res := Resolution{
		Description: description,
		Syntax:      syntax,
		Intents:     p.assemble(),
	}
	r.logger.Debug("intent resolved",
		zap.String("description", description),
		zap.Strings("components", res.ComponentIDs()),
	)
	return res, nil
}

// plainText drops any markup embedded in description, element content
// included for script and style, and decodes the entities the policy
// escapes so quotes still delimit phrases.
func (r *Resolver) plainText(description string) string {
	if !strings.ContainsAny(description, "<>&") {
		return description
	}
	return html.UnescapeString(r.sanitizer.Sanitize(description))
}

type mention struct {
	start, end int
	phrase     string
	entries    []entry
	attribute  bool
}

type leadValue struct {
	slot   string
	value  string
	at     int
	clause int
}

type concept struct {
	def      *catalog.ComponentDefinition
	start    int
	end      int
	clause   int
	score    int
	preset   *catalog.Preset
	words    []string
	slots    map[string]string
	explicit map[string]bool
	attached []mention
}

// pass holds the working state of one Resolve call.
type pass struct {
	registry *catalog.Registry
	vocab    *vocabulary
	lex      *catalog.Lexicon
	tokens   []token
	consumed []bool
	covered  []bool
	leads    []leadValue
	mentions []mention
	concepts []*concept
}

func (p *pass) captureLeads() {
	for idx := 0; idx < len(p.tokens); idx++ {
		tok := p.tokens[idx]
		if !tok.plain() || p.consumed[idx] {
			continue
		}
		slot, ok := leadWords[tok.word]
		if !ok || p.inPhrase(idx) {
			continue
		}
		end := p.valueEnd(idx+1, slot == deptSlot)
		if end == idx+1 {
			continue
		}
		for j := idx; j < end; j++ {
			p.consumed[j] = true
		}
		p.leads = append(p.leads, leadValue{
			slot:   slot,
			value:  joinText(p.tokens[idx+1 : end]),
			at:     idx,
			clause: tok.clause,
		})
		idx = end - 1
	}

	for idx, tok := range p.tokens {
		if tok.quoted && !p.consumed[idx] {
			p.consumed[idx] = true
			p.leads = append(p.leads, leadValue{slot: textSlot, value: tok.text, at: idx, clause: tok.clause})
		}
	}
}

// inPhrase reports whether a multi-word vocabulary phrase covers idx, so
// "text input" is not read as the lead word "text".
func (p *pass) inPhrase(idx int) bool {
	for n := p.vocab.maxWords; n >= 2; n-- {
		for start := max(0, idx-n+1); start <= idx && start+n <= len(p.tokens); start++ {
			if !p.plainRun(start, n) {
				continue
			}
			if _, entries, attr := p.vocab.lookup(p.words(start, n), p.lex); len(entries) > 0 || attr {
				return true
			}
		}
	}
	return false
}

// valueEnd returns the end of the value that starts at from: one quoted
// phrase, a single lower-case word, or a run opened by a capitalised word.
// The run continues through lower-case words up to the next vocabulary
// phrase, lead word or break; stop words left dangling before a vocabulary
// phrase are dropped ("Submit to the form"). capsOnly accepts only
// capitalised words, joined by "of".
func (p *pass) valueEnd(from int, capsOnly bool) int {
	if from >= len(p.tokens) || p.consumed[from] || p.tokens[from].brk {
		return from
	}
	first := p.tokens[from]
	if first.quoted {
		return from + 1
	}
	if !first.capitalised() {
		if capsOnly || p.lex.IsStopWord(first.word) {
			return from
		}
		return from + 1
	}

	end, kept := from, from
	for end < len(p.tokens) && !p.consumed[end] {
		tok := p.tokens[end]
		if tok.capitalised() {
			end++
			kept = end
			continue
		}
		if capsOnly {
			if tok.word == "of" && end+1 < len(p.tokens) && p.tokens[end+1].capitalised() {
				end++
				continue
			}
			break
		}
		if !tok.plain() || p.startsPhrase(end) {
			break
		}
		if _, lead := leadWords[tok.word]; lead {
			break
		}
		end++
		if !p.lex.IsStopWord(tok.word) {
			kept = end
		}
	}
	if capsOnly || end == len(p.tokens) || !p.tokens[end].plain() {
		return end
	}
	return kept
}

// startsPhrase reports whether a vocabulary phrase begins at idx.
func (p *pass) startsPhrase(idx int) bool {
	for n := min(p.vocab.maxWords, len(p.tokens)-idx); n >= 1; n-- {
		if !p.plainRun(idx, n) {
			continue
		}
		if _, entries, attr := p.vocab.lookup(p.words(idx, n), p.lex); len(entries) > 0 || attr {
			return true
		}
	}
	return false
}

func (p *pass) matchVocabulary() {
	for idx := 0; idx < len(p.tokens); {
		if !p.free(idx) {
			idx++
			continue
		}
		matched := false
		for n := min(p.vocab.maxWords, len(p.tokens)-idx); n >= 1; n-- {
			if !p.plainRun(idx, n) {
				continue
			}
			words := p.words(idx, n)
			if n == 1 && p.lex.IsStopWord(words[0]) {
				break
			}
			phrase, entries, attr := p.vocab.lookup(words, p.lex)
			if len(entries) == 0 && !attr {
				continue
			}
			p.mentions = append(p.mentions, mention{start: idx, end: idx + n, phrase: phrase, entries: entries, attribute: attr})
			for j := idx; j < idx+n; j++ {
				p.covered[j] = true
			}
			idx += n
			matched = true
			break
		}
		if !matched {
			idx++
		}
	}
}

// buildConcepts merges adjacent component mentions that share a component
// ("email field", "submit button") and picks the best scoring component. A
// later mention that only restates the previous concept ("grid with two
// columns") is folded into it.
func (p *pass) buildConcepts() {
	var group []mention
	flush := func() {
		if len(group) > 0 {
			if c := p.conceptFor(group); c != nil {
				if n := len(p.concepts); n > 0 && p.restates(p.concepts[n-1], c) {
					p.fold(p.concepts[n-1], c)
				} else {
					p.concepts = append(p.concepts, c)
				}
			}
		}
		group = nil
	}

	for _, m := range p.mentions {
		if len(m.entries) == 0 {
			flush()
			continue
		}
		if len(group) > 0 {
			last := group[len(group)-1]
			if last.end == m.start && len(sharedComponents(append(slices.Clone(group), m))) > 0 {
				group = append(group, m)
				continue
			}
			flush()
		}
		group = append(group, m)
	}
	flush()
}

// restates reports whether c names the same component as prev with nothing
// but one connector, stop words, count words and attribute words between
// them. "and" and punctuation keep the two apart.
func (p *pass) restates(prev, c *concept) bool {
	if prev.def.ID != c.def.ID || prev.end > c.start {
		return false
	}
	connectors := 0
	for j := prev.end; j < c.start; j++ {
		tok := p.tokens[j]
		switch {
		case tok.quoted || p.consumed[j]:
			return false
		case restateConnectors[tok.word]:
			connectors++
		case tok.brk:
			return false
		case p.covered[j]:
			if p.attributeAt(j) == nil {
				return false
			}
		case p.lex.IsStopWord(tok.word) || countWords[tok.word] || isNumber(tok.word):
		default:
			return false
		}
	}
	return connectors <= 1
}

// fold merges c into prev, keeping the attribute words found between them.
func (p *pass) fold(prev, c *concept) {
	for j := prev.end; j < c.start; j++ {
		if m := p.attributeAt(j); m != nil && m.start == j && recognises(prev.def, m.phrase) {
			prev.words = append(prev.words, m.phrase)
		}
	}
	prev.words = append(prev.words, c.words...)
	prev.end = c.end
	prev.score = max(prev.score, c.score)
	if prev.preset == nil && c.preset != nil {
		prev.preset = c.preset
		for slot, value := range c.slots {
			if _, ok := prev.slots[slot]; !ok {
				prev.slots[slot] = value
			}
		}
	}
}

// attributeAt returns the attribute-only mention covering idx.
func (p *pass) attributeAt(idx int) *mention {
	for i := range p.mentions {
		m := &p.mentions[i]
		if m.start <= idx && idx < m.end && len(m.entries) == 0 && m.attribute {
			return m
		}
	}
	return nil
}

// within reports whether a concept span already holds m.
func (p *pass) within(m mention) bool {
	return slices.ContainsFunc(p.concepts, func(c *concept) bool {
		return c.start <= m.start && m.end <= c.end
	})
}

func isNumber(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func sharedComponents(group []mention) []string {
	var shared []string
	for idx, m := range group {
		ids := make([]string, 0, len(m.entries))
		for _, e := range m.entries {
			ids = append(ids, e.component)
		}
		if idx == 0 {
			shared = ids
			continue
		}
		kept := shared[:0:0]
		for _, id := range shared {
			for _, candidate := range ids {
				if candidate == id {
					kept = append(kept, id)
					break
				}
			}
		}
		shared = kept
	}
	return shared
}

func (p *pass) conceptFor(group []mention) *concept {
	best, bestScore := "", 0
	for _, id := range sharedComponents(group) {
		score := 0
		for _, m := range group {
			for _, e := range m.entries {
				if e.component == id && e.score > score {
					score = e.score
				}
			}
		}
		if score > bestScore || (score == bestScore && p.vocab.rank(id) < p.vocab.rank(best)) {
			best, bestScore = id, score
		}
	}
	if bestScore < MinScore {
		return nil
	}
	def, ok := p.registry.Lookup(best)
	if !ok {
		return nil
	}

	c := &concept{
		def:      def,
		start:    group[0].start,
		end:      group[len(group)-1].end,
		clause:   p.tokens[group[0].start].clause,
		score:    bestScore,
		slots:    make(map[string]string),
		explicit: make(map[string]bool),
	}
	for _, m := range group {
		for _, e := range m.entries {
			if e.component == best && e.kind == matchPreset {
				c.preset = &def.Presets[e.preset]
			}
		}
		if m.attribute && recognises(def, m.phrase) {
			c.words = append(c.words, m.phrase)
		}
	}
	if c.preset != nil {
		maps.Copy(c.slots, c.preset.Slots)
	}
	return c
}

// attachAttributes hands every variant or modifier word to the nearest
// concept that understands it: following in the same clause first, then
// preceding.
func (p *pass) attachAttributes() {
	for _, m := range p.mentions {
		if len(m.entries) > 0 || !m.attribute || p.within(m) {
			continue
		}
		clause := p.tokens[m.start].clause
		target := p.nearest(m.start, clause, true, func(c *concept) bool { return recognises(c.def, m.phrase) })
		if target != nil {
			target.words = append(target.words, m.phrase)
			target.attached = append(target.attached, m)
		}
	}
}

// nearest looks for a concept accepted by ok, in this order: following in
// the same clause, preceding in the same clause, then preceding and following
// anywhere. preferFollowing swaps the first two steps when false.
func (p *pass) nearest(at, clause int, preferFollowing bool, ok func(*concept) bool) *concept {
	following := func(sameClause bool) *concept {
		for _, c := range p.concepts {
			if c.start > at && (!sameClause || c.clause == clause) && ok(c) {
				return c
			}
		}
		return nil
	}
	preceding := func(sameClause bool) *concept {
		for idx := len(p.concepts) - 1; idx >= 0; idx-- {
			c := p.concepts[idx]
			if c.end <= at && (!sameClause || c.clause == clause) && ok(c) {
				return c
			}
		}
		return nil
	}

	steps := []func(bool) *concept{following, preceding}
	if !preferFollowing {
		steps = []func(bool) *concept{preceding, following}
	}
	for _, sameClause := range []bool{true, false} {
		for _, step := range steps {
			if c := step(sameClause); c != nil {
				return c
			}
		}
	}
	return nil
}

func (p *pass) assignSlots() {
	for _, lead := range p.leads {
		target := p.nearest(lead.at, lead.clause, false, func(c *concept) bool { return hasSlot(c.def, lead.slot) })
		slot := lead.slot
		if target == nil && slot == deptSlot {
			slot = textSlot
			target = p.nearest(lead.at, lead.clause, false, func(c *concept) bool { return c.def.TextSlot != "" })
		}
		if target == nil {
			continue
		}
		if slot == textSlot {
			slot = target.def.TextSlot
		}
		target.slots[slot] = lead.value
		target.explicit[slot] = true
	}

	// "Subscribe button", "Read more button": a run opened by a capitalised
	// word right before a component word names its text slot unless a lead
	// word already did.
	for _, c := range p.concepts {
		if c.def.TextSlot == "" || c.explicit[c.def.TextSlot] {
			continue
		}
		start := c.start
		for start > 0 {
			tok := p.tokens[start-1]
			if !p.free(start-1) || p.covered[start-1] || p.lex.IsStopWord(tok.word) {
				break
			}
			if _, lead := leadWords[tok.word]; lead {
				break
			}
			start--
		}
		for start < c.start && !p.tokens[start].capitalised() {
			start++
		}
		if start == c.start {
			continue
		}
		for j := start; j < c.start; j++ {
			p.consumed[j] = true
		}
		c.slots[c.def.TextSlot] = joinText(p.tokens[start:c.start])
		c.explicit[c.def.TextSlot] = true
	}
}

// splitPlurals turns a plural component noun carrying separate variant runs
// ("primary and secondary buttons") into one concept per run, in text order.
// Adjacent variant words form one run: "red outline buttons" stays single.
func (p *pass) splitPlurals() {
	out := make([]*concept, 0, len(p.concepts))
	for _, c := range p.concepts {
		out = append(out, p.splitPlural(c)...)
	}
	p.concepts = out
}

func (p *pass) splitPlural(c *concept) []*concept {
	head := p.tokens[c.end-1].word
	if _, ok := singularOf(head); !ok || len(p.vocab.components[head]) > 0 {
		return []*concept{c}
	}

	var runs [][]mention
	for _, m := range c.attached {
		if !matchesVariant(c.def, m.phrase) {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1][len(runs[n-1])-1].end == m.start {
			runs[n-1] = append(runs[n-1], m)
			continue
		}
		runs = append(runs, []mention{m})
	}
	if len(runs) < 2 {
		return []*concept{c}
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i][0].start < runs[j][0].start })

	var others []string
	for _, word := range c.words {
		if !matchesVariant(c.def, word) {
			others = append(others, word)
		}
	}
	out := make([]*concept, 0, len(runs))
	for _, run := range runs {
		clone := *c
		clone.words = slices.Clone(others)
		for _, m := range run {
			clone.words = append(clone.words, m.phrase)
		}
		clone.slots = maps.Clone(c.slots)
		clone.explicit = maps.Clone(c.explicit)
		clone.attached = nil
		out = append(out, &clone)
	}
	return out
}

func hasSlot(def *catalog.ComponentDefinition, slot string) bool {
	if slot == textSlot {
		return def.TextSlot != ""
	}
	tmpl := def.Template(markup.HTML)
	if tmpl == nil {
		return false
	}
	_, ok := tmpl.SlotDefault(slot)
	return ok
}

func (p *pass) free(idx int) bool {
	return idx >= 0 && idx < len(p.tokens) && !p.consumed[idx] && p.tokens[idx].plain()
}

func (p *pass) plainRun(start, n int) bool {
	for j := start; j < start+n; j++ {
		if !p.free(j) {
			return false
		}
	}
	return true
}

func (p *pass) words(start, n int) []string {
	out := make([]string, n)
	for j := range n {
		out[j] = p.tokens[start+j].word
	}
	return out
}

// intent turns a concept into an Intent with its variant and modifiers
// resolved against the component.
func (c *concept) intent() Intent {
	slots := maps.Clone(c.slots)
	if len(slots) == 0 {
		slots = nil
	}

	var variantWords []string
	var modifiers []string
	groups := make(map[string]int)
	for _, word := range c.words {
		if matchesVariant(c.def, word) {
			variantWords = append(variantWords, word)
			continue
		}
		modifier := modifierFor(c.def, word)
		if modifier == nil || slices.Contains(modifiers, modifier.Name) {
			continue
		}
		if modifier.Group != "" {
			if idx, ok := groups[modifier.Group]; ok {
				modifiers[idx] = modifier.Name
				continue
			}
			groups[modifier.Group] = len(modifiers)
		}
		modifiers = append(modifiers, modifier.Name)
	}

	presetVariant := ""
	if c.preset != nil {
		presetVariant = c.preset.Variant
	}
	return Intent{
		ComponentID: c.def.ID,
		Variant:     chooseVariant(c.def, variantWords, presetVariant),
		Slots:       slots,
		Modifiers:   modifiers,
	}
}

// chooseVariant picks the declared variant sharing the most name parts with
// words. Parts of the preset variant count half as much as explicit words.
// Ties go to the variant with fewer unmatched parts, then declaration order.
func chooseVariant(def *catalog.ComponentDefinition, words []string, presetVariant string) string {
	if len(words) == 0 {
		if presetVariant != "" {
			return presetVariant
		}
		return def.DefaultVariant
	}

	explicit := make(map[string]struct{})
	for _, word := range words {
		for _, part := range variantParts(word) {
			explicit[part] = struct{}{}
		}
	}
	preset := make(map[string]struct{})
	if presetVariant != "" {
		for _, part := range strings.Split(presetVariant, "-") {
			preset[part] = struct{}{}
		}
	}

	best, bestScore, bestUnmatched := "", 0, 0
	for _, variant := range def.Variants {
		parts := strings.Split(variant.Name, "-")
		hits, presetHits := 0, 0
		for _, part := range parts {
			if _, ok := explicit[part]; ok {
				hits++
			} else if _, ok := preset[part]; ok {
				presetHits++
			}
		}
		if _, ok := explicit[variant.Name]; ok {
			hits = len(parts)
		}
		if hits == 0 {
			continue
		}
		score := hits*2 + presetHits
		unmatched := len(parts) - hits - presetHits
		if score > bestScore || (score == bestScore && unmatched < bestUnmatched) {
			best, bestScore, bestUnmatched = variant.Name, score, unmatched
		}
	}
	if best == "" {
		if presetVariant != "" {
			return presetVariant
		}
		return def.DefaultVariant
	}
	return best
}

// node is an intent under assembly.
type node struct {
	def      *catalog.ComponentDefinition
	intent   Intent
	children []*node
	filled   bool
}

// assemble nests field and button concepts under the container they follow
// and routes a button that follows a component with a button slot into that
// slot.
func (p *pass) assemble() []Intent {
	var roots, stack []*node
	var owner *node

	for _, c := range p.concepts {
		n := &node{def: c.def, intent: c.intent()}

		if c.def.ID == buttonComponent && owner != nil && !owner.filled {
			owner.filled = true
			if label := n.intent.Slots[c.def.TextSlot]; label != "" {
				if owner.intent.Slots == nil {
					owner.intent.Slots = make(map[string]string)
				}
				owner.intent.Slots[owner.def.ButtonSlot] = label
			}
			continue
		}

		for len(stack) > 0 && !accepts(stack[len(stack)-1].def, c.def) {
			stack = stack[:len(stack)-1]
		}
		var parent *node
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
			parent.children = append(parent.children, n)
		} else {
			roots = append(roots, n)
		}

		switch {
		case c.def.ButtonSlot != "":
			owner = n
		case parent == nil || parent != owner:
			owner = nil
		}
		if c.def.Container {
			stack = append(stack, n)
		}
	}

	out := make([]Intent, 0, len(roots))
	for _, root := range roots {
		out = append(out, root.build(p.registry))
	}
	return out
}

// build converts the node tree into intents. A container that received no
// children gets the catalog's default children.
func (n *node) build(reg *catalog.Registry) Intent {
	in := n.intent
	for _, child := range n.children {
		in.Children = append(in.Children, child.build(reg))
	}
	if !n.def.Container || len(in.Children) > 0 {
		return in
	}
	for _, spec := range n.def.Children {
		child, ok := reg.Lookup(spec.Component)
		if !ok {
			continue
		}
		variant := spec.Variant
		if variant == "" {
			variant = child.DefaultVariant
		}
		in.Children = append(in.Children, Intent{
			ComponentID: child.ID,
			Variant:     variant,
			Slots:       maps.Clone(spec.Slots),
		})
	}
	return in
}

// accepts reports whether container nests child. Layout containers take any
// component except layout and page patterns; other containers take fields and
// buttons.
func accepts(container, child *catalog.ComponentDefinition) bool {
	if container.Category == catalog.CategoryLayout {
		return child.Category != catalog.CategoryLayout && child.Category != categoryPatterns
	}
	if child.ID == buttonComponent {
		return true
	}
	return child.Category == categoryForms && !child.Container
}

// candidates ranks every component for an unresolved description: partial
// vocabulary scores first, then the Levenshtein distance between the
// description's words and the id.
func (p *pass) candidates() []string {
	reg := p.registry
	scores := make(map[string]int)
	for _, m := range p.mentions {
		for _, e := range m.entries {
			scores[e.component] = max(scores[e.component], e.score)
		}
		if m.attribute {
			for _, def := range reg.Ordered() {
				if recognises(def, m.phrase) {
					scores[def.ID] += scoreAttribute
				}
			}
		}
	}

	var words []string
	for _, tok := range p.tokens {
		if tok.plain() && !p.lex.IsStopWord(tok.word) {
			words = append(words, tok.word)
		}
	}
	distance := func(id string) int {
		if len(words) == 0 {
			return 0
		}
		best := -1
		for _, word := range words {
			if d := fuzzy.LevenshteinDistance(word, id); best < 0 || d < best {
				best = d
			}
		}
		return best
	}

	ids := reg.IDs()
	distances := make(map[string]int, len(ids))
	for _, id := range ids {
		distances[id] = distance(id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		if distances[a] != distances[b] {
			return distances[a] < distances[b]
		}
		return a < b
	})
	return ids[:min(maxCandidates, len(ids))]
}
