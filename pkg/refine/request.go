package refine

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

var quotedPattern = regexp.MustCompile(`"([^"]*)"|“([^”]*)”|(?:^|[\s(:])'([^']*)'`)

// Request is a change request split into lower-case words and quoted values.
// Words keep inner hyphens so class names such as btn-danger survive.
type Request struct {
	Text   string
	Words  []string
	Quoted []string
}

// ParseRequest tokenizes a change request.
func ParseRequest(text string) Request {
	req := Request{Text: text}
	for _, match := range quotedPattern.FindAllStringSubmatch(text, -1) {
		for _, group := range match[1:] {
			if value := strings.TrimSpace(group); value != "" {
				req.Quoted = append(req.Quoted, value)
				break
			}
		}
	}
	bare := quotedPattern.ReplaceAllString(text, " ")
	for _, field := range strings.FieldsFunc(strings.ToLower(bare), isSeparator) {
		if word := strings.Trim(field, "-"); word != "" {
			req.Words = append(req.Words, word)
		}
	}
	return req
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_'
}

// Has reports whether any of words appears in the request.
func (r Request) Has(words ...string) bool {
	return slices.ContainsFunc(r.Words, func(word string) bool {
		return slices.Contains(words, word)
	})
}

// Index returns the position of the first occurrence of phrase, a run of
// space-separated words, or -1. A trailing plural "s" on the last word is
// accepted.
func (r Request) Index(phrase string) int {
	parts := strings.Fields(strings.ToLower(phrase))
	if len(parts) == 0 {
		return -1
	}
	for start := 0; start+len(parts) <= len(r.Words); start++ {
		matched := true
		for idx, part := range parts {
			word := r.Words[start+idx]
			if word == part || (idx == len(parts)-1 && word == part+"s") {
				continue
			}
			matched = false
			break
		}
		if matched {
			return start
		}
	}
	return -1
}

// HasPhrase reports whether phrase appears in the request.
func (r Request) HasPhrase(phrase string) bool {
	return r.Index(phrase) >= 0
}

// negated reports whether the word at idx follows a negation.
func (r Request) negated(idx int) bool {
	return idx > 0 && slices.Contains([]string{"not", "no", "non", "un"}, r.Words[idx-1])
}

var removalWords = []string{"remove", "drop", "delete", "without", "strip", "unset", "clear", "no", "lose"}

// removing reports whether the request asks to take something away.
func (r Request) removing() bool {
	return r.Has(removalWords...)
}
