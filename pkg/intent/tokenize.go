package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-ux4g/pkg/catalog"
)

// token is one word, quoted phrase or clause separator of a description.
type token struct {
	text   string
	word   string
	quoted bool
	brk    bool
	clause int
}

func (t token) capitalised() bool {
	if t.quoted || t.brk || t.text == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(t.text)
	return unicode.IsUpper(r)
}

func (t token) plain() bool {
	return !t.quoted && !t.brk
}

var closingQuote = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'“':  '”',
	'‘':  '’',
	'«':  '»',
}

// tokenize splits description into words, quoted phrases and breaks.
// Punctuation and the lexicon's clause words end a clause.
func tokenize(description string, lex *catalog.Lexicon) []token {
	var tokens []token
	runes := []rune(description)
	atBoundary := true

	for idx := 0; idx < len(runes); {
		r := runes[idx]
		switch {
		case unicode.IsSpace(r):
			atBoundary = true
			idx++
		case closingQuote[r] != 0 && atBoundary:
			end := idx + 1
			for end < len(runes) && runes[end] != closingQuote[r] {
				end++
			}
			value := strings.TrimSpace(string(runes[idx+1 : min(end, len(runes))]))
			if value != "" {
				tokens = append(tokens, token{text: value, word: strings.ToLower(value), quoted: true})
			}
			idx = end + 1
			atBoundary = true
		case isWordRune(r):
			end := idx
			for end < len(runes) && (isWordRune(runes[end]) || isInnerRune(runes, end)) {
				end++
			}
			text := string(runes[idx:end])
			tokens = append(tokens, token{text: text, word: strings.ToLower(text)})
			idx = end
			atBoundary = false
		default:
			if r == ',' || r == ';' || r == '.' || r == '!' || r == '?' || r == ':' || r == '(' || r == ')' {
				tokens = append(tokens, token{text: string(r), word: string(r), brk: true})
			}
			atBoundary = true
			idx++
		}
	}

	clause := 0
	for idx := range tokens {
		if !tokens[idx].quoted && lex.IsClauseBreak(tokens[idx].word) {
			tokens[idx].brk = true
		}
		tokens[idx].clause = clause
		if tokens[idx].brk {
			clause++
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '@' || r == '#'
}

// isInnerRune reports whether runes[idx] joins two word characters, as in
// "e-mail", "don't" or "example.com".
func isInnerRune(runes []rune, idx int) bool {
	switch runes[idx] {
	case '-', '\'', '’', '.', '&', '/':
	default:
		return false
	}
	return idx > 0 && idx+1 < len(runes) && isWordRune(runes[idx-1]) && isWordRune(runes[idx+1])
}

func joinText(tokens []token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, tok.text)
	}
	return strings.Join(parts, " ")
}
