package markup

import (
	"regexp"
	"strings"
)

var numericLiteral = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// normalizeJSX rewrites JSX-only constructs into markup the HTML tokenizer
// understands: fragments are removed, brace attribute values become quoted
// strings (or disappear for {false}), style objects become CSS and JSX
// comments are dropped.
func normalizeJSX(src string) string {
	var out strings.Builder
	out.Grow(len(src))
	for i := 0; i < len(src); {
		switch {
		case strings.HasPrefix(src[i:], "<>"):
			i += 2
		case strings.HasPrefix(src[i:], "</>"):
			i += 3
		case src[i] == '<' && i+1 < len(src) && (isNameStart(src[i+1]) || src[i+1] == '/'):
			tag, next, ok := rewriteTag(src, i)
			if !ok {
				out.WriteString(src[i:])
				return out.String()
			}
			out.WriteString(tag)
			i = next
		case src[i] == '{':
			end := matchBrace(src, i)
			if end < 0 {
				out.WriteString(src[i:])
				return out.String()
			}
			out.WriteString(textExpression(src[i+1 : end]))
			i = end + 1
		default:
			out.WriteByte(src[i])
			i++
		}
	}
	return out.String()
}

// textExpression resolves a brace expression found between tags.
func textExpression(expr string) string {
	inner := strings.TrimSpace(expr)
	switch {
	case strings.HasPrefix(inner, "/*") && strings.HasSuffix(inner, "*/"):
		return ""
	case isStringLiteral(inner):
		return escapeText(inner[1:len(inner)-1], HTML)
	default:
		return "{" + expr + "}"
	}
}

// rewriteTag lexes the tag starting at src[start] and returns it in HTML form
// together with the index just past it. ok is false when the tag never ends.
func rewriteTag(src string, start int) (string, int, bool) {
	var out strings.Builder
	i := start + 1
	out.WriteByte('<')
	if src[i] == '/' {
		out.WriteByte('/')
		i++
	}
	nameStart := i
	for i < len(src) && isNameChar(src[i]) {
		i++
	}
	out.WriteString(src[nameStart:i])

	for {
		for i < len(src) && isSpace(src[i]) {
			i++
		}
		if i >= len(src) {
			return "", 0, false
		}
		switch {
		case src[i] == '>':
			out.WriteByte('>')
			return out.String(), i + 1, true
		case strings.HasPrefix(src[i:], "/>"):
			out.WriteString(" />")
			return out.String(), i + 2, true
		case src[i] == '{':
			// spread props such as {...rest} carry nothing we can keep
			end := matchBrace(src, i)
			if end < 0 {
				return "", 0, false
			}
			i = end + 1
			continue
		}

		attrStart := i
		for i < len(src) && !isSpace(src[i]) && src[i] != '=' && src[i] != '>' && !strings.HasPrefix(src[i:], "/>") {
			i++
		}
		name := src[attrStart:i]
		if name == "" {
			// stray character, copy it so the tokenizer can complain
			out.WriteByte(' ')
			out.WriteByte(src[i])
			i++
			continue
		}

		j := i
		for j < len(src) && isSpace(src[j]) {
			j++
		}
		if j >= len(src) || src[j] != '=' {
			out.WriteString(" " + name)
			continue
		}
		j++
		for j < len(src) && isSpace(src[j]) {
			j++
		}
		if j >= len(src) {
			return "", 0, false
		}

		switch src[j] {
		case '"', '\'':
			end := strings.IndexByte(src[j+1:], src[j])
			if end < 0 {
				return "", 0, false
			}
			out.WriteString(" " + name + "=" + src[j:j+end+2])
			i = j + end + 2
		case '{':
			end := matchBrace(src, j)
			if end < 0 {
				return "", 0, false
			}
			if rendered, keep := attrExpression(name, src[j+1:end]); keep {
				out.WriteString(" " + rendered)
			}
			i = end + 1
		default:
			valueStart := j
			for j < len(src) && !isSpace(src[j]) && src[j] != '>' && !strings.HasPrefix(src[j:], "/>") {
				j++
			}
			out.WriteString(" " + name + "=" + src[valueStart:j])
			i = j
		}
	}
}

// attrExpression converts name={expr}. keep is false for {false}.
func attrExpression(name, expr string) (string, bool) {
	inner := strings.TrimSpace(expr)
	switch {
	case inner == "false":
		return "", false
	case inner == "true":
		return name, true
	case numericLiteral.MatchString(inner):
		return name + `="` + inner + `"`, true
	case isStringLiteral(inner):
		return name + `="` + escapeAttr(inner[1:len(inner)-1]) + `"`, true
	case strings.EqualFold(name, "style") && strings.HasPrefix(inner, "{") && strings.HasSuffix(inner, "}"):
		return name + `="` + escapeAttr(cssFromObject(inner[1:len(inner)-1])) + `"`, true
	default:
		return name + `="` + escapeAttr("{"+inner+"}") + `"`, true
	}
}

// matchBrace returns the index of the brace closing the one at src[open],
// skipping quoted strings, or -1.
func matchBrace(src string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isStringLiteral(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	if first != last {
		return false
	}
	switch first {
	case '"', '\'':
		return !strings.ContainsRune(s[1:len(s)-1], rune(first))
	case '`':
		return !strings.Contains(s, "${")
	}
	return false
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '.' || c == ':' || c == '_'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
