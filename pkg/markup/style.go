package markup

import (
	"strings"
	"unicode"
)

// styleToJSX turns an inline CSS declaration list into a JSX style object
// expression, e.g. "margin-top: 4px" -> {{ marginTop: "4px" }}.
func styleToJSX(css string) string {
	var decls []string
	for _, part := range strings.Split(css, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop, value = strings.TrimSpace(prop), strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		key := kebabToCamel(prop)
		if strings.HasPrefix(prop, "--") {
			key = `"` + prop + `"`
		}
		decls = append(decls, key+`: "`+strings.ReplaceAll(value, `"`, `\"`)+`"`)
	}
	if len(decls) == 0 {
		return ""
	}
	return "{{ " + strings.Join(decls, ", ") + " }}"
}

// cssFromObject is the inverse of styleToJSX for the body of an object
// literal.
func cssFromObject(body string) string {
	var decls []string
	for _, entry := range splitTopLevel(body, ',') {
		key, value, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if isStringLiteral(key) {
			key = key[1 : len(key)-1]
		} else {
			key = camelToKebab(key)
		}
		if isStringLiteral(value) {
			value = value[1 : len(value)-1]
		}
		if key == "" || value == "" {
			continue
		}
		decls = append(decls, key+": "+value)
	}
	return strings.Join(decls, "; ")
}

func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var quote byte
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == sep:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}

func kebabToCamel(prop string) string {
	parts := strings.Split(prop, "-")
	var b strings.Builder
	for idx, part := range parts {
		if part == "" {
			continue
		}
		if b.Len() == 0 || idx == 0 {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}

func camelToKebab(key string) string {
	var b strings.Builder
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
