package markup

import (
	"fmt"
	"strings"
)

// Syntax selects the attribute vocabulary and layout used by the serializer.
type Syntax string

const (
	// HTML is plain markup.
	HTML Syntax = "html"
	// JSX is React-compatible markup (className, htmlFor, self-closed voids).
	JSX Syntax = "jsx"
)

// Syntaxes lists the supported syntaxes in a stable order.
func Syntaxes() []Syntax {
	return []Syntax{HTML, JSX}
}

// ParseSyntax accepts the names callers commonly use for the two syntaxes.
func ParseSyntax(value string) (Syntax, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "html", "markup", "plain":
		return HTML, nil
	case "jsx", "react", "tsx":
		return JSX, nil
	default:
		return "", fmt.Errorf("markup: unknown syntax %q (want html or jsx)", value)
	}
}

// Valid reports whether s is one of the supported syntaxes.
func (s Syntax) Valid() bool {
	return s == HTML || s == JSX
}

func (s Syntax) String() string {
	return string(s)
}

// DetectSyntax guesses the syntax of code. JSX wins when the code uses JSX
// attribute names, JSX comments or a fragment; everything else is HTML.
func DetectSyntax(code string) Syntax {
	trimmed := strings.TrimSpace(code)
	switch {
	case strings.Contains(code, "className="),
		strings.Contains(code, "htmlFor="),
		strings.Contains(code, "{/*"),
		strings.HasPrefix(trimmed, "<>"):
		return JSX
	}
	return HTML
}

var jsxAttrNames = map[string]string{
	"class":           "className",
	"for":             "htmlFor",
	"tabindex":        "tabIndex",
	"readonly":        "readOnly",
	"maxlength":       "maxLength",
	"minlength":       "minLength",
	"contenteditable": "contentEditable",
	"spellcheck":      "spellCheck",
	"autocomplete":    "autoComplete",
	"autofocus":       "autoFocus",
	"srcset":          "srcSet",
	"colspan":         "colSpan",
	"rowspan":         "rowSpan",
	"crossorigin":     "crossOrigin",
	"referrerpolicy":  "referrerPolicy",
	"allowfullscreen": "allowFullScreen",
	"http-equiv":      "httpEquiv",
	"formnovalidate":  "formNoValidate",
	"novalidate":      "noValidate",
	"playsinline":     "playsInline",
	"enctype":         "encType",
	"inputmode":       "inputMode",
	"datetime":        "dateTime",
	"accesskey":       "accessKey",
	"charset":         "charSet",
}

// canonicalAttrNames maps lower-cased JSX names back to HTML names. The
// tokenizer lower-cases attribute keys, so className arrives as classname.
var canonicalAttrNames = func() map[string]string {
	out := make(map[string]string, len(jsxAttrNames))
	for canonical, jsx := range jsxAttrNames {
		out[strings.ToLower(jsx)] = canonical
	}
	return out
}()

var voidTags = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "param": {}, "source": {}, "track": {}, "wbr": {},
}

var booleanAttrs = map[string]struct{}{
	"allowfullscreen": {}, "async": {}, "autofocus": {}, "autoplay": {}, "checked": {},
	"controls": {}, "default": {}, "defer": {}, "disabled": {}, "formnovalidate": {},
	"hidden": {}, "loop": {}, "multiple": {}, "muted": {}, "novalidate": {}, "open": {},
	"playsinline": {}, "readonly": {}, "required": {}, "reversed": {}, "selected": {},
}

// AttrName returns the attribute name used by syntax for a canonical name.
func AttrName(canonical string, syntax Syntax) string {
	if syntax != JSX {
		return canonical
	}
	if strings.HasPrefix(canonical, "data-") || strings.HasPrefix(canonical, "aria-") {
		return canonical
	}
	if jsx, ok := jsxAttrNames[canonical]; ok {
		return jsx
	}
	return canonical
}

// CanonicalAttrName maps an attribute name from either syntax to its HTML
// form.
func CanonicalAttrName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := canonicalAttrNames[lower]; ok {
		return canonical
	}
	return lower
}

// IsVoid reports whether tag never has children.
func IsVoid(tag string) bool {
	_, ok := voidTags[strings.ToLower(tag)]
	return ok
}

// IsBooleanAttr reports whether the canonical attribute is a boolean flag.
func IsBooleanAttr(name string) bool {
	_, ok := booleanAttrs[strings.ToLower(name)]
	return ok
}
