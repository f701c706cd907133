package markup

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-ux4g/pkg/errors"
)

// rawTextSelfClosing matches self-closed raw-text elements. The tokenizer
// switches to raw text after their start tag even when written as <x />, so
// they are expanded to an explicit empty pair first.
var rawTextSelfClosing = regexp.MustCompile(`(?is)<(textarea|title|script|style|iframe|noscript|xmp)(\s[^<>]*?)?\s*/>`)

// Parse converts code into its root nodes. Empty input returns
// errors.ErrEmptyCode and malformed input an *errors.ParseError.
func Parse(code string, syntax Syntax) ([]*Node, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.ErrEmptyCode
	}
	src := code
	if syntax == JSX {
		src = normalizeJSX(src)
	}
	src = rawTextSelfClosing.ReplaceAllString(src, "<$1$2></$1>")

	b := &treeBuilder{src: src}
	z := html.NewTokenizer(strings.NewReader(src))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return nil, b.errorAt(offset, err.Error())
			}
			if offset < len(src) {
				return nil, b.errorAt(offset, "unexpected end of input inside tag")
			}
			break
		}

		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.TextToken:
			b.text(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			node := Element(string(name))
			for hasAttr {
				var key, value []byte
				key, value, hasAttr = z.TagAttr()
				node.Attrs = append(node.Attrs, Attr{Name: CanonicalAttrName(string(key)), Value: string(value)})
			}
			b.open(node, start, tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			name, _ := z.TagName()
			if err := b.close(string(name), start); err != nil {
				return nil, err
			}
		}
	}

	if err := b.finish(); err != nil {
		return nil, err
	}
	if len(b.roots) == 0 {
		return nil, errors.ErrEmptyCode
	}
	return b.roots, nil
}

// MustParse panics when code does not parse. Intended for fixtures.
func MustParse(code string, syntax Syntax) []*Node {
	nodes, err := Parse(code, syntax)
	if err != nil {
		panic(err)
	}
	return nodes
}

type openElement struct {
	node   *Node
	offset int
}

type treeBuilder struct {
	src   string
	roots []*Node
	stack []openElement
}

func (b *treeBuilder) append(node *Node) {
	if len(b.stack) == 0 {
		b.roots = append(b.roots, node)
		return
	}
	parent := b.stack[len(b.stack)-1].node
	parent.Children = append(parent.Children, node)
}

func (b *treeBuilder) text(value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	b.append(Text(trimmed))
}

func (b *treeBuilder) open(node *Node, offset int, selfClosing bool) {
	b.append(node)
	if selfClosing || IsVoid(node.Tag) {
		return
	}
	b.stack = append(b.stack, openElement{node: node, offset: offset})
}

func (b *treeBuilder) close(tag string, offset int) error {
	if IsVoid(tag) {
		return nil
	}
	if len(b.stack) == 0 {
		return b.errorAt(offset, "unexpected closing tag </"+tag+">")
	}
	top := b.stack[len(b.stack)-1]
	if top.node.Tag != tag {
		return b.errorAt(offset, "mismatched closing tag </"+tag+">, expected </"+top.node.Tag+">")
	}
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func (b *treeBuilder) finish() error {
	if len(b.stack) == 0 {
		return nil
	}
	innermost := b.stack[len(b.stack)-1]
	return b.errorAt(innermost.offset, "unclosed <"+innermost.node.Tag+">")
}

func (b *treeBuilder) errorAt(offset int, message string) error {
	line, column := position(b.src, offset)
	return &errors.ParseError{Line: line, Column: column, Message: message}
}

func position(src string, offset int) (int, int) {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	column := offset - strings.LastIndex(before, "\n")
	return line, column
}
