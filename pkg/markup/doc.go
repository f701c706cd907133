// Package markup converts UX4G snippets between text and a small element tree.
//
// Two output syntaxes are supported: plain HTML and component-oriented JSX. The
// tree always stores canonical HTML attribute names (class, for, tabindex);
// the serializer maps them to className, htmlFor, tabIndex and friends when
// writing JSX and never mixes the two vocabularies within one output.
//
// Parsing is strict: a stray or mismatched closing tag, an element left open at
// the end of the input, or input that ends inside a tag is reported as an
// *errors.ParseError with a 1-based line and column. Comments and doctypes are
// dropped, whitespace-only text is ignored, and other text is trimmed, so
// Render(Parse(x)) is a canonical form of x.
package markup
