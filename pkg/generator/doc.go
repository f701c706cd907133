// Package generator instantiates catalog templates for resolved intents and
// serializes them in the requested syntax.
//
// Every call owns an IDSequence, so label/control pairs and modal triggers
// reference identifiers that are unique within the output and independent of
// any other call:
//
//	gen := generator.New(nil)
//	result, err := gen.Generate("form with email and submit button", markup.HTML)
//
// Emitted classes come only from the templates, variants and modifiers of the
// components involved.
package generator
