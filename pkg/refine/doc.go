// Package refine applies one bounded edit to existing markup.
//
// A change request is matched against a priority-ordered set of operations:
// replacing slot text, toggling a boolean attribute, adding or removing a
// known class, swapping the variant, adding or removing a modifier and
// converting the syntax. The edit is scoped to the components recognised in
// the markup, preferring the one the request names. A request no operation
// recognises fails with errors.OperationUnsupportedError.
package refine
