// Package validation checks markup against the UX4G structural rules.
//
// Rules run in a fixed order (button variant, modal id, form control and
// label pairing, image alt text, row container) and every rule sees the
// same read-only tree, so the issue list is deterministic. Only
// error-severity issues make a snippet invalid.
package validation
