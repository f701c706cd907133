package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-ux4g/pkg/markup"
)

// Rule is one structural check. Check must not modify the document.
type Rule struct {
	Name  string
	Check func(*Document) []Issue
}

// Document is the parsed snippet handed to every rule.
type Document struct {
	Roots []*markup.Node

	buttonVariants []string
	labelTargets   map[string]struct{}
}

func newDocument(roots []*markup.Node, buttonVariants []string) *Document {
	doc := &Document{
		Roots:          roots,
		buttonVariants: buttonVariants,
		labelTargets:   make(map[string]struct{}),
	}
	markup.Walk(roots, func(v markup.Visit) {
		if v.Node.Tag != "label" {
			return
		}
		if target, ok := v.Node.Attr("for"); ok && strings.TrimSpace(target) != "" {
			doc.labelTargets[strings.TrimSpace(target)] = struct{}{}
		}
	})
	return doc
}

const (
	ruleButtonVariant = "button-variant"
	ruleModalID       = "modal-id"
	ruleFormControl   = "form-control"
	ruleAltText       = "alt-text"
	ruleRowContainer  = "row-container"
)

// defaultRules is the fixed evaluation order; issues are reported in it.
var defaultRules = []Rule{
	{Name: ruleButtonVariant, Check: checkButtonVariant},
	{Name: ruleModalID, Check: checkModalID},
	{Name: ruleFormControl, Check: checkFormControls},
	{Name: ruleAltText, Check: checkAltText},
	{Name: ruleRowContainer, Check: checkRowContainer},
}

// RuleNames lists the rules in evaluation order.
func RuleNames() []string {
	names := make([]string, len(defaultRules))
	for idx, rule := range defaultRules {
		names[idx] = rule.Name
	}
	return names
}

var (
	formControlClasses = []string{
		"form-control",
		"form-control-plaintext",
		"form-control-color",
		"form-select",
		"form-check-input",
		"form-range",
	}
	nonControlInputTypes = []string{"hidden", "submit", "button", "reset", "image"}
	containerClasses     = []string{
		"container",
		"container-fluid",
		"container-sm",
		"container-md",
		"container-lg",
		"container-xl",
		"container-xxl",
	}
)

func checkButtonVariant(doc *Document) []Issue {
	var issues []Issue
	markup.Walk(doc.Roots, func(v markup.Visit) {
		if !v.Node.HasClass("btn") {
			return
		}
		var variants []string
		for _, class := range v.Node.Classes() {
			if slices.Contains(doc.buttonVariants, class) {
				variants = append(variants, class)
			}
		}
		switch len(variants) {
		case 1:
			return
		case 0:
			issues = append(issues, Issue{
				Code:     CodeMissingButtonVariant,
				Severity: SeverityWarning,
				Message:  "Button should have a variant class (e.g. btn-primary, btn-outline-primary)",
				Path:     v.Path,
				FixHint:  "Add one variant class such as btn-primary or btn-outline-primary",
			})
		default:
			issues = append(issues, Issue{
				Code:     CodeMissingButtonVariant,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Button should have exactly one variant class, found %s", strings.Join(variants, ", ")),
				Path:     v.Path,
				FixHint:  "Keep a single btn-* variant class",
			})
		}
	})
	return issues
}

func checkModalID(doc *Document) []Issue {
	var issues []Issue
	markup.Walk(doc.Roots, func(v markup.Visit) {
		if !v.Node.HasClass("modal") {
			return
		}
		if id, _ := v.Node.Attr("id"); strings.TrimSpace(id) != "" {
			return
		}
		issues = append(issues, Issue{
			Code:     CodeMissingModalID,
			Severity: SeverityError,
			Message:  "Modal should have an id attribute",
			Path:     v.Path,
			FixHint:  "Add an id to the modal and point the trigger's data-bs-target at it",
		})
	})
	return issues
}

func checkFormControls(doc *Document) []Issue {
	var issues []Issue
	markup.Walk(doc.Roots, func(v markup.Visit) {
		node := v.Node
		if !isFormControl(node) {
			return
		}
		if !slices.ContainsFunc(node.Classes(), func(class string) bool {
			return slices.Contains(formControlClasses, class)
		}) {
			hint := "form-control"
			if node.Tag == "select" {
				hint = "form-select"
			}
			issues = append(issues, Issue{
				Code:     CodeMissingFormClass,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s should have a form control class", node.Tag),
				Path:     v.Path,
				FixHint:  fmt.Sprintf("Add the '%s' class to the %s", hint, node.Tag),
			})
		}

		id, _ := node.Attr("id")
		id = strings.TrimSpace(id)
		if _, ok := doc.labelTargets[id]; ok && id != "" {
			return
		}
		message := fmt.Sprintf("%s has no id, so no label can reference it", node.Tag)
		if id != "" {
			message = fmt.Sprintf("Form control with id '%s' should have an associated label", id)
		}
		issues = append(issues, Issue{
			Code:     CodeMissingLabel,
			Severity: SeverityWarning,
			Message:  message,
			Path:     v.Path,
			FixHint:  "Give the control an id and add a <label> whose for attribute matches it",
		})
	})
	return issues
}

func isFormControl(node *markup.Node) bool {
	switch node.Tag {
	case "select", "textarea":
		return true
	case "input":
		kind, _ := node.Attr("type")
		return !slices.Contains(nonControlInputTypes, strings.ToLower(strings.TrimSpace(kind)))
	}
	return false
}

func checkAltText(doc *Document) []Issue {
	var issues []Issue
	markup.Walk(doc.Roots, func(v markup.Visit) {
		if v.Node.Tag != "img" {
			return
		}
		if alt, _ := v.Node.Attr("alt"); strings.TrimSpace(alt) != "" {
			return
		}
		issues = append(issues, Issue{
			Code:     CodeMissingAltText,
			Severity: SeverityWarning,
			Message:  "Image should have alt text for accessibility",
			Path:     v.Path,
			FixHint:  "Add an alt attribute describing the image",
		})
	})
	return issues
}

func checkRowContainer(doc *Document) []Issue {
	var issues []Issue
	markup.Walk(doc.Roots, func(v markup.Visit) {
		if !v.Node.HasClass("row") {
			return
		}
		if slices.ContainsFunc(v.Ancestors, isContainer) {
			return
		}
		issues = append(issues, Issue{
			Code:     CodeRowWithoutContainer,
			Severity: SeverityWarning,
			Message:  "Row should be inside a container or container-fluid",
			Path:     v.Path,
			FixHint:  `Wrap the row in <div class="container"> or <div class="container-fluid">`,
		})
	})
	return issues
}

func isContainer(node *markup.Node) bool {
	return slices.ContainsFunc(node.Classes(), func(class string) bool {
		return slices.Contains(containerClasses, class)
	})
}
