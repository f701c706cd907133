package prompt

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/intent"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

// Plan is what the wizard collected: either a free-text description or an
// explicit intent, plus the output syntax.
type Plan struct {
	Description string
	Intent      *intent.Intent
	Syntax      markup.Syntax
}

const (
	modeDescribe = "Describe it in words"
	modePick     = "Pick a component from the catalog"
)

// Wizard asks what to generate.
type Wizard struct {
	driver   Driver
	registry *catalog.Registry
}

// NewWizard builds a wizard over registry.
func NewWizard(driver Driver, registry *catalog.Registry) *Wizard {
	return &Wizard{driver: driver, registry: registry}
}

// Run walks the prompts. defaultSyntax preselects the syntax question.
func (w *Wizard) Run(ctx context.Context, defaultSyntax markup.Syntax) (Plan, error) {
	mode, err := w.driver.Select(ctx, SelectConfig{
		Message: "How do you want to build the snippet?",
		Options: []string{modeDescribe, modePick},
	})
	if err != nil {
		return Plan{}, err
	}

	var plan Plan
	switch mode {
	case 0:
		plan.Description, err = w.driver.Input(ctx, InputConfig{
			Message:   "Description",
			Help:      `For example: "form with email and password fields and a submit button"`,
			Validator: required,
		})
		plan.Description = strings.TrimSpace(plan.Description)
	case 1:
		var in intent.Intent
		in, err = w.pickComponent(ctx)
		plan.Intent = &in
	default:
		return Plan{}, fmt.Errorf("prompt: unexpected choice %d", mode)
	}
	if err != nil {
		return Plan{}, err
	}

	plan.Syntax, err = w.pickSyntax(ctx, defaultSyntax)
	return plan, err
}

func (w *Wizard) pickComponent(ctx context.Context) (intent.Intent, error) {
	defs := w.registry.Ordered()
	options := make([]string, len(defs))
	for idx, def := range defs {
		options[idx] = fmt.Sprintf("%s (%s)", def.Name, def.ID)
	}
	choice, err := w.driver.Select(ctx, SelectConfig{Message: "Component", Options: options, PageSize: 15})
	if err != nil {
		return intent.Intent{}, err
	}
	if choice < 0 || choice >= len(defs) {
		return intent.Intent{}, fmt.Errorf("prompt: unexpected choice %d", choice)
	}
	def := defs[choice]
	in := intent.Intent{ComponentID: def.ID}

	if names := def.VariantNames(); len(names) > 0 {
		idx, err := w.driver.Select(ctx, SelectConfig{
			Message:      "Variant",
			Options:      names,
			DefaultIndex: max(0, slices.Index(names, def.DefaultVariant)),
		})
		if err != nil {
			return intent.Intent{}, err
		}
		if idx >= 0 && idx < len(names) {
			in.Variant = names[idx]
		}
	}

	if len(def.Modifiers) > 0 {
		names := make([]string, len(def.Modifiers))
		for idx, modifier := range def.Modifiers {
			names[idx] = modifier.Name
		}
		picked, err := w.driver.MultiSelect(ctx, SelectConfig{Message: "Modifiers", Options: names})
		if err != nil {
			return intent.Intent{}, err
		}
		for _, idx := range picked {
			if idx >= 0 && idx < len(names) {
				in.Modifiers = append(in.Modifiers, names[idx])
			}
		}
	}

	if def.TextSlot != "" {
		text, err := w.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("Text for %s (empty keeps the default)", def.TextSlot),
		})
		if err != nil {
			return intent.Intent{}, err
		}
		if text = strings.TrimSpace(text); text != "" {
			in.Slots = map[string]string{def.TextSlot: text}
		}
	}
	return in, nil
}

func (w *Wizard) pickSyntax(ctx context.Context, defaultSyntax markup.Syntax) (markup.Syntax, error) {
	syntaxes := markup.Syntaxes()
	options := make([]string, len(syntaxes))
	for idx, syntax := range syntaxes {
		options[idx] = syntax.String()
	}
	idx, err := w.driver.Select(ctx, SelectConfig{
		Message:      "Output syntax",
		Options:      options,
		DefaultIndex: max(0, slices.Index(options, defaultSyntax.String())),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(syntaxes) {
		return defaultSyntax, nil
	}
	return syntaxes[idx], nil
}

func required(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}
