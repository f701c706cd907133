package intent

import (
	"maps"
	"slices"

	"github.com/goliatone/go-ux4g/pkg/markup"
)

// Intent is a resolved request for one catalog component. Variant is always a
// declared variant of the component.
type Intent struct {
	ComponentID string            `json:"componentId"`
	Variant     string            `json:"variant"`
	Slots       map[string]string `json:"slots,omitempty"`
	Modifiers   []string          `json:"modifiers,omitempty"`
	Children    []Intent          `json:"children,omitempty"`
}

// Clone deep-copies the intent.
func (i Intent) Clone() Intent {
	out := Intent{
		ComponentID: i.ComponentID,
		Variant:     i.Variant,
		Slots:       maps.Clone(i.Slots),
		Modifiers:   slices.Clone(i.Modifiers),
	}
	if len(i.Children) > 0 {
		out.Children = make([]Intent, len(i.Children))
		for idx, child := range i.Children {
			out.Children[idx] = child.Clone()
		}
	}
	return out
}

// Resolution is the ordered list of top-level intents for a description.
type Resolution struct {
	Description string        `json:"description"`
	Syntax      markup.Syntax `json:"syntax"`
	Intents     []Intent      `json:"intents"`
}

// ComponentIDs lists every component involved, depth first, without repeats.
func (r Resolution) ComponentIDs() []string {
	var out []string
	var visit func([]Intent)
	visit = func(intents []Intent) {
		for _, in := range intents {
			if !slices.Contains(out, in.ComponentID) {
				out = append(out, in.ComponentID)
			}
			visit(in.Children)
		}
	}
	visit(r.Intents)
	return out
}
