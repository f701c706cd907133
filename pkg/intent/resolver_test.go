package intent_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/errors"
	"github.com/goliatone/go-ux4g/pkg/intent"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

func TestResolve_Scenarios(t *testing.T) {
	resolver := intent.New(nil)

	tests := []struct {
		description string
		want        []intent.Intent
	}{
		{
			description: "primary button labeled Submit",
			want: []intent.Intent{
				{ComponentID: "button", Variant: "primary", Slots: map[string]string{"label": "Submit"}},
			},
		},
		{
			description: "modal with title Confirm and Save button",
			want: []intent.Intent{
				{ComponentID: "modal", Variant: "default", Slots: map[string]string{"title": "Confirm", "action": "Save"}},
			},
		},
		{
			description: "form with email and submit button",
			want: []intent.Intent{
				{
					ComponentID: "form",
					Variant:     "default",
					Children: []intent.Intent{
						{ComponentID: "form-input", Variant: "default", Slots: map[string]string{
							"type": "email", "label": "Email address", "placeholder": "name@example.com",
						}},
						{ComponentID: "button", Variant: "primary", Slots: map[string]string{"type": "submit", "label": "Submit"}},
					},
				},
			},
		},
		{
			description: "login form",
			want: []intent.Intent{
				{
					ComponentID: "form",
					Variant:     "default",
					Children: []intent.Intent{
						{ComponentID: "form-input", Variant: "default"},
						{ComponentID: "button", Variant: "primary", Slots: map[string]string{"type": "submit", "label": "Submit"}},
					},
				},
			},
		},
		{
			description: "signup form with name, email and password fields and a submit button",
			want: []intent.Intent{
				{
					ComponentID: "form",
					Variant:     "default",
					Children: []intent.Intent{
						{ComponentID: "form-input", Variant: "default", Slots: map[string]string{"type": "text", "label": "Full name"}},
						{ComponentID: "form-input", Variant: "default", Slots: map[string]string{
							"type": "email", "label": "Email address", "placeholder": "name@example.com",
						}},
						{ComponentID: "form-input", Variant: "default", Slots: map[string]string{"type": "password", "label": "Password"}},
						{ComponentID: "button", Variant: "primary", Slots: map[string]string{"type": "submit", "label": "Submit"}},
					},
				},
			},
		},
		{
			description: "large red outline button",
			want: []intent.Intent{
				{ComponentID: "button", Variant: "outline-danger", Modifiers: []string{"large"}},
			},
		},
		{
			description: "ghost button",
			want: []intent.Intent{
				{ComponentID: "button", Variant: "outline-primary"},
			},
		},
		{
			description: "outline delete button",
			want: []intent.Intent{
				{ComponentID: "button", Variant: "outline-danger", Slots: map[string]string{"label": "Delete"}},
			},
		},
		{
			description: "extra large modal, vertically centered",
			want: []intent.Intent{
				{ComponentID: "modal", Variant: "extra-large", Modifiers: []string{"centered"}},
			},
		},
		{
			description: "card titled Welcome with a button labeled Go",
			want: []intent.Intent{
				{ComponentID: "card", Variant: "default", Slots: map[string]string{"title": "Welcome", "action": "Go"}},
			},
		},
		{
			description: "Subscribe button",
			want: []intent.Intent{
				{ComponentID: "button", Variant: "primary", Slots: map[string]string{"label": "Subscribe"}},
			},
		},
		{
			description: `success button "Save draft"`,
			want: []intent.Intent{
				{ComponentID: "button", Variant: "success", Slots: map[string]string{"label": "Save draft"}},
			},
		},
		{
			description: "landing page for Ministry of Health",
			want: []intent.Intent{
				{ComponentID: "landing-page", Variant: "success", Slots: map[string]string{"department": "Ministry of Health"}},
			},
		},
		{
			description: "navbar for Ministry of Health",
			want: []intent.Intent{
				{ComponentID: "navbar", Variant: "light", Slots: map[string]string{"brand": "Ministry of Health"}},
			},
		},
		{
			description: "container with a card and an alert",
			want: []intent.Intent{
				{
					ComponentID: "container",
					Variant:     "default",
					Children: []intent.Intent{
						{ComponentID: "card", Variant: "default"},
						{ComponentID: "alert", Variant: "info"},
					},
				},
			},
		},
		{
			description: "email field",
			want: []intent.Intent{
				{ComponentID: "form-input", Variant: "default", Slots: map[string]string{
					"type": "email", "label": "Email address", "placeholder": "name@example.com",
				}},
			},
		},
		{
			description: "text input with placeholder Search here",
			want: []intent.Intent{
				{ComponentID: "form-input", Variant: "default", Slots: map[string]string{"placeholder": "Search here"}},
			},
		},
		{
			description: "button and button",
			want: []intent.Intent{
				{ComponentID: "button", Variant: "primary"},
				{ComponentID: "button", Variant: "primary"},
			},
		},
		{
			description: "dropdown with dark menu",
			want: []intent.Intent{
				{ComponentID: "dropdown", Variant: "secondary", Modifiers: []string{"dark-menu"}},
			},
		},
		{
			description: "striped compact table",
			want: []intent.Intent{
				{ComponentID: "table", Variant: "default", Modifiers: []string{"striped", "small"}},
			},
		},
		{
			description: "grid with two columns",
			want: []intent.Intent{
				{ComponentID: "grid", Variant: "default"},
			},
		},
		{
			description: "row with columns",
			want: []intent.Intent{
				{ComponentID: "grid", Variant: "default"},
			},
		},
		{
			description: "grid with spacious columns",
			want: []intent.Intent{
				{ComponentID: "grid", Variant: "spacious"},
			},
		},
		{
			description: "a primary button and a secondary button",
			want: []intent.Intent{
				{ComponentID: "button", Variant: "primary"},
				{ComponentID: "button", Variant: "secondary"},
			},
		},
		{
			description: "primary and secondary buttons",
			want: []intent.Intent{
				{ComponentID: "button", Variant: "primary"},
				{ComponentID: "button", Variant: "secondary"},
			},
		},
		{
			description: "large red outline buttons",
			want: []intent.Intent{
				{ComponentID: "button", Variant: "outline-danger", Modifiers: []string{"large"}},
			},
		},
		{
			description: "checkbox labeled Remember me",
			want: []intent.Intent{
				{ComponentID: "form-check", Variant: "checkbox", Slots: map[string]string{"label": "Remember me"}},
			},
		},
		{
			description: "card with title Hello and a Read more button",
			want: []intent.Intent{
				{ComponentID: "card", Variant: "default", Slots: map[string]string{"title": "Hello", "action": "Read more"}},
			},
		},
		{
			description: "button labeled Send it to the form",
			want: []intent.Intent{
				{ComponentID: "button", Variant: "primary", Slots: map[string]string{"label": "Send it"}},
				{
					ComponentID: "form",
					Variant:     "default",
					Children: []intent.Intent{
						{ComponentID: "form-input", Variant: "default"},
						{ComponentID: "button", Variant: "primary", Slots: map[string]string{"type": "submit", "label": "Submit"}},
					},
				},
			},
		},
		{
			description: "button labeled <script>alert(1)</script>",
			want: []intent.Intent{
				{ComponentID: "button", Variant: "primary"},
			},
		},
		{
			description: `button labeled "Save &amp; exit"`,
			want: []intent.Intent{
				{ComponentID: "button", Variant: "primary", Slots: map[string]string{"label": "Save & exit"}},
			},
		},
		{
			description: `toggle switch labeled "Dark mode"`,
			want: []intent.Intent{
				{ComponentID: "form-check", Variant: "switch", Slots: map[string]string{"label": "Dark mode"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, err := resolver.Resolve(tt.description, markup.HTML)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got.Syntax != markup.HTML || got.Description != tt.description {
				t.Fatalf("resolution metadata mismatch: %+v", got)
			}
			if diff := cmp.Diff(tt.want, got.Intents, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("intents mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_Unresolved(t *testing.T) {
	resolver := intent.New(nil)

	for _, description := range []string{"", "   ", "purple unicorn", "make it pop"} {
		_, err := resolver.Resolve(description, markup.JSX)
		if !errors.Is(err, errors.ErrUnresolvedIntent) {
			t.Fatalf("%q: expected unresolved intent, got %v", description, err)
		}
		var unresolved *errors.UnresolvedIntentError
		if !errors.As(err, &unresolved) {
			t.Fatalf("%q: expected *UnresolvedIntentError", description)
		}
		if len(unresolved.Candidates) != 5 {
			t.Fatalf("%q: expected five candidates, got %v", description, unresolved.Candidates)
		}
	}
}

func TestResolve_UnresolvedRanksPartialMatchesFirst(t *testing.T) {
	reg := catalog.Default()
	_, err := intent.New(reg).Resolve("something red", markup.HTML)

	var unresolved *errors.UnresolvedIntentError
	require.True(t, errors.As(err, &unresolved))
	require.Len(t, unresolved.Candidates, 5)
	for _, id := range unresolved.Candidates {
		def, err := reg.Get(id)
		require.NoError(t, err)
		require.True(t, def.HasVariant("danger"), "%s should understand the danger variant", id)
	}
	require.Equal(t, "ux4g", reg.Name())
	require.NotEmpty(t, errors.GetAllHints(err))
}

func TestResolve_RejectsUnknownSyntax(t *testing.T) {
	_, err := intent.New(nil).Resolve("button", markup.Syntax("vue"))
	require.Error(t, err)
	require.False(t, errors.Is(err, errors.ErrUnresolvedIntent))
}

func TestResolve_DefaultsToHTML(t *testing.T) {
	got, err := intent.New(nil).Resolve("badge", "")
	require.NoError(t, err)
	require.Equal(t, markup.HTML, got.Syntax)
	require.Equal(t, []string{"badge"}, got.ComponentIDs())
}

func TestResolution_ComponentIDs(t *testing.T) {
	got, err := intent.New(nil).Resolve("form with email and submit button, then a red alert", markup.HTML)
	require.NoError(t, err)
	require.Equal(t, []string{"form", "form-input", "button", "alert"}, got.ComponentIDs())
	require.Equal(t, "danger", got.Intents[1].Variant)
}

func TestIntent_CloneIsDeep(t *testing.T) {
	original := intent.Intent{
		ComponentID: "form",
		Slots:       map[string]string{"a": "b"},
		Children:    []intent.Intent{{ComponentID: "button", Modifiers: []string{"large"}}},
	}
	clone := original.Clone()
	clone.Slots["a"] = "changed"
	clone.Children[0].Modifiers[0] = "small"

	require.Equal(t, "b", original.Slots["a"])
	require.Equal(t, "large", original.Children[0].Modifiers[0])
}

// Every intent produced from arbitrary vocabulary soup names a registered
// component and one of its declared variants, and every modifier exists.
func TestResolve_IntentsAreAlwaysWellFormed(t *testing.T) {
	reg := catalog.Default()
	resolver := intent.New(reg)

	words := []string{
		"button", "modal", "form", "card", "alert", "badge", "navbar", "table", "image", "grid",
		"container", "dropdown", "spinner", "progress", "breadcrumb", "email", "password", "field",
		"submit", "delete", "save", "switch", "landing", "page", "primary", "danger", "outline",
		"ghost", "red", "large", "small", "centered", "striped", "dark", "fluid", "thumbnail",
		"and", "with", "then", ",", "labeled", "title", "for", "Submit", "Confirm", "Ministry",
		"of", "Health", `"Go now"`, "the", "a", "unicorn",
	}

	rapid.Check(t, func(rt *rapid.T) {
		parts := rapid.SliceOfN(rapid.SampledFrom(words), 1, 10).Draw(rt, "words")
		description := strings.Join(parts, " ")

		res, err := resolver.Resolve(description, markup.HTML)
		if err != nil {
			require.ErrorIs(rt, err, errors.ErrUnresolvedIntent)
			return
		}
		require.NotEmpty(rt, res.Intents)

		var check func([]intent.Intent)
		check = func(intents []intent.Intent) {
			for _, in := range intents {
				def, err := reg.Get(in.ComponentID)
				require.NoError(rt, err)
				require.True(rt, def.HasVariant(in.Variant), "%s has no variant %q", in.ComponentID, in.Variant)
				for _, name := range in.Modifiers {
					_, ok := def.Modifier(name)
					require.True(rt, ok, "%s has no modifier %q", in.ComponentID, name)
				}
				check(in.Children)
			}
		}
		check(res.Intents)
	})
}

// Resolution is a pure function of its input.
func TestResolve_IsDeterministic(t *testing.T) {
	resolver := intent.New(nil)
	first, err := resolver.Resolve("form with email and submit button", markup.JSX)
	require.NoError(t, err)
	for range 20 {
		again, err := resolver.Resolve("form with email and submit button", markup.JSX)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}
