package catalog_test

import (
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/errors"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	reg := catalog.Default()
	require.NotNil(t, reg)

	assert.Equal(t, "ux4g", reg.Name())
	assert.Equal(t, "2.0.8", reg.Version())
	assert.Equal(t, []string{
		"alert", "badge", "breadcrumb", "button", "card", "container", "dropdown",
		"form", "form-check", "form-input", "form-select", "form-textarea", "grid",
		"image", "landing-page", "modal", "navbar", "progress", "spinner", "table",
	}, reg.IDs())
	assert.Same(t, reg, catalog.Default(), "Default should build the registry once")
}

func TestDefault_EveryDefinitionHasBothSyntaxes(t *testing.T) {
	for _, def := range catalog.Default().List(catalog.Filter{}) {
		assert.Equal(t, markup.Syntaxes(), def.SupportedSyntaxes(), def.ID)
		assert.True(t, def.HasVariant(def.DefaultVariant), def.ID)
	}
}

func TestGet_KnownIDs(t *testing.T) {
	reg := catalog.Default()
	rapid.Check(t, func(rt *rapid.T) {
		id := rapid.SampledFrom(reg.IDs()).Draw(rt, "id")
		def, err := reg.Get(id)
		require.NoError(rt, err)
		require.Equal(rt, id, def.ID)
	})
}

func TestGet_UnknownIDs(t *testing.T) {
	reg := catalog.Default()
	rapid.Check(t, func(rt *rapid.T) {
		id := rapid.StringMatching(`[a-z][a-z-]{0,14}`).Draw(rt, "id")
		if slices.Contains(reg.IDs(), id) {
			rt.Skip("drew a known id")
		}
		def, err := reg.Get(id)
		require.Nil(rt, def)
		require.ErrorIs(rt, err, errors.ErrUnknownComponent)

		var unknown *errors.UnknownComponentError
		require.True(rt, errors.As(err, &unknown))
		require.Equal(rt, id, unknown.ID)
	})
}

func TestGet_SuggestsNearestIDs(t *testing.T) {
	_, err := catalog.Default().Get("buton")
	require.Error(t, err)

	var unknown *errors.UnknownComponentError
	require.True(t, errors.As(err, &unknown))
	require.NotEmpty(t, unknown.Suggestions)
	assert.Equal(t, "button", unknown.Suggestions[0])
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestGet_MatchesIDsExactly(t *testing.T) {
	reg := catalog.Default()

	def, err := reg.Get("modal")
	require.NoError(t, err)
	assert.Equal(t, "modal", def.ID)

	for _, id := range []string{"Modal", "  modal ", "MODAL"} {
		_, err := reg.Get(id)
		var unknown *errors.UnknownComponentError
		require.True(t, errors.As(err, &unknown), id)
		assert.Equal(t, id, unknown.ID)
		require.NotEmpty(t, unknown.Suggestions, id)
		assert.Equal(t, "modal", unknown.Suggestions[0], id)

		_, ok := reg.Lookup(id)
		assert.False(t, ok, id)
	}
}

func TestList_FilterIsSoundAndExhaustive(t *testing.T) {
	reg := catalog.Default()
	all := reg.List(catalog.Filter{})

	var categories, tags []string
	for _, def := range all {
		if !slices.Contains(categories, def.Category) {
			categories = append(categories, def.Category)
		}
		for _, tag := range def.Tags {
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
	}
	categories = append(categories, "", "missing")
	tags = append(tags, "", "missing")

	rapid.Check(t, func(rt *rapid.T) {
		filter := catalog.Filter{
			Category: rapid.SampledFrom(categories).Draw(rt, "category"),
			Tag:      rapid.SampledFrom(tags).Draw(rt, "tag"),
			Kind:     rapid.SampledFrom([]string{"", catalog.KindLayout, catalog.KindComponent}).Draw(rt, "kind"),
		}
		switch rapid.IntRange(0, 2).Draw(rt, "requiresJS") {
		case 1:
			filter.RequiresJS = ptr(true)
		case 2:
			filter.RequiresJS = ptr(false)
		}

		got := reg.List(filter)
		require.NotNil(rt, got)
		require.True(rt, sort.SliceIsSorted(got, func(i, j int) bool { return got[i].ID < got[j].ID }))

		var want []string
		for _, def := range all {
			matches := (filter.Category == "" || def.Category == filter.Category) &&
				(filter.Tag == "" || slices.Contains(def.Tags, filter.Tag)) &&
				(filter.RequiresJS == nil || def.RequiresJS == *filter.RequiresJS) &&
				(filter.Kind == "" || def.Kind() == filter.Kind)
			if matches {
				want = append(want, def.ID)
			}
		}
		gotIDs := make([]string, 0, len(got))
		for _, def := range got {
			gotIDs = append(gotIDs, def.ID)
		}
		require.Equal(rt, len(want), len(gotIDs))
		require.ElementsMatch(rt, want, gotIDs)
	})
}

func TestList_Scenarios(t *testing.T) {
	reg := catalog.Default()

	js := reg.List(catalog.Filter{RequiresJS: ptr(true)})
	assert.Equal(t, []string{"dropdown", "landing-page", "modal", "navbar"}, ids(js))

	layout := reg.List(catalog.Filter{Kind: catalog.KindLayout})
	assert.Equal(t, []string{"container", "grid"}, ids(layout))

	dialogs := reg.List(catalog.Filter{Tag: "Dialog"})
	assert.Equal(t, []string{"modal"}, ids(dialogs))

	none := reg.List(catalog.Filter{Category: "nothing"})
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestVocabulary_CoversTemplateVariantAndModifierClasses(t *testing.T) {
	reg := catalog.Default()

	vocab := reg.Vocabulary("button")
	for _, class := range []string{"btn", "btn-primary", "btn-outline-dark", "btn-lg", "w-100"} {
		assert.Contains(t, vocab, class)
	}
	assert.NotContains(t, vocab, "modal")
	assert.True(t, sort.StringsAreSorted(vocab))

	modal := reg.Vocabulary("modal")
	for _, class := range []string{"modal", "modal-dialog", "modal-lg", "modal-dialog-centered", "btn-close"} {
		assert.Contains(t, modal, class)
	}

	assert.Empty(t, reg.Vocabulary("missing"))
	assert.Subset(t, reg.Vocabulary(), append(vocab, modal...))
}

func TestVariantClasses(t *testing.T) {
	reg := catalog.Default()
	assert.Equal(t, []string{"modal-sm", "modal-lg", "modal-xl", "modal-fullscreen"}, reg.VariantClasses("modal"))
	assert.Contains(t, reg.VariantClasses("button"), "btn-outline-primary")
	assert.Nil(t, reg.VariantClasses("missing"))
}

func TestTokens_FilterByType(t *testing.T) {
	reg := catalog.Default()

	colors := reg.Tokens("color")
	require.NotEmpty(t, colors)
	for _, token := range colors {
		assert.Equal(t, "color", token.Type)
	}
	assert.Equal(t, "#613AF5", colors[0].Value)
	assert.Len(t, reg.Tokens("all"), len(reg.Tokens("")))
	assert.Empty(t, reg.Tokens("shadow-depth"))
	assert.Equal(t, []string{"color", "spacing", "typography", "radius", "breakpoint"}, reg.TokenTypes())
}

func TestIdentify_UsesSignatures(t *testing.T) {
	reg := catalog.Default()
	nodes := markup.MustParse(`<div class="container"><div class="row"><input class="form-control" id="a"><textarea class="form-control"></textarea></div></div>`, markup.HTML)

	assert.Equal(t, []string{"container", "grid", "form-input", "form-textarea"}, reg.Recognise(nodes))
	assert.Empty(t, reg.Identify(markup.Text("btn")))
}

func TestUtilityGroupOf(t *testing.T) {
	reg := catalog.Default()

	group, ok := reg.UtilityGroupOf("mt-3")
	require.True(t, ok)
	assert.Equal(t, "margin-top", group.Group)
	assert.True(t, group.Exclusive)

	_, ok = reg.UtilityGroupOf("btn")
	assert.False(t, ok)
}

func TestAssetURL(t *testing.T) {
	reg := catalog.Default()
	assert.Equal(t, "https://cdn.jsdelivr.net/npm/ux4g@2.0.8/dist/css/ux4g.min.css", reg.AssetURL("ux4g.min.css"))
	assert.Equal(t, "custom.css", reg.AssetURL("custom.css"))
}

func TestLexicon(t *testing.T) {
	lex := catalog.Default().Lexicon()
	assert.Equal(t, "danger", lex.Canonical("Red"))
	assert.Equal(t, "button", lex.Canonical("button"))
	assert.Contains(t, lex.Synonyms("outline"), "ghost")
	assert.True(t, lex.IsStopWord("the"))
	assert.True(t, lex.IsClauseBreak("with"))
	assert.False(t, lex.IsClauseBreak("button"))
}

func ids(defs []*catalog.ComponentDefinition) []string {
	out := make([]string, 0, len(defs))
	for _, def := range defs {
		out = append(out, def.ID)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
