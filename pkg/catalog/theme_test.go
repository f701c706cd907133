package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-ux4g/pkg/catalog"
)

func TestThemeManifest(t *testing.T) {
	manifest := catalog.Default().ThemeManifest()

	assert.Equal(t, "ux4g", manifest.Name)
	assert.Equal(t, "2.0.8", manifest.Version)
	assert.Equal(t, "#613AF5", manifest.Tokens["primary"])
	assert.Equal(t, "#8B6CF7", manifest.Variants[catalog.DarkVariant].Tokens["primary"])
	assert.NotContains(t, manifest.Variants[catalog.DarkVariant].Tokens, "spacing-1")
	assert.True(t, strings.HasPrefix(manifest.Templates["components.button"], "<button"))
	assert.Equal(t, "css/ux4g.min.css", manifest.Assets.Files["ux4g.min.css"])
}

func TestThemeSelector_SelectAndConfigure(t *testing.T) {
	reg := catalog.Default()
	selector, err := catalog.NewThemeSelector(reg, "")
	require.NoError(t, err)

	base, err := selector.Select("", "")
	require.NoError(t, err)
	assert.Equal(t, "ux4g", base.Theme)
	assert.Empty(t, base.Variant)

	cfg := reg.RendererConfig(base)
	require.NotNil(t, cfg)
	assert.Equal(t, "#613AF5", cfg.Tokens["primary"])
	assert.Equal(t, "#613AF5", cfg.CSSVars["--ux4g-primary"])
	require.NotNil(t, cfg.AssetURL)
	assert.Equal(t, "https://cdn.jsdelivr.net/npm/ux4g@2.0.8/dist/js/ux4g.bundle.min.js", cfg.AssetURL("ux4g.bundle.min.js"))
	assert.Empty(t, cfg.AssetURL("missing.css"))

	dark, err := selector.Select("ux4g", catalog.DarkVariant)
	require.NoError(t, err)
	darkCfg := reg.RendererConfig(dark)
	assert.Equal(t, catalog.DarkVariant, darkCfg.Variant)
	assert.Equal(t, "#8B6CF7", darkCfg.Tokens["primary"])
	assert.Equal(t, "#8B6CF7", darkCfg.CSSVars["--ux4g-primary"])
	assert.Equal(t, base.Manifest.Tokens["spacing-1"], darkCfg.Tokens["spacing-1"])
	assert.Equal(t, "#613AF5", base.Manifest.Tokens["primary"], "selections must not mutate the manifest")
}

func TestThemeSelector_Errors(t *testing.T) {
	reg := catalog.Default()

	_, err := catalog.NewThemeSelector(reg, "sepia")
	require.Error(t, err)

	selector, err := catalog.NewThemeSelector(reg, catalog.DarkVariant)
	require.NoError(t, err)

	sel, err := selector.Select("", "")
	require.NoError(t, err)
	assert.Equal(t, catalog.DarkVariant, sel.Variant)

	_, err = selector.Select("bootstrap", "")
	require.Error(t, err)
	_, err = selector.Select("", "sepia")
	require.Error(t, err)

	assert.Nil(t, reg.RendererConfig(nil))
}
