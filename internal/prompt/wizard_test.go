package prompt

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/intent"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	multiIdx  [][]int
	asked     []string
	inputPos  int
	selectPos int
	multiPos  int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.asked = append(s.asked, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	if val < 0 {
		return cfg.DefaultIndex, nil
	}
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.asked = append(s.asked, cfg.Message)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func TestWizard_Describe(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0, 1},
		inputs:    []string{"  primary button labeled Submit "},
	}
	plan, err := NewWizard(driver, catalog.Default()).Run(context.Background(), markup.HTML)
	require.NoError(t, err)
	require.Equal(t, Plan{Description: "primary button labeled Submit", Syntax: markup.JSX}, plan)
}

func TestWizard_PickComponent(t *testing.T) {
	reg := catalog.Default()
	button := slices.IndexFunc(reg.Ordered(), func(def *catalog.ComponentDefinition) bool { return def.ID == "button" })
	require.GreaterOrEqual(t, button, 0)
	def, err := reg.Get("button")
	require.NoError(t, err)
	danger := slices.Index(def.VariantNames(), "danger")

	driver := &stubDriver{
		// mode, component, variant, syntax (default)
		selectIdx: []int{1, button, danger, -1},
		multiIdx:  [][]int{{0}},
		inputs:    []string{"Delete"},
	}
	plan, err := NewWizard(driver, reg).Run(context.Background(), markup.JSX)
	require.NoError(t, err)

	want := Plan{
		Intent: &intent.Intent{
			ComponentID: "button",
			Variant:     "danger",
			Modifiers:   []string{"large"},
			Slots:       map[string]string{"label": "Delete"},
		},
		Syntax: markup.JSX,
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{
		"How do you want to build the snippet?", "Component", "Variant", "Modifiers",
		"Text for label (empty keeps the default)", "Output syntax",
	}, driver.asked)
}

func TestWizard_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewWizard(&stubDriver{selectIdx: []int{0}, inputs: []string{"  "}}, catalog.Default()).Run(ctx, markup.HTML)
	require.ErrorContains(t, err, "a value is required")

	_, err = NewWizard(&stubDriver{selectIdx: []int{5}}, catalog.Default()).Run(ctx, markup.HTML)
	require.ErrorContains(t, err, "unexpected choice")

	_, err = NewWizard(&stubDriver{}, catalog.Default()).Run(ctx, markup.HTML)
	require.Error(t, err)
}

func TestSurveyDriver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := NewSurveyDriver()
	_, err := driver.Input(ctx, InputConfig{Message: "x"})
	require.ErrorIs(t, err, context.Canceled)
	_, err = driver.Select(ctx, SelectConfig{Message: "x"})
	require.ErrorIs(t, err, context.Canceled)
	_, err = driver.MultiSelect(ctx, SelectConfig{Message: "x"})
	require.ErrorIs(t, err, context.Canceled)
}
