package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/engine/analyzer"
	"go.trai.ch/zkc/internal/engine/parser"
)

func file(t *testing.T, name, src string) *domain.ResolvedFile {
	t.Helper()
	parsed, err := parser.ParseText(src, "/p/"+name)
	require.NoError(t, err)
	return &domain.ResolvedFile{
		LogicalName:  domain.NewInternedString(name),
		AbsolutePath: "/p/" + name,
		Parsed:       parsed,
	}
}

func TestResolve_SignalsAndVisibility(t *testing.T) {
	lib := file(t, "lib/mul.circom", `
template Multiplier(n, k) {
    signal input a[n][k * 2];
    signal input b;
    signal input c;
    signal output out[n + 1];
    signal tmp;
}`)
	main := file(t, "main.circom", `
include "lib/mul.circom";
component main {public [b]} = Multiplier(3, 2);`)

	a := analyzer.New()
	data, err := a.Resolve(main, []*domain.ResolvedFile{lib})
	require.NoError(t, err)

	assert.Equal(t, "Multiplier", data.Template)
	assert.Equal(t, "3", data.BoundParameters["n"].String())
	assert.Equal(t, "2", data.BoundParameters["k"].String())
	assert.Equal(t, []domain.SignalInfo{
		{Name: "a", Dimension: []string{"3", "4"}, Kind: domain.SignalInput, Visibility: domain.VisibilityPrivate},
		{Name: "b", Dimension: []string{}, Kind: domain.SignalInput, Visibility: domain.VisibilityPublic},
		{Name: "c", Dimension: []string{}, Kind: domain.SignalInput, Visibility: domain.VisibilityPrivate},
		{Name: "out", Dimension: []string{"4"}, Kind: domain.SignalOutput, Visibility: domain.VisibilityPublic},
	}, data.Signals)
	assert.Empty(t, a.Warnings())
}

func TestResolve_OutputsArePublicAndIntermediatesExcluded(t *testing.T) {
	main := file(t, "main.circom", `
template T() {
    signal output x;
    signal output y[2];
    signal hidden;
}
component main = T();`)

	data, err := analyzer.New().Resolve(main, nil)
	require.NoError(t, err)
	for _, s := range data.Signals {
		assert.NotEqual(t, domain.SignalIntermediate, s.Kind)
		if s.Kind == domain.SignalOutput {
			assert.Equal(t, domain.VisibilityPublic, s.Visibility)
		}
	}
	assert.Len(t, data.Signals, 2)
}

func TestResolve_UnevaluableDimensionWarns(t *testing.T) {
	main := file(t, "main.circom", `
template T(n) {
    signal input a[nbits(n)];
    signal input b[m];
    signal input c[n];
}
component main = T(square(2));`)

	a := analyzer.New()
	data, err := a.Resolve(main, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"nbits(n)"}, data.Signals[0].Dimension)
	assert.Equal(t, []string{"m"}, data.Signals[1].Dimension)
	assert.Equal(t, []string{"n"}, data.Signals[2].Dimension)
	assert.NotContains(t, data.BoundParameters, "n")

	warnings := a.Warnings()
	require.Len(t, warnings, 4)
	assert.Equal(t, "", warnings[0].Signal)
	assert.Equal(t, "n = square(2)", warnings[0].Expression)
	assert.Equal(t, "a", warnings[1].Signal)
	assert.Equal(t, "b", warnings[2].Signal)
	assert.Contains(t, warnings[2].Reason, "unbound identifier")
	assert.Equal(t, "main.circom: signal b: cannot evaluate dimension m (m: unbound identifier)", warnings[2].String())
}

func TestResolve_ArgumentCountMismatchWarns(t *testing.T) {
	tests := []struct {
		name   string
		main   string
		bound  []string
		want   string
		signal string
	}{
		{
			name:   "too few arguments",
			main:   "component main = T(3);",
			bound:  []string{"n"},
			want:   "main.circom: main component T(3): template T declares 2 parameters, got 1 arguments",
			signal: "m",
		},
		{
			name:   "too many arguments",
			main:   "component main = T(3, 4, 5);",
			bound:  []string{"m", "n"},
			want:   "main.circom: main component T(3, 4, 5): template T declares 2 parameters, got 3 arguments",
			signal: "4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			main := file(t, "main.circom", "template T(n, m) { signal input a[m]; }\n"+tt.main)
			a := analyzer.New()
			data, err := a.Resolve(main, nil)
			require.NoError(t, err)

			bound := make([]string, 0, len(data.BoundParameters))
			for name := range data.BoundParameters {
				bound = append(bound, name)
			}
			assert.ElementsMatch(t, tt.bound, bound)
			assert.Equal(t, []string{tt.signal}, data.Signals[0].Dimension)

			warnings := a.Warnings()
			require.NotEmpty(t, warnings)
			assert.Equal(t, tt.want, warnings[0].String())
		})
	}
}

func TestResolve_Memoized(t *testing.T) {
	main := file(t, "main.circom", "template T(n) { signal input a[m]; }\ncomponent main = T(1);")
	a := analyzer.New()

	first, err := a.Resolve(main, nil)
	require.NoError(t, err)
	second, err := a.Resolve(main, nil)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, a.Warnings(), 1)

	cached, ok := main.CachedMainComponent()
	assert.True(t, ok)
	assert.Same(t, first, cached)
}

func TestResolve_TemplateLookupOrder(t *testing.T) {
	zeta := file(t, "z/t.circom", "template T() { signal input fromZ; }")
	alpha := file(t, "a/t.circom", "template T() { signal input fromA; }")

	t.Run("dependencies sorted by name", func(t *testing.T) {
		main := file(t, "main.circom", "component main = T();")
		data, err := analyzer.New().Resolve(main, []*domain.ResolvedFile{zeta, alpha})
		require.NoError(t, err)
		assert.Equal(t, "fromA", data.Signals[0].Name)
	})

	t.Run("the file itself wins", func(t *testing.T) {
		main := file(t, "main.circom", "template T() { signal input own; }\ncomponent main = T();")
		data, err := analyzer.New().Resolve(main, []*domain.ResolvedFile{alpha})
		require.NoError(t, err)
		assert.Equal(t, "own", data.Signals[0].Name)
	})
}

func TestResolve_Errors(t *testing.T) {
	t.Run("no main component", func(t *testing.T) {
		_, err := analyzer.New().Resolve(file(t, "lib.circom", "template T() {}"), nil)
		require.ErrorIs(t, err, domain.ErrNoMainComponent)
	})

	t.Run("template not found", func(t *testing.T) {
		f := file(t, "main.circom", "component main = Missing();")
		_, err := analyzer.New().Resolve(f, nil)
		require.ErrorIs(t, err, domain.ErrTemplateNotFound)
		assert.Equal(t, domain.KindAnalysis, domain.KindOf(err))

		_, ok := f.CachedMainComponent()
		assert.False(t, ok)
	})
}
