package domain_test

import (
	"encoding/json"
	"errors"
	"io/fs"
	"math/big"
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
)

func newFile(name string) *domain.ResolvedFile {
	return &domain.ResolvedFile{
		LogicalName:  domain.NewInternedString(name),
		AbsolutePath: "/project/" + name,
	}
}

func names(files []*domain.ResolvedFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name()
	}
	return out
}

func TestDependencyGraph_TransitiveDependencies(t *testing.T) {
	tests := []struct {
		name     string
		edges    [][2]string
		start    string
		expected []string
	}{
		{
			name:     "chain",
			edges:    [][2]string{{"a", "b"}, {"b", "c"}},
			start:    "a",
			expected: []string{"b", "c"},
		},
		{
			name:     "diamond is deduplicated",
			edges:    [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			start:    "a",
			expected: []string{"b", "c", "d"},
		},
		{
			name:     "cycle is tolerated",
			edges:    [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			start:    "a",
			expected: []string{"b", "c"},
		},
		{
			name:     "self import",
			edges:    [][2]string{{"a", "a"}},
			start:    "a",
			expected: []string{},
		},
		{
			name:     "leaf",
			edges:    [][2]string{{"a", "b"}},
			start:    "b",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.NewDependencyGraph()
			files := make(map[string]*domain.ResolvedFile)
			get := func(n string) *domain.ResolvedFile {
				if f, ok := files[n]; ok {
					return f
				}
				files[n] = newFile(n)
				return files[n]
			}
			for _, e := range tt.edges {
				require.NoError(t, g.AddDependency(get(e[0]), get(e[1])))
			}

			got := g.TransitiveDependencies(files[tt.start])
			assert.Equal(t, tt.expected, names(got))
		})
	}
}

func TestDependencyGraph_AmbiguousName(t *testing.T) {
	g := domain.NewDependencyGraph()
	first := newFile("lib/x.circom")
	require.NoError(t, g.AddFile(first))

	// Re-adding the same file is a no-op.
	require.NoError(t, g.AddFile(first))

	second := &domain.ResolvedFile{
		LogicalName:  domain.NewInternedString("lib/x.circom"),
		AbsolutePath: "/elsewhere/lib/x.circom",
	}
	err := g.AddFile(second)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAmbiguousName)
	assert.Equal(t, domain.KindResolution, domain.KindOf(err))

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "/project/lib/x.circom", zErr.Metadata()["first_path"])
	assert.Equal(t, "/elsewhere/lib/x.circom", zErr.Metadata()["second_path"])
}

func TestDependencyGraph_FilesAndEntries(t *testing.T) {
	g := domain.NewDependencyGraph()
	a, b, c := newFile("a"), newFile("b"), newFile("c")

	require.NoError(t, g.AddEntry(c))
	require.NoError(t, g.AddEntry(a))
	require.NoError(t, g.AddDependency(a, b))
	require.NoError(t, g.AddDependency(a, b))

	assert.Equal(t, []string{"a", "b", "c"}, names(g.Files()))
	assert.Equal(t, []string{"a", "c"}, names(g.Entries()))
	assert.Equal(t, []string{"b"}, names(g.Dependencies(a)))
	assert.Equal(t, 3, g.Len())

	got, ok := g.File("b")
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{"nil", nil, domain.KindInternal},
		{"plain", errors.New("boom"), domain.KindInternal},
		{"wrapped resolution", zerr.Wrap(domain.ErrWrongCasing, "a.circom"), domain.KindResolution},
		{"parse", zerr.With(zerr.Wrap(domain.ErrSyntax, "x"), "position", "a:1:1"), domain.KindParse},
		{"header", zerr.Wrap(zerr.Wrap(domain.ErrHeaderNotFound, "x"), "y"), domain.KindHeaderNotFound},
		{"acquisition", domain.ErrUnsupportedCompilerVersion, domain.KindCompilerAcquisition},
		{"compilation", zerr.Wrap(domain.ErrCompilationFailed, "x"), domain.KindCompilation},
		{"config", domain.ErrConfigNotFound, domain.KindConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.KindOf(tt.err))
		})
	}
	assert.Equal(t, "header_not_found", domain.KindHeaderNotFound.String())
}

func TestWrap(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "/p/zkc.yaml", Err: fs.ErrPermission}
	err := zerr.With(domain.Wrap(domain.ErrConfigReadFailed, cause), "config", "/p/zkc.yaml")

	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
	require.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, domain.KindConfig, domain.KindOf(err))
	assert.Equal(t, domain.ErrConfigReadFailed.Error()+": open /p/zkc.yaml: permission denied", err.Error())

	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "/p/zkc.yaml", pathErr.Path)

	assert.NoError(t, domain.Wrap(domain.ErrConfigReadFailed, nil))
}

func TestBigInt_RoundTrip(t *testing.T) {
	p, ok := new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)
	require.True(t, ok)

	data, err := json.Marshal(domain.NewBigInt(p))
	require.NoError(t, err)
	assert.JSONEq(t, `{"$bigint":"21888242871839275222246405745257275088548364400416034343698204186575808495617"}`, string(data))

	var back domain.BigInt
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 0, p.Cmp(back.Big()))
	assert.True(t, back.Equal(domain.NewBigInt(p)))

	t.Run("missing tag", func(t *testing.T) {
		var b domain.BigInt
		assert.Error(t, json.Unmarshal([]byte(`{"value":"1"}`), &b))
	})

	t.Run("bare number", func(t *testing.T) {
		var b domain.BigInt
		assert.Error(t, json.Unmarshal([]byte(`12`), &b))
	})
}

func TestExprString(t *testing.T) {
	e := domain.BinaryExpr("*", domain.BinaryExpr("+", domain.IdentExpr("n"), domain.NumberExpr(1)), domain.NumberExpr(2))
	assert.Equal(t, "(n + 1) * 2", e.String())

	idx := domain.Expr{Op: domain.OpIndex, Args: []domain.Expr{domain.IdentExpr("dims"), domain.NumberExpr(0)}}
	assert.Equal(t, "dims[0]", idx.String())

	call := domain.Expr{Op: domain.OpCall, Name: "nbits", Args: []domain.Expr{domain.IdentExpr("n")}}
	assert.Equal(t, "nbits(n)", call.String())
}

func TestValueString(t *testing.T) {
	v := domain.ArrayValue(domain.IntValue(1), domain.ArrayValue(domain.IntValue(2), domain.IntValue(3)))
	assert.Equal(t, "[1, [2, 3]]", v.String())
	assert.True(t, v.IsArray())
	assert.False(t, domain.IntValue(4).IsArray())
	assert.Equal(t, "[]", domain.ArrayValue().String())
}

func TestResolvedFile_MainComponentComputesOnce(t *testing.T) {
	f := newFile("a.circom")
	calls := 0
	compute := func() (*domain.MainComponentData, error) {
		calls++
		return &domain.MainComponentData{Template: "A"}, nil
	}

	_, ok := f.CachedMainComponent()
	assert.False(t, ok)

	first, err := f.MainComponent(compute)
	require.NoError(t, err)
	second, err := f.MainComponent(compute)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	t.Run("failures are not memoized", func(t *testing.T) {
		g := newFile("b.circom")
		_, err := g.MainComponent(func() (*domain.MainComponentData, error) {
			return nil, domain.ErrTemplateNotFound
		})
		require.ErrorIs(t, err, domain.ErrTemplateNotFound)
		_, ok := g.CachedMainComponent()
		assert.False(t, ok)
	})
}

func TestCompilerReleases(t *testing.T) {
	t.Run("in range", func(t *testing.T) {
		v, err := domain.CheckCompilerVersion("v2.1.6")
		require.NoError(t, err)
		assert.Equal(t, "2.1.6", v.String())
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := domain.CheckCompilerVersion("2.3.0")
		require.ErrorIs(t, err, domain.ErrUnsupportedCompilerVersion)
		assert.Equal(t, domain.KindCompilerAcquisition, domain.KindOf(err))
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := domain.CheckCompilerVersion("latest")
		require.ErrorIs(t, err, domain.ErrInvalidCompilerVersion)
	})

	t.Run("minimum release", func(t *testing.T) {
		v, err := domain.MinimumCompilerRelease(semver.MustParse("2.1.0"))
		require.NoError(t, err)
		assert.Equal(t, "2.1.0", v.String())

		_, err = domain.MinimumCompilerRelease(semver.MustParse("2.5.0"))
		require.ErrorIs(t, err, domain.ErrUnsupportedCompilerVersion)
	})
}

func TestProject_ArtifactsPath(t *testing.T) {
	p := &domain.Project{Root: "/work", ArtifactsDir: "artifacts/circuits"}
	assert.Equal(t, "/work/artifacts/circuits", p.ArtifactsPath())

	p.ArtifactsDir = "/shared/out"
	assert.Equal(t, "/shared/out", p.ArtifactsPath())
}
