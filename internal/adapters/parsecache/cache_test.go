package parsecache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zkc/internal/adapters/parsecache"
	"go.trai.ch/zkc/internal/core/domain"
)

func sample() *domain.ParsedFileData {
	return &domain.ParsedFileData{
		PragmaVersion: "2.1.0",
		Imports:       []string{"circomlib/circuits/poseidon.circom"},
		Templates: map[string]domain.Template{
			"Hasher": {
				Name:   "Hasher",
				Params: []string{"n"},
				Signals: []domain.SignalDecl{
					{Name: "in", Kind: domain.SignalInput, Dimensions: []domain.Expr{
						domain.BinaryExpr("+", domain.IdentExpr("n"), domain.NumberExpr(1)),
					}},
					{Name: "out", Kind: domain.SignalOutput},
				},
			},
		},
		Main: &domain.MainComponentInfo{
			Template:     "Hasher",
			PublicInputs: []string{"in"},
			Args:         []domain.Expr{domain.NumberExpr(4)},
		},
	}
}

func TestCache_PutGet(t *testing.T) {
	t.Parallel()
	cache, err := parsecache.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cache.Put("0123456789abcdef", sample()))

	got, ok, err := cache.Get("0123456789abcdef")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sample(), got)
}

func TestCache_Miss(t *testing.T) {
	t.Parallel()
	cache, err := parsecache.New(t.TempDir())
	require.NoError(t, err)

	got, ok, err := cache.Get("ffffffffffffffff")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cache, err := parsecache.New(dir)
	require.NoError(t, err)
	require.NoError(t, cache.Put("abcd", sample()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ab", "abcd.mp"), []byte{0xc1, 0x00}, domain.FilePerm))

	_, ok, err := cache.Get("abcd")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFactory_Open(t *testing.T) {
	t.Parallel()
	root := t.TempDir()

	cache, err := parsecache.Factory{}.Open(&domain.Project{Root: root})
	require.NoError(t, err)
	require.NoError(t, cache.Put("aa11", sample()))
	assert.FileExists(t, filepath.Join(root, ".zkc", "cache", "parsed", "aa", "aa11.mp"))
}
