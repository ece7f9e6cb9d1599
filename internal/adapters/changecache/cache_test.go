package changecache_test

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zkc/internal/adapters/changecache"
	"go.trai.ch/zkc/internal/adapters/fs"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func bn254() *big.Int {
	v, _ := new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)
	return v
}

func flags() domain.CompileFlags {
	return domain.CompileFlags{
		CompilerVersion: "2.1.9",
		Prime:           "bn128",
		PrimeModulus:    domain.NewBigInt(bn254()),
		Optimization:    1,
		Outputs:         []domain.OutputKind{domain.OutputR1CS, domain.OutputWasm},
	}
}

func entry(hash string) domain.CacheEntry {
	return domain.CacheEntry{
		ContentHash:  hash,
		LastModified: 1_700_000_000_000,
		CompileFlags: flags(),
		ParsedData: &domain.ParsedFileData{
			PragmaVersion: "2.0.0",
			Imports:       []string{"b.circom"},
			Templates: map[string]domain.Template{
				"A": {Name: "A", Params: []string{"n"}, Signals: []domain.SignalDecl{
					{Name: "in", Kind: domain.SignalInput, Dimensions: []domain.Expr{domain.IdentExpr("n")}},
				}},
			},
			Main: &domain.MainComponentInfo{Template: "A", Args: []domain.Expr{domain.NumberExpr(2)}},
		},
	}
}

type fixture struct {
	mem   *fs.MemFS
	log   *mocks.MockLogger
	cache *changecache.Cache
	path  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	mem := fs.NewMemFS()
	log := mocks.NewMockLogger(ctrl)
	cache, err := changecache.New(mem, log)
	require.NoError(t, err)
	return &fixture{mem: mem, log: log, cache: cache, path: filepath.Join(t.TempDir(), "changes.json")}
}

func TestCache_HasChanged(t *testing.T) {
	f := newFixture(t)
	f.cache.Add("/p/a.circom", entry("h1"))

	assert.False(t, f.cache.HasChanged("/p/a.circom", "h1", flags()))
	assert.True(t, f.cache.HasChanged("/p/a.circom", "h2", flags()), "hash differs")
	assert.True(t, f.cache.HasChanged("/p/missing.circom", "h1", flags()), "no entry")

	changed := flags()
	changed.PrimeModulus = domain.NewBigInt(big.NewInt(7))
	assert.True(t, f.cache.HasChanged("/p/a.circom", "h1", changed), "prime differs")

	changed = flags()
	changed.Outputs = append(changed.Outputs, domain.OutputSym)
	assert.True(t, f.cache.HasChanged("/p/a.circom", "h1", changed), "outputs differ")

	same := flags()
	same.LinkLibraries = []string{}
	assert.False(t, f.cache.HasChanged("/p/a.circom", "h1", same), "nil and empty slices are equal")

	f.cache.Remove("/p/a.circom")
	_, ok := f.cache.Get("/p/a.circom")
	assert.False(t, ok)
}

func TestCache_PersistLoadRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.mem.WriteFile("/p/a.circom", "")
	f.mem.WriteFile("/p/b.circom", "")

	f.cache.Add("/p/a.circom", entry("h1"))
	f.cache.Add("/p/b.circom", entry("h2"))
	require.NoError(t, f.cache.Persist(f.path))

	reloaded, err := changecache.New(f.mem, f.log)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load(f.path))

	got, ok := reloaded.Get("/p/a.circom")
	require.True(t, ok)
	assert.Equal(t, 0, got.CompileFlags.PrimeModulus.Big().Cmp(bn254()), "big integer must round-trip exactly")
	assert.Equal(t, entry("h1").ParsedData, got.ParsedData)
	assert.False(t, reloaded.HasChanged("/p/b.circom", "h2", flags()))
}

func TestCache_PersistIsDeterministic(t *testing.T) {
	f := newFixture(t)
	for _, p := range []string{"/p/c.circom", "/p/a.circom", "/p/b.circom"} {
		f.mem.WriteFile(p, "")
		f.cache.Add(p, entry("h-"+filepath.Base(p)))
	}
	require.NoError(t, f.cache.Persist(f.path))
	first, err := os.ReadFile(f.path)
	require.NoError(t, err)

	require.NoError(t, f.cache.Load(f.path))
	require.NoError(t, f.cache.Persist(f.path))
	second, err := os.ReadFile(f.path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Contains(t, string(first), `"$bigint": "21888242871839275222246405745257275088548364400416034343698204186575808495617"`)
}

func TestCache_LoadPrunesDeletedFiles(t *testing.T) {
	f := newFixture(t)
	f.mem.WriteFile("/p/a.circom", "")
	f.mem.WriteFile("/p/gone.circom", "")

	f.cache.Add("/p/a.circom", entry("h1"))
	f.cache.Add("/p/gone.circom", entry("h2"))
	require.NoError(t, f.cache.Persist(f.path))

	f.mem.Remove("/p/gone.circom")
	require.NoError(t, f.cache.Load(f.path))

	_, ok := f.cache.Get("/p/a.circom")
	assert.True(t, ok)
	_, ok = f.cache.Get("/p/gone.circom")
	assert.False(t, ok)
}

func TestCache_LoadMissingDocument(t *testing.T) {
	f := newFixture(t)
	f.cache.Add("/p/a.circom", entry("h1"))

	require.NoError(t, f.cache.Load(f.path))
	_, ok := f.cache.Get("/p/a.circom")
	assert.False(t, ok, "load replaces in-memory state")
}

func TestCache_LoadInvalidDocumentResets(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: "{ nope"},
		{name: "wrong format version", doc: `{"formatVersion":"zkc-changes-0","files":{}}`},
		{name: "bare big integer", doc: `{"formatVersion":"zkc-changes-1","files":{"/p/a.circom":{"contentHash":"h","lastModified":1,"compileFlags":{"compilerVersion":"","prime":"bn128","primeModulus":7,"optimization":0,"outputs":null,"linkLibraries":null},"parsedData":null}}}`},
		{name: "missing content hash", doc: `{"formatVersion":"zkc-changes-1","files":{"/p/a.circom":{"lastModified":1,"compileFlags":{"compilerVersion":"","prime":"bn128","primeModulus":{"$bigint":"7"},"optimization":0,"outputs":null,"linkLibraries":null},"parsedData":null}}}`},
		{name: "unknown output kind", doc: `{"formatVersion":"zkc-changes-1","files":{"/p/a.circom":{"contentHash":"h","lastModified":1,"compileFlags":{"compilerVersion":"","prime":"bn128","primeModulus":{"$bigint":"7"},"optimization":0,"outputs":["pdf"],"linkLibraries":null},"parsedData":null}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.mem.WriteFile("/p/a.circom", "")
			require.NoError(t, os.WriteFile(f.path, []byte(tt.doc), domain.FilePerm))
			f.log.EXPECT().Warn(gomock.Any()).Times(1)

			require.NoError(t, f.cache.Load(f.path))
			_, ok := f.cache.Get("/p/a.circom")
			assert.False(t, ok)
		})
	}
}

func TestCache_LoadValidHandWrittenDocument(t *testing.T) {
	f := newFixture(t)
	f.mem.WriteFile("/p/a.circom", "")
	doc := `{"formatVersion":"zkc-changes-1","files":{"/p/a.circom":{"contentHash":"h","lastModified":1,"compileFlags":{"compilerVersion":"2.0.0","prime":"bn128","primeModulus":{"$bigint":"7"},"optimization":1,"outputs":["r1cs"],"linkLibraries":null},"parsedData":null}}}`
	require.NoError(t, os.WriteFile(f.path, []byte(doc), domain.FilePerm))

	require.NoError(t, f.cache.Load(f.path))
	got, ok := f.cache.Get("/p/a.circom")
	require.True(t, ok)
	assert.Equal(t, "7", got.CompileFlags.PrimeModulus.String())
}
