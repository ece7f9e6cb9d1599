package orchestrator_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zkc/internal/adapters/cas"
	"go.trai.ch/zkc/internal/adapters/fs"
	"go.trai.ch/zkc/internal/adapters/telemetry"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports/mocks"
	"go.trai.ch/zkc/internal/engine/orchestrator"
	"go.uber.org/mock/gomock"
)

type r1csCounts struct {
	wires, pubOut, pubIn, prvIn uint32
	labels                      uint64
	constraints                 uint32
}

// buildR1CS returns a minimal constraint system with a filler section in
// front of the header section.
func buildR1CS(counts r1csCounts, withHeader bool) []byte {
	var b bytes.Buffer
	le := binary.LittleEndian
	b.WriteString("r1cs")
	_ = binary.Write(&b, le, uint32(1))
	sections := uint32(1)
	if withHeader {
		sections = 2
	}
	_ = binary.Write(&b, le, sections)

	_ = binary.Write(&b, le, uint32(2))
	_ = binary.Write(&b, le, uint64(4))
	_ = binary.Write(&b, le, uint32(0xdeadbeef))

	if withHeader {
		_ = binary.Write(&b, le, uint32(1))
		_ = binary.Write(&b, le, uint64(4+32+4*4+8+4))
		_ = binary.Write(&b, le, uint32(32))
		prime := make([]byte, 32)
		prime[0] = 0x61 // 97, little-endian
		b.Write(prime)
		_ = binary.Write(&b, le, counts.wires)
		_ = binary.Write(&b, le, counts.pubOut)
		_ = binary.Write(&b, le, counts.pubIn)
		_ = binary.Write(&b, le, counts.prvIn)
		_ = binary.Write(&b, le, counts.labels)
		_ = binary.Write(&b, le, counts.constraints)
	}
	return b.Bytes()
}

type fixture struct {
	root     string
	store    *cas.Store
	resolver *mocks.MockCompilerResolver
	compiler *mocks.MockCompiler
	orch     *orchestrator.Orchestrator
	tempRoot string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	root := t.TempDir()

	store, err := cas.NewStore(filepath.Join(root, ".zkc", "store"), filepath.Join(root, "artifacts"))
	require.NoError(t, err)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	f := &fixture{
		root:     root,
		store:    store,
		resolver: mocks.NewMockCompilerResolver(ctrl),
		compiler: mocks.NewMockCompiler(ctrl),
		tempRoot: filepath.Join(root, ".zkc", "tmp"),
	}
	f.orch = orchestrator.New(f.resolver, store, fs.NewHasher(), telemetry.NewNoopTracer(), logger, f.tempRoot)
	f.compiler.EXPECT().Record().Return(domain.CompilerBinaryRecord{Version: "2.1.5", Platform: domain.PlatformNative}).AnyTimes()
	return f
}

func job(root, id, template, pragma string, deps ...*domain.ResolvedFile) domain.CompileJob {
	return domain.CompileJob{
		ID: id,
		File: &domain.ResolvedFile{
			LogicalName:  domain.NewInternedString(id),
			AbsolutePath: filepath.Join(root, "circuits", filepath.FromSlash(id)),
			ContentHash:  "h-" + id,
			Parsed: &domain.ParsedFileData{
				PragmaVersion: pragma,
				Main:          &domain.MainComponentInfo{Template: template},
			},
		},
		Dependencies: deps,
	}
}

// writeOutputs mimics the compiler's output layout for base.
func writeOutputs(t *testing.T, dir, base string, counts r1csCounts) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, base+".r1cs"), buildR1CS(counts, true), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, base+".sym"), []byte("1,1,0,main.out\n"), 0o600))
	js := filepath.Join(dir, base+"_js")
	require.NoError(t, os.MkdirAll(js, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(js, base+".wasm"), []byte("\x00asm"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(js, "witness_calculator.js"), []byte("//"), 0o600))
}

var flags = domain.CompileFlags{
	Prime:        "bn128",
	Optimization: 1,
	Outputs:      []domain.OutputKind{domain.OutputR1CS, domain.OutputWasm, domain.OutputSym},
}

func TestCompile_CommitsRenamedOutputs(t *testing.T) {
	f := newFixture(t)

	// A stale file from an earlier build must be replaced.
	stale := filepath.Join(f.root, "artifacts", "multiplier", "Multiplier.sym")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o750))
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o600))

	jobs := []domain.CompileJob{
		job(f.root, "multiplier.circom", "Multiplier", "2.0.0"),
		job(f.root, "sub/adder.circom", "adder", "2.1.0"),
	}
	_, _ = jobs[0].File.MainComponent(func() (*domain.MainComponentData, error) {
		return &domain.MainComponentData{
			Template: "Multiplier",
			Signals:  []domain.SignalInfo{{Name: "out", Kind: domain.SignalOutput, Visibility: domain.VisibilityPublic}},
		}, nil
	})

	f.resolver.EXPECT().Acquire(gomock.Any(), "2.1.0", false).Return(f.compiler, nil)
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.CompileRequest, _, _ io.Writer) error {
			assert.Equal(t, flags.Outputs, req.Outputs)
			assert.Equal(t, "bn128", req.Prime)
			assert.Equal(t, 1, req.Optimization)
			base := filepath.Base(req.InputPath)
			base = base[:len(base)-len(".circom")]
			writeOutputs(t, req.OutputDir, base, r1csCounts{wires: 4, pubOut: 1, prvIn: 2, labels: 5, constraints: 7})
			return nil
		}).Times(2)

	res, err := f.orch.Compile(context.Background(), orchestrator.Request{Jobs: jobs, Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, []string{"multiplier.circom", "sub/adder.circom"}, res.Compiled)
	assert.Equal(t, map[string]int{"multiplier.circom": 7, "sub/adder.circom": 7}, res.Constraints)
	assert.Equal(t, "2.1.5", res.Compiler.Version)

	dir := filepath.Join(f.root, "artifacts", "multiplier")
	assert.FileExists(t, filepath.Join(dir, "Multiplier.r1cs"))
	assert.FileExists(t, filepath.Join(dir, "Multiplier_js", "Multiplier.wasm"))
	assert.FileExists(t, filepath.Join(dir, "Multiplier_js", "witness_calculator.js"))
	assert.NoFileExists(t, filepath.Join(dir, "multiplier.r1cs"))
	sym, err := os.ReadFile(filepath.Join(dir, "Multiplier.sym"))
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(sym))

	assert.FileExists(t, filepath.Join(f.root, "artifacts", "sub", "adder", "adder.r1cs"))

	record, err := f.store.Read("multiplier.circom")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Multiplier", record.Template)
	assert.Equal(t, "h-multiplier.circom", record.ContentHash)
	assert.Equal(t, "2.1.5", record.CompilerVersion)
	assert.Equal(t, 7, record.Constraints)
	require.NotNil(t, record.Header)
	assert.Equal(t, uint32(4), record.Header.Wires)
	assert.Equal(t, uint64(5), record.Header.Labels)
	assert.Equal(t, "97", record.Header.Prime.String())
	assert.Len(t, record.Signals, 1)
	require.Contains(t, record.Outputs, domain.OutputWasm)
	assert.Equal(t, filepath.Join(dir, "Multiplier_js", "Multiplier.wasm"), record.Outputs[domain.OutputWasm].Path)
	assert.NotEmpty(t, record.Outputs[domain.OutputWasm].Hash)

	entries, err := os.ReadDir(f.tempRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompile_FailureStopsAndCommitsNothing(t *testing.T) {
	f := newFixture(t)
	jobs := []domain.CompileJob{
		job(f.root, "a.circom", "A", ""),
		job(f.root, "b.circom", "B", ""),
	}

	f.resolver.EXPECT().Acquire(gomock.Any(), "2.0.0", false).Return(f.compiler, nil)
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.CompileRequest, _, stderr io.Writer) error {
			_, _ = io.WriteString(stderr, "error[T3001]: non quadratic constraint")
			require.NoError(t, os.WriteFile(filepath.Join(req.OutputDir, "a.log"), []byte("trace"), 0o600))
			return errors.New("exit status 1")
		}).Times(1)

	_, err := f.orch.Compile(context.Background(), orchestrator.Request{Jobs: jobs, Flags: flags})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompilationFailed)
	assert.Equal(t, domain.KindCompilation, domain.KindOf(err))

	var zErr interface{ Metadata() map[string]any }
	require.ErrorAs(t, err, &zErr)
	diag, _ := zErr.Metadata()["diagnostics"].(string)
	assert.Contains(t, diag, "non quadratic constraint")
	assert.Contains(t, diag, "trace")

	all, err := f.store.All()
	require.NoError(t, err)
	assert.Empty(t, all)
	entries, err := os.ReadDir(f.tempRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompile_HeaderNotFound(t *testing.T) {
	f := newFixture(t)
	jobs := []domain.CompileJob{job(f.root, "a.circom", "A", "2.0.0")}

	f.resolver.EXPECT().Acquire(gomock.Any(), "2.0.0", false).Return(f.compiler, nil)
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.CompileRequest, _, _ io.Writer) error {
			return os.WriteFile(filepath.Join(req.OutputDir, "a.r1cs"), buildR1CS(r1csCounts{}, false), 0o600)
		})

	_, err := f.orch.Compile(context.Background(), orchestrator.Request{
		Jobs:  jobs,
		Flags: domain.CompileFlags{Outputs: []domain.OutputKind{domain.OutputR1CS}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHeaderNotFound)

	exists, err := f.store.Exists("a.circom")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoDirExists(t, filepath.Join(f.root, "artifacts", "a"))
}

func TestCompile_CompilerVersion(t *testing.T) {
	tests := []struct {
		name    string
		pinned  string
		strict  bool
		pragmas []string
		want    string
		wantStr bool
		wantErr error
	}{
		{name: "no pragmas", want: "2.0.0"},
		{name: "max pragma across deps", pragmas: []string{"2.0.3", "2.1.4", "2.0.9"}, want: "2.1.4"},
		{name: "pin satisfies pragmas", pinned: "2.2.0", strict: true, pragmas: []string{"2.1.0"}, want: "2.2.0", wantStr: true},
		{name: "pin older than pragma", pinned: "2.0.5", pragmas: []string{"2.1.0"}, wantErr: domain.ErrCompilerVersionTooOld},
		{name: "pragma beyond known releases", pragmas: []string{"2.9.0"}, wantErr: domain.ErrUnsupportedCompilerVersion},
		{name: "bad pragma", pragmas: []string{"two"}, wantErr: domain.ErrInvalidCompilerVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			var deps []*domain.ResolvedFile
			for i, p := range tt.pragmas {
				deps = append(deps, &domain.ResolvedFile{
					AbsolutePath: filepath.Join(f.root, "dep", string(rune('a'+i))+".circom"),
					Parsed:       &domain.ParsedFileData{PragmaVersion: p},
				})
			}
			jobs := []domain.CompileJob{job(f.root, "a.circom", "A", "", deps...)}

			acquireErr := errors.New("stop here")
			if tt.wantErr == nil {
				f.resolver.EXPECT().Acquire(gomock.Any(), tt.want, tt.wantStr).Return(nil, acquireErr)
			}

			_, err := f.orch.Compile(context.Background(), orchestrator.Request{
				Jobs:   jobs,
				Flags:  domain.CompileFlags{CompilerVersion: tt.pinned},
				Strict: tt.strict,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.ErrorIs(t, err, acquireErr)
		})
	}
}

func TestCompile_NoJobs(t *testing.T) {
	f := newFixture(t)

	res, err := f.orch.Compile(context.Background(), orchestrator.Request{Flags: flags})
	require.NoError(t, err)
	assert.Empty(t, res.Compiled)
	assert.NoDirExists(t, f.tempRoot)
}

func TestParseConstraintSystemHeader(t *testing.T) {
	data := buildR1CS(r1csCounts{wires: 10, pubOut: 1, pubIn: 2, prvIn: 3, labels: 11, constraints: 9}, true)

	header, err := orchestrator.ParseConstraintSystemHeader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, uint32(32), header.FieldSize)
	assert.Equal(t, uint32(10), header.Wires)
	assert.Equal(t, uint32(1), header.PublicOutputs)
	assert.Equal(t, uint32(2), header.PublicInputs)
	assert.Equal(t, uint32(3), header.PrivateInputs)
	assert.Equal(t, uint64(11), header.Labels)
	assert.Equal(t, uint32(9), header.Constraints)

	t.Run("truncated", func(t *testing.T) {
		short := data[:len(data)-3]
		_, err := orchestrator.ParseConstraintSystemHeader(bytes.NewReader(short), int64(len(short)))
		assert.ErrorIs(t, err, domain.ErrMalformedConstraintSystem)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte("wasm"), data[4:]...)
		_, err := orchestrator.ParseConstraintSystemHeader(bytes.NewReader(bad), int64(len(bad)))
		assert.ErrorIs(t, err, domain.ErrMalformedConstraintSystem)
	})

	t.Run("missing header section", func(t *testing.T) {
		noHeader := buildR1CS(r1csCounts{}, false)
		_, err := orchestrator.ParseConstraintSystemHeader(bytes.NewReader(noHeader), int64(len(noHeader)))
		assert.ErrorIs(t, err, domain.ErrHeaderNotFound)
		assert.Equal(t, domain.KindHeaderNotFound, domain.KindOf(err))
	})
}
