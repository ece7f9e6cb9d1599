package compiler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zkc/internal/adapters/compiler"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// MockRoundTripper is a helper to mock http.Client behavior.
type MockRoundTripper struct {
	mu            sync.Mutex
	requests      []string
	RoundTripFunc func(req *http.Request) *http.Response
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req.URL.String())
	m.mu.Unlock()
	return m.RoundTripFunc(req), nil
}

func (m *MockRoundTripper) Requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.requests...)
}

func serve(assets map[string]string) *MockRoundTripper {
	return &MockRoundTripper{RoundTripFunc: func(req *http.Request) *http.Response {
		body, ok := assets[req.URL.String()]
		if !ok {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Status:     "404 Not Found",
				Body:       io.NopCloser(bytes.NewReader(nil)),
				Header:     make(http.Header),
			}
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Body:       io.NopCloser(bytes.NewBufferString(body)),
			Header:     make(http.Header),
		}
	}}
}

const testURL = "https://releases.test/v{version}/{asset}"

func newResolver(t *testing.T, rt *MockRoundTripper, goos, goarch string) (*compiler.Resolver, *mocks.MockCommandRunner, *mocks.MockLogger, string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	log := mocks.NewMockLogger(ctrl)
	cacheDir := t.TempDir()

	settings := domain.CompilerSettings{DownloadURL: testURL, CacheDir: cacheDir}
	r := compiler.NewResolverForPlatform(settings, runner, log, &http.Client{Transport: rt}, goos, goarch)
	return r, runner, log, cacheDir
}

func versionOutput(version string) func(context.Context, string, string, []string, io.Writer, io.Writer) error {
	return func(_ context.Context, _, _ string, _ []string, stdout, _ io.Writer) error {
		_, err := fmt.Fprintf(stdout, "circom compiler %s\n", version)
		return err
	}
}

func TestAcquire_OutOfRangeMakesNoCalls(t *testing.T) {
	rt := serve(nil)
	r, _, _, _ := newResolver(t, rt, "linux", "amd64")

	for _, version := range []string{"1.9.9", "2.2.3", "3.0.0"} {
		_, err := r.Acquire(context.Background(), version, false)
		require.ErrorIs(t, err, domain.ErrUnsupportedCompilerVersion)
		assert.Equal(t, domain.KindCompilerAcquisition, domain.KindOf(err))
	}
	assert.Empty(t, rt.Requests())
}

func TestAcquire_Native(t *testing.T) {
	t.Run("strict exact match is memoized", func(t *testing.T) {
		rt := serve(nil)
		r, runner, _, _ := newResolver(t, rt, "linux", "amd64")
		runner.EXPECT().LookPath("circom").Return("/usr/bin/circom", nil).Times(1)
		runner.EXPECT().Run(gomock.Any(), "", "/usr/bin/circom", []string{"--version"}, gomock.Any(), gomock.Any()).
			DoAndReturn(versionOutput("2.1.6")).Times(1)

		c, err := r.Acquire(context.Background(), "2.1.6", true)
		require.NoError(t, err)
		assert.Equal(t, domain.CompilerBinaryRecord{
			Platform:   domain.PlatformNative,
			Version:    "2.1.6",
			BinaryPath: "/usr/bin/circom",
		}, c.Record())

		again, err := r.Acquire(context.Background(), "2.1.6", true)
		require.NoError(t, err)
		assert.Same(t, c, again)
		assert.Empty(t, rt.Requests())
	})

	t.Run("non-strict accepts newer", func(t *testing.T) {
		r, runner, _, _ := newResolver(t, serve(nil), "linux", "amd64")
		runner.EXPECT().LookPath("circom").Return("/usr/bin/circom", nil)
		runner.EXPECT().Run(gomock.Any(), "", "/usr/bin/circom", []string{"--version"}, gomock.Any(), gomock.Any()).
			DoAndReturn(versionOutput("2.2.2"))

		c, err := r.Acquire(context.Background(), "2.1.0", false)
		require.NoError(t, err)
		assert.Equal(t, "2.2.2", c.Record().Version)
	})
}

func TestAcquire_PlatformDownload(t *testing.T) {
	rt := serve(map[string]string{
		"https://releases.test/v2.1.6/circom-linux-amd64": "#!/bin/sh\n",
	})
	r, runner, _, cacheDir := newResolver(t, rt, "linux", "amd64")
	wantPath := filepath.Join(cacheDir, "2.1.6", "linux-amd64")

	// The native compiler is too old in strict mode.
	runner.EXPECT().LookPath("circom").Return("/usr/bin/circom", nil)
	runner.EXPECT().Run(gomock.Any(), "", "/usr/bin/circom", []string{"--version"}, gomock.Any(), gomock.Any()).
		DoAndReturn(versionOutput("2.1.5"))
	runner.EXPECT().Run(gomock.Any(), "", wantPath, []string{"--version"}, gomock.Any(), gomock.Any()).Return(nil)

	c, err := r.Acquire(context.Background(), "2.1.6", true)
	require.NoError(t, err)
	assert.Equal(t, domain.CompilerBinaryRecord{
		Platform:   domain.PlatformLinuxAMD64,
		Version:    "2.1.6",
		BinaryPath: wantPath,
	}, c.Record())

	info, err := os.Stat(wantPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.ExecPerm), info.Mode().Perm())
	assert.Equal(t, []string{"https://releases.test/v2.1.6/circom-linux-amd64"}, rt.Requests())
}

func TestAcquire_PresentBinarySkipsDownload(t *testing.T) {
	rt := serve(nil)
	r, runner, _, cacheDir := newResolver(t, rt, "linux", "amd64")
	path := filepath.Join(cacheDir, "2.0.8", "linux-amd64")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("bin"), 0o600))

	runner.EXPECT().LookPath("circom").Return("", errors.New("not found"))

	c, err := r.Acquire(context.Background(), "2.0.8", false)
	require.NoError(t, err)
	assert.Equal(t, path, c.Record().BinaryPath)
	assert.Empty(t, rt.Requests())
}

func TestAcquire_ARM64Threshold(t *testing.T) {
	t.Run("non-strict raises the version", func(t *testing.T) {
		rt := serve(map[string]string{"https://releases.test/v2.2.0/circom-macos-arm64": "bin"})
		r, runner, _, cacheDir := newResolver(t, rt, "darwin", "arm64")
		runner.EXPECT().LookPath("circom").Return("", errors.New("not found"))
		runner.EXPECT().Run(gomock.Any(), "", filepath.Join(cacheDir, "2.2.0", "macos-arm64"), []string{"--version"}, gomock.Any(), gomock.Any()).Return(nil)

		c, err := r.Acquire(context.Background(), "2.1.0", false)
		require.NoError(t, err)
		assert.Equal(t, domain.PlatformMacARM64, c.Record().Platform)
		assert.Equal(t, "2.2.0", c.Record().Version)
	})

	t.Run("strict substitutes the x64 build", func(t *testing.T) {
		rt := serve(map[string]string{"https://releases.test/v2.1.0/circom-macos-amd64": "bin"})
		r, runner, _, cacheDir := newResolver(t, rt, "darwin", "arm64")
		runner.EXPECT().LookPath("circom").Return("", errors.New("not found"))
		runner.EXPECT().Run(gomock.Any(), "", filepath.Join(cacheDir, "2.1.0", "macos-amd64"), []string{"--version"}, gomock.Any(), gomock.Any()).Return(nil)

		c, err := r.Acquire(context.Background(), "2.1.0", true)
		require.NoError(t, err)
		assert.Equal(t, domain.PlatformMacAMD64, c.Record().Platform)
		assert.Equal(t, "2.1.0", c.Record().Version)
	})
}

func TestAcquire_PortableFallback(t *testing.T) {
	t.Run("platform download fails", func(t *testing.T) {
		rt := serve(map[string]string{"https://releases.test/v2.1.6/circom.wasm": "\x00asm"})
		r, runner, log, cacheDir := newResolver(t, rt, "linux", "amd64")
		runner.EXPECT().LookPath("circom").Return("", errors.New("not found"))
		log.EXPECT().Warn(gomock.Any())

		c, err := r.Acquire(context.Background(), "2.1.6", false)
		require.NoError(t, err)
		assert.Equal(t, domain.CompilerBinaryRecord{
			Platform:   domain.PlatformPortable,
			Version:    "2.1.6",
			BinaryPath: filepath.Join(cacheDir, "2.1.6", "circom.wasm"),
			Portable:   true,
		}, c.Record())
		assert.Equal(t, []string{
			"https://releases.test/v2.1.6/circom-linux-amd64",
			"https://releases.test/v2.1.6/circom.wasm",
		}, rt.Requests())
	})

	t.Run("smoke test failure removes the binary", func(t *testing.T) {
		rt := serve(map[string]string{
			"https://releases.test/v2.1.6/circom-linux-amd64": "broken",
			"https://releases.test/v2.1.6/circom.wasm":        "\x00asm",
		})
		r, runner, log, cacheDir := newResolver(t, rt, "linux", "amd64")
		binPath := filepath.Join(cacheDir, "2.1.6", "linux-amd64")
		runner.EXPECT().LookPath("circom").Return("", errors.New("not found"))
		runner.EXPECT().Run(gomock.Any(), "", binPath, []string{"--version"}, gomock.Any(), gomock.Any()).
			Return(errors.New("exec format error"))
		log.EXPECT().Warn(gomock.Any())

		c, err := r.Acquire(context.Background(), "2.1.6", false)
		require.NoError(t, err)
		assert.True(t, c.Record().Portable)
		assert.NoFileExists(t, binPath)
	})

	t.Run("unsupported platform goes straight to portable", func(t *testing.T) {
		rt := serve(map[string]string{"https://releases.test/v2.0.5/circom.wasm": "\x00asm"})
		r, runner, _, _ := newResolver(t, rt, "linux", "arm64")
		runner.EXPECT().LookPath("circom").Return("", errors.New("not found"))

		c, err := r.Acquire(context.Background(), "2.0.5", true)
		require.NoError(t, err)
		assert.True(t, c.Record().Portable)
		assert.Equal(t, []string{"https://releases.test/v2.0.5/circom.wasm"}, rt.Requests())
	})

	t.Run("every stage fails", func(t *testing.T) {
		rt := serve(nil)
		r, runner, log, _ := newResolver(t, rt, "linux", "amd64")
		runner.EXPECT().LookPath("circom").Return("", errors.New("not found"))
		log.EXPECT().Warn(gomock.Any())

		_, err := r.Acquire(context.Background(), "2.1.6", false)
		require.ErrorIs(t, err, domain.ErrCompilerDownloadFailed)
		require.ErrorIs(t, err, domain.ErrCompilerAcquisitionFailed)
		assert.Equal(t, domain.KindCompilerAcquisition, domain.KindOf(err))
	})
}

func TestCompileArgs(t *testing.T) {
	args := compiler.CompileArgs(domain.CompileRequest{
		InputPath:     "/p/circuits/mul.circom",
		OutputDir:     "/tmp/out",
		Outputs:       []domain.OutputKind{domain.OutputR1CS, domain.OutputWasm, domain.OutputSym},
		LinkLibraries: []string{"/p/node_modules"},
		Prime:         "bn128",
		Optimization:  2,
	})
	assert.Equal(t, []string{
		"/p/circuits/mul.circom", "--r1cs", "--wasm", "--sym",
		"-o", "/tmp/out", "-l", "/p/node_modules", "--prime", "bn128", "--O2",
	}, args)
}

func TestPlatformFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         domain.Platform
	}{
		{"linux", "amd64", domain.PlatformLinuxAMD64},
		{"darwin", "amd64", domain.PlatformMacAMD64},
		{"darwin", "arm64", domain.PlatformMacARM64},
		{"windows", "amd64", domain.PlatformWindowsAMD64},
		{"linux", "arm64", domain.PlatformPortable},
		{"freebsd", "amd64", domain.PlatformPortable},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			assert.Equal(t, tt.want, compiler.PlatformFor(tt.goos, tt.goarch))
		})
	}
}
