package compiler

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
)

// wasmCompiler runs the portable compiler module in-process under WASI.
type wasmCompiler struct {
	record   domain.CompilerBinaryRecord
	cacheDir string
}

func (c *wasmCompiler) Record() domain.CompilerBinaryRecord {
	return c.record
}

func (c *wasmCompiler) Compile(ctx context.Context, req domain.CompileRequest, stdout, stderr io.Writer) error {
	code, err := os.ReadFile(c.record.BinaryPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read compiler module"), "path", c.record.BinaryPath)
	}

	cfg := wazero.NewRuntimeConfig()
	if c.cacheDir != "" {
		if cache, cacheErr := wazero.NewCompilationCacheWithDir(c.cacheDir); cacheErr == nil {
			defer func() { _ = cache.Close(ctx) }()
			cfg = cfg.WithCompilationCache(cache)
		}
	}

	rt := wazero.NewRuntimeWithConfig(ctx, cfg)
	defer func() { _ = rt.Close(ctx) }()

	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	compiled, err := rt.CompileModule(ctx, code)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to compile compiler module"), "path", c.record.BinaryPath)
	}

	root := filepath.VolumeName(req.InputPath) + string(filepath.Separator)
	guestReq := req
	guestReq.InputPath = guestPath(req.InputPath)
	guestReq.OutputDir = guestPath(req.OutputDir)
	guestReq.LinkLibraries = make([]string, len(req.LinkLibraries))
	for i, lib := range req.LinkLibraries {
		guestReq.LinkLibraries[i] = guestPath(lib)
	}

	modCfg := wazero.NewModuleConfig().
		WithName("").
		WithArgs(append([]string{"circom"}, compileArgs(guestReq)...)...).
		WithStdout(orDiscard(stdout)).
		WithStderr(orDiscard(stderr)).
		WithFSConfig(wazero.NewFSConfig().WithDirMount(root, "/")).
		WithSysWalltime().
		WithSysNanotime().
		WithRandSource(rand.Reader)

	mod, err := rt.InstantiateModule(ctx, compiled, modCfg)
	if mod != nil {
		defer func() { _ = mod.Close(ctx) }()
	}
	if err != nil {
		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.ExitCode() == 0 {
				return nil
			}
			return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitErr.ExitCode())
		}
		return zerr.Wrap(err, "command failed")
	}
	return nil
}

// guestPath maps a host path to the path seen through the root mount.
func guestPath(p string) string {
	p = strings.TrimPrefix(p, filepath.VolumeName(p))
	return filepath.ToSlash(p)
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
