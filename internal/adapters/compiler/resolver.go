// Package compiler acquires circuit compiler builds: a compiler on PATH, a
// downloaded platform binary or the portable wasm module.
package compiler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/blang/semver/v4"
	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// NativeCommand is the compiler looked up on PATH.
const NativeCommand = "circom"

// Resolver implements ports.CompilerResolver.
type Resolver struct {
	settings domain.CompilerSettings
	cacheDir string
	runner   ports.CommandRunner
	logger   ports.Logger
	client   *http.Client
	goos     string
	goarch   string

	group    singleflight.Group
	mu       sync.Mutex
	acquired map[string]ports.Compiler
}

// NewResolver creates a resolver for the host platform.
func NewResolver(settings domain.CompilerSettings, runner ports.CommandRunner, logger ports.Logger, client *http.Client) *Resolver {
	return newResolverForPlatform(settings, runner, logger, client, runtime.GOOS, runtime.GOARCH)
}

func newResolverForPlatform(
	settings domain.CompilerSettings,
	runner ports.CommandRunner,
	logger ports.Logger,
	client *http.Client,
	goos, goarch string,
) *Resolver {
	cacheDir := settings.CacheDir
	if cacheDir == "" {
		cacheDir = domain.DefaultCompilerCachePath()
	}
	if settings.DownloadURL == "" {
		settings.DownloadURL = domain.DefaultDownloadURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Resolver{
		settings: settings,
		cacheDir: filepath.Clean(cacheDir),
		runner:   runner,
		logger:   logger,
		client:   client,
		goos:     goos,
		goarch:   goarch,
		acquired: make(map[string]ports.Compiler),
	}
}

// Acquire returns a compiler for version. Versions outside the supported
// range fail before anything is probed or downloaded. Results are memoized
// per version and mode.
func (r *Resolver) Acquire(ctx context.Context, version string, strict bool) (ports.Compiler, error) {
	v, err := domain.CheckCompilerVersion(version)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%t", v, strict)
	r.mu.Lock()
	if c, ok := r.acquired[key]; ok {
		r.mu.Unlock()
		return c, nil
	}
	r.mu.Unlock()

	res, err, _ := r.group.Do(key, func() (any, error) {
		c, acquireErr := r.acquire(ctx, v, strict)
		if acquireErr != nil {
			return nil, acquireErr
		}
		r.mu.Lock()
		r.acquired[key] = c
		r.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(ports.Compiler), nil
}

func (r *Resolver) acquire(ctx context.Context, v semver.Version, strict bool) (ports.Compiler, error) {
	if c, ok := r.probeNative(ctx, v, strict); ok {
		return c, nil
	}

	platform, version := adjustForARM(platformFor(r.goos, r.goarch), v, strict)
	if !platform.IsPortable() {
		c, err := r.acquirePlatform(ctx, version.String(), platform)
		if err == nil {
			return c, nil
		}
		r.logger.Warn(fmt.Sprintf("compiler %s for %s unavailable, using the portable build: %v", version, platform, err))
	}

	c, err := r.acquirePortable(ctx, v.String())
	if err != nil {
		return nil, zerr.With(domain.Wrap(domain.ErrCompilerAcquisitionFailed, err), "version", v.String())
	}
	return c, nil
}

// probeNative accepts a compiler on PATH whose version satisfies the request.
func (r *Resolver) probeNative(ctx context.Context, v semver.Version, strict bool) (ports.Compiler, bool) {
	path, err := r.runner.LookPath(NativeCommand)
	if err != nil {
		return nil, false
	}

	var out bytes.Buffer
	if err := r.runner.Run(ctx, "", path, []string{"--version"}, &out, nil); err != nil {
		return nil, false
	}
	found, ok := parseVersionOutput(out.String())
	if !ok {
		return nil, false
	}
	if strict && !found.Equals(v) || !strict && found.LT(v) {
		return nil, false
	}

	return &execCompiler{
		record: domain.CompilerBinaryRecord{
			Platform:   domain.PlatformNative,
			Version:    found.String(),
			BinaryPath: path,
		},
		runner: r.runner,
	}, true
}

func (r *Resolver) acquirePlatform(ctx context.Context, version string, platform domain.Platform) (ports.Compiler, error) {
	path, downloaded, err := r.ensure(ctx, version, platform)
	if err != nil {
		return nil, err
	}

	if downloaded {
		var stderr bytes.Buffer
		if err := r.runner.Run(ctx, "", path, []string{"--version"}, nil, &stderr); err != nil {
			_ = os.Remove(path)
			smokeErr := zerr.With(zerr.Wrap(domain.ErrCompilerSmokeTestFailed, err.Error()), "path", path)
			return nil, zerr.With(smokeErr, "stderr", strings.TrimSpace(stderr.String()))
		}
	}

	return &execCompiler{
		record: domain.CompilerBinaryRecord{
			Platform:   platform,
			Version:    version,
			BinaryPath: path,
		},
		runner: r.runner,
	}, nil
}

func (r *Resolver) acquirePortable(ctx context.Context, version string) (ports.Compiler, error) {
	path, _, err := r.ensure(ctx, version, domain.PlatformPortable)
	if err != nil {
		return nil, err
	}
	return &wasmCompiler{
		record: domain.CompilerBinaryRecord{
			Platform:   domain.PlatformPortable,
			Version:    version,
			BinaryPath: path,
			Portable:   true,
		},
		cacheDir: filepath.Join(r.cacheDir, version, ".wazero"),
	}, nil
}

// parseVersionOutput extracts the version from "circom compiler 2.1.6".
func parseVersionOutput(out string) (semver.Version, bool) {
	fields := strings.Fields(out)
	for i := len(fields) - 1; i >= 0; i-- {
		if v, err := semver.ParseTolerant(fields[i]); err == nil {
			return v, true
		}
	}
	return semver.Version{}, false
}
