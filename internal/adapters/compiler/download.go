package compiler

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/adapters/fs"
	"go.trai.ch/zkc/internal/core/domain"
)

const lockRetryDelay = 100 * time.Millisecond

// binaryPath is <cache-root>/<version>/<platform-id>.
func (r *Resolver) binaryPath(version string, platform domain.Platform) string {
	return filepath.Join(r.cacheDir, version, string(platform))
}

// downloadURL expands the configured URL template.
func (r *Resolver) downloadURL(version string, platform domain.Platform) string {
	return strings.NewReplacer("{version}", version, "{asset}", assetName(platform)).Replace(r.settings.DownloadURL)
}

// ensure returns the cached build, downloading it first if needed. Present
// builds are read without locking. Downloads are serialized across processes
// with a file lock per platform and version directory.
func (r *Resolver) ensure(ctx context.Context, version string, platform domain.Platform) (path string, downloaded bool, err error) {
	path = r.binaryPath(version, platform)
	if isFile(path) {
		return path, false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", false, zerr.With(zerr.Wrap(domain.ErrCompilerCacheCreateFailed, err.Error()), "path", dir)
	}

	lock := flock.New(filepath.Join(dir, "."+string(platform)+".lock"))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		reason := "lock not acquired"
		if err != nil {
			reason = err.Error()
		}
		return "", false, zerr.With(zerr.Wrap(domain.ErrCompilerLockFailed, reason), "path", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	// Another process may have finished the download while we waited.
	if isFile(path) {
		return path, false, nil
	}

	perm := os.FileMode(domain.ExecPerm)
	if platform.IsPortable() || platform == domain.PlatformWindowsAMD64 {
		perm = domain.FilePerm
	}

	if err := r.download(ctx, r.downloadURL(version, platform), path, perm); err != nil {
		return "", false, err
	}
	return path, true, nil
}

func (r *Resolver) download(ctx context.Context, url, dest string, perm os.FileMode) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCompilerDownloadFailed, err.Error()), "url", url)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCompilerDownloadFailed, err.Error()), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.With(zerr.Wrap(domain.ErrCompilerDownloadFailed, resp.Status), "status_code", resp.StatusCode)
		return zerr.With(statusErr, "url", url)
	}

	err = fs.WriteAtomic(dest, perm, func(w io.Writer) error {
		_, copyErr := io.Copy(w, resp.Body)
		return copyErr
	})
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCompilerDownloadFailed, err.Error()), "url", url)
	}
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
