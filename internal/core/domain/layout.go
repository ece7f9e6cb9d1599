package domain

import (
	"os"
	"path/filepath"
)

const (
	// WorkDirName is the name of the internal workspace directory.
	WorkDirName = ".zkc"

	// StoreDirName is the name of the artifact record store directory.
	StoreDirName = "store"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// ChangeCacheFile is the name of the persisted change cache document.
	ChangeCacheFile = "changes.json"

	// ParseCacheDirName is the name of the persisted parse cache directory.
	ParseCacheDirName = "parsed"

	// TempDirName is the name of the staging directory used while compiling.
	TempDirName = "tmp"

	// CompilerCacheDirName is the name of the compiler binary cache directory.
	CompilerCacheDirName = "compilers"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "zkc.yaml"

	// PackageDescriptorFile is the name of a library's package descriptor.
	PackageDescriptorFile = "package.json"

	// LibraryDirName is the name of the library install directory.
	LibraryDirName = "node_modules"

	// DefaultArtifactsDir is the default artifact directory relative to the project root.
	DefaultArtifactsDir = "artifacts/circuits"

	// DefaultSourcesDir is the default directory scanned for entry circuits.
	DefaultSourcesDir = "circuits"

	// SourceExtension is the extension of circuit source files.
	SourceExtension = ".circom"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for downloaded compiler binaries (rwxr-xr-x).
	ExecPerm = 0o755
)

// DefaultWorkPath returns the default root directory for zkc metadata.
func DefaultWorkPath() string {
	return WorkDirName
}

// DefaultStorePath returns the default path for artifact records.
// It joins .zkc and store.
func DefaultStorePath() string {
	return filepath.Join(WorkDirName, StoreDirName)
}

// DefaultChangeCachePath returns the default path of the change cache document.
// It joins .zkc, cache, and changes.json.
func DefaultChangeCachePath() string {
	return filepath.Join(WorkDirName, CacheDirName, ChangeCacheFile)
}

// DefaultParseCachePath returns the default path for the persisted parse cache.
// It joins .zkc, cache, and parsed.
func DefaultParseCachePath() string {
	return filepath.Join(WorkDirName, CacheDirName, ParseCacheDirName)
}

// DefaultTempPath returns where compilation runs stage their outputs.
func DefaultTempPath() string {
	return filepath.Join(WorkDirName, TempDirName)
}

// DefaultCompilerCachePath returns the shared compiler cache root.
// Compilers are shared across projects, so this lives in the user cache directory
// and falls back to the project workspace when none is available.
func DefaultCompilerCachePath() string {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		return filepath.Join(WorkDirName, CacheDirName, CompilerCacheDirName)
	}
	return filepath.Join(base, "zkc", CompilerCacheDirName)
}
