package domain

import (
	"math/big"
	"path/filepath"
)

// DefaultDownloadURL is where compiler releases are fetched from.
const DefaultDownloadURL = "https://github.com/iden3/circom/releases/download/v{version}/{asset}"

// CompilerSettings selects which compiler build is used.
type CompilerSettings struct {
	// Version is the pinned compiler version. Empty means "derive from pragmas".
	Version string
	// Strict requires the exact version instead of a minimum.
	Strict bool
	// DownloadURL is the release asset URL template. "{version}" and "{asset}"
	// are substituted, the asset being "circom-<platform>" or "circom.wasm".
	DownloadURL string
	// CacheDir is the compiler cache root.
	CacheDir string
}

// Project is the loaded project configuration.
type Project struct {
	Name          string
	Root          string
	SourcesDir    string
	Entries       []string
	LibraryPaths  []string
	LinkLibraries []string
	ArtifactsDir  string
	Prime         string
	PrimeModulus  *big.Int
	Optimization  int
	Outputs       []OutputKind
	Compiler      CompilerSettings
}

// ArtifactsPath returns the absolute artifact directory.
func (p *Project) ArtifactsPath() string {
	if filepath.IsAbs(p.ArtifactsDir) {
		return p.ArtifactsDir
	}
	return filepath.Join(p.Root, p.ArtifactsDir)
}

// CompileFlags returns the flag snapshot recorded in the change cache.
func (p *Project) CompileFlags() CompileFlags {
	outputs := make([]OutputKind, len(p.Outputs))
	copy(outputs, p.Outputs)
	libs := make([]string, len(p.LinkLibraries))
	copy(libs, p.LinkLibraries)

	return CompileFlags{
		CompilerVersion: p.Compiler.Version,
		Prime:           p.Prime,
		PrimeModulus:    NewBigInt(p.PrimeModulus),
		Optimization:    p.Optimization,
		Outputs:         outputs,
		LinkLibraries:   libs,
	}
}
