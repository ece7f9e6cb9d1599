package domain

// Platform is the identifier of a compiler build. It doubles as the file
// name inside <cache-root>/<version>/.
type Platform string

const (
	// PlatformLinuxAMD64 is the Linux x86-64 build.
	PlatformLinuxAMD64 Platform = "linux-amd64"
	// PlatformMacAMD64 is the macOS x86-64 build.
	PlatformMacAMD64 Platform = "macos-amd64"
	// PlatformMacARM64 is the macOS arm64 build.
	PlatformMacARM64 Platform = "macos-arm64"
	// PlatformWindowsAMD64 is the Windows x86-64 build.
	PlatformWindowsAMD64 Platform = "windows-amd64.exe"
	// PlatformPortable is the portable wasm module.
	PlatformPortable Platform = "circom.wasm"
	// PlatformNative marks a compiler found on PATH.
	PlatformNative Platform = "native"
)

// IsPortable reports whether the platform is the portable module.
func (p Platform) IsPortable() bool {
	return p == PlatformPortable
}

// CompilerBinaryRecord describes an acquired compiler.
type CompilerBinaryRecord struct {
	Platform   Platform `json:"platform"`
	Version    string   `json:"version"`
	BinaryPath string   `json:"binaryPath"`
	Portable   bool     `json:"portable"`
}

// CompileRequest is one compiler invocation.
type CompileRequest struct {
	InputPath     string
	OutputDir     string
	Outputs       []OutputKind
	LinkLibraries []string
	Prime         string
	Optimization  int
}
