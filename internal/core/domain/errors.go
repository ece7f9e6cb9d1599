package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// Resolution errors.
var (
	// ErrFileNotFound is returned when a logical name does not map to an existing file.
	ErrFileNotFound = zerr.New("source file not found")

	// ErrWrongCasing is returned when a file exists but the requested name differs in casing.
	ErrWrongCasing = zerr.New("source name has wrong casing")

	// ErrLibraryNotInstalled is returned when an import names a library that is not installed.
	ErrLibraryNotInstalled = zerr.New("library is not installed")

	// ErrImportWithScheme is returned for import literals carrying a URI scheme.
	ErrImportWithScheme = zerr.New("import must not use a URI scheme")

	// ErrImportWithBackslash is returned for import literals containing backslashes.
	ErrImportWithBackslash = zerr.New("import must use forward slashes")

	// ErrImportAbsolute is returned for absolute import literals.
	ErrImportAbsolute = zerr.New("import must not be an absolute path")

	// ErrImportSelfPackage is returned when an import re-embeds the project's own package name.
	ErrImportSelfPackage = zerr.New("import must not use the project's own package name")

	// ErrImportOutsideRoot is returned when a relative import escapes the project or library root.
	ErrImportOutsideRoot = zerr.New("import escapes its root directory")

	// ErrAmbiguousName is returned when two absolute paths claim the same logical name.
	ErrAmbiguousName = zerr.New("logical name resolves to more than one file")

	// ErrInvalidLibraryDescriptor is returned when a library's package.json cannot be read.
	ErrInvalidLibraryDescriptor = zerr.New("invalid library descriptor")

	// ErrSourceReadFailed is returned when the file-read provider fails.
	ErrSourceReadFailed = zerr.New("failed to read source file")
)

// Parse errors.
var (
	// ErrSyntax is returned for any syntax error in a source file.
	ErrSyntax = zerr.New("syntax error")

	// ErrDuplicateTemplate is returned when a file declares the same template twice.
	ErrDuplicateTemplate = zerr.New("duplicate template name")
)

// Analysis errors.
var (
	// ErrTemplateNotFound is returned when no file declares the instantiated template.
	ErrTemplateNotFound = zerr.New("template not found")

	// ErrNoMainComponent is returned when a file has no main instantiation.
	ErrNoMainComponent = zerr.New("file has no main component")

	// ErrUnboundIdentifier is returned when an expression references an unknown name.
	ErrUnboundIdentifier = zerr.New("unbound identifier")

	// ErrUnsupportedExpression is returned for expression shapes the evaluator cannot handle.
	ErrUnsupportedExpression = zerr.New("unsupported expression")

	// ErrDivisionByZero is returned when an expression divides by zero.
	ErrDivisionByZero = zerr.New("division by zero")

	// ErrTypeMismatch is returned when an operator receives an array where a scalar is required, or vice versa.
	ErrTypeMismatch = zerr.New("type mismatch")

	// ErrIndexOutOfRange is returned when an array index is outside its bounds.
	ErrIndexOutOfRange = zerr.New("index out of range")
)

// Compiler acquisition errors.
var (
	// ErrUnsupportedCompilerVersion is returned for versions outside the supported range.
	ErrUnsupportedCompilerVersion = zerr.New("unsupported compiler version")

	// ErrInvalidCompilerVersion is returned when a version string cannot be parsed.
	ErrInvalidCompilerVersion = zerr.New("invalid compiler version")

	// ErrCompilerVersionTooOld is returned when a pinned version is older than a source pragma.
	ErrCompilerVersionTooOld = zerr.New("configured compiler version is older than required by sources")

	// ErrCompilerAcquisitionFailed is returned when every acquisition stage failed.
	ErrCompilerAcquisitionFailed = zerr.New("failed to acquire compiler")

	// ErrCompilerDownloadFailed is returned when a compiler download fails.
	ErrCompilerDownloadFailed = zerr.New("failed to download compiler")

	// ErrCompilerSmokeTestFailed is returned when a downloaded binary does not run.
	ErrCompilerSmokeTestFailed = zerr.New("compiler smoke test failed")

	// ErrCompilerLockFailed is returned when the download lock cannot be acquired.
	ErrCompilerLockFailed = zerr.New("failed to lock compiler cache")

	// ErrCompilerCacheCreateFailed is returned when the compiler cache directory cannot be created.
	ErrCompilerCacheCreateFailed = zerr.New("failed to create compiler cache directory")
)

// Compilation errors.
var (
	// ErrCompilationFailed is returned when the compiler rejects a circuit.
	ErrCompilationFailed = zerr.New("compilation failed")

	// ErrHeaderNotFound is returned when a constraint-system binary has no header section.
	ErrHeaderNotFound = zerr.New("constraint system header section not found")

	// ErrMalformedConstraintSystem is returned when a constraint-system binary is truncated.
	ErrMalformedConstraintSystem = zerr.New("malformed constraint system")

	// ErrTempDirFailed is returned when the staging directory cannot be created.
	ErrTempDirFailed = zerr.New("failed to create staging directory")

	// ErrArtifactCommitFailed is returned when staged outputs cannot be moved into place.
	ErrArtifactCommitFailed = zerr.New("failed to commit artifacts")
)

// Store and configuration errors.
var (
	// ErrStoreCreateFailed is returned when the artifact store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create artifact store directory")

	// ErrStoreReadFailed is returned when an artifact record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read artifact record")

	// ErrStoreUnmarshalFailed is returned when an artifact record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal artifact record")

	// ErrStoreMarshalFailed is returned when an artifact record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal artifact record")

	// ErrStoreWriteFailed is returned when an artifact record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write artifact record")

	// ErrCacheWriteFailed is returned when the change cache cannot be persisted.
	ErrCacheWriteFailed = zerr.New("failed to write change cache")

	// ErrParseCacheFailed is returned when the persisted parse cache cannot be accessed.
	ErrParseCacheFailed = zerr.New("failed to access parse cache")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no config file is found.
	ErrConfigNotFound = zerr.New("could not find zkc.yaml")

	// ErrUnknownPrime is returned when the configured prime name is not supported.
	ErrUnknownPrime = zerr.New("unknown prime")

	// ErrUnknownOutputKind is returned when the configured output kind is not supported.
	ErrUnknownOutputKind = zerr.New("unknown output kind")

	// ErrNoEntries is returned when there is nothing to compile.
	ErrNoEntries = zerr.New("no entry circuits found")

	// ErrWatchUnavailable is returned when watch mode has no file watcher.
	ErrWatchUnavailable = zerr.New("file watching is not available")
)

// ErrorKind classifies errors into the closed set of failure categories the
// pipeline distinguishes.
type ErrorKind int

const (
	// KindInternal covers everything not listed below.
	KindInternal ErrorKind = iota
	// KindResolution covers not-found, wrong casing, illegal import shape and ambiguous names.
	KindResolution
	// KindParse covers syntax errors and duplicate templates.
	KindParse
	// KindAnalysis covers evaluator and template lookup failures.
	KindAnalysis
	// KindCompilerAcquisition covers every stage of the compiler fallback chain.
	KindCompilerAcquisition
	// KindCompilation covers failed compiler invocations and artifact commits.
	KindCompilation
	// KindHeaderNotFound marks truncated or malformed compiler output.
	KindHeaderNotFound
	// KindConfig covers configuration loading.
	KindConfig
)

var kindNames = map[ErrorKind]string{
	KindInternal:            "internal",
	KindResolution:          "resolution",
	KindParse:               "parse",
	KindAnalysis:            "analysis",
	KindCompilerAcquisition: "compiler_acquisition",
	KindCompilation:         "compilation",
	KindHeaderNotFound:      "header_not_found",
	KindConfig:              "config",
}

// String returns the snake_case name of the kind.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

var kindSentinels = []struct {
	kind      ErrorKind
	sentinels []error
}{
	{KindHeaderNotFound, []error{ErrHeaderNotFound, ErrMalformedConstraintSystem}},
	{KindResolution, []error{
		ErrFileNotFound, ErrWrongCasing, ErrLibraryNotInstalled, ErrImportWithScheme,
		ErrImportWithBackslash, ErrImportAbsolute, ErrImportSelfPackage, ErrImportOutsideRoot,
		ErrAmbiguousName, ErrInvalidLibraryDescriptor, ErrSourceReadFailed,
	}},
	{KindParse, []error{ErrSyntax, ErrDuplicateTemplate}},
	{KindAnalysis, []error{
		ErrTemplateNotFound, ErrNoMainComponent, ErrUnboundIdentifier, ErrUnsupportedExpression,
		ErrDivisionByZero, ErrTypeMismatch, ErrIndexOutOfRange,
	}},
	{KindCompilerAcquisition, []error{
		ErrUnsupportedCompilerVersion, ErrInvalidCompilerVersion, ErrCompilerVersionTooOld,
		ErrCompilerAcquisitionFailed, ErrCompilerDownloadFailed, ErrCompilerSmokeTestFailed,
		ErrCompilerLockFailed, ErrCompilerCacheCreateFailed,
	}},
	{KindCompilation, []error{ErrCompilationFailed, ErrTempDirFailed, ErrArtifactCommitFailed}},
	{KindConfig, []error{
		ErrConfigReadFailed, ErrConfigParseFailed, ErrConfigNotFound, ErrUnknownPrime, ErrUnknownOutputKind,
	}},
}

// Wrap marks cause with sentinel. The result matches both under errors.Is
// and reads "sentinel: cause".
func Wrap(sentinel, cause error) error {
	if cause == nil {
		return nil
	}
	return zerr.Wrap(&causedError{sentinel: sentinel, cause: cause}, "")
}

type causedError struct {
	sentinel error
	cause    error
}

func (e *causedError) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

func (e *causedError) Unwrap() []error {
	return []error{e.sentinel, e.cause}
}

// KindOf walks the error chain and reports the first matching kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}
	for _, group := range kindSentinels {
		for _, sentinel := range group.sentinels {
			if errors.Is(err, sentinel) {
				return group.kind
			}
		}
	}
	return KindInternal
}
