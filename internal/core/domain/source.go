package domain

import (
	"sync"
	"time"
)

// SourceKind tells project files apart from installed library files.
type SourceKind int

const (
	// SourceLocal is a file inside the project root.
	SourceLocal SourceKind = iota
	// SourceLibrary is a file inside an installed library.
	SourceLibrary
)

// String returns the kind name.
func (k SourceKind) String() string {
	if k == SourceLibrary {
		return "library"
	}
	return "local"
}

// LibraryInfo identifies the installed library a file belongs to.
type LibraryInfo struct {
	ID      string `json:"id"`
	Version string `json:"version"`
	Root    string `json:"root"`
}

// ResolvedFile is a source file with a stable logical identity.
// The resolver builds exactly one instance per logical name per run, so
// pointer equality is identity equality.
type ResolvedFile struct {
	LogicalName  InternedString
	AbsolutePath string
	ContentHash  string
	LastModified time.Time
	Library      *LibraryInfo
	Parsed       *ParsedFileData

	mu           sync.Mutex
	mainComputed bool
	main         *MainComponentData
}

// Name returns the logical name as a string.
func (f *ResolvedFile) Name() string {
	return f.LogicalName.String()
}

// Kind reports whether the file is local or comes from a library.
func (f *ResolvedFile) Kind() SourceKind {
	if f.Library != nil {
		return SourceLibrary
	}
	return SourceLocal
}

// MainComponent returns the memoized main-component data, running compute
// the first time. Failed computations are not memoized.
func (f *ResolvedFile) MainComponent(compute func() (*MainComponentData, error)) (*MainComponentData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.mainComputed {
		return f.main, nil
	}

	data, err := compute()
	if err != nil {
		return nil, err
	}
	f.main = data
	f.mainComputed = true
	return data, nil
}

// CachedMainComponent returns the memoized data without computing it.
func (f *ResolvedFile) CachedMainComponent() (*MainComponentData, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.main, f.mainComputed
}

// HasMain reports whether the file declares a main instantiation.
func (f *ResolvedFile) HasMain() bool {
	return f.Parsed != nil && f.Parsed.Main != nil
}

// Visibility of a signal in the compiled circuit.
type Visibility string

const (
	// VisibilityPublic signals are part of the public statement.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate signals are witness-only.
	VisibilityPrivate Visibility = "private"
)

// SignalInfo is a signal of the main component with resolved dimensions.
type SignalInfo struct {
	Name       string     `json:"name"`
	Dimension  []string   `json:"dimension"`
	Kind       SignalKind `json:"kind"`
	Visibility Visibility `json:"visibility"`
}

// MainComponentData is the structural signature of a compilable circuit.
type MainComponentData struct {
	Template        string           `json:"template"`
	BoundParameters map[string]Value `json:"boundParameters"`
	Signals         []SignalInfo     `json:"signals"`
}

// AnalysisWarning reports a dimension the analyzer could only approximate.
type AnalysisWarning struct {
	File       string
	Signal     string
	Expression string
	Reason     string
}

// String renders the warning for the post-run summary. Warnings without a
// signal concern a template argument, or the main instantiation as a whole
// when there is no expression either.
func (w AnalysisWarning) String() string {
	if w.Signal == "" && w.Expression == "" {
		return w.File + ": " + w.Reason
	}
	if w.Signal == "" {
		return w.File + ": cannot evaluate argument " + w.Expression + " (" + w.Reason + ")"
	}
	return w.File + ": signal " + w.Signal + ": cannot evaluate dimension " + w.Expression + " (" + w.Reason + ")"
}

// CompileJob is one circuit ready for compilation.
type CompileJob struct {
	ID           string
	File         *ResolvedFile
	Dependencies []*ResolvedFile
}
