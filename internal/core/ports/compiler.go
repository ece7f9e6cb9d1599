package ports

import (
	"context"
	"io"

	"go.trai.ch/zkc/internal/core/domain"
)

// Compiler is an acquired circuit compiler.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Record describes the acquired build.
	Record() domain.CompilerBinaryRecord

	// Compile runs one compilation. Diagnostics are written to stderr.
	Compile(ctx context.Context, req domain.CompileRequest, stdout, stderr io.Writer) error
}

// CompilerResolver acquires a compiler through the fallback chain.
type CompilerResolver interface {
	// Acquire returns a compiler for version. In strict mode the version must
	// match exactly, otherwise it is a minimum.
	Acquire(ctx context.Context, version string, strict bool) (Compiler, error)
}

// CompilerResolverFactory builds a resolver for the compiler settings of a project.
type CompilerResolverFactory interface {
	New(settings domain.CompilerSettings) CompilerResolver
}
