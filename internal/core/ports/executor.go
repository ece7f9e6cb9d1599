// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// CommandRunner runs external processes.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type CommandRunner interface {
	// Run executes name with args in dir, streaming output to stdout and stderr.
	//
	// A non-zero exit status is returned as an error carrying the exit code.
	Run(ctx context.Context, dir, name string, args []string, stdout, stderr io.Writer) error

	// LookPath resolves an executable on PATH.
	LookPath(name string) (string, error)
}
