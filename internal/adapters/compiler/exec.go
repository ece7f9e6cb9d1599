package compiler

import (
	"context"
	"io"

	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
)

// execCompiler runs a native or downloaded compiler binary.
type execCompiler struct {
	record domain.CompilerBinaryRecord
	runner ports.CommandRunner
}

func (c *execCompiler) Record() domain.CompilerBinaryRecord {
	return c.record
}

func (c *execCompiler) Compile(ctx context.Context, req domain.CompileRequest, stdout, stderr io.Writer) error {
	return c.runner.Run(ctx, req.OutputDir, c.record.BinaryPath, compileArgs(req), stdout, stderr)
}
