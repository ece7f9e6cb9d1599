package compiler

import (
	"strconv"

	"go.trai.ch/zkc/internal/core/domain"
)

// compileArgs builds the command line of one compilation.
func compileArgs(req domain.CompileRequest) []string {
	args := []string{req.InputPath}
	for _, kind := range req.Outputs {
		args = append(args, kind.Flag())
	}
	args = append(args, "-o", req.OutputDir)
	for _, lib := range req.LinkLibraries {
		args = append(args, "-l", lib)
	}
	if req.Prime != "" {
		args = append(args, "--prime", req.Prime)
	}
	return append(args, "--O"+strconv.Itoa(req.Optimization))
}
