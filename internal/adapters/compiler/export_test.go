package compiler

import (
	"net/http"

	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
)

// NewResolverForPlatform exposes platform injection for tests.
func NewResolverForPlatform(
	settings domain.CompilerSettings,
	runner ports.CommandRunner,
	logger ports.Logger,
	client *http.Client,
	goos, goarch string,
) *Resolver {
	return newResolverForPlatform(settings, runner, logger, client, goos, goarch)
}

// CompileArgs exposes compileArgs for tests.
func CompileArgs(req domain.CompileRequest) []string {
	return compileArgs(req)
}

// PlatformFor exposes platformFor for tests.
func PlatformFor(goos, goarch string) domain.Platform {
	return platformFor(goos, goarch)
}
