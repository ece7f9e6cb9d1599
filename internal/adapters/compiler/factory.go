package compiler

import (
	"net/http"

	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
)

// Factory implements ports.CompilerResolverFactory.
type Factory struct {
	runner ports.CommandRunner
	logger ports.Logger
	client *http.Client
}

// NewFactory creates a factory sharing one HTTP client. The client has no
// overall timeout; callers cancel through the context.
func NewFactory(runner ports.CommandRunner, logger ports.Logger) *Factory {
	return &Factory{runner: runner, logger: logger, client: &http.Client{}}
}

// New returns a resolver for settings.
func (f *Factory) New(settings domain.CompilerSettings) ports.CompilerResolver {
	return NewResolver(settings, f.runner, f.logger, f.client)
}
