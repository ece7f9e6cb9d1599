package app

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/engine/orchestrator"
)

// CircuitReport describes one compiled circuit.
type CircuitReport struct {
	ID          string                                      `json:"id"`
	Template    string                                      `json:"template"`
	Constraints int                                         `json:"constraints"`
	Outputs     map[domain.OutputKind]domain.ArtifactOutput `json:"outputs"`
}

// CompileReport is the machine-readable result of a compile run.
type CompileReport struct {
	Compiler *domain.CompilerBinaryRecord `json:"compiler,omitempty"`
	Compiled []CircuitReport              `json:"compiled"`
	UpToDate []string                     `json:"upToDate"`
	Warnings []string                     `json:"warnings"`
}

func (r *CompileReport) fill(g *domain.DependencyGraph, result *orchestrator.Result) {
	r.Compiled = []CircuitReport{}
	r.UpToDate = []string{}

	for _, record := range result.Records {
		r.Compiled = append(r.Compiled, CircuitReport{
			ID:          record.ID,
			Template:    record.Template,
			Constraints: record.Constraints,
			Outputs:     record.Outputs,
		})
	}
	if len(result.Records) > 0 {
		compiler := result.Compiler
		r.Compiler = &compiler
	}

	for _, entry := range g.Entries() {
		if entry.HasMain() && !slices.Contains(result.Compiled, entry.Name()) {
			r.UpToDate = append(r.UpToDate, entry.Name())
		}
	}
}

func (a *App) logReport(r *CompileReport) {
	if r.Compiler != nil {
		a.logger.Info(fmt.Sprintf("using compiler %s (%s)", r.Compiler.Version, r.Compiler.Platform))
	}
	for _, c := range r.Compiled {
		a.logger.Info(fmt.Sprintf("compiled %s (%s, %d constraints)", c.ID, c.Template, c.Constraints))
	}
	for _, id := range r.UpToDate {
		a.logger.Info(id + " is up to date")
	}
}

// reportWarnings logs the post-run analysis summary.
func (a *App) reportWarnings(warnings []domain.AnalysisWarning) {
	if len(warnings) == 0 {
		return
	}
	a.logger.Warn(fmt.Sprintf("%d dimension(s) could not be evaluated:", len(warnings)))
	for _, w := range warnings {
		a.logger.Warn(w.String())
	}
}

func warningStrings(warnings []domain.AnalysisWarning) []string {
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.String())
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
