// Package analyzer derives the structural signature of a circuit's main
// component: bound template parameters, signal dimensions and visibility.
package analyzer

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/engine/expr"
)

// Analyzer computes main-component data and collects non-fatal warnings.
type Analyzer struct {
	mu       sync.Mutex
	warnings []domain.AnalysisWarning
}

// New creates an Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Resolve returns the main-component data of file. The result is memoized on
// the file, so repeated calls return the same value and add no warnings.
func (a *Analyzer) Resolve(file *domain.ResolvedFile, deps []*domain.ResolvedFile) (*domain.MainComponentData, error) {
	return file.MainComponent(func() (*domain.MainComponentData, error) {
		data, warnings, err := analyze(file, deps)
		if err != nil {
			return nil, err
		}
		if len(warnings) > 0 {
			a.mu.Lock()
			a.warnings = append(a.warnings, warnings...)
			a.mu.Unlock()
		}
		return data, nil
	})
}

// Warnings returns the warnings collected so far.
func (a *Analyzer) Warnings() []domain.AnalysisWarning {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.warnings)
}

func analyze(file *domain.ResolvedFile, deps []*domain.ResolvedFile) (*domain.MainComponentData, []domain.AnalysisWarning, error) {
	if !file.HasMain() {
		return nil, nil, zerr.With(zerr.Wrap(domain.ErrNoMainComponent, file.Name()), "logical_name", file.Name())
	}
	main := file.Parsed.Main

	tmpl, err := findTemplate(main.Template, file, deps)
	if err != nil {
		return nil, nil, err
	}

	var warnings []domain.AnalysisWarning
	if len(main.Args) != len(tmpl.Params) {
		warnings = append(warnings, arityWarning(file.Name(), tmpl, main.Args))
	}
	bindings := make(map[string]domain.Value, len(tmpl.Params))
	for i, param := range tmpl.Params {
		if i >= len(main.Args) {
			break
		}
		v, err := expr.Evaluate(main.Args[i], nil)
		if err != nil {
			if !isAnalysisError(err) {
				return nil, nil, err
			}
			warnings = append(warnings, domain.AnalysisWarning{
				File:       file.Name(),
				Expression: param + " = " + main.Args[i].String(),
				Reason:     err.Error(),
			})
			continue
		}
		bindings[param] = v
	}

	signals := make([]domain.SignalInfo, 0, len(tmpl.Signals))
	for _, sig := range tmpl.Signals {
		if sig.Kind == domain.SignalIntermediate {
			continue
		}

		dims := make([]string, 0, len(sig.Dimensions))
		for _, d := range sig.Dimensions {
			v, err := expr.EvaluateInt(d, bindings)
			if err != nil {
				if !isAnalysisError(err) {
					return nil, nil, err
				}
				warnings = append(warnings, domain.AnalysisWarning{
					File:       file.Name(),
					Signal:     sig.Name,
					Expression: d.String(),
					Reason:     err.Error(),
				})
				dims = append(dims, d.String())
				continue
			}
			dims = append(dims, v.String())
		}

		signals = append(signals, domain.SignalInfo{
			Name:       sig.Name,
			Dimension:  dims,
			Kind:       sig.Kind,
			Visibility: visibility(sig, main.PublicInputs),
		})
	}

	return &domain.MainComponentData{
		Template:        tmpl.Name,
		BoundParameters: bindings,
		Signals:         signals,
	}, warnings, nil
}

// arityWarning reports a main instantiation whose argument count differs
// from the template's parameter count. Unmatched parameters stay unbound.
func arityWarning(file string, tmpl domain.Template, args []domain.Expr) domain.AnalysisWarning {
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = a.String()
	}
	return domain.AnalysisWarning{
		File: file,
		Reason: fmt.Sprintf("main component %s(%s): template %s declares %d parameters, got %d arguments",
			tmpl.Name, strings.Join(rendered, ", "), tmpl.Name, len(tmpl.Params), len(args)),
	}
}

// findTemplate looks in file first, then in deps by logical name.
func findTemplate(name string, file *domain.ResolvedFile, deps []*domain.ResolvedFile) (domain.Template, error) {
	if t, ok := declared(file, name); ok {
		return t, nil
	}

	sorted := slices.Clone(deps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })
	for _, dep := range sorted {
		if t, ok := declared(dep, name); ok {
			return t, nil
		}
	}

	err := zerr.With(zerr.Wrap(domain.ErrTemplateNotFound, name), "template", name)
	return domain.Template{}, zerr.With(err, "logical_name", file.Name())
}

func declared(f *domain.ResolvedFile, name string) (domain.Template, bool) {
	if f.Parsed == nil {
		return domain.Template{}, false
	}
	t, ok := f.Parsed.Templates[name]
	return t, ok
}

func visibility(sig domain.SignalDecl, public []string) domain.Visibility {
	if sig.Kind == domain.SignalOutput || slices.Contains(public, sig.Name) {
		return domain.VisibilityPublic
	}
	return domain.VisibilityPrivate
}

func isAnalysisError(err error) bool {
	return domain.KindOf(err) == domain.KindAnalysis
}
