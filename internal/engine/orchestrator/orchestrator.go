// Package orchestrator compiles circuits into a staging directory and commits
// the outputs to the artifact store once every circuit has compiled.
package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
	"github.com/blang/semver/v4"
	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
)

// Request is one compilation run.
type Request struct {
	Jobs  []domain.CompileJob
	Flags domain.CompileFlags
	// Strict requires the pinned compiler version exactly.
	Strict bool
}

// Result summarizes a successful run.
type Result struct {
	Records     []*domain.ArtifactRecord
	Constraints map[string]int
	Compiled    []string
	Compiler    domain.CompilerBinaryRecord
}

// Orchestrator runs the compiler over a set of jobs.
type Orchestrator struct {
	resolver ports.CompilerResolver
	store    ports.ArtifactStore
	hasher   ports.Hasher
	tracer   ports.Tracer
	logger   ports.Logger
	tempRoot string
}

// New creates an orchestrator staging its work below tempRoot. tempRoot
// should live on the same filesystem as the artifact directory.
func New(
	resolver ports.CompilerResolver,
	store ports.ArtifactStore,
	hasher ports.Hasher,
	tracer ports.Tracer,
	logger ports.Logger,
	tempRoot string,
) *Orchestrator {
	return &Orchestrator{
		resolver: resolver,
		store:    store,
		hasher:   hasher,
		tracer:   tracer,
		logger:   logger,
		tempRoot: tempRoot,
	}
}

type staged struct {
	job      domain.CompileJob
	template string
	dir      string
	header   *domain.ConstraintSystemHeader
}

// Compile compiles every job. Nothing is committed unless all jobs compile.
func (o *Orchestrator) Compile(ctx context.Context, req Request) (*Result, error) {
	result := &Result{Constraints: make(map[string]int)}
	if len(req.Jobs) == 0 {
		return result, nil
	}

	version, err := compilerVersion(req.Jobs, req.Flags.CompilerVersion)
	if err != nil {
		return nil, err
	}

	compiler, err := o.resolver.Acquire(ctx, version, req.Strict && req.Flags.CompilerVersion != "")
	if err != nil {
		return nil, err
	}
	result.Compiler = compiler.Record()

	if err := os.MkdirAll(o.tempRoot, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrTempDirFailed, err.Error()), "path", o.tempRoot)
	}
	tmp, err := os.MkdirTemp(o.tempRoot, "zkc-build-*")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrTempDirFailed, err.Error()), "path", o.tempRoot)
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	stages := make([]*staged, 0, len(req.Jobs))
	for i, job := range req.Jobs {
		s, err := o.compileJob(ctx, compiler, req.Flags, job, filepath.Join(tmp, fmt.Sprintf("%03d", i)))
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}

	if slices.Contains(req.Flags.Outputs, domain.OutputR1CS) {
		for _, s := range stages {
			header, err := ReadConstraintSystemHeader(filepath.Join(s.dir, domain.OutputR1CS.RelativePath(s.template)))
			if err != nil {
				return nil, zerr.With(err, "id", s.job.ID)
			}
			s.header = header
		}
	}

	for _, s := range stages {
		record, err := o.commit(s, req.Flags, result.Compiler)
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, record)
		result.Compiled = append(result.Compiled, record.ID)
		if s.header != nil {
			result.Constraints[record.ID] = record.Constraints
		}
	}

	return result, nil
}

func (o *Orchestrator) compileJob(
	ctx context.Context,
	compiler ports.Compiler,
	flags domain.CompileFlags,
	job domain.CompileJob,
	dir string,
) (*staged, error) {
	ctx, span := o.tracer.Start(ctx, "compile "+job.ID)
	defer span.End()
	span.SetAttribute("circuit.id", job.ID)
	span.SetAttribute("circuit.dependencies", len(job.Dependencies))

	fail := func(err error) (*staged, error) {
		span.RecordError(err)
		return nil, err
	}

	if job.File == nil || !job.File.HasMain() {
		return fail(zerr.With(zerr.Wrap(domain.ErrNoMainComponent, job.ID), "id", job.ID))
	}
	template := job.File.Parsed.Main.Template
	span.SetAttribute("circuit.template", template)

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return fail(zerr.With(zerr.Wrap(domain.ErrTempDirFailed, err.Error()), "path", dir))
	}

	var stdout, stderr bytes.Buffer
	err := compiler.Compile(ctx, domain.CompileRequest{
		InputPath:     job.File.AbsolutePath,
		OutputDir:     dir,
		Outputs:       flags.Outputs,
		LinkLibraries: flags.LinkLibraries,
		Prime:         flags.Prime,
		Optimization:  flags.Optimization,
	}, &stdout, &stderr)
	if err != nil {
		if ctx.Err() != nil {
			return fail(ctx.Err())
		}
		diag := strings.TrimSpace(stderr.String() + "\n" + collectLogs(dir))
		wrapped := zerr.Wrap(domain.ErrCompilationFailed, err.Error())
		wrapped = zerr.With(wrapped, "id", job.ID)
		if diag != "" {
			wrapped = zerr.With(wrapped, "diagnostics", diag)
		}
		return fail(wrapped)
	}

	base := strings.TrimSuffix(filepath.Base(job.File.AbsolutePath), filepath.Ext(job.File.AbsolutePath))
	if err := renameOutputs(dir, base, template); err != nil {
		return fail(zerr.With(zerr.Wrap(domain.ErrCompilationFailed, err.Error()), "id", job.ID))
	}

	return &staged{job: job, template: template, dir: dir}, nil
}

func (o *Orchestrator) commit(
	s *staged,
	flags domain.CompileFlags,
	compiler domain.CompilerBinaryRecord,
) (*domain.ArtifactRecord, error) {
	id := s.job.ID
	if err := commitDir(s.dir, o.store.Dir(id), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrArtifactCommitFailed, err.Error()), "id", id)
	}

	record := &domain.ArtifactRecord{
		ID:              id,
		Template:        s.template,
		Source:          s.job.File.AbsolutePath,
		ContentHash:     s.job.File.ContentHash,
		CompilerVersion: compiler.Version,
		Header:          s.header,
		Outputs:         make(map[domain.OutputKind]domain.ArtifactOutput, len(flags.Outputs)),
	}
	if s.header != nil {
		n, err := safecast.Convert[int](s.header.Constraints)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrMalformedConstraintSystem, err.Error()), "id", id)
		}
		record.Constraints = n
	}
	if main, ok := s.job.File.CachedMainComponent(); ok && main != nil {
		record.Signals = main.Signals
	}

	for _, kind := range flags.Outputs {
		path := o.store.PathFor(record, kind)
		hash, err := o.hasher.HashFile(path)
		if err != nil {
			o.logger.Warn(fmt.Sprintf("%s: output %s not produced", id, kind))
			continue
		}
		record.Outputs[kind] = domain.ArtifactOutput{Path: path, Hash: hash}
	}

	if err := o.store.Save(record, flags.Outputs); err != nil {
		return nil, err
	}
	return record, nil
}

// compilerVersion returns the version to acquire: the pin if there is one,
// otherwise the oldest release covering every pragma.
func compilerVersion(jobs []domain.CompileJob, pinned string) (string, error) {
	required := semver.MustParse(domain.CompilerReleases[0])
	for _, job := range jobs {
		files := append([]*domain.ResolvedFile{job.File}, job.Dependencies...)
		for _, f := range files {
			if f == nil || f.Parsed == nil || f.Parsed.PragmaVersion == "" {
				continue
			}
			v, err := domain.ParseCompilerVersion(f.Parsed.PragmaVersion)
			if err != nil {
				return "", zerr.With(err, "path", f.AbsolutePath)
			}
			if v.GT(required) {
				required = v
			}
		}
	}

	if pinned != "" {
		pin, err := domain.ParseCompilerVersion(pinned)
		if err != nil {
			return "", err
		}
		if pin.LT(required) {
			err := zerr.Wrap(domain.ErrCompilerVersionTooOld, pin.String()+" < "+required.String())
			err = zerr.With(err, "configured", pin.String())
			return "", zerr.With(err, "required", required.String())
		}
		return pin.String(), nil
	}

	minimum, err := domain.MinimumCompilerRelease(required)
	if err != nil {
		return "", err
	}
	return minimum.String(), nil
}
