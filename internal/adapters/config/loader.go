// Package config provides the configuration loader for zkc.
package config

import (
	"encoding/json"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// DiscoverRoot walks up from cwd to the directory holding zkc.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

// Load reads the zkc.yaml found from cwd and converts it into a Project.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var file Zkcfile
	if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, err
	}

	project, err := l.buildProject(configPath, &file)
	if err != nil {
		return nil, zerr.With(err, "config", configPath)
	}
	return project, nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		currentDir = filepath.Clean(cwd)
	}
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := l.FS.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}
	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no "+domain.ConfigFileName+" above working directory"), "cwd", cwd)
}

func (l *Loader) buildProject(configPath string, file *Zkcfile) (*domain.Project, error) {
	root := resolveRoot(configPath, file.Root)

	prime := file.Prime
	if prime == "" {
		prime = DefaultPrime
	}
	modulus, err := PrimeModulus(prime)
	if err != nil {
		return nil, err
	}

	optimization := 1
	if file.Optimization != nil {
		optimization = *file.Optimization
	}
	if optimization < 0 || optimization > 2 {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "optimization must be 0, 1 or 2"), "optimization", optimization)
	}

	outputs, err := parseOutputs(file.Outputs)
	if err != nil {
		return nil, err
	}

	entries, err := normalizeEntries(file.Entries)
	if err != nil {
		return nil, err
	}

	if file.Compiler.Version != "" {
		if _, err := domain.ParseCompilerVersion(file.Compiler.Version); err != nil {
			return nil, err
		}
	}

	return &domain.Project{
		Name:          l.projectName(root, file.Name),
		Root:          root,
		SourcesDir:    orDefault(file.Sources, domain.DefaultSourcesDir),
		Entries:       entries,
		LibraryPaths:  absolutize(root, file.LibraryPaths),
		LinkLibraries: absolutize(root, file.LinkLibraries),
		ArtifactsDir:  orDefault(file.Artifacts, domain.DefaultArtifactsDir),
		Prime:         prime,
		PrimeModulus:  modulus,
		Optimization:  optimization,
		Outputs:       outputs,
		Compiler: domain.CompilerSettings{
			Version:     file.Compiler.Version,
			Strict:      file.Compiler.Strict,
			DownloadURL: orDefault(file.Compiler.URL, domain.DefaultDownloadURL),
			CacheDir:    compilerCacheDir(root, file.Compiler.CacheDir),
		},
	}, nil
}

// projectName prefers zkc.yaml, then the name in the root package.json.
func (l *Loader) projectName(root, configured string) string {
	if configured != "" {
		return configured
	}
	data, err := l.FS.ReadFile(filepath.Join(root, domain.PackageDescriptorFile))
	if err != nil {
		return ""
	}
	var desc packageDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		l.Logger.Warn("ignoring unreadable " + domain.PackageDescriptorFile + ": " + err.Error())
		return ""
	}
	return desc.Name
}

func parseOutputs(raw []string) ([]domain.OutputKind, error) {
	if len(raw) == 0 {
		return append([]domain.OutputKind(nil), domain.DefaultOutputKinds...), nil
	}
	seen := make(map[domain.OutputKind]bool, len(raw))
	outputs := make([]domain.OutputKind, 0, len(raw))
	for _, s := range raw {
		kind, err := domain.ParseOutputKind(s)
		if err != nil {
			return nil, err
		}
		if !seen[kind] {
			seen[kind] = true
			outputs = append(outputs, kind)
		}
	}
	domain.SortOutputKinds(outputs)
	return outputs, nil
}

// normalizeEntries turns configured entries into root-relative logical names.
func normalizeEntries(raw []string) ([]string, error) {
	entries := make([]string, 0, len(raw))
	for _, e := range raw {
		name := path.Clean(filepath.ToSlash(e))
		if path.IsAbs(name) || name == ".." || strings.HasPrefix(name, "../") {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "entries must be inside the project"), "entry", e)
		}
		entries = append(entries, name)
	}
	return entries, nil
}

func absolutize(root string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = filepath.Clean(p)
		} else {
			out[i] = filepath.Join(root, p)
		}
	}
	return out
}

func compilerCacheDir(root, configured string) string {
	if configured == "" {
		dir := domain.DefaultCompilerCachePath()
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		return dir
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Join(root, configured)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *Zkcfile) error {
	configFile, err := l.FS.ReadFile(configPath)
	if err != nil {
		return domain.Wrap(domain.ErrConfigReadFailed, err)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(domain.Wrap(domain.ErrConfigParseFailed, parseErr), "config", configPath)
	}

	return nil
}
