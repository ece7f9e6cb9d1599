// Package cas implements the artifact store: one JSON record per circuit plus
// the permanent artifact directories.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/zerr"
	zfs "go.trai.ch/zkc/internal/adapters/fs"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
)

// Store implements ports.ArtifactStore using a file-per-circuit strategy.
type Store struct {
	recordsDir   string
	artifactsDir string
}

// NewStore creates a store keeping records in recordsDir and outputs below artifactsDir.
func NewStore(recordsDir, artifactsDir string) (*Store, error) {
	if err := os.MkdirAll(recordsDir, domain.DirPerm); err != nil {
		return nil, zerr.With(domain.Wrap(domain.ErrStoreCreateFailed, err), "path", recordsDir)
	}
	return &Store{recordsDir: recordsDir, artifactsDir: artifactsDir}, nil
}

// Read retrieves the record of a circuit.
func (s *Store) Read(id string) (*domain.ArtifactRecord, error) {
	return s.readFile(s.getFilename(id))
}

func (s *Store) readFile(filename string) (*domain.ArtifactRecord, error) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.Wrap(domain.ErrStoreReadFailed, err)
	}

	var record domain.ArtifactRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, domain.Wrap(domain.ErrStoreUnmarshalFailed, err)
	}
	return &record, nil
}

// Exists reports whether a record for id exists.
func (s *Store) Exists(id string) (bool, error) {
	_, err := os.Stat(s.getFilename(id))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, domain.Wrap(domain.ErrStoreReadFailed, err)
}

// Save writes record. Outputs of kinds in changed come from record, the
// previously stored outputs of other kinds are kept. A nil changed replaces
// all outputs.
func (s *Store) Save(record *domain.ArtifactRecord, changed []domain.OutputKind) error {
	merged := *record
	merged.Outputs = make(map[domain.OutputKind]domain.ArtifactOutput)

	if changed == nil {
		for k, v := range record.Outputs {
			merged.Outputs[k] = v
		}
	} else {
		previous, err := s.Read(record.ID)
		if err != nil {
			return err
		}
		if previous != nil {
			for k, v := range previous.Outputs {
				merged.Outputs[k] = v
			}
		}
		for _, k := range changed {
			if out, ok := record.Outputs[k]; ok {
				merged.Outputs[k] = out
			} else {
				delete(merged.Outputs, k)
			}
		}
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return domain.Wrap(domain.ErrStoreMarshalFailed, err)
	}

	if err := zfs.WriteFileAtomic(s.getFilename(record.ID), data, domain.FilePerm); err != nil {
		return zerr.With(domain.Wrap(domain.ErrStoreWriteFailed, err), "id", record.ID)
	}
	return nil
}

// All returns every stored record sorted by id.
func (s *Store) All() ([]*domain.ArtifactRecord, error) {
	entries, err := os.ReadDir(s.recordsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.Wrap(domain.ErrStoreReadFailed, err)
	}

	records := make([]*domain.ArtifactRecord, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		record, err := s.readFile(filepath.Join(s.recordsDir, e.Name()))
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, record)
		}
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Dir returns the artifact directory of a circuit: its logical name without
// the source extension, below the artifacts root.
func (s *Store) Dir(id string) string {
	return filepath.Join(s.artifactsDir, filepath.FromSlash(strings.TrimSuffix(id, domain.SourceExtension)))
}

// PathFor returns the canonical path of one output of record.
func (s *Store) PathFor(record *domain.ArtifactRecord, kind domain.OutputKind) string {
	return filepath.Join(s.Dir(record.ID), filepath.FromSlash(kind.RelativePath(record.Template)))
}

func (s *Store) getFilename(id string) string {
	hash := sha256.Sum256([]byte(id))
	return filepath.Join(s.recordsDir, hex.EncodeToString(hash[:])+".json")
}

// Factory implements ports.ArtifactStoreFactory.
type Factory struct{}

// Open opens the store of project.
func (Factory) Open(project *domain.Project) (ports.ArtifactStore, error) {
	return NewStore(filepath.Join(project.Root, domain.DefaultStorePath()), project.ArtifactsPath())
}
