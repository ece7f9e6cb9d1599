package ports

import "go.trai.ch/zkc/internal/core/domain"

// ArtifactStore persists artifact records and knows where outputs live.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Read returns the record for id.
	// Returns nil, nil if not found.
	Read(id string) (*domain.ArtifactRecord, error)

	// Exists reports whether a record for id exists.
	Exists(id string) (bool, error)

	// Save writes record. Outputs listed in changed replace the stored ones,
	// other stored outputs are kept.
	Save(record *domain.ArtifactRecord, changed []domain.OutputKind) error

	// All returns every stored record sorted by id.
	All() ([]*domain.ArtifactRecord, error)

	// Dir returns the permanent artifact directory of a circuit.
	Dir(id string) string

	// PathFor returns the canonical path of one output of record.
	PathFor(record *domain.ArtifactRecord, kind domain.OutputKind) string
}

// ArtifactStoreFactory opens the artifact store of a project.
type ArtifactStoreFactory interface {
	Open(project *domain.Project) (ArtifactStore, error)
}
