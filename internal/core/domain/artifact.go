package domain

import (
	"path"
	"sort"

	"go.trai.ch/zerr"
)

// OutputKind is one kind of compiler output.
type OutputKind string

const (
	// OutputR1CS is the constraint system.
	OutputR1CS OutputKind = "r1cs"
	// OutputWasm is the wasm witness generator.
	OutputWasm OutputKind = "wasm"
	// OutputSym is the symbol table.
	OutputSym OutputKind = "sym"
	// OutputC is the C++ witness generator.
	OutputC OutputKind = "c"
	// OutputJSON is the JSON constraint dump.
	OutputJSON OutputKind = "json"
)

// AllOutputKinds lists every supported kind in canonical order.
var AllOutputKinds = []OutputKind{OutputR1CS, OutputWasm, OutputSym, OutputC, OutputJSON}

// DefaultOutputKinds are requested when the configuration does not say otherwise.
var DefaultOutputKinds = []OutputKind{OutputR1CS, OutputWasm, OutputSym}

// ParseOutputKind validates a configured output kind.
func ParseOutputKind(s string) (OutputKind, error) {
	for _, k := range AllOutputKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", zerr.With(zerr.Wrap(ErrUnknownOutputKind, s), "output", s)
}

// Flag returns the compiler flag requesting this kind.
func (k OutputKind) Flag() string {
	return "--" + string(k)
}

// RelativePath returns where the output of a circuit named base lives,
// relative to the circuit's artifact directory.
func (k OutputKind) RelativePath(base string) string {
	switch k {
	case OutputWasm:
		return path.Join(base+"_js", base+".wasm")
	case OutputC:
		return path.Join(base+"_cpp", base+".cpp")
	case OutputJSON:
		return base + "_constraints.json"
	default:
		return base + "." + string(k)
	}
}

// SortOutputKinds sorts kinds into canonical order.
func SortOutputKinds(kinds []OutputKind) {
	rank := make(map[OutputKind]int, len(AllOutputKinds))
	for i, k := range AllOutputKinds {
		rank[k] = i
	}
	sort.SliceStable(kinds, func(i, j int) bool {
		return rank[kinds[i]] < rank[kinds[j]]
	})
}

// ArtifactOutput locates one output file.
type ArtifactOutput struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
}

// ConstraintSystemHeader is the header section of a constraint-system binary.
type ConstraintSystemHeader struct {
	FieldSize     uint32 `json:"fieldSize"`
	Prime         BigInt `json:"prime"`
	Wires         uint32 `json:"wires"`
	PublicOutputs uint32 `json:"publicOutputs"`
	PublicInputs  uint32 `json:"publicInputs"`
	PrivateInputs uint32 `json:"privateInputs"`
	Labels        uint64 `json:"labels"`
	Constraints   uint32 `json:"constraints"`
}

// ArtifactRecord is the persisted metadata of one compiled circuit.
type ArtifactRecord struct {
	ID              string                        `json:"id"`
	Template        string                        `json:"template"`
	Source          string                        `json:"source"`
	ContentHash     string                        `json:"contentHash"`
	CompilerVersion string                        `json:"compilerVersion"`
	Constraints     int                           `json:"constraints"`
	Header          *ConstraintSystemHeader       `json:"header,omitempty"`
	Signals         []SignalInfo                  `json:"signals,omitempty"`
	Outputs         map[OutputKind]ArtifactOutput `json:"outputs"`
}
