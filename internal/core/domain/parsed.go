package domain

// SignalKind classifies a declared signal.
type SignalKind string

const (
	// SignalInput is a template input.
	SignalInput SignalKind = "input"
	// SignalOutput is a template output.
	SignalOutput SignalKind = "output"
	// SignalIntermediate is an internal signal.
	SignalIntermediate SignalKind = "intermediate"
)

// SignalDecl is a signal as declared in a template body.
type SignalDecl struct {
	Name       string     `json:"name"`
	Kind       SignalKind `json:"kind"`
	Dimensions []Expr     `json:"dimensions,omitempty"`
}

// Template is a parametrized circuit definition.
type Template struct {
	Name    string       `json:"name"`
	Params  []string     `json:"params"`
	Signals []SignalDecl `json:"signals"`
}

// Signal looks up a declared signal by name.
func (t Template) Signal(name string) (SignalDecl, bool) {
	for _, s := range t.Signals {
		if s.Name == name {
			return s, true
		}
	}
	return SignalDecl{}, false
}

// MainComponentInfo is the main instantiation of a compilable circuit.
type MainComponentInfo struct {
	Template     string   `json:"template"`
	PublicInputs []string `json:"publicInputs"`
	Args         []Expr   `json:"args"`
}

// ParsedFileData is everything the pipeline needs from one source file.
type ParsedFileData struct {
	PragmaVersion string              `json:"pragmaVersion"`
	Imports       []string            `json:"imports"`
	Templates     map[string]Template `json:"templates"`
	Main          *MainComponentInfo  `json:"main,omitempty"`
}
