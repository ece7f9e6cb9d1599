package changecache

import (
	_ "embed"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"go.trai.ch/zerr"
)

//go:embed schema.cue
var schemaSource []byte

// validator checks raw documents against the embedded schema.
type validator struct {
	ctx *cue.Context
	def cue.Value
}

func newValidator() (*validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, zerr.Wrap(err, "invalid change cache schema")
	}
	def := schema.LookupPath(cue.ParsePath("#Document"))
	if err := def.Err(); err != nil {
		return nil, zerr.Wrap(err, "change cache schema has no #Document")
	}
	return &validator{ctx: ctx, def: def}, nil
}

func (v *validator) validate(data []byte) error {
	doc := v.ctx.CompileBytes(data, cue.Filename("changes.json"))
	if err := doc.Err(); err != nil {
		return err
	}
	return v.def.Unify(doc).Validate(cue.Concrete(true))
}
