package vocab

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// schemaCUE constrains a manifest before any symbol is interned.
// Kind defaults to "string"; names must be non-empty and unique per
// manifest (uniqueness is checked in Go, CUE lists can't express it
// concisely).
const schemaCUE = `
#Def: {
	name: string & != ""
	kind: *"string" | "variable"
}

name: string & =~ "^[a-z][a-z0-9-]*$"
symbols: [...#Def]
`

// CompileError reports a manifest that failed schema validation.
type CompileError struct {
	Manifest string
	Message  string
}

func (e *CompileError) Error() string {
	if e.Manifest != "" {
		return fmt.Sprintf("vocabulary manifest %s: %s", e.Manifest, e.Message)
	}
	return fmt.Sprintf("vocabulary manifest: %s", e.Message)
}

// Compile validates raw YAML manifest bytes against the schema and
// returns the decoded spec.
func Compile(data []byte) (*Spec, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &CompileError{Message: fmt.Sprintf("parsing YAML: %v", err)}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("internal schema error: %w", err)
	}

	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return nil, &CompileError{Message: fmt.Sprintf("encoding document: %v", err)}
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return nil, &CompileError{Message: cueerrors.Details(err, nil)}
	}

	var spec Spec
	if err := unified.Decode(&spec); err != nil {
		return nil, &CompileError{Message: fmt.Sprintf("decoding manifest: %v", err)}
	}

	// Names are NFC normalized before interning: two manifests spelling
	// the same name with different Unicode compositions must intern one
	// symbol, not two.
	spec.Name = norm.NFC.String(spec.Name)
	for i := range spec.Symbols {
		spec.Symbols[i].Name = norm.NFC.String(spec.Symbols[i].Name)
	}

	if err := checkUnique(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadManifest reads and compiles a manifest file.
func LoadManifest(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CompileError{Manifest: path, Message: fmt.Sprintf("reading file: %v", err)}
	}
	spec, err := Compile(data)
	if err != nil {
		var ce *CompileError
		if errors.As(err, &ce) {
			ce.Manifest = path
		}
		return nil, err
	}
	return spec, nil
}

func checkUnique(spec *Spec) error {
	seen := make(map[string]string, len(spec.Symbols))
	for _, def := range spec.Symbols {
		key := def.Kind + "\x00" + def.Name
		if _, dup := seen[key]; dup {
			return &CompileError{
				Message: fmt.Sprintf("duplicate symbol %q (kind %s)", def.Name, kindOrDefault(def.Kind)),
			}
		}
		seen[key] = def.Name
	}
	return nil
}

func kindOrDefault(kind string) string {
	if kind == "" {
		return "string"
	}
	return kind
}
