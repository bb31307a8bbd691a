package vocab

import (
	"fmt"

	"github.com/roach88/sigil/internal/symbol"
)

// Def declares one vocabulary symbol.
type Def struct {
	// Name is the symbol text. Variables conventionally include the
	// angle brackets, e.g. "<cue>".
	Name string `yaml:"name" json:"name"`

	// Kind is "string" or "variable". Defaults to "string".
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// Spec is a validated vocabulary manifest.
type Spec struct {
	Name    string `yaml:"name" json:"name"`
	Symbols []Def  `yaml:"symbols" json:"symbols"`
}

// Seed holds one agent-lifetime reference per manifest entry, the same
// ownership shape as the predefined registry.
type Seed struct {
	Name  string
	table *symbol.Table
	held  []symbol.Symbol
}

// SeedTable interns every manifest symbol into t and returns the seed
// holding their references.
func (s *Spec) SeedTable(t *symbol.Table) *Seed {
	seed := &Seed{Name: s.Name, table: t}
	for _, def := range s.Symbols {
		switch def.Kind {
		case "variable":
			seed.held = append(seed.held, t.MakeVariable(def.Name))
		default:
			seed.held = append(seed.held, t.MakeString(def.Name))
		}
	}
	return seed
}

// Count returns the number of held entries.
func (s *Seed) Count() int { return len(s.held) }

// Release drops exactly one reference per seeded entry. The seed must
// not be used afterwards.
func (s *Seed) Release() error {
	for _, sym := range s.held {
		if err := s.table.RemoveRef(sym); err != nil {
			return fmt.Errorf("release vocabulary %q: %w", s.Name, err)
		}
	}
	s.held = nil
	return nil
}
