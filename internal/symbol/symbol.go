package symbol

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies one of the five symbol variants.
type Kind int

const (
	KindVariable Kind = iota
	KindIdentifier
	KindString
	KindInt
	KindFloat
)

// String returns the lower-case kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindIdentifier:
		return "identifier"
	case KindString:
		return "string constant"
	case KindInt:
		return "integer constant"
	case KindFloat:
		return "floating-point constant"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Symbol is the sealed interface over the five symbol variants.
// Only Variable, Identifier, StringConstant, IntConstant, and
// FloatConstant implement it.
//
// Symbols are handles into a Table. Holding a Symbol means holding one
// counted reference; the count is managed exclusively through
// Table.AddRef and Table.RemoveRef.
type Symbol interface {
	Kind() Kind
	Header() *Header
	String() string

	sealed() // only the five variants in this package implement Symbol
}

// Header carries the fields common to every symbol variant.
//
// RefCount and HashID are owned by the Table. TCMark and the three
// cross-links belong to external traversal and variablization
// algorithms: the Table persists them but never reads them, and it
// never adds or removes a reference through a cross-link.
type Header struct {
	// RefCount is the number of outstanding owners. A symbol is
	// findable iff RefCount > 0. No overflow guard: overflowing the
	// count is a caller error with undefined behavior.
	RefCount uint64

	// HashID is a monotonically increasing creation-order id,
	// unrelated to the content hash. Used only as a tie-breaker and
	// fast discriminator.
	HashID uint32

	// TCMark is scratch space for transitive-closure traversals.
	// Reset in bulk by Table.ResetTransitiveClosureMarks.
	TCMark uint64

	// Non-owning cross-links maintained by the variablization pass.
	// Destruction never follows them; ownership flows solely through
	// the canonical entry's RefCount.
	Variablized   Symbol
	Devariablized Symbol
	OriginalVar   Symbol
}

// MemCaches holds opaque hash/validity pairs stamped onto constant
// symbols by the episodic and semantic memory subsystems. The store
// persists them but never interprets them.
type MemCaches struct {
	EpisodicHash  uint64
	EpisodicValid uint64
	SemanticHash  uint64
	SemanticValid uint64
}

// Variable is a pattern variable such as "<s>".
type Variable struct {
	hdr Header

	// Name is the immutable variable text, conventionally including
	// the angle brackets.
	Name string

	// GensymNumber is reset between name-generation scopes by
	// Table.ResetVariableGensymCounters.
	GensymNumber uint64

	// BindingSites is a back-reference list into the matcher's binding
	// network. Owned by the matcher, never touched here.
	BindingSites any
}

func (v *Variable) Kind() Kind      { return KindVariable }
func (v *Variable) Header() *Header { return &v.hdr }
func (v *Variable) String() string  { return v.Name }
func (*Variable) sealed()           {}

// IdentifierLinks bundles the identifier's links into the working-memory
// graph. Every field is owned by the subsystem named in its comment; the
// store allocates and frees only the bundle itself. Callers must retract
// these links before dropping the identifier's last reference.
type IdentifierLinks struct {
	Slots         any // working-memory layer
	GoalInfo      any // decision/goal-stack layer
	InputWMEs     any // input/output layer
	EpisodicState any // episodic-memory extension header
	SemanticState any // semantic-memory extension header
	RewardState   any // reinforcement-learning extension header
}

// Identifier is a generated working-memory identifier such as "S1".
type Identifier struct {
	hdr Header

	// Letter is in 'A'..'Z'; Number is the per-letter serial.
	// Together they form the identifier's canonical key.
	Letter byte
	Number uint64

	// Level and PromotionLevel track the goal-stack level at creation
	// and after promotion. Interpreted by the decision layer only.
	Level          int
	PromotionLevel int

	// LTIID is nonzero when the identifier is mirrored in the
	// long-term store. Maintained by that store, read here only when
	// rendering the "@" prefix.
	LTIID uint64

	Links IdentifierLinks
}

func (id *Identifier) Kind() Kind      { return KindIdentifier }
func (id *Identifier) Header() *Header { return &id.hdr }
func (*Identifier) sealed()            {}

// String renders the identifier as e.g. "S1", with a leading "@" for
// long-term identifiers.
func (id *Identifier) String() string {
	var b strings.Builder
	if id.LTIID != 0 {
		b.WriteByte('@')
	}
	b.WriteByte(id.Letter)
	b.WriteString(strconv.FormatUint(id.Number, 10))
	return b.String()
}

// StringConstant is an interned immutable string value.
type StringConstant struct {
	hdr Header

	Name   string
	Caches MemCaches
}

func (s *StringConstant) Kind() Kind      { return KindString }
func (s *StringConstant) Header() *Header { return &s.hdr }
func (s *StringConstant) String() string  { return s.Name }
func (*StringConstant) sealed()           {}

// IntConstant is an interned 64-bit integer value.
type IntConstant struct {
	hdr Header

	Value  int64
	Caches MemCaches
}

func (i *IntConstant) Kind() Kind      { return KindInt }
func (i *IntConstant) Header() *Header { return &i.hdr }
func (i *IntConstant) String() string  { return strconv.FormatInt(i.Value, 10) }
func (*IntConstant) sealed()           {}

// FloatConstant is an interned double value.
type FloatConstant struct {
	hdr Header

	Value  float64
	Caches MemCaches
}

func (f *FloatConstant) Kind() Kind      { return KindFloat }
func (f *FloatConstant) Header() *Header { return &f.hdr }
func (f *FloatConstant) String() string  { return strconv.FormatFloat(f.Value, 'g', -1, 64) }
func (*FloatConstant) sealed()           {}

// normalizeLetter coerces an identifier letter into 'A'..'Z'.
// Lowercase letters are upcased; anything non-alphabetic becomes 'I'.
func normalizeLetter(letter byte) byte {
	switch {
	case letter >= 'A' && letter <= 'Z':
		return letter
	case letter >= 'a' && letter <= 'z':
		return letter - ('a' - 'A')
	default:
		return 'I'
	}
}
