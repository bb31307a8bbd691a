package symbol

// Table is the interner: five typed hash indexes plus their pools and
// the identifier numbering counters, exclusively owned by one engine
// instance.
//
// INVARIANTS:
//   - Canonicalization: within one kind, at most one live symbol exists
//     per distinct payload.
//   - Reference conservation: a symbol is findable iff its reference
//     count > 0.
//   - Destruction is synchronous: the 0 transition removes the symbol
//     from its index and returns its block to the pool before
//     RemoveRef returns. There is no deferred or background collection.
type Table struct {
	variables   *bucketIndex[*Variable]
	identifiers *bucketIndex[*Identifier]
	strings     *bucketIndex[*StringConstant]
	ints        *bucketIndex[*IntConstant]
	floats      *bucketIndex[*FloatConstant]

	variablePool *pool[Variable]
	idPool       *pool[Identifier]
	stringPool   *pool[StringConstant]
	intPool      *pool[IntConstant]
	floatPool    *pool[FloatConstant]

	numbering *Numbering

	// nextHashID drives the creation-order id. The odd stride keeps
	// successive ids from sharing low-order bit patterns.
	nextHashID uint32
}

const hashIDStride = 137

// NewTable creates an empty symbol table with fresh numbering counters.
func NewTable() *Table {
	return &Table{
		variables: newBucketIndex(func(v *Variable, log2 uint32) uint32 {
			return hashVariableKey(v.Name, log2)
		}),
		identifiers: newBucketIndex(func(id *Identifier, log2 uint32) uint32 {
			return hashIdentifierKey(id.Letter, id.Number, log2)
		}),
		strings: newBucketIndex(func(s *StringConstant, log2 uint32) uint32 {
			return hashStringKey(s.Name, log2)
		}),
		ints: newBucketIndex(func(i *IntConstant, log2 uint32) uint32 {
			return hashIntKey(i.Value, log2)
		}),
		floats: newBucketIndex(func(f *FloatConstant, log2 uint32) uint32 {
			return hashFloatKey(f.Value, log2)
		}),
		variablePool: newPool[Variable]("variable"),
		idPool:       newPool[Identifier]("identifier"),
		stringPool:   newPool[StringConstant]("string constant"),
		intPool:      newPool[IntConstant]("integer constant"),
		floatPool:    newPool[FloatConstant]("float constant"),
		numbering:    NewNumbering(),
	}
}

// Numbering returns the table's identifier numbering authority.
func (t *Table) Numbering() *Numbering { return t.numbering }

func (t *Table) nextID() uint32 {
	t.nextHashID += hashIDStride
	return t.nextHashID
}

/* ------------------------------------------------------------------
   Lookup and creation

   The Find* methods look for an existing symbol and return it without
   touching its reference count. The Make* methods add a reference to an
   existing symbol, or create one with its count at 1 — the returned
   handle is the sole owner.

   There is no MakeIdentifier on an arbitrary key: identifiers are
   minted by MakeNewIdentifier, which consults the numbering authority
   unless an explicit number is supplied.
------------------------------------------------------------------ */

// FindVariable returns the variable named name, if live.
func (t *Table) FindVariable(name string) (*Variable, bool) {
	h := hashVariableKey(name, t.variables.log2)
	return t.variables.lookup(h, func(v *Variable) bool { return v.Name == name })
}

// FindIdentifier returns the identifier (letter, number), if live.
// The letter is normalized the same way MakeNewIdentifier normalizes it.
func (t *Table) FindIdentifier(letter byte, number uint64) (*Identifier, bool) {
	letter = normalizeLetter(letter)
	h := hashIdentifierKey(letter, number, t.identifiers.log2)
	return t.identifiers.lookup(h, func(id *Identifier) bool {
		return id.Letter == letter && id.Number == number
	})
}

// FindString returns the string constant with the given text, if live.
func (t *Table) FindString(name string) (*StringConstant, bool) {
	h := hashStringKey(name, t.strings.log2)
	return t.strings.lookup(h, func(s *StringConstant) bool { return s.Name == name })
}

// FindInt returns the integer constant with the given value, if live.
func (t *Table) FindInt(value int64) (*IntConstant, bool) {
	h := hashIntKey(value, t.ints.log2)
	return t.ints.lookup(h, func(i *IntConstant) bool { return i.Value == value })
}

// FindFloat returns the float constant with the given value, if live.
// Equality is exact numeric equality.
func (t *Table) FindFloat(value float64) (*FloatConstant, bool) {
	h := hashFloatKey(value, t.floats.log2)
	return t.floats.lookup(h, func(f *FloatConstant) bool { return f.Value == value })
}

// MakeVariable interns the variable named name.
func (t *Table) MakeVariable(name string) *Variable {
	if v, ok := t.FindVariable(name); ok {
		t.AddRef(v)
		return v
	}
	v := t.variablePool.allocate()
	v.hdr = Header{RefCount: 1, HashID: t.nextID()}
	v.Name = name
	t.variables.insert(v)
	return v
}

// AutoNumber requests the next number from the numbering authority.
const AutoNumber uint64 = 0

// MakeNewIdentifier mints a fresh identifier at the given goal-stack
// level. The letter is coerced into 'A'..'Z' ('I' for non-alphabetic
// input). When number is AutoNumber the per-letter counter issues the
// next serial; an explicit number routes through the observation path
// so later auto-issued numbers never collide with it.
func (t *Table) MakeNewIdentifier(letter byte, level int, number uint64) *Identifier {
	letter = normalizeLetter(letter)
	if number == AutoNumber {
		number = t.numbering.NextNumber(letter)
	} else {
		t.numbering.ObserveExternal(letter, number)
	}
	id := t.idPool.allocate()
	id.hdr = Header{RefCount: 1, HashID: t.nextID()}
	id.Letter = letter
	id.Number = number
	id.Level = level
	id.PromotionLevel = level
	t.identifiers.insert(id)
	return id
}

// MakeString interns the string constant with the given text.
func (t *Table) MakeString(name string) *StringConstant {
	if s, ok := t.FindString(name); ok {
		t.AddRef(s)
		return s
	}
	s := t.stringPool.allocate()
	s.hdr = Header{RefCount: 1, HashID: t.nextID()}
	s.Name = name
	t.strings.insert(s)
	return s
}

// MakeInt interns the integer constant with the given value.
func (t *Table) MakeInt(value int64) *IntConstant {
	if i, ok := t.FindInt(value); ok {
		t.AddRef(i)
		return i
	}
	i := t.intPool.allocate()
	i.hdr = Header{RefCount: 1, HashID: t.nextID()}
	i.Value = value
	t.ints.insert(i)
	return i
}

// MakeFloat interns the float constant with the given value.
func (t *Table) MakeFloat(value float64) *FloatConstant {
	if f, ok := t.FindFloat(value); ok {
		t.AddRef(f)
		return f
	}
	f := t.floatPool.allocate()
	f.hdr = Header{RefCount: 1, HashID: t.nextID()}
	f.Value = value
	t.floats.insert(f)
	return f
}

/* ------------------------------------------------------------------
   Reference counting
------------------------------------------------------------------ */

// AddRef registers one more owner of sym. There is no overflow guard;
// overflowing the count is a caller error with undefined behavior.
func (t *Table) AddRef(sym Symbol) {
	sym.Header().RefCount++
}

// RemoveRef releases one reference to sym. At the 0 transition the
// symbol is destroyed synchronously: removed from its kind's index and
// its block returned to the pool.
//
// Contract for identifiers: the working-memory, matching, and learning
// layers must retract every external structural link (slots, goal-stack
// links, extension headers) before the last reference drops. The store
// performs no cross-structure cleanup; violating this leaves dangling
// non-owning links elsewhere.
//
// A fatal *StoreError is returned when sym holds no references; that
// indicates a corrupted invariant, never a transient condition.
func (t *Table) RemoveRef(sym Symbol) error {
	hdr := sym.Header()
	if hdr.RefCount == 0 {
		return newRefUnderflowError(sym)
	}
	hdr.RefCount--
	if hdr.RefCount == 0 {
		return t.destroy(sym)
	}
	return nil
}

// destroy removes sym from its index and releases its block. Calling it
// on a symbol with outstanding references is a fatal usage error.
func (t *Table) destroy(sym Symbol) error {
	if n := sym.Header().RefCount; n > 0 {
		return newOutstandingRefsError(sym, n)
	}
	switch s := sym.(type) {
	case *Variable:
		if !t.variables.remove(s) {
			return newNotInternedError(sym)
		}
		t.variablePool.release(s)
	case *Identifier:
		if !t.identifiers.remove(s) {
			return newNotInternedError(sym)
		}
		t.idPool.release(s)
	case *StringConstant:
		if !t.strings.remove(s) {
			return newNotInternedError(sym)
		}
		t.stringPool.release(s)
	case *IntConstant:
		if !t.ints.remove(s) {
			return newNotInternedError(sym)
		}
		t.intPool.release(s)
	case *FloatConstant:
		if !t.floats.remove(s) {
			return newNotInternedError(sym)
		}
		t.floatPool.release(s)
	}
	return nil
}

// LiveCount returns the number of live symbols of one kind.
func (t *Table) LiveCount(kind Kind) int {
	switch kind {
	case KindVariable:
		return t.variables.Len()
	case KindIdentifier:
		return t.identifiers.Len()
	case KindString:
		return t.strings.Len()
	case KindInt:
		return t.ints.Len()
	case KindFloat:
		return t.floats.Len()
	default:
		return 0
	}
}

// LiveTotal returns the number of live symbols across all kinds.
func (t *Table) LiveTotal() int {
	return t.variables.Len() + t.identifiers.Len() + t.strings.Len() +
		t.ints.Len() + t.floats.Len()
}
