package symbol

import (
	"errors"
	"fmt"
	"strings"
)

// StoreError represents an error raised by the symbol store.
//
// Two categories share this channel:
//   - Usage/invariant errors (refcount underflow, destroying a symbol
//     with outstanding references): Fatal is true. They signal a
//     corrupted core invariant and are never retriable.
//   - Expected recoverable conditions (a numbering reset blocked by
//     live identifiers): Fatal is false and the caller decides whether
//     to retry or abort.
type StoreError struct {
	// Code identifies the error category.
	Code StoreErrorCode

	// Message is a human-readable description.
	Message string

	// Symbol renders the affected symbol, if any.
	Symbol string

	// Fatal marks a broken core invariant. Fatal errors must never be
	// treated as transient.
	Fatal bool

	// Leaked lists the live identifiers blocking a numbering reset.
	// Populated only for ErrCodeResetBlocked.
	Leaked []LeakedIdentifier
}

// StoreErrorCode categorizes store errors.
type StoreErrorCode string

const (
	// ErrCodeRefUnderflow indicates a reference was released that was
	// never held.
	ErrCodeRefUnderflow StoreErrorCode = "REFCOUNT_UNDERFLOW"

	// ErrCodeOutstandingRefs indicates the internal destroy path ran
	// on a symbol that still has owners.
	ErrCodeOutstandingRefs StoreErrorCode = "OUTSTANDING_REFS"

	// ErrCodeNotInterned indicates a symbol handle that is not present
	// in its kind's index, i.e. it was already destroyed or belongs to
	// another table.
	ErrCodeNotInterned StoreErrorCode = "NOT_INTERNED"

	// ErrCodeResetBlocked indicates a numbering reset refused to run
	// because live, non-long-term identifiers still exist.
	ErrCodeResetBlocked StoreErrorCode = "RESET_BLOCKED"
)

// LeakedIdentifier describes one live identifier blocking a reset.
type LeakedIdentifier struct {
	Letter   byte
	Number   uint64
	RefCount uint64
	LongTerm bool
}

// String renders the leak the way the diagnostic dump does,
// e.g. "S3 --> 2" or "@S3 --> 2" for a long-term identifier.
func (l LeakedIdentifier) String() string {
	var b strings.Builder
	if l.LongTerm {
		b.WriteByte('@')
	}
	fmt.Fprintf(&b, "%c%d --> %d", l.Letter, l.Number, l.RefCount)
	return b.String()
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("%s: %s (symbol=%s)", e.Code, e.Message, e.Symbol)
	}
	if len(e.Leaked) > 0 {
		return fmt.Sprintf("%s: %s (%d live identifiers)", e.Code, e.Message, len(e.Leaked))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsFatal reports whether err is a non-retriable store invariant
// violation. Uses errors.As to handle wrapped errors.
func IsFatal(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Fatal
}

// IsResetBlocked reports whether err is a blocked numbering reset.
// Uses errors.As to handle wrapped errors.
func IsResetBlocked(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == ErrCodeResetBlocked
}

func newRefUnderflowError(sym Symbol) *StoreError {
	return &StoreError{
		Code:    ErrCodeRefUnderflow,
		Message: "removed a reference that was never held",
		Symbol:  sym.String(),
		Fatal:   true,
	}
}

func newOutstandingRefsError(sym Symbol, count uint64) *StoreError {
	return &StoreError{
		Code:    ErrCodeOutstandingRefs,
		Message: fmt.Sprintf("destroy requested with %d outstanding references", count),
		Symbol:  sym.String(),
		Fatal:   true,
	}
}

func newNotInternedError(sym Symbol) *StoreError {
	return &StoreError{
		Code:    ErrCodeNotInterned,
		Message: "symbol is not present in its table",
		Symbol:  sym.String(),
		Fatal:   true,
	}
}

func newResetBlockedError(leaked []LeakedIdentifier) *StoreError {
	return &StoreError{
		Code:    ErrCodeResetBlocked,
		Message: "identifier counters left alone: live identifiers remain (probably a leak)",
		Leaked:  leaked,
	}
}
