package symbol

import (
	"fmt"
	"io"
	"sort"
)

// Diagnostics and bulk maintenance. All operations here are O(number of
// live symbols of one kind) and unconditionally complete.

// ResetTransitiveClosureMarks zeroes the scratch mark on every live
// identifier and variable. Called between external traversal passes.
func (t *Table) ResetTransitiveClosureMarks() {
	t.identifiers.forEach(func(id *Identifier) { id.hdr.TCMark = 0 })
	t.variables.forEach(func(v *Variable) { v.hdr.TCMark = 0 })
}

// ResetVariableGensymCounters zeroes the gensym counter on every live
// variable so generated-name suffixes do not grow unbounded across
// name-generation scopes.
func (t *Table) ResetVariableGensymCounters() {
	t.variables.forEach(func(v *Variable) { v.GensymNumber = 0 })
}

// GenerateUniqueString interns a string constant "<prefix><counter>"
// guaranteed not to exist at call time, probing and bumping the
// externally supplied counter until a free name is found. Uniqueness
// holds only under the single-threaded execution model.
func (t *Table) GenerateUniqueString(prefix string, counter *uint64) *StringConstant {
	for {
		name := fmt.Sprintf("%s%d", prefix, *counter)
		*counter++
		if _, ok := t.FindString(name); !ok {
			return t.MakeString(name)
		}
	}
}

// Dump writes every live symbol grouped by kind, sorted within each
// section. Useful for leak hunting after a failed re-initialization.
func (t *Table) Dump(w io.Writer) {
	dumpSection(w, "string constants", collect(t.strings))
	dumpSection(w, "integer constants", collect(t.ints))
	dumpSection(w, "floating-point constants", collect(t.floats))
	dumpSection(w, "identifiers", collect(t.identifiers))
	dumpSection(w, "variables", collect(t.variables))
}

func collect[T interface {
	comparable
	Symbol
}](ix *bucketIndex[T]) []string {
	lines := make([]string, 0, ix.Len())
	ix.forEach(func(item T) {
		lines = append(lines, item.String())
	})
	sort.Strings(lines)
	return lines
}

func dumpSection(w io.Writer, title string, lines []string) {
	fmt.Fprintf(w, "--- %s (%d) ---\n", title, len(lines))
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
