// SPDX-License-Identifier: MIT

package sop

import (
	"strconv"
	"strings"
)

// Combination holds one SOP id per active leg, indexed by leg position.
// The empty combination is the exhaustion sentinel of every generator.
//
// Slices are not comparable, so equality is structural (Equal) and hashing
// goes through the canonical Key.
type Combination []int

// Empty reports whether c is the exhaustion sentinel.
func (c Combination) Empty() bool { return len(c) == 0 }

// Equal reports structural (sequence) equality.
func (c Combination) Equal(o Combination) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}

	return true
}

// Clone returns an independent copy; nil stays nil.
func (c Combination) Clone() Combination {
	if c == nil {
		return nil
	}
	out := make(Combination, len(c))
	copy(out, c)

	return out
}

// Key returns the canonical map key of c ("5-2-12").
// Equal combinations always produce equal keys.
func (c Combination) Key() string {
	if len(c) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(c) * 4)
	for i, id := range c {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(strconv.Itoa(id))
	}

	return b.String()
}

// Entries expands c into its per-leg references.
func (c Combination) Entries() []Entry {
	out := make([]Entry, len(c))
	for leg, id := range c {
		out[leg] = Entry{Leg: leg, Sop: id}
	}

	return out
}

// String renders c as "(5, 2, 12)".
func (c Combination) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, id := range c {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(id))
	}
	b.WriteByte(')')

	return b.String()
}
