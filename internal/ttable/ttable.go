// Package ttable implements the 256-bit truth-table algebra that the
// synthesizer's decisions are built on: equality, masked equality, and the
// bitwise NOT/AND/OR/XOR combinators over boolean functions of eight input
// bits.
//
// A Table is a thin wrapper around a fixed-length github.com/bits-and-blooms/bitset.BitSet.
// The library represents its bitset as a slice of 64-bit words and implements
// every set operation a word at a time; for our fixed 256-bit width that is
// exactly the four-word-at-a-time arithmetic the original C implementation
// did with a single AVX2 256-bit register. All operations here are pure,
// total, and allocate a new Table rather than mutating either operand.
package ttable

import "github.com/bits-and-blooms/bitset"

// Width is the number of boolean input assignments a Table covers: 2^8.
const Width = 256

// Words is the number of 64-bit words backing a Table, matching the
// persisted wire layout in circuit's binary format.
const Words = Width / 64

// Table is a 256-bit vector: bit i holds the value of some boolean function
// of eight inputs on input assignment i (0<=i<256).
type Table struct {
	bits *bitset.BitSet
}

func empty() Table {
	return Table{bits: bitset.New(Width)}
}

// FromFunc builds the Table whose bit i is f(i), for 0<=i<Width.
func FromFunc(f func(i int) bool) Table {
	t := empty()
	for i := 0; i < Width; i++ {
		if f(i) {
			t.bits.Set(uint(i))
		}
	}
	return t
}

// Var returns the truth table of input variable bit: bit i of the table is
// (i>>bit)&1. This is also the table installed on Input gate `bit`.
func Var(bit int) Table {
	return FromFunc(func(i int) bool {
		return (i>>uint(bit))&1 == 1
	})
}

// Zero returns the all-false table (the function that is 0 everywhere).
func Zero() Table {
	return empty()
}

// All returns the all-true table, used as the full-agreement mask.
func All() Table {
	t := empty()
	t.bits.SetAll()
	return t
}

// Test reports the value of the table's function on input assignment i.
func (t Table) Test(i int) bool {
	return t.bits.Test(uint(i))
}

// Not returns the bitwise complement of a.
func Not(a Table) Table {
	return Table{bits: a.bits.Complement()}
}

// And returns the bitwise AND of a and b.
func And(a, b Table) Table {
	return Table{bits: a.bits.Intersection(b.bits)}
}

// Or returns the bitwise OR of a and b.
func Or(a, b Table) Table {
	return Table{bits: a.bits.Union(b.bits)}
}

// Xor returns the bitwise XOR of a and b.
func Xor(a, b Table) Table {
	return Table{bits: a.bits.SymmetricDifference(b.bits)}
}

// Equal reports whether a and b agree on every input assignment.
func Equal(a, b Table) bool {
	return a.bits.Equal(b.bits)
}

// EqualMask reports whether a and b agree on every input assignment marked
// by a 1-bit in mask: (a^b)&mask == 0. 0-bits in mask are don't-cares.
// Implemented by scanning the underlying words directly so that a masked
// comparison, the fundamental operation of the synthesizer's inner loops,
// never allocates.
func EqualMask(a, b, mask Table) bool {
	aw, bw, mw := a.bits.Bytes(), b.bits.Bytes(), mask.bits.Bytes()
	n := len(aw)
	if len(bw) < n {
		n = len(bw)
	}
	if len(mw) < n {
		n = len(mw)
	}
	for i := 0; i < n; i++ {
		if (aw[i]^bw[i])&mw[i] != 0 {
			return false
		}
	}
	return true
}

// Words returns the four 64-bit words backing t, least-significant word
// first. This is the exact layout circuit.State persists to disk.
func (t Table) Words() [Words]uint64 {
	var out [Words]uint64
	copy(out[:], t.bits.Bytes())
	return out
}

// FromWords rebuilds a Table from the four words Words returned.
func FromWords(words [Words]uint64) Table {
	t := empty()
	raw := t.bits.Bytes()
	copy(raw, words[:])
	return t
}
