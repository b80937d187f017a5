// Package synth implements the recursive circuit synthesizer: the bounded
// depth-first search that, given a target boolean function and a
// don't-care mask, either finds a small sub-circuit by reusing gates
// already present in a circuit.State, or splits on an input variable via
// Shannon expansion and recurses.
package synth

import (
	"errors"

	"github.com/ridenting/sboxgates/circuit"
	"github.com/ridenting/sboxgates/internal/ttable"
)

// ErrBudgetExhausted is the sentinel error callers that want an `error`
// (rather than branching on circuit.NilGate) can compare against with
// errors.Is. Synthesize itself never returns an error value; it returns
// circuit.NilGate on the same condition.
var ErrBudgetExhausted = errors.New("synth: no circuit found within the gate budget")

// maxInbits bounds the depth of Shannon-expansion recursion: at most six
// input variables may be consumed as selectors along one recursion path.
const maxInbits = 6

// Synthesize searches for a sub-circuit of st computing target on every
// input assignment marked by mask, reusing st's existing gates where
// possible and otherwise splitting on an unused input variable (Shannon
// expansion). On success it appends zero or more gates to st and returns
// the index of the gate realizing target; st is mutated only in that case.
// On failure it returns circuit.NilGate and st is left unchanged.
//
// inbits lists the input-bit indices already consumed as selectors by
// enclosing recursive calls; it must not be re-used as a selector, and its
// length is bounded by maxInbits.
func Synthesize(st *circuit.State, target, mask ttable.Table, inbits []int) circuit.GateIndex {
	if idx := reuseSingleGate(st, target, mask); idx != circuit.NilGate {
		return idx
	}
	if idx := reuseInverse(st, target, mask); idx != circuit.NilGate {
		return idx
	}
	if idx := combineOneGate(st, target, mask); idx != circuit.NilGate {
		return idx
	}
	// Phase 4 runs on a copy: a composite whose second gate hits the budget
	// leaves its first gate behind, which must not leak into st.
	trial := *st
	if idx := combineTwoGates(&trial, target, mask); idx != circuit.NilGate {
		*st = trial
		return idx
	}
	return shannonExpand(st, target, mask, inbits)
}

// reuseSingleGate is phase 1: a gate already present in st whose table
// matches target under mask costs nothing to reuse.
func reuseSingleGate(st *circuit.State, target, mask ttable.Table) circuit.GateIndex {
	for i := circuit.GateIndex(0); uint64(i) < st.NumGates; i++ {
		if ttable.EqualMask(target, st.GateTable(i), mask) {
			return i
		}
	}
	return circuit.NilGate
}

// reuseInverse is phase 2: a single NOT gate over an existing gate.
func reuseInverse(st *circuit.State, target, mask ttable.Table) circuit.GateIndex {
	for i := circuit.GateIndex(0); uint64(i) < st.NumGates; i++ {
		if ttable.EqualMask(target, ttable.Not(st.GateTable(i)), mask) {
			return circuit.MakeNot(st, i)
		}
	}
	return circuit.NilGate
}

// combineOneGate is phase 3: a single new OR/AND/XOR gate over a pair of
// existing gates.
func combineOneGate(st *circuit.State, target, mask ttable.Table) circuit.GateIndex {
	mtarget := ttable.And(target, mask)
	n := circuit.GateIndex(st.NumGates)
	for i := circuit.GateIndex(0); i < n; i++ {
		ti := ttable.And(st.GateTable(i), mask)
		for k := i + 1; k < n; k++ {
			tk := ttable.And(st.GateTable(k), mask)
			if ttable.Equal(mtarget, ttable.Or(ti, tk)) {
				return circuit.MakeOr(st, i, k)
			}
			if ttable.Equal(mtarget, ttable.And(ti, tk)) {
				return circuit.MakeAnd(st, i, k)
			}
			if ttable.Equal(mtarget, ttable.Xor(ti, tk)) {
				return circuit.MakeXor(st, i, k)
			}
		}
	}
	return circuit.NilGate
}

// combineTwoGates is phase 4: every two-gate composite built from a
// derived NOT on one side of a pair, then every three-input composite
// enumerated in circuit's constructors over a triple.
func combineTwoGates(st *circuit.State, target, mask ttable.Table) circuit.GateIndex {
	n := circuit.GateIndex(st.NumGates)

	for i := circuit.GateIndex(0); i < n; i++ {
		ti := st.GateTable(i)
		for k := i + 1; k < n; k++ {
			tk := st.GateTable(k)
			if ttable.EqualMask(target, ttable.Not(ttable.Or(ti, tk)), mask) {
				return circuit.MakeNor(st, i, k)
			}
			if ttable.EqualMask(target, ttable.Not(ttable.And(ti, tk)), mask) {
				return circuit.MakeNand(st, i, k)
			}
			if ttable.EqualMask(target, ttable.Not(ttable.Xor(ti, tk)), mask) {
				return circuit.MakeXnor(st, i, k)
			}
			if ttable.EqualMask(target, ttable.Or(ttable.Not(ti), tk), mask) {
				return circuit.MakeOrNot(st, i, k)
			}
			if ttable.EqualMask(target, ttable.Or(ttable.Not(tk), ti), mask) {
				return circuit.MakeOrNot(st, k, i)
			}
			if ttable.EqualMask(target, ttable.And(ttable.Not(ti), tk), mask) {
				return circuit.MakeAndNot(st, i, k)
			}
			if ttable.EqualMask(target, ttable.And(ttable.Not(tk), ti), mask) {
				return circuit.MakeAndNot(st, k, i)
			}
		}
	}

	mtarget := ttable.And(target, mask)
	for i := circuit.GateIndex(0); i < n; i++ {
		ti := ttable.And(st.GateTable(i), mask)
		for k := i + 1; k < n; k++ {
			tk := ttable.And(st.GateTable(k), mask)
			iandk := ttable.And(ti, tk)
			iork := ttable.Or(ti, tk)
			ixork := ttable.Xor(ti, tk)
			for m := k + 1; m < n; m++ {
				tm := ttable.And(st.GateTable(m), mask)
				switch {
				case ttable.Equal(mtarget, ttable.And(iandk, tm)):
					return circuit.MakeAnd3(st, i, k, m)
				case ttable.Equal(mtarget, ttable.Or(iandk, tm)):
					return circuit.MakeAndOr(st, i, k, m)
				case ttable.Equal(mtarget, ttable.Xor(iandk, tm)):
					return circuit.MakeAndXor(st, i, k, m)
				case ttable.Equal(mtarget, ttable.Or(iork, tm)):
					return circuit.MakeOr3(st, i, k, m)
				case ttable.Equal(mtarget, ttable.And(iork, tm)):
					return circuit.MakeOrAnd(st, i, k, m)
				case ttable.Equal(mtarget, ttable.Xor(iork, tm)):
					return circuit.MakeOrXor(st, i, k, m)
				case ttable.Equal(mtarget, ttable.Xor(ixork, tm)):
					return circuit.MakeXor3(st, i, k, m)
				case ttable.Equal(mtarget, ttable.Or(ixork, tm)):
					return circuit.MakeXorOr(st, i, k, m)
				case ttable.Equal(mtarget, ttable.And(ixork, tm)):
					return circuit.MakeXorAnd(st, i, k, m)
				}

				iandm := ttable.And(ti, tm)
				if ttable.Equal(mtarget, ttable.Or(iandm, tk)) {
					return circuit.MakeAndOr(st, i, m, k)
				}
				if ttable.Equal(mtarget, ttable.Xor(iandm, tk)) {
					return circuit.MakeAndXor(st, i, m, k)
				}
				kandm := ttable.And(tk, tm)
				if ttable.Equal(mtarget, ttable.Or(kandm, ti)) {
					return circuit.MakeAndOr(st, k, m, i)
				}
				if ttable.Equal(mtarget, ttable.Xor(kandm, ti)) {
					return circuit.MakeAndXor(st, k, m, i)
				}
				ixorm := ttable.Xor(ti, tm)
				if ttable.Equal(mtarget, ttable.Or(ixorm, tk)) {
					return circuit.MakeXorOr(st, i, m, k)
				}
				if ttable.Equal(mtarget, ttable.And(ixorm, tk)) {
					return circuit.MakeXorAnd(st, i, m, k)
				}
				kxorm := ttable.Xor(tk, tm)
				if ttable.Equal(mtarget, ttable.Or(kxorm, ti)) {
					return circuit.MakeXorOr(st, k, m, i)
				}
				if ttable.Equal(mtarget, ttable.And(kxorm, ti)) {
					return circuit.MakeXorAnd(st, k, m, i)
				}
				iorm := ttable.Or(ti, tm)
				if ttable.Equal(mtarget, ttable.And(iorm, tk)) {
					return circuit.MakeOrAnd(st, i, m, k)
				}
				if ttable.Equal(mtarget, ttable.Xor(iorm, tk)) {
					return circuit.MakeOrXor(st, i, m, k)
				}
				korm := ttable.Or(tk, tm)
				if ttable.Equal(mtarget, ttable.And(korm, ti)) {
					return circuit.MakeOrAnd(st, k, m, i)
				}
				if ttable.Equal(mtarget, ttable.Xor(korm, ti)) {
					return circuit.MakeOrXor(st, k, m, i)
				}
			}
		}
	}
	return circuit.NilGate
}

// shannonExpand is phase 5: pick a selection variable not yet in inbits,
// synthesize both cofactors, and recombine them through an AND-mux or
// OR-mux, keeping whichever candidate (over every variable and both mux
// shapes) yields the smallest total gate count.
func shannonExpand(st *circuit.State, target, mask ttable.Table, inbits []int) circuit.GateIndex {
	if len(inbits) >= maxInbits {
		return circuit.NilGate
	}

	var best circuit.State
	bestIdx := circuit.NilGate

	for s := 0; s < circuit.NumInputs; s++ {
		if contains(inbits, s) {
			continue
		}
		nextInbits := append(append([]int(nil), inbits...), s)
		fsel := st.GateTable(circuit.GateIndex(s))

		// AND-mux: out = fb ⊕ (fc ∧ s), fb agrees with target on s=0.
		nstAnd := *st
		muxOutAnd := circuit.NilGate
		fb := Synthesize(&nstAnd, ttable.And(target, ttable.Not(fsel)), ttable.And(mask, ttable.Not(fsel)), nextInbits)
		if fb != circuit.NilGate {
			fc := Synthesize(&nstAnd, ttable.Xor(nstAnd.GateTable(fb), target), ttable.And(mask, fsel), nextInbits)
			if fc != circuit.NilGate {
				andg := circuit.MakeAnd(&nstAnd, fc, circuit.GateIndex(s))
				muxOutAnd = circuit.MakeXor(&nstAnd, fb, andg)
			}
		}

		// OR-mux: out = fd ⊕ (fe ∨ s), fd agrees with ¬target on s=1.
		nstOr := *st
		muxOutOr := circuit.NilGate
		fd := Synthesize(&nstOr, ttable.And(ttable.Not(target), fsel), ttable.And(mask, fsel), nextInbits)
		if fd != circuit.NilGate {
			fe := Synthesize(&nstOr, ttable.Xor(nstOr.GateTable(fd), target), ttable.And(mask, ttable.Not(fsel)), nextInbits)
			if fe != circuit.NilGate {
				org := circuit.MakeOr(&nstOr, fe, circuit.GateIndex(s))
				muxOutOr = circuit.MakeXor(&nstOr, fd, org)
			}
		}

		var candidate circuit.State
		var candidateIdx circuit.GateIndex
		switch {
		case muxOutAnd == circuit.NilGate && muxOutOr == circuit.NilGate:
			continue
		case muxOutOr == circuit.NilGate || (muxOutAnd != circuit.NilGate && nstAnd.NumGates < nstOr.NumGates):
			candidate, candidateIdx = nstAnd, muxOutAnd
		default:
			candidate, candidateIdx = nstOr, muxOutOr
		}

		if bestIdx == circuit.NilGate || candidate.NumGates < best.NumGates {
			best, bestIdx = candidate, candidateIdx
		}
	}

	if bestIdx == circuit.NilGate {
		return circuit.NilGate
	}
	*st = best
	return bestIdx
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
