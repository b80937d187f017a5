package circuit

import (
	"fmt"

	"github.com/ridenting/sboxgates/internal/ttable"
)

// WireMaxGates is the fixed gate-slot capacity of both the in-memory State
// and its on-disk record (MAX_GATES in the original tool). A State's
// runtime MaxGates budget can be tightened below this, but never raised
// above it.
const WireMaxGates = 500

// NumInputs is the number of Input gates a State is seeded with: one per
// S-box input bit.
const NumInputs = 8

// InvalidArgumentError is the class of programming-defect errors the core
// reports by panicking rather than returning: they indicate a violated
// internal invariant that no caller can meaningfully recover from.
type InvalidArgumentError struct {
	msg string
}

func (e *InvalidArgumentError) Error() string { return e.msg }

func invalidArgument(format string, args ...any) {
	panic(&InvalidArgumentError{msg: fmt.Sprintf(format, args...)})
}

// State is the gate-network store: an append-only, fixed-capacity array of
// gates plus the eight output slots. It is a plain value type with no
// slice, map, or mutable pointer field reachable from a mutation after
// construction (Gate.Table's *bitset.BitSet is never mutated in place once
// installed, only replaced by a fresh Table), so assigning a State value
// (`st2 := st1`) already gives the flat, pointer-free copy the spec
// requires for exploring alternatives.
type State struct {
	Gates    [WireMaxGates]Gate
	NumGates uint64
	MaxGates uint64
	Outputs  [NumInputs]GateIndex
}

// NewState returns a State with the eight Input gates installed and every
// output slot set to NilGate.
func NewState(maxGates uint64) State {
	if maxGates > WireMaxGates {
		maxGates = WireMaxGates
	}
	var st State
	st.MaxGates = maxGates
	for i := 0; i < NumInputs; i++ {
		st.Gates[i] = Gate{
			Kind:  Input,
			Table: ttable.Var(i),
			In1:   NilGate,
			In2:   NilGate,
		}
	}
	st.NumGates = NumInputs
	for i := range st.Outputs {
		st.Outputs[i] = NilGate
	}
	return st
}

// Append adds a gate to st and returns its index, or NilGate if the budget
// is exhausted or a required input is itself NilGate (null propagation, so
// gate constructors can be composed without checking every intermediate
// result). It panics with an *InvalidArgumentError if kind is Input, or if
// a non-nil input index does not refer to an already-installed gate.
func (st *State) Append(kind Kind, table ttable.Table, in1, in2 GateIndex) GateIndex {
	if kind == Input {
		invalidArgument("circuit: Append called with kind=Input")
	}
	if in1 == NilGate || (kind != Not && in2 == NilGate) {
		return NilGate
	}
	if uint64(in1) >= st.NumGates {
		invalidArgument("circuit: input index %d >= num_gates %d", in1, st.NumGates)
	}
	if kind != Not && uint64(in2) >= st.NumGates {
		invalidArgument("circuit: input index %d >= num_gates %d", in2, st.NumGates)
	}
	if st.NumGates >= st.MaxGates {
		return NilGate
	}
	idx := GateIndex(st.NumGates)
	st.Gates[idx] = Gate{Kind: kind, Table: table, In1: in1, In2: in2}
	st.NumGates++
	return idx
}

// GateTable returns the truth table of the gate at index.
func (st *State) GateTable(index GateIndex) ttable.Table {
	if uint64(index) >= st.NumGates {
		invalidArgument("circuit: GateTable index %d >= num_gates %d", index, st.NumGates)
	}
	return st.Gates[index].Table
}

// SetOutput records that gate index realizes output slot.
func (st *State) SetOutput(slot int, index GateIndex) {
	if slot < 0 || slot >= NumInputs {
		invalidArgument("circuit: output slot %d out of range", slot)
	}
	if index != NilGate && uint64(index) >= st.NumGates {
		invalidArgument("circuit: output index %d >= num_gates %d", index, st.NumGates)
	}
	st.Outputs[slot] = index
}

// SolvedOutputs reports how many of the eight output slots are set.
func (st *State) SolvedOutputs() int {
	n := 0
	for _, o := range st.Outputs {
		if o != NilGate {
			n++
		}
	}
	return n
}
