package circuit

import "github.com/ridenting/sboxgates/internal/ttable"

// The functions below are typed wrappers over Append; each derives its
// child truth table from its parents' tables and appends exactly the gates
// its name implies. NilGate propagates through every composite, so a
// budget-exhausted partial result yields NilGate overall without any
// per-step branching by the caller.

// MakeNot appends a NOT gate: ¬a.
func MakeNot(st *State, a GateIndex) GateIndex {
	if a == NilGate {
		return NilGate
	}
	return st.Append(Not, ttable.Not(st.GateTable(a)), a, NilGate)
}

// MakeAnd appends an AND gate: a∧b.
func MakeAnd(st *State, a, b GateIndex) GateIndex {
	if a == NilGate || b == NilGate {
		return NilGate
	}
	return st.Append(And, ttable.And(st.GateTable(a), st.GateTable(b)), a, b)
}

// MakeOr appends an OR gate: a∨b.
func MakeOr(st *State, a, b GateIndex) GateIndex {
	if a == NilGate || b == NilGate {
		return NilGate
	}
	return st.Append(Or, ttable.Or(st.GateTable(a), st.GateTable(b)), a, b)
}

// MakeXor appends an XOR gate: a⊕b.
func MakeXor(st *State, a, b GateIndex) GateIndex {
	if a == NilGate || b == NilGate {
		return NilGate
	}
	return st.Append(Xor, ttable.Xor(st.GateTable(a), st.GateTable(b)), a, b)
}

// MakeNand appends AND followed by NOT: ¬(a∧b).
func MakeNand(st *State, a, b GateIndex) GateIndex {
	return MakeNot(st, MakeAnd(st, a, b))
}

// MakeNor appends OR followed by NOT: ¬(a∨b).
func MakeNor(st *State, a, b GateIndex) GateIndex {
	return MakeNot(st, MakeOr(st, a, b))
}

// MakeXnor appends XOR followed by NOT: ¬(a⊕b).
func MakeXnor(st *State, a, b GateIndex) GateIndex {
	return MakeNot(st, MakeXor(st, a, b))
}

// MakeAndNot appends NOT(a) then AND with b: (¬a)∧b.
func MakeAndNot(st *State, a, b GateIndex) GateIndex {
	return MakeAnd(st, MakeNot(st, a), b)
}

// MakeOrNot appends NOT(a) then OR with b: (¬a)∨b.
func MakeOrNot(st *State, a, b GateIndex) GateIndex {
	return MakeOr(st, MakeNot(st, a), b)
}

// MakeAnd3 appends two AND gates: a∧b∧c.
func MakeAnd3(st *State, a, b, c GateIndex) GateIndex {
	return MakeAnd(st, MakeAnd(st, a, b), c)
}

// MakeOr3 appends two OR gates: a∨b∨c.
func MakeOr3(st *State, a, b, c GateIndex) GateIndex {
	return MakeOr(st, MakeOr(st, a, b), c)
}

// MakeXor3 appends two XOR gates: a⊕b⊕c.
func MakeXor3(st *State, a, b, c GateIndex) GateIndex {
	return MakeXor(st, MakeXor(st, a, b), c)
}

// MakeAndOr appends AND then OR: (a∧b)∨c.
func MakeAndOr(st *State, a, b, c GateIndex) GateIndex {
	return MakeOr(st, MakeAnd(st, a, b), c)
}

// MakeAndXor appends AND then XOR: (a∧b)⊕c.
func MakeAndXor(st *State, a, b, c GateIndex) GateIndex {
	return MakeXor(st, MakeAnd(st, a, b), c)
}

// MakeOrAnd appends OR then AND: (a∨b)∧c.
func MakeOrAnd(st *State, a, b, c GateIndex) GateIndex {
	return MakeAnd(st, MakeOr(st, a, b), c)
}

// MakeOrXor appends OR then XOR: (a∨b)⊕c.
func MakeOrXor(st *State, a, b, c GateIndex) GateIndex {
	return MakeXor(st, MakeOr(st, a, b), c)
}

// MakeXorAnd appends XOR then AND: (a⊕b)∧c.
func MakeXorAnd(st *State, a, b, c GateIndex) GateIndex {
	return MakeAnd(st, MakeXor(st, a, b), c)
}

// MakeXorOr appends XOR then OR: (a⊕b)∨c.
func MakeXorOr(st *State, a, b, c GateIndex) GateIndex {
	return MakeOr(st, MakeXor(st, a, b), c)
}
