package circuit

import (
	"testing"

	"github.com/ridenting/sboxgates/internal/ttable"
	"github.com/stretchr/testify/assert"
)

func TestConstructorsMatchAlgebra(t *testing.T) {
	st := NewState(500)
	a, b, c := GateIndex(0), GateIndex(1), GateIndex(2)
	ta, tb, tc := st.GateTable(a), st.GateTable(b), st.GateTable(c)

	cases := []struct {
		name string
		got  GateIndex
		want ttable.Table
	}{
		{"not", MakeNot(&st, a), ttable.Not(ta)},
		{"and", MakeAnd(&st, a, b), ttable.And(ta, tb)},
		{"or", MakeOr(&st, a, b), ttable.Or(ta, tb)},
		{"xor", MakeXor(&st, a, b), ttable.Xor(ta, tb)},
		{"nand", MakeNand(&st, a, b), ttable.Not(ttable.And(ta, tb))},
		{"nor", MakeNor(&st, a, b), ttable.Not(ttable.Or(ta, tb))},
		{"xnor", MakeXnor(&st, a, b), ttable.Not(ttable.Xor(ta, tb))},
		{"and_not", MakeAndNot(&st, a, b), ttable.And(ttable.Not(ta), tb)},
		{"or_not", MakeOrNot(&st, a, b), ttable.Or(ttable.Not(ta), tb)},
		{"and_3", MakeAnd3(&st, a, b, c), ttable.And(ttable.And(ta, tb), tc)},
		{"or_3", MakeOr3(&st, a, b, c), ttable.Or(ttable.Or(ta, tb), tc)},
		{"xor_3", MakeXor3(&st, a, b, c), ttable.Xor(ttable.Xor(ta, tb), tc)},
		{"and_or", MakeAndOr(&st, a, b, c), ttable.Or(ttable.And(ta, tb), tc)},
		{"and_xor", MakeAndXor(&st, a, b, c), ttable.Xor(ttable.And(ta, tb), tc)},
		{"or_and", MakeOrAnd(&st, a, b, c), ttable.And(ttable.Or(ta, tb), tc)},
		{"or_xor", MakeOrXor(&st, a, b, c), ttable.Xor(ttable.Or(ta, tb), tc)},
		{"xor_and", MakeXorAnd(&st, a, b, c), ttable.And(ttable.Xor(ta, tb), tc)},
		{"xor_or", MakeXorOr(&st, a, b, c), ttable.Or(ttable.Xor(ta, tb), tc)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !assert.NotEqual(t, NilGate, tc.got) {
				return
			}
			assert.True(t, ttable.Equal(tc.want, st.GateTable(tc.got)), "table mismatch for %s", tc.name)
		})
	}
}

func TestConstructorsPropagateNil(t *testing.T) {
	st := NewState(500)
	assert.Equal(t, NilGate, MakeAndOr(&st, NilGate, 0, 1))
	assert.Equal(t, NilGate, MakeXorAnd(&st, 0, NilGate, 1))
	assert.EqualValues(t, NumInputs, st.NumGates)
}

func TestTopologicalInvariant(t *testing.T) {
	st := NewState(500)
	g := MakeAndOr(&st, 0, 1, 2)
	for i := GateIndex(NumInputs); i < GateIndex(st.NumGates); i++ {
		gate := st.Gates[i]
		assert.Less(t, gate.In1, i)
		if gate.Kind != Not {
			assert.Less(t, gate.In2, i)
		}
	}
	assert.NotEqual(t, NilGate, g)
}
