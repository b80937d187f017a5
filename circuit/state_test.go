package circuit

import (
	"testing"

	"github.com/ridenting/sboxgates/internal/ttable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateInstallsInputs(t *testing.T) {
	st := NewState(500)
	require.EqualValues(t, NumInputs, st.NumGates)
	for i := 0; i < NumInputs; i++ {
		g := st.Gates[i]
		assert.Equal(t, Input, g.Kind)
		assert.Equal(t, NilGate, g.In1)
		assert.Equal(t, NilGate, g.In2)
		for x := 0; x < ttable.Width; x++ {
			assert.Equal(t, (x>>uint(i))&1 == 1, g.Table.Test(x), "input %d bit %d", i, x)
		}
	}
	for _, o := range st.Outputs {
		assert.Equal(t, NilGate, o)
	}
}

func TestAppendBudget(t *testing.T) {
	st := NewState(NumInputs) // only room for the inputs
	idx := MakeAnd(&st, 0, 1)
	assert.Equal(t, NilGate, idx)
	assert.EqualValues(t, NumInputs, st.NumGates)
}

func TestAppendNilPropagation(t *testing.T) {
	st := NewState(500)
	assert.Equal(t, NilGate, MakeAnd(&st, NilGate, 0))
	assert.Equal(t, NilGate, MakeAnd(&st, 0, NilGate))
	assert.Equal(t, NilGate, MakeNot(&st, NilGate))
	assert.EqualValues(t, NumInputs, st.NumGates, "a failed append must not mutate num_gates")
}

func TestAppendRejectsInputKind(t *testing.T) {
	st := NewState(500)
	assert.Panics(t, func() {
		st.Append(Input, ttable.Zero(), NilGate, NilGate)
	})
}

func TestAppendRejectsOutOfRangeInput(t *testing.T) {
	st := NewState(500)
	assert.Panics(t, func() {
		st.Append(And, ttable.Zero(), 0, GateIndex(st.NumGates))
	})
}

func TestStateValueCopyIsIndependent(t *testing.T) {
	st := NewState(500)
	trial := st // value copy
	MakeAnd(&trial, 0, 1)
	assert.EqualValues(t, NumInputs, st.NumGates, "copy must not affect original")
	assert.EqualValues(t, NumInputs+1, trial.NumGates)
}

func TestSetOutputAndSolvedOutputs(t *testing.T) {
	st := NewState(500)
	assert.Equal(t, 0, st.SolvedOutputs())
	idx := MakeAnd(&st, 0, 1)
	st.SetOutput(3, idx)
	assert.Equal(t, 1, st.SolvedOutputs())
	assert.Equal(t, idx, st.Outputs[3])
}

func TestSetOutputRejectsOutOfRangeIndex(t *testing.T) {
	st := NewState(500)
	assert.Panics(t, func() {
		st.SetOutput(3, GateIndex(st.NumGates))
	})
}
