package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ridenting/sboxgates/circuit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDotProducesWellFormedDigraph(t *testing.T) {
	st := circuit.NewState(circuit.WireMaxGates)
	a := circuit.MakeXor(&st, 0, 1)
	b := circuit.MakeAnd(&st, a, 2)
	st.SetOutput(0, b)

	var buf bytes.Buffer
	require.NoError(t, WriteDot(&buf, &st))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "digraph circuit\n{\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, "g8\t[label=\"XOR\"];")
	assert.Contains(t, out, "g9\t[label=\"AND\"];")
	assert.Contains(t, out, "g0 -> g8;")
	assert.Contains(t, out, "g1 -> g8;")
	assert.Contains(t, out, "g8 -> g9;")
	assert.Contains(t, out, "g2 -> g9;")
	assert.Contains(t, out, "g9 -> out0;")
	assert.Contains(t, out, "; g9")
}

func TestWriteDotOmitsSecondInputForNot(t *testing.T) {
	st := circuit.NewState(circuit.WireMaxGates)
	n := circuit.MakeNot(&st, 0)
	st.SetOutput(0, n)

	var buf bytes.Buffer
	require.NoError(t, WriteDot(&buf, &st))
	out := buf.String()
	assert.Contains(t, out, "g0 -> g8;")
	assert.Equal(t, 1, strings.Count(out, "-> g8;"))
}

func TestWriteDotEmitsOneOutputEdgePerSetSlot(t *testing.T) {
	st := circuit.NewState(circuit.WireMaxGates)
	a := circuit.MakeXor(&st, 0, 1)
	b := circuit.MakeAnd(&st, a, 2)
	st.SetOutput(0, a)
	st.SetOutput(3, b)

	var buf bytes.Buffer
	require.NoError(t, WriteDot(&buf, &st))
	out := buf.String()

	assert.Contains(t, out, "g8 -> out0;")
	assert.Contains(t, out, "g9 -> out3;")
	assert.Equal(t, 2, strings.Count(out, "-> out"), "one edge per set output slot, none for unset slots")
}

func TestWriteDotPropagatesWriteError(t *testing.T) {
	st := circuit.NewState(circuit.WireMaxGates)
	err := WriteDot(failingWriter{}, &st)
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}
