// Package render emits a Graphviz dot rendering of a circuit.State, for the
// CLI's -dot flag. It follows the plain fmt.Fprintf digraph style used
// elsewhere in the gate-circuit ecosystem: no graphviz library is pulled in,
// since the format itself is just lines of text.
package render

import (
	"fmt"
	"io"

	"github.com/ridenting/sboxgates/circuit"
)

// WriteDot writes a Graphviz dot digraph of st to w: one node per gate
// (inputs rendered as plaintext leaves, everything else as a boxed
// operation), one edge per gate input, one g%d -> out%d edge per set output
// slot (matching the original tool's print_digraph), and a final rank
// grouping the output gates together so they render on one row.
func WriteDot(w io.Writer, st *circuit.State) error {
	bw := &errWriter{w: w}

	fmt.Fprintf(bw, "digraph circuit\n{\n")
	fmt.Fprintf(bw, "  overlap=scale;\n")
	fmt.Fprintf(bw, "  node\t[fontname=\"Helvetica\"];\n")

	fmt.Fprintf(bw, "  {\n    node [shape=plaintext];\n")
	for i := 0; i < circuit.NumInputs; i++ {
		fmt.Fprintf(bw, "    g%d\t[label=\"in%d\"];\n", i, i)
	}
	fmt.Fprintf(bw, "  }\n")

	fmt.Fprintf(bw, "  {\n    node [shape=box];\n")
	for i := circuit.GateIndex(circuit.NumInputs); uint64(i) < st.NumGates; i++ {
		g := st.Gates[i]
		fmt.Fprintf(bw, "    g%d\t[label=\"%s\"];\n", i, g.Kind)
	}
	fmt.Fprintf(bw, "  }\n")

	for i := circuit.GateIndex(circuit.NumInputs); uint64(i) < st.NumGates; i++ {
		g := st.Gates[i]
		fmt.Fprintf(bw, "  g%d -> g%d;\n", g.In1, i)
		if g.Kind != circuit.Not {
			fmt.Fprintf(bw, "  g%d -> g%d;\n", g.In2, i)
		}
	}

	for slot, out := range st.Outputs {
		if out == circuit.NilGate {
			continue
		}
		fmt.Fprintf(bw, "  g%d -> out%d;\n", out, slot)
	}

	fmt.Fprintf(bw, "  {  rank=same")
	for slot, out := range st.Outputs {
		if out == circuit.NilGate {
			continue
		}
		fmt.Fprintf(bw, "; g%d", out)
		_ = slot
	}
	fmt.Fprintf(bw, ";}\n")

	fmt.Fprintf(bw, "}\n")
	return bw.err
}

// errWriter lets WriteDot use repeated fmt.Fprintf calls without checking
// every return value; the first error is latched and returned at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
