package circuit

import (
	"encoding/binary"
	"fmt"

	"github.com/ridenting/sboxgates/internal/ttable"
)

// headerLen is the size in bytes of the fixed max_gates/num_gates/outputs
// preamble, before the WireMaxGates gate records.
const headerLen = 8 + 8 + NumInputs*8

// gateRecordLen is the size in bytes of one persisted gate: a one-byte
// kind, the four 64-bit words of its truth table, and its two 64-bit
// input indices.
const gateRecordLen = 1 + ttable.Words*8 + 8 + 8

// wireLen is the total, fixed size of a marshaled State: it never depends
// on NumGates, matching the original tool's `fwrite(&st, sizeof(state), 1, fp)`
// of a fixed-size struct.
const wireLen = headerLen + WireMaxGates*gateRecordLen

// MarshalBinary encodes st into the fixed-size on-disk record described in
// the persistence format: max_gates, num_gates, the eight output indices,
// all little-endian uint64, followed by exactly WireMaxGates gate records
// (slots beyond NumGates are zero-filled Input-kind records).
func (st *State) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, wireLen)
	buf = binary.LittleEndian.AppendUint64(buf, st.MaxGates)
	buf = binary.LittleEndian.AppendUint64(buf, st.NumGates)
	for _, o := range st.Outputs {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(o))
	}
	for i := 0; i < WireMaxGates; i++ {
		g := st.Gates[i]
		buf = append(buf, byte(g.Kind))
		var words [ttable.Words]uint64
		if uint64(i) < st.NumGates {
			words = g.Table.Words()
		}
		for _, w := range words {
			buf = binary.LittleEndian.AppendUint64(buf, w)
		}
		buf = binary.LittleEndian.AppendUint64(buf, uint64(g.In1))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(g.In2))
	}
	return buf, nil
}

// UnmarshalBinary is MarshalBinary's strict inverse. It rejects any buffer
// whose length is not exactly wireLen.
func (st *State) UnmarshalBinary(data []byte) error {
	if len(data) != wireLen {
		return fmt.Errorf("circuit: invalid state record length %d, want %d", len(data), wireLen)
	}
	st.MaxGates = binary.LittleEndian.Uint64(data[0:8])
	st.NumGates = binary.LittleEndian.Uint64(data[8:16])
	off := 16
	for i := range st.Outputs {
		st.Outputs[i] = GateIndex(binary.LittleEndian.Uint64(data[off : off+8]))
		off += 8
	}
	for i := 0; i < WireMaxGates; i++ {
		kind := Kind(data[off])
		off++
		var words [ttable.Words]uint64
		for w := 0; w < ttable.Words; w++ {
			words[w] = binary.LittleEndian.Uint64(data[off : off+8])
			off += 8
		}
		in1 := GateIndex(binary.LittleEndian.Uint64(data[off : off+8]))
		off += 8
		in2 := GateIndex(binary.LittleEndian.Uint64(data[off : off+8]))
		off += 8
		st.Gates[i] = Gate{Kind: kind, Table: ttable.FromWords(words), In1: in1, In2: in2}
	}
	return nil
}
