package synth

import "github.com/ridenting/sboxgates/internal/ttable"

// GenerateTarget derives the 256-bit truth table for one S-box output bit,
// or (when fromSbox is false) for one raw input variable. With fromSbox
// true, bit i of the result is (sbox[i]>>bit)&1; with fromSbox false, bit
// i is (i>>bit)&1, i.e. the truth table of input variable bit.
func GenerateTarget(sbox [256]byte, bit int, fromSbox bool) ttable.Table {
	return ttable.FromFunc(func(i int) bool {
		var v int
		if fromSbox {
			v = int(sbox[i])
		} else {
			v = i
		}
		return (v>>uint(bit))&1 == 1
	})
}

// Targets returns the eight output-bit truth tables for sbox, indexed by
// output bit.
func Targets(sbox [256]byte) [8]ttable.Table {
	var out [8]ttable.Table
	for bit := 0; bit < 8; bit++ {
		out[bit] = GenerateTarget(sbox, bit, true)
	}
	return out
}
