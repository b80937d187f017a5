package config

import (
	"strings"
	"testing"

	"github.com/ridenting/sboxgates/circuit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Workers)
	assert.EqualValues(t, circuit.WireMaxGates, cfg.MaxGates)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.SboxPath)
	assert.Empty(t, cfg.LoadPath)
	assert.Empty(t, cfg.DotPath)
}

func TestParseOverridesEveryFlag(t *testing.T) {
	cfg, err := Parse([]string{
		"-sbox", "sbox.txt",
		"-load", "state.bin",
		"-dot", "out.dot",
		"-workers", "4",
		"-max-gates", "200",
		"-v",
		"-out", "snapshots",
	})
	require.NoError(t, err)
	assert.Equal(t, "sbox.txt", cfg.SboxPath)
	assert.Equal(t, "state.bin", cfg.LoadPath)
	assert.Equal(t, "out.dot", cfg.DotPath)
	assert.Equal(t, 4, cfg.Workers)
	assert.EqualValues(t, 200, cfg.MaxGates)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "snapshots", cfg.OutDir)
}

func TestParseRejectsZeroWorkers(t *testing.T) {
	_, err := Parse([]string{"-workers", "0"})
	assert.Error(t, err)
}

func TestParseRejectsOutOfRangeMaxGates(t *testing.T) {
	_, err := Parse([]string{"-max-gates", "0"})
	assert.Error(t, err)

	_, err = Parse([]string{"-max-gates", "501"})
	assert.Error(t, err)
}

func TestLoadSboxDefaultsToBuiltIn(t *testing.T) {
	sbox, err := LoadSbox("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSbox, sbox)
}

func TestParseSboxHexAndDecimalMixed(t *testing.T) {
	var tokens []string
	for i := 0; i < 256; i++ {
		if i%2 == 0 {
			tokens = append(tokens, "0x00")
		} else {
			tokens = append(tokens, "255")
		}
	}
	sbox, err := parseSbox(strings.NewReader(strings.Join(tokens, "\n")))
	require.NoError(t, err)
	for i := 0; i < 256; i++ {
		if i%2 == 0 {
			assert.Equal(t, byte(0x00), sbox[i])
		} else {
			assert.Equal(t, byte(0xff), sbox[i])
		}
	}
}

func TestParseSboxRejectsWrongEntryCount(t *testing.T) {
	_, err := parseSbox(strings.NewReader("00 01 02"))
	assert.Error(t, err)
}

func TestParseSboxRejectsGarbage(t *testing.T) {
	tokens := strings.Repeat("zz ", 256)
	_, err := parseSbox(strings.NewReader(tokens))
	assert.Error(t, err)
}
