// Package config parses the cmd/sboxgates command line into a run
// configuration. It deliberately stays on the standard flag package: no CLI
// framework is wired in (see DESIGN.md for why spf13/cobra, present only in
// the teacher's disused legacy cmd/ package, was rejected for this surface).
package config

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ridenting/sboxgates/circuit"
)

// Config is the fully resolved set of knobs cmd/sboxgates passes to driver.Run.
type Config struct {
	SboxPath string
	LoadPath string
	DotPath  string
	Workers  int
	MaxGates uint64
	Verbose  bool
	OutDir   string
}

// Parse parses args (typically os.Args[1:]) into a Config, applying the
// defaults documented in the CLI surface: Workers=1, MaxGates=WireMaxGates.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("sboxgates", flag.ContinueOnError)
	cfg := Config{}

	fs.StringVar(&cfg.SboxPath, "sbox", "", "path to a 256-entry S-box file (default: built-in table)")
	fs.StringVar(&cfg.LoadPath, "load", "", "path to a persisted State to resume")
	fs.StringVar(&cfg.DotPath, "dot", "", "path to a persisted State to render as Graphviz dot, then exit")
	fs.IntVar(&cfg.Workers, "workers", 1, "number of outputs to synthesize concurrently")
	fs.Uint64Var(&cfg.MaxGates, "max-gates", circuit.WireMaxGates, "initial gate budget")
	fs.BoolVar(&cfg.Verbose, "v", false, "raise the log level to debug")
	fs.StringVar(&cfg.OutDir, "out", "", "directory snapshot files are written to (default: current directory)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("config: -workers must be >= 1, got %d", cfg.Workers)
	}
	if cfg.MaxGates == 0 || cfg.MaxGates > circuit.WireMaxGates {
		return Config{}, fmt.Errorf("config: -max-gates must be in [1, %d], got %d", circuit.WireMaxGates, cfg.MaxGates)
	}
	return cfg, nil
}

// LoadSbox reads the 256-entry S-box Config.SboxPath names, or returns the
// built-in default when SboxPath is empty. The file format is one
// whitespace-separated byte token per entry, each parsed first as hex (with
// or without a "0x" prefix) and falling back to decimal, matching the
// teacher's preference for small dependency-free text parsers over
// introducing a new config-file grammar for a single flat array.
func LoadSbox(path string) ([256]byte, error) {
	if path == "" {
		return DefaultSbox, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return [256]byte{}, fmt.Errorf("config: opening %s: %w", path, err)
	}
	defer f.Close()
	return parseSbox(f)
}

func parseSbox(r io.Reader) ([256]byte, error) {
	var sbox [256]byte
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	n := 0
	for sc.Scan() {
		if n >= 256 {
			return [256]byte{}, fmt.Errorf("config: S-box file has more than 256 entries")
		}
		tok := strings.TrimPrefix(sc.Text(), "0x")
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			v, err = strconv.ParseUint(sc.Text(), 10, 8)
			if err != nil {
				return [256]byte{}, fmt.Errorf("config: invalid S-box entry %q: %w", sc.Text(), err)
			}
		}
		sbox[n] = byte(v)
		n++
	}
	if err := sc.Err(); err != nil {
		return [256]byte{}, fmt.Errorf("config: scanning S-box file: %w", err)
	}
	if n != 256 {
		return [256]byte{}, fmt.Errorf("config: S-box file has %d entries, want 256", n)
	}
	return sbox, nil
}
