// Package driver wires the synthesizer to the outside world: it seeds or
// loads a circuit.State, calls synth.Synthesize once per still-unsolved
// S-box output bit, tightens the shared gate budget as better solutions
// are found, and persists the State after every successful output. This
// package, and everything beneath cmd/sboxgates that calls it, is the
// "external collaborator" layer the core synthesizer itself never imports.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ridenting/sboxgates/circuit"
	"github.com/ridenting/sboxgates/internal/obslog"
	"github.com/ridenting/sboxgates/internal/ttable"
	"github.com/ridenting/sboxgates/synth"
)

// Config controls one driver run.
type Config struct {
	Sbox [256]byte

	// MaxGates is the initial gate budget; it is only ever tightened
	// during a run, never loosened.
	MaxGates uint64

	// Workers is the size of the worker pool used to synthesize the
	// eight outputs concurrently. Workers<=1 runs the original
	// sequential, lock-free schedule, which is the only schedule §8's
	// determinism property (S6) is checked against.
	Workers int

	// LoadPath, if non-empty, is an existing persisted State to resume
	// instead of starting from the eight bare Input gates.
	LoadPath string

	// OutDir is the directory snapshot files are written to. Defaults
	// to the current directory.
	OutDir string
}

// Run synthesizes a circuit for every output bit of cfg.Sbox that is not
// already solved, persisting a snapshot after each newly solved output.
func Run(ctx context.Context, cfg Config) (*circuit.State, error) {
	st, err := seed(cfg)
	if err != nil {
		return nil, err
	}

	targets := synth.Targets(cfg.Sbox)
	log := obslog.Logger()

	if cfg.Workers <= 1 {
		maxGates := st.MaxGates
		for output := 0; output < circuit.NumInputs; output++ {
			if ctx.Err() != nil {
				return st, ctx.Err()
			}
			if st.Outputs[output] != circuit.NilGate {
				log.Info().Int("output", output).Msg("skipping already-solved output")
				continue
			}
			trial := *st
			trial.MaxGates = maxGates
			if err := synthesizeOutput(&trial, output, targets[output], cfg.OutDir, log); err != nil {
				if errors.Is(err, synth.ErrBudgetExhausted) {
					continue
				}
				return st, err
			}
			*st = trial
			if st.NumGates < maxGates {
				maxGates = st.NumGates
				log.Info().Uint64("max_gates", maxGates).Msg("tightened gate budget")
			}
		}
		return st, nil
	}

	return runParallel(ctx, cfg, st, targets, log)
}

func runParallel(ctx context.Context, cfg Config, st *circuit.State, targets [8]ttable.Table, log zerolog.Logger) (*circuit.State, error) {
	var mu sync.Mutex
	maxGates := st.MaxGates
	base := *st

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	results := make([]*circuit.State, circuit.NumInputs)

	for output := 0; output < circuit.NumInputs; output++ {
		output := output
		if st.Outputs[output] != circuit.NilGate {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			mu.Lock()
			trial := base
			trial.MaxGates = maxGates
			mu.Unlock()

			if err := synthesizeOutput(&trial, output, targets[output], cfg.OutDir, log); err != nil {
				if errors.Is(err, synth.ErrBudgetExhausted) {
					return nil // BudgetExhausted is not a run failure; see §5.
				}
				return err
			}

			mu.Lock()
			if trial.NumGates < maxGates {
				maxGates = trial.NumGates
			}
			mu.Unlock()
			results[output] = &trial
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return st, err
	}

	for output, r := range results {
		if r == nil {
			continue
		}
		if r.Outputs[output] != circuit.NilGate {
			st.SetOutput(output, promote(st, r, r.Outputs[output], base.NumGates))
		}
	}
	return st, nil
}

// promote copies the gates of a winning worker's trial State that are not
// already present in st, preserving topological order, and returns the
// index the output gate now has in st. Workers that ran concurrently may
// have diverged from st's current gate list (each started from the same
// base snapshot), so gates are appended rather than assumed to line up
// index-for-index. The first shared gates (the base snapshot) are already
// present in st at the same indices.
func promote(st *circuit.State, trial *circuit.State, trialIdx circuit.GateIndex, shared uint64) circuit.GateIndex {
	remap := make(map[circuit.GateIndex]circuit.GateIndex, trial.NumGates)
	for i := circuit.GateIndex(0); uint64(i) < shared; i++ {
		remap[i] = i
	}
	var walk func(idx circuit.GateIndex) circuit.GateIndex
	walk = func(idx circuit.GateIndex) circuit.GateIndex {
		if idx == circuit.NilGate {
			return circuit.NilGate
		}
		if mapped, ok := remap[idx]; ok {
			return mapped
		}
		g := trial.Gates[idx]
		in1 := walk(g.In1)
		var in2 circuit.GateIndex
		if g.Kind == circuit.Not {
			in2 = circuit.NilGate
		} else {
			in2 = walk(g.In2)
		}
		newIdx := st.Append(g.Kind, g.Table, in1, in2)
		remap[idx] = newIdx
		return newIdx
	}
	return walk(trialIdx)
}

func seed(cfg Config) (*circuit.State, error) {
	if cfg.LoadPath == "" {
		st := circuit.NewState(cfg.MaxGates)
		return &st, nil
	}
	data, err := os.ReadFile(cfg.LoadPath)
	if err != nil {
		return nil, fmt.Errorf("driver: reading %s: %w", cfg.LoadPath, err)
	}
	var st circuit.State
	if err := st.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("driver: decoding %s: %w", cfg.LoadPath, err)
	}
	if cfg.MaxGates != 0 && cfg.MaxGates < st.MaxGates {
		st.MaxGates = cfg.MaxGates
	}
	return &st, nil
}

func synthesizeOutput(st *circuit.State, output int, target ttable.Table, outDir string, log zerolog.Logger) error {
	idx := synth.Synthesize(st, target, ttable.All(), nil)
	if idx == circuit.NilGate {
		log.Warn().Int("output", output).Msg("no solution within budget")
		return synth.ErrBudgetExhausted
	}
	st.SetOutput(output, idx)
	log.Info().Int("output", output).Uint64("num_gates", st.NumGates).Msg("solved output")
	return persist(st, outDir)
}

func persist(st *circuit.State, outDir string) error {
	data, err := st.MarshalBinary()
	if err != nil {
		return fmt.Errorf("driver: marshaling state: %w", err)
	}
	name := snapshotName(st)
	if outDir != "" {
		name = filepath.Join(outDir, name)
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("driver: writing %s: %w", name, err)
	}
	return nil
}

func snapshotName(st *circuit.State) string {
	var outs string
	for i, o := range st.Outputs {
		if o != circuit.NilGate {
			outs += fmt.Sprintf("%d", i)
		}
	}
	return fmt.Sprintf("%d-%03d-%s.state", st.SolvedOutputs(), st.NumGates, outs)
}
