// Command sboxgates synthesizes a small boolean-gate circuit realizing an
// 8-bit S-box, or renders a previously persisted circuit.State as Graphviz
// dot. It is the thin wiring layer over config, driver, and render; all of
// the actual work happens in those packages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/ridenting/sboxgates/circuit"
	"github.com/ridenting/sboxgates/config"
	"github.com/ridenting/sboxgates/driver"
	"github.com/ridenting/sboxgates/internal/obslog"
	"github.com/ridenting/sboxgates/render"
)

// synthesisStackFloor is the empirical stack-depth floor carried over from
// the original tool's pthread_attr_setstacksize(&attr, 1<<21) call: phase-4's
// O(n^3) scans combined with phase-5's recursive Shannon splits can run the
// call stack deep enough that the platform default is not always enough.
const synthesisStackFloor = 2 << 20 // 2 MiB

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	cfg, err := config.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if cfg.Verbose {
		obslog.SetLevel(zerolog.DebugLevel)
	}

	if cfg.DotPath != "" {
		return runDot(cfg, stdout, stderr)
	}
	return runSynthesize(cfg, stderr)
}

func runDot(cfg config.Config, stdout, stderr *os.File) int {
	data, err := os.ReadFile(cfg.DotPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	var st circuit.State
	if err := st.UnmarshalBinary(data); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := render.WriteDot(stdout, &st); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runSynthesize(cfg config.Config, stderr *os.File) int {
	sbox, err := config.LoadSbox(cfg.SboxPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Never lower the runtime's stack limit below its current value; only
	// raise it to the floor if it is smaller.
	if prev := debug.SetMaxStack(synthesisStackFloor); prev > synthesisStackFloor {
		debug.SetMaxStack(prev)
	}

	errc := make(chan error, 1)
	go func() {
		_, err := driver.Run(ctx, driver.Config{
			Sbox:     sbox,
			MaxGates: cfg.MaxGates,
			Workers:  cfg.Workers,
			LoadPath: cfg.LoadPath,
			OutDir:   cfg.OutDir,
		})
		errc <- err
	}()

	if err := <-errc; err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
