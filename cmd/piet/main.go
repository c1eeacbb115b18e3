// Command piet runs Piet programs stored as images.
//
// Usage:
//
//	piet [options] <image>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bdwalton/piet/block"
	"github.com/bdwalton/piet/pvm"
	"github.com/bdwalton/piet/raster"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("piet", flag.ContinueOnError)
	codelSize := fs.Int("codel-size", 1, "pixels per codel")
	nonstandard := fs.String("nonstandard", "white", "how to treat non-palette colors: white or black")
	maxSteps := fs.Int("max-steps", 0, "abort after this many steps (0 = unlimited)")
	inputMode := fs.String("input-mode", "utf8", "in_char granularity: utf8 or byte")
	trace := fs.Bool("trace", false, "log every traversal step to stderr")
	debug := fs.Bool("debug", false, "log the loaded grid size and the halt reason to stderr")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: piet [options] <image>\n")
		fs.PrintDefaults()
		return 1
	}
	imagePath := fs.Arg(0)

	nonstd, err := parseNonStandard(*nonstandard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "piet: %v\n", err)
		return 1
	}

	inputByteMode, err := parseInputMode(*inputMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "piet: %v\n", err)
		return 1
	}

	logger := log.New(os.Stderr, "", 0)

	grid, err := raster.Load(imagePath, *codelSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "piet: %v\n", err)
		return 1
	}
	if *debug {
		logger.Printf("debug: loaded %dx%d codel grid from %s", grid.Cols, grid.Rows, imagePath)
	}

	cfg := pvm.Config{
		NonStandardAs: nonstd,
		MaxSteps:      *maxSteps,
		ByteInput:     inputByteMode,
	}
	vm := pvm.New(grid, cfg, os.Stdin, os.Stdout)

	if *trace {
		vm.Trace = func(format string, args ...any) {
			logger.Printf("trace: "+format, args...)
		}
	}

	vm.Run(context.Background())

	if *debug {
		logger.Printf("debug: halted after %d steps: %s", vm.Steps, vm.HaltedWhy)
	}

	switch vm.HaltedWhy {
	case pvm.StepBudget:
		fmt.Fprintf(os.Stderr, "piet: %s\n", vm.HaltedWhy)
		return 2
	default:
		return 0
	}
}

func parseNonStandard(s string) (block.NonStandardAs, error) {
	switch s {
	case "white":
		return block.AsWhite, nil
	case "black":
		return block.AsBlack, nil
	default:
		return 0, fmt.Errorf("unknown -nonstandard value %q (want white or black)", s)
	}
}

func parseInputMode(s string) (bool, error) {
	switch s {
	case "utf8":
		return false, nil
	case "byte":
		return true, nil
	default:
		return false, fmt.Errorf("unknown -input-mode value %q (want utf8 or byte)", s)
	}
}
