// Command watervm runs a textual water VM bytecode program.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"watervm/syscalls"
	"watervm/vm"
)

func main() {
	cmd := &cli.Command{
		Name:  "watervm",
		Usage: "run a water VM bytecode program",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "print final operand/call-stack state on exit and single-step on DEBUG_TRAP",
			},
		},
		ArgsUsage: "<program.txt>",
		Action:    run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		reportFatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("usage: watervm [--debug] <program.txt>")
	}

	program, err := vm.LoadProgram(path)
	if err != nil {
		reportFatal(err)
	}

	rt := syscalls.NewRuntime(path)
	defer rt.Close()

	engine := vm.NewEngine(rt)
	rt.ThreadEntry = func(entryPC int32) int64 {
		return engine.RunThread(entryPC)
	}

	if cmd.Bool("debug") {
		engine.Dispatcher.DebugHook = makeDebugHook(engine)
	}

	if err := engine.Execute(program); err != nil {
		if cmd.Bool("debug") {
			printState(engine, rt)
		}
		reportFatal(err)
	}

	if cmd.Bool("debug") {
		printState(engine, rt)
	}
	return nil
}

// makeDebugHook returns the DEBUG_TRAP callback for --debug runs: it
// prints the current pc and operand stack and, when stdin is a terminal,
// blocks for a keypress before continuing (mirroring the grounding repo's
// single-step debug loop, generalized from its fixed register dump to the
// Value-tagged operand stack).
func makeDebugHook(engine *vm.Engine) func(pc int32, stack *vm.Stack, locals *vm.Locals, calls *vm.CallStack) {
	return func(pc int32, stack *vm.Stack, locals *vm.Locals, calls *vm.CallStack) {
		fmt.Fprintf(os.Stderr, "-- debug trap at pc=%d --\n", pc)
		fmt.Fprintf(os.Stderr, "stack: %v\n", stack.Snapshot())
		fmt.Fprintf(os.Stderr, "call depth: %d\n", calls.Depth())

		if !syscalls.IsTTY() {
			return
		}
		fd := int(os.Stdin.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			return
		}
		defer term.Restore(fd, state)

		buf := make([]byte, 1)
		fmt.Fprint(os.Stderr, "press any key to continue...")
		os.Stdin.Read(buf)
		fmt.Fprintln(os.Stderr)
	}
}

func printState(engine *vm.Engine, rt *syscalls.Runtime) {
	fmt.Fprintf(os.Stderr, "final pc: %d\n", engine.PC())
	fmt.Fprintf(os.Stderr, "final stack: %v\n", engine.Stack.Snapshot())
	fmt.Fprintf(os.Stderr, "final call depth: %d\n", engine.Calls.Depth())
	if threads := rt.Threads.Snapshot(); len(threads) > 0 {
		fmt.Fprintf(os.Stderr, "still-running threads: %v\n", threads)
	}
}

// reportFatal prints err and exits 1, matching the grounding repo's
// single fatal-error exit path rather than scattering os.Exit calls.
func reportFatal(err error) {
	fmt.Fprintln(os.Stderr, "watervm:", err)
	os.Exit(1)
}
