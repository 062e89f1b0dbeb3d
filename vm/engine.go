package vm

import (
	"strconv"
	"strings"
)

// Engine orchestrates the fetch/decode/dispatch loop (C9): operand stack,
// call stack, program counter and dispatcher, grounded on the grounding
// repo's execInstructions tight loop but generalized from a fixed register
// file to the frame/locals model in §3.
type Engine struct {
	Stack      *Stack
	Calls      *CallStack
	Dispatcher *Dispatcher

	program    []string
	pc         int32
	rootLocals *Locals
	booted     bool
}

// NewEngine constructs an engine with its dispatcher wired to rt (may be
// nil for programs that never execute SYSCALL).
func NewEngine(rt SyscallRuntime) *Engine {
	return &Engine{
		Stack:      NewStack(),
		Calls:      NewCallStack(),
		Dispatcher: NewDispatcher(rt),
	}
}

// boot pushes the root frame exactly once and resets pc to 0, per §4.2.
func (e *Engine) boot() {
	if e.booted {
		return
	}
	e.rootLocals = NewLocals()
	e.Calls.Push(&Frame{
		ReturnPC: ProgramEnd,
		Locals:   e.rootLocals,
		Ctx:      MethodContext{Name: "root"},
	})
	e.pc = 0
	e.booted = true
}

// Execute loads program into the engine and runs the fetch/decode/dispatch
// loop to completion, per §4.2. Returns a non-nil *ExecError for fatal
// conditions (§7); a clean HALT or root RET returns nil. EXIT does not
// return here: the EXIT syscall terminates the host process directly.
func (e *Engine) Execute(program []string) error {
	e.program = program
	e.boot()

	for {
		if e.pc == ProgramEnd || e.pc < 0 || int(e.pc) >= len(e.program) {
			break
		}

		line := strings.TrimSpace(e.program[e.pc])
		if line == "" || strings.HasPrefix(line, "#") {
			e.pc++
			continue
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			return execErr(int(e.pc), ErrBytecodeFormat)
		}

		opInt, err := strconv.Atoi(parts[0])
		if err != nil {
			// Instructions may also be written in hex (0x...), matching §6's
			// canonical numeric opcode layout.
			if v, hexErr := strconv.ParseInt(parts[0], 0, 64); hexErr == nil {
				opInt = int(v)
			} else {
				return execErr(int(e.pc), ErrBytecodeFormat)
			}
		}

		nextPC, err := e.Dispatcher.Handle(Opcode(opInt), parts[1:], e.pc, e.Stack, e.currentLocals(), e.Calls)
		if err != nil {
			return err
		}

		switch {
		case nextPC == haltSentinel || nextPC == ProgramEnd:
			e.pc = ProgramEnd
		case nextPC == e.pc:
			e.pc++
		default:
			e.pc = nextPC
		}
	}

	e.rootLocals.Compact()
	return nil
}

// currentLocals returns the locals of the topmost call-stack frame, the
// operand instructions above always address.
func (e *Engine) currentLocals() *Locals {
	f, ok := e.Calls.Peek()
	if !ok {
		return e.rootLocals
	}
	return f.Locals
}

// PC exposes the current program counter for debug printing.
func (e *Engine) PC() int32 { return e.pc }

// Program exposes the loaded instruction lines for debug printing.
func (e *Engine) Program() []string { return e.program }

// RunThread executes the loaded program from entryPC to completion on an
// independent operand stack and call stack, sharing only the dispatcher
// and program text with the engine that spawned it. This backs
// THREAD_CREATE (§4.5): each VM thread gets its own stack/locals, as a
// goroutine-per-thread would in any Go program, while SYSCALL handlers
// still reach the same shared runtime registries (FD table, mutexes,
// etc.) through the one Dispatcher.
//
// It returns the value left on top of the thread's operand stack when it
// halts, or 0 if the thread's stack was empty at halt.
func (e *Engine) RunThread(entryPC int32) int64 {
	stack := NewStack()
	calls := NewCallStack()
	locals := NewLocals()
	calls.Push(&Frame{
		ReturnPC: ProgramEnd,
		Locals:   locals,
		Ctx:      MethodContext{Name: "thread"},
	})

	pc := entryPC
	for {
		if pc == ProgramEnd || pc < 0 || int(pc) >= len(e.program) {
			break
		}
		line := strings.TrimSpace(e.program[pc])
		if line == "" || strings.HasPrefix(line, "#") {
			pc++
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			break
		}
		opInt, err := strconv.Atoi(parts[0])
		if err != nil {
			v, hexErr := strconv.ParseInt(parts[0], 0, 64)
			if hexErr != nil {
				break
			}
			opInt = int(v)
		}

		frame, ok := calls.Peek()
		frameLocals := locals
		if ok {
			frameLocals = frame.Locals
		}

		nextPC, err := e.Dispatcher.Handle(Opcode(opInt), parts[1:], pc, stack, frameLocals, calls)
		if err != nil {
			break
		}
		switch {
		case nextPC == haltSentinel || nextPC == ProgramEnd:
			pc = ProgramEnd
		case nextPC == pc:
			pc++
		default:
			pc = nextPC
		}
	}

	if v, ok := stack.Peek(); ok {
		if n, ok := v.AsInt64(); ok {
			return n
		}
	}
	return 0
}
