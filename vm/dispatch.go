package vm

// Handler is a pure function of (args, pc, stack, locals, call stack)
// returning next_pc, per §4.4. args are the whitespace-separated textual
// tokens following the opcode on the instruction's line; each handler parses
// its own according to its own schema.
type Handler func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error)

// Dispatcher maps opcode integers to instruction implementations, per C5.
// It is a flat map rather than a type hierarchy, per §9's design note.
type Dispatcher struct {
	table    map[Opcode]Handler
	syscalls SyscallRuntime

	// DebugHook, when set, is invoked by DEBUG_TRAP. Launchers running in
	// DEBUG mode (§6) wire this to their single-step state printer instead
	// of the engine special-casing a debug opcode.
	DebugHook func(pc int32, stack *Stack, locals *Locals, calls *CallStack)
}

// SyscallRuntime is the seam between the instruction core and the syscall
// subsystem (C7), kept as an interface here so package vm never imports
// package syscalls — the dependency runs the other way, avoiding an import
// cycle while still letting SYSCALL dispatch into real handlers.
type SyscallRuntime interface {
	// Syscall executes the syscall numbered op, consuming and producing
	// values on stack per §4.5's argument/result contracts. It returns a
	// non-nil error only for kind-4 syscall pre-condition violations
	// (§7); OS errors (kind 5) are absorbed internally via errno/errstr.
	Syscall(op int, stack *Stack) error
}

// NewDispatcher builds a dispatcher with every instruction in §4.4
// registered. Handlers are wired at construction time by RegisterDefaults,
// which calls each instr_*.go file's family registration function.
func NewDispatcher(rt SyscallRuntime) *Dispatcher {
	d := &Dispatcher{table: make(map[Opcode]Handler, 256), syscalls: rt}
	RegisterDefaults(d)
	return d
}

// Register installs (or overwrites) the handler for an opcode. Exported so
// an embedding program can grow the handler registry, per C5's "growable
// handler registry" requirement.
func (d *Dispatcher) Register(op Opcode, h Handler) {
	d.table[op] = h
}

// Handle looks up and invokes the handler for opcode, returning the next pc
// the same way the handler did, or a fatal "unknown opcode" error.
func (d *Dispatcher) Handle(op Opcode, args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
	h, ok := d.table[op]
	if !ok {
		return 0, execErr(int(pc), ErrUnknownOpcode)
	}
	return h(args, pc, stack, locals, calls)
}
