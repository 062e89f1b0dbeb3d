package vm

// haltSentinel is the next_pc value a handler returns to mean "terminate",
// per §4.2 step 5 / §4.4's HALT semantics.
const haltSentinel int32 = -1

// registerFlowOps wires JUMP, CALL, RET, HALT, SYSCALL and DEBUG_TRAP.
func registerFlowOps(d *Dispatcher) {
	d.Register(OpJump, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if err := requireArgs(args, 1); err != nil {
			return 0, execErr(int(pc), err)
		}
		target, err := parseIntArg(args[0])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		if target < 0 {
			return 0, execErr(int(pc), ErrInvalidBranch)
		}
		return int32(target), nil
	})

	d.Register(OpCall, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if err := requireArgs(args, 1); err != nil {
			return 0, execErr(int(pc), err)
		}
		target, err := parseIntArg(args[0])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		if target < 0 {
			return 0, execErr(int(pc), ErrInvalidBranch)
		}

		name := ""
		if len(args) > 1 {
			name = args[1]
		}
		caller, _ := calls.Peek()
		var callerCtx *MethodContext
		if caller != nil {
			callerCtx = &caller.Ctx
		}

		calls.Push(&Frame{
			ReturnPC: pc + 1,
			Locals:   NewLocals(),
			Ctx:      MethodContext{Name: name, Caller: callerCtx},
		})
		return int32(target), nil
	})

	d.Register(OpRet, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if calls.IsEmpty() {
			return 0, execErr(int(pc), ErrReturnOnEmptyStack)
		}
		frame, _ := calls.Pop()
		frame.Locals.Clear()
		return frame.ReturnPC, nil
	})

	d.Register(OpHalt, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		return haltSentinel, nil
	})

	d.Register(OpSyscall, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if err := requireArgs(args, 1); err != nil {
			return 0, execErr(int(pc), err)
		}
		op, err := parseIntArg(args[0])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		if d.syscalls == nil {
			return 0, execErr(int(pc), ErrUnknownOpcode)
		}
		if err := d.syscalls.Syscall(int(op), stack); err != nil {
			return 0, execErr(int(pc), err)
		}
		return pc, nil
	})

	d.Register(OpDebugTrap, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if d.DebugHook != nil {
			d.DebugHook(pc, stack, locals, calls)
		}
		return pc, nil
	})
}
