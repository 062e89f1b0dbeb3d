package vm

// registerMemoryOps wires LOAD, STORE and MOV — the untyped locals-access
// family. The dynamic type of the slot carries through unchanged, per §3.
func registerMemoryOps(d *Dispatcher) {
	d.Register(OpLoad, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if err := requireArgs(args, 1); err != nil {
			return 0, execErr(int(pc), err)
		}
		idx, err := parseIntArg(args[0])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		stack.Push(locals.Load(int(idx)))
		return pc, nil
	})

	d.Register(OpStore, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if err := requireArgs(args, 1); err != nil {
			return 0, execErr(int(pc), err)
		}
		idx, err := parseIntArg(args[0])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		v, ok := stack.Pop()
		if !ok {
			return 0, execErr(int(pc), ErrStackUnderflow)
		}
		locals.Store(int(idx), v)
		return pc, nil
	})

	d.Register(OpMov, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if err := requireArgs(args, 2); err != nil {
			return 0, execErr(int(pc), err)
		}
		src, err := parseIntArg(args[0])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		dst, err := parseIntArg(args[1])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		locals.Store(int(dst), locals.Load(int(src)))
		return pc, nil
	})
}
