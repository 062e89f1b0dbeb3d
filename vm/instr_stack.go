package vm

// registerStackOps wires POP, DUP, SWAP, PUSH_TEXT, PUSH_BYTES — the
// generic, untyped stack manipulation family. The six numeric PUSH<T>
// variants live alongside each typed arithmetic block in instr_arith.go;
// these two are the literal pushes for the non-numeric Value kinds.
func registerStackOps(d *Dispatcher) {
	d.Register(OpPop, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if _, ok := stack.Pop(); !ok {
			return 0, execErr(int(pc), ErrStackUnderflow)
		}
		return pc, nil
	})

	d.Register(OpDup, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		v, ok := stack.Peek()
		if !ok {
			return 0, execErr(int(pc), ErrStackUnderflow)
		}
		stack.Push(v)
		return pc, nil
	})

	d.Register(OpSwap, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		a, ok := stack.Pop()
		if !ok {
			return 0, execErr(int(pc), ErrStackUnderflow)
		}
		b, ok := stack.Pop()
		if !ok {
			return 0, execErr(int(pc), ErrStackUnderflow)
		}
		stack.Push(a)
		stack.Push(b)
		return pc, nil
	})

	d.Register(OpPushText, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		s, err := parseTextArg(args)
		if err != nil {
			return 0, execErr(int(pc), err)
		}
		stack.Push(Text(s))
		return pc, nil
	})

	d.Register(OpPushBytes, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		s, err := parseTextArg(args)
		if err != nil {
			return 0, execErr(int(pc), err)
		}
		stack.Push(Bytes([]byte(s)))
		return pc, nil
	})
}
