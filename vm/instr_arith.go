package vm

import "math"

// intTypeSpec binds the opcode set for one integer-kinded typed block.
type intTypeSpec struct {
	kind                                   Kind
	width                                  int
	add, sub, mul, div, mod, neg, inc      Opcode
	and, or, xor, push                     Opcode
	ce, cne, cg, cge, cl, cle              Opcode
}

type floatTypeSpec struct {
	kind                              Kind
	add, sub, mul, div, mod, neg, inc Opcode
	push                              Opcode
	ce, cne, cg, cge, cl, cle         Opcode
}

func intSpecs() []intTypeSpec {
	return []intTypeSpec{
		{KindI8, 8, OpI8Add, OpI8Sub, OpI8Mul, OpI8Div, OpI8Mod, OpI8Neg, OpI8Inc, OpI8And, OpI8Or, OpI8Xor, OpI8Push, OpI8Ce, OpI8Cne, OpI8Cg, OpI8Cge, OpI8Cl, OpI8Cle},
		{KindI16, 16, OpI16Add, OpI16Sub, OpI16Mul, OpI16Div, OpI16Mod, OpI16Neg, OpI16Inc, OpI16And, OpI16Or, OpI16Xor, OpI16Push, OpI16Ce, OpI16Cne, OpI16Cg, OpI16Cge, OpI16Cl, OpI16Cle},
		{KindI32, 32, OpI32Add, OpI32Sub, OpI32Mul, OpI32Div, OpI32Mod, OpI32Neg, OpI32Inc, OpI32And, OpI32Or, OpI32Xor, OpI32Push, OpI32Ce, OpI32Cne, OpI32Cg, OpI32Cge, OpI32Cl, OpI32Cle},
		{KindI64, 64, OpI64Add, OpI64Sub, OpI64Mul, OpI64Div, OpI64Mod, OpI64Neg, OpI64Inc, OpI64And, OpI64Or, OpI64Xor, OpI64Push, OpI64Ce, OpI64Cne, OpI64Cg, OpI64Cge, OpI64Cl, OpI64Cle},
	}
}

func floatSpecs() []floatTypeSpec {
	return []floatTypeSpec{
		{KindF32, OpF32Add, OpF32Sub, OpF32Mul, OpF32Div, OpF32Mod, OpF32Neg, OpF32Inc, OpF32Push, OpF32Ce, OpF32Cne, OpF32Cg, OpF32Cge, OpF32Cl, OpF32Cle},
		{KindF64, OpF64Add, OpF64Sub, OpF64Mul, OpF64Div, OpF64Mod, OpF64Neg, OpF64Inc, OpF64Push, OpF64Ce, OpF64Cne, OpF64Cg, OpF64Cge, OpF64Cl, OpF64Cle},
	}
}

func mkInt(kind Kind, v int64) Value {
	switch kind {
	case KindI8:
		return I8(int8(v))
	case KindI16:
		return I16(int16(v))
	case KindI32:
		return I32(int32(v))
	default:
		return I64(v)
	}
}

func mkFloat(kind Kind, v float64) Value {
	if kind == KindF32 {
		return F32(float32(v))
	}
	return F64(v)
}

func popInt(stack *Stack, pc int32) (int64, error) {
	v, ok := stack.Pop()
	if !ok {
		return 0, execErr(int(pc), ErrStackUnderflow)
	}
	i, ok := v.AsInt64()
	if !ok {
		return 0, execErr(int(pc), ErrTypeMismatch)
	}
	return i, nil
}

func popFloat(stack *Stack, pc int32) (float64, error) {
	v, ok := stack.Pop()
	if !ok {
		return 0, execErr(int(pc), ErrStackUnderflow)
	}
	f, ok := v.AsFloat64()
	if !ok {
		return 0, execErr(int(pc), ErrTypeMismatch)
	}
	return f, nil
}

// registerIntArith wires ADD/SUB/MUL/DIV/MOD/NEG/INC/AND/OR/XOR/PUSH for one
// integer type, following the grounding repo's "pop second, pop first, push
// result" stack discipline (arithAddi et al. in the reference vm.go).
func registerIntArith(d *Dispatcher, s intTypeSpec) {
	binOp := func(op func(a, b int64) (int64, error)) Handler {
		return func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
			b, err := popInt(stack, pc)
			if err != nil {
				return 0, err
			}
			a, err := popInt(stack, pc)
			if err != nil {
				return 0, err
			}
			r, err := op(a, b)
			if err != nil {
				return 0, execErr(int(pc), err)
			}
			stack.Push(mkInt(s.kind, wrapInt(r, s.width)))
			return pc, nil
		}
	}

	d.Register(s.add, binOp(func(a, b int64) (int64, error) { return a + b, nil }))
	d.Register(s.sub, binOp(func(a, b int64) (int64, error) { return a - b, nil }))
	d.Register(s.mul, binOp(func(a, b int64) (int64, error) { return a * b, nil }))
	d.Register(s.div, binOp(func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	}))
	d.Register(s.mod, binOp(func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a % b, nil
	}))
	d.Register(s.and, binOp(func(a, b int64) (int64, error) { return a & b, nil }))
	d.Register(s.or, binOp(func(a, b int64) (int64, error) { return a | b, nil }))
	d.Register(s.xor, binOp(func(a, b int64) (int64, error) { return a ^ b, nil }))

	d.Register(s.neg, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		a, err := popInt(stack, pc)
		if err != nil {
			return 0, err
		}
		stack.Push(mkInt(s.kind, wrapInt(-a, s.width)))
		return pc, nil
	})

	d.Register(s.push, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if err := requireArgs(args, 1); err != nil {
			return 0, execErr(int(pc), err)
		}
		n, err := parseIntArg(args[0])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		stack.Push(mkInt(s.kind, wrapInt(n, s.width)))
		return pc, nil
	})

	d.Register(s.inc, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if err := requireArgs(args, 2); err != nil {
			return 0, execErr(int(pc), err)
		}
		idx, err := parseIntArg(args[0])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		delta, err := parseIntArg(args[1])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		cur := locals.Load(int(idx))
		curInt, _ := cur.AsInt64()
		locals.Store(int(idx), mkInt(s.kind, wrapInt(curInt+delta, s.width)))
		return pc, nil
	})

	registerIntCompareBranch(d, s)
}

func registerFloatArith(d *Dispatcher, s floatTypeSpec) {
	binOp := func(op func(a, b float64) float64) Handler {
		return func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
			b, err := popFloat(stack, pc)
			if err != nil {
				return 0, err
			}
			a, err := popFloat(stack, pc)
			if err != nil {
				return 0, err
			}
			stack.Push(mkFloat(s.kind, op(a, b)))
			return pc, nil
		}
	}

	d.Register(s.add, binOp(func(a, b float64) float64 { return a + b }))
	d.Register(s.sub, binOp(func(a, b float64) float64 { return a - b }))
	d.Register(s.mul, binOp(func(a, b float64) float64 { return a * b }))
	// DIV/MOD follow IEEE-754: division by zero yields ±Inf or NaN, never a
	// fatal error, per §4.4/§8.
	d.Register(s.div, binOp(func(a, b float64) float64 { return a / b }))
	d.Register(s.mod, binOp(math.Mod))

	d.Register(s.neg, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		a, err := popFloat(stack, pc)
		if err != nil {
			return 0, err
		}
		stack.Push(mkFloat(s.kind, -a))
		return pc, nil
	})

	d.Register(s.push, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if err := requireArgs(args, 1); err != nil {
			return 0, execErr(int(pc), err)
		}
		f, err := parseFloatArg(args[0])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		stack.Push(mkFloat(s.kind, f))
		return pc, nil
	})

	d.Register(s.inc, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
		if err := requireArgs(args, 2); err != nil {
			return 0, execErr(int(pc), err)
		}
		idx, err := parseIntArg(args[0])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		delta, err := parseFloatArg(args[1])
		if err != nil {
			return 0, execErr(int(pc), ErrMalformedArgs)
		}
		cur := locals.Load(int(idx))
		curF, _ := cur.AsFloat64()
		locals.Store(int(idx), mkFloat(s.kind, curF+delta))
		return pc, nil
	})

	registerFloatCompareBranch(d, s)
}

func registerArithmetic(d *Dispatcher) {
	for _, s := range intSpecs() {
		registerIntArith(d, s)
	}
	for _, s := range floatSpecs() {
		registerFloatArith(d, s)
	}
}
