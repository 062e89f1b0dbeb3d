package vm

// isIntKind / isFloatKind classify the six convertible kinds.
func isIntKind(k Kind) bool {
	return k == KindI8 || k == KindI16 || k == KindI32 || k == KindI64
}

func isFloatKind(k Kind) bool {
	return k == KindF32 || k == KindF64
}

// convertValue implements the X2Y contract from §4.4: integer->integer
// narrowing truncates to low bits, widening sign-extends; float->integer
// truncates toward zero and saturates out-of-range; integer->float converts
// exactly where representable, else nearest representable float.
func convertValue(v Value, dst Kind) Value {
	switch {
	case isIntKind(v.Kind) && isIntKind(dst):
		i, _ := v.AsInt64()
		return mkInt(dst, wrapInt(i, bitWidth(dst)))
	case isFloatKind(v.Kind) && isIntKind(dst):
		f, _ := v.AsFloat64()
		return mkInt(dst, saturateToInt(f, bitWidth(dst)))
	case isIntKind(v.Kind) && isFloatKind(dst):
		i, _ := v.AsInt64()
		return mkFloat(dst, float64(i))
	case isFloatKind(v.Kind) && isFloatKind(dst):
		f, _ := v.AsFloat64()
		return mkFloat(dst, f)
	default:
		return v
	}
}

var convKindBySlot = [6]Kind{KindI8, KindI16, KindI32, KindI64, KindF32, KindF64}

func registerConversions(d *Dispatcher) {
	for src := 0; src < 6; src++ {
		for dst := 0; dst < 6; dst++ {
			if src == dst {
				continue
			}
			op := convOpcode[src][dst]
			target := convKindBySlot[dst]
			d.Register(op, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
				v, ok := stack.Pop()
				if !ok {
					return 0, execErr(int(pc), ErrStackUnderflow)
				}
				stack.Push(convertValue(v, target))
				return pc, nil
			})
		}
	}
}
