package vm

import "math"

// registerIntCompareBranch wires CE/CNE/CG/CGE/CL/CLE for one integer type.
// Each pops b then a, and jumps to the instruction's branch-target argument
// when a <op> b holds, otherwise falls through to pc+1.
func registerIntCompareBranch(d *Dispatcher, s intTypeSpec) {
	register := func(op Opcode, cmp func(a, b int64) bool) {
		d.Register(op, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
			if err := requireArgs(args, 1); err != nil {
				return 0, execErr(int(pc), err)
			}
			target, err := parseIntArg(args[0])
			if err != nil {
				return 0, execErr(int(pc), ErrMalformedArgs)
			}
			b, err := popInt(stack, pc)
			if err != nil {
				return 0, err
			}
			a, err := popInt(stack, pc)
			if err != nil {
				return 0, err
			}
			if cmp(a, b) {
				if target < 0 {
					return 0, execErr(int(pc), ErrInvalidBranch)
				}
				return int32(target), nil
			}
			return pc, nil
		})
	}

	register(s.ce, func(a, b int64) bool { return a == b })
	register(s.cne, func(a, b int64) bool { return a != b })
	register(s.cg, func(a, b int64) bool { return a > b })
	register(s.cge, func(a, b int64) bool { return a >= b })
	register(s.cl, func(a, b int64) bool { return a < b })
	register(s.cle, func(a, b int64) bool { return a <= b })
}

// registerFloatCompareBranch wires CE/CNE/CG/CGE/CL/CLE for one float type.
// CE/CNE follow IEEE-754 (NaN != NaN); ordered comparisons with a NaN
// operand always yield false, per §4.4.
func registerFloatCompareBranch(d *Dispatcher, s floatTypeSpec) {
	register := func(op Opcode, cmp func(a, b float64) bool) {
		d.Register(op, func(args []string, pc int32, stack *Stack, locals *Locals, calls *CallStack) (int32, error) {
			if err := requireArgs(args, 1); err != nil {
				return 0, execErr(int(pc), err)
			}
			target, err := parseIntArg(args[0])
			if err != nil {
				return 0, execErr(int(pc), ErrMalformedArgs)
			}
			b, err := popFloat(stack, pc)
			if err != nil {
				return 0, err
			}
			a, err := popFloat(stack, pc)
			if err != nil {
				return 0, err
			}
			if cmp(a, b) {
				if target < 0 {
					return 0, execErr(int(pc), ErrInvalidBranch)
				}
				return int32(target), nil
			}
			return pc, nil
		})
	}

	register(s.ce, func(a, b float64) bool { return a == b })
	register(s.cne, func(a, b float64) bool { return a != b })
	register(s.cg, func(a, b float64) bool {
		if math.IsNaN(a) || math.IsNaN(b) {
			return false
		}
		return a > b
	})
	register(s.cge, func(a, b float64) bool {
		if math.IsNaN(a) || math.IsNaN(b) {
			return false
		}
		return a >= b
	})
	register(s.cl, func(a, b float64) bool {
		if math.IsNaN(a) || math.IsNaN(b) {
			return false
		}
		return a < b
	})
	register(s.cle, func(a, b float64) bool {
		if math.IsNaN(a) || math.IsNaN(b) {
			return false
		}
		return a <= b
	})
}
