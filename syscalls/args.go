package syscalls

import (
	"errors"
	"fmt"

	"watervm/vm"
)

var (
	errMissingArg = errors.New("syscall: missing argument on operand stack")
	errBadArgType = errors.New("syscall: argument has the wrong kind")
)

func errUnknownSyscall(op int) error {
	return fmt.Errorf("syscall: unknown opcode 0x%04x", op)
}

// Calling convention: the compiler pushes syscall arguments left-to-right,
// so the last argument pushed sits on top; these helpers pop in the order
// a handler declares them (first declared == first popped == rightmost
// pushed), matching the grounding repo's device bus argument ordering.

func popInt(stack *vm.Stack) (int64, error) {
	v, ok := stack.Pop()
	if !ok {
		return 0, errMissingArg
	}
	n, ok := v.AsInt64()
	if !ok {
		return 0, errBadArgType
	}
	return n, nil
}

func popString(stack *vm.Stack) (string, error) {
	v, ok := stack.Pop()
	if !ok {
		return "", errMissingArg
	}
	switch v.Kind {
	case vm.KindText:
		return v.Text(), nil
	case vm.KindBytes:
		return string(v.Bytes()), nil
	default:
		return "", errBadArgType
	}
}

func popBytes(stack *vm.Stack) ([]byte, error) {
	v, ok := stack.Pop()
	if !ok {
		return nil, errMissingArg
	}
	switch v.Kind {
	case vm.KindBytes:
		return v.Bytes(), nil
	case vm.KindText:
		return []byte(v.Text()), nil
	default:
		return nil, errBadArgType
	}
}

func pushInt(stack *vm.Stack, n int64)    { stack.Push(vm.I64(n)) }
func pushBytes(stack *vm.Stack, b []byte) { stack.Push(vm.Bytes(b)) }
func pushString(stack *vm.Stack, s string) { stack.Push(vm.Text(s)) }

// pushErrno pushes 0 on success, or -1 followed by recording err in the
// errno table, matching the syscall-return-value convention of §4.5 and
// §7's "kind 5: OS error" absorption contract.
func pushErrno(stack *vm.Stack, errno *errnoState, err error) {
	if err == nil {
		errno.clear()
		pushInt(stack, 0)
		return
	}
	errno.set(1, err.Error())
	pushInt(stack, -1)
}
