package syscalls

// Runtime aggregates every syscall registry and implements
// vm.SyscallRuntime's Syscall method (C7), grounded on the grounding
// repo's central device registry that every HardwareDevice-backed opcode
// ultimately calls through.
type Runtime struct {
	FDs    *FDTable
	Env    *EnvTable
	Procs  *ProcessTable
	Threads *ThreadTable
	Socks  *SockOps
	Epoll  *EpollTable
	Conc   *ConcurrencyTable
	Time   *TimeOps
	Sys    *SysInfo
	FS     *FSOps
	Dir    *DirOps
	Console *Console

	errno *errnoState

	// ThreadEntry runs the bytecode at a given pc to completion on behalf
	// of THREAD_CREATE and returns its exit value. Wired by the launcher
	// after engine construction, since Runtime cannot import package vm's
	// Engine without creating an import cycle (vm already depends on this
	// package's Syscall method through the SyscallRuntime interface) —
	// see DESIGN.md.
	ThreadEntry func(entryPC int32) int64
}

// NewRuntime wires every registry together. programPath is the bytecode
// file the engine was launched with, passed through to ProcessTable so
// FORK without explicit argv re-runs the same program.
func NewRuntime(programPath string) *Runtime {
	fds := NewFDTable()
	env := NewEnvTable()
	errno := newErrnoState()

	return &Runtime{
		FDs:     fds,
		Env:     env,
		Procs:   NewProcessTable(programPath, env, errno),
		Threads: NewThreadTable(),
		Socks:   NewSockOps(fds),
		Epoll:   NewEpollTable(fds),
		Conc:    NewConcurrencyTable(),
		Time:    NewTimeOps(),
		Sys:     NewSysInfo(env, errno),
		FS:      NewFSOps(fds),
		Dir:     NewDirOps(fds),
		Console: NewConsole(fds),
		errno:   errno,
	}
}

// Close releases every open fd, run on engine teardown by the launcher.
func (r *Runtime) Close() {
	r.FDs.CloseAll()
}
