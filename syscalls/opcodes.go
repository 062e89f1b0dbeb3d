// Package syscalls implements the water VM's system-call subsystem (C7):
// the FD table and env/process/thread/socket/epoll/concurrency registries,
// and the dispatch table that SYSCALL traps into. Grounded on the grounding
// repo's device-bus pattern (vm/devices.go's HardwareDevice registry keyed
// by port, TrySend(id, command, data) contract) generalized from a 16-port
// hardware bus to the full OS-facing syscall surface in spec §4.5.
package syscalls

// Opcode numbers within each canonical range from spec §6. The range
// boundaries are load-bearing for bytecode compatibility; the specific
// ordering within a range is this repo's own assignment (the upstream
// compiler is out of scope, so no existing numbering to match).
const (
	// Files & fds: 0x1000-0x10FF
	OPEN = 0x1000 + iota
	READ
	WRITE
	SEEK
	CLOSE
	STAT
	FSTAT
	UNLINK
	DUP
	DUP2
	PIPE
	TRUNCATE
	FTRUNCATE
	RENAME
	LINK
	SYMLINK
	READLINK
	SET_NONBLOCK
)

const (
	// Directory & fs: 0x1100-0x11FF
	MKDIR = 0x1100 + iota
	RMDIR
	CHDIR
	GETCWD
	READDIR
	CHMOD
	FCHMOD
	UTIME
)

const (
	// Standard I/O: 0x1200-0x12FF
	PRINT = 0x1200 + iota
	PRINTLN
	STDIN_READ
	STDOUT_WRITE
	STDERR_WRITE
)

const (
	// Multiplexing: 0x1300-0x13FF
	SELECT = 0x1300 + iota
	EPOLL_CREATE
	EPOLL_CTL
	EPOLL_WAIT
	IO_WAIT
)

const (
	// Sockets: 0x1400-0x14FF
	SOCKET = 0x1400 + iota
	BIND
	LISTEN
	ACCEPT
	CONNECT
	SEND
	RECV
	SENDTO
	RECVFROM
	SHUTDOWN
	SETSOCKOPT
	GETSOCKOPT
	GETPEERNAME
	GETSOCKNAME
	GETADDRINFO
)

const (
	// Processes & threads: 0x1500-0x15FF
	EXIT = 0x1500 + iota
	FORK
	EXEC
	WAIT
	GETPID
	GETPPID
	THREAD_CREATE
	THREAD_JOIN
	SLEEP
)

const (
	// Concurrency primitives: 0x1600-0x16FF
	MUTEX_CREATE = 0x1600 + iota
	MUTEX_LOCK
	MUTEX_UNLOCK
	MUTEX_DESTROY
	COND_CREATE
	COND_WAIT
	COND_SIGNAL
	COND_BROADCAST
	COND_DESTROY
	SEM_CREATE
	SEM_WAIT
	SEM_POST
	SEM_DESTROY
	RWLOCK_CREATE
	RWLOCK_RLOCK
	RWLOCK_RUNLOCK
	RWLOCK_WLOCK
	RWLOCK_WUNLOCK
	RWLOCK_DESTROY
)

const (
	// Time: 0x1700-0x17FF
	CLOCK_GETTIME = 0x1700 + iota
	NANOSLEEP
	TIMEOFDAY
	TICK_MS
)

const (
	// System info: 0x1900-0x19FF
	GETENV = 0x1900 + iota
	SETENV
	NCPU
	RANDOM_BYTES
	ERRNO
	ERRSTR
	MEMINFO
)

// EPOLL_CTL ops, per §4.5.
const (
	EpollCtlAdd = 1
	EpollCtlMod = 2
	EpollCtlDel = 3
)
