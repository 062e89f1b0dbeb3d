package syscalls

import (
	"errors"
	"os"
	"time"

	"watervm/vm"
)

// Syscall implements vm.SyscallRuntime. It is one large switch over the
// numeric opcode, matching the grounding repo's execInstructions dispatch
// shape rather than a second handler-table indirection — the syscall
// space is flatter than the instruction set (no per-type variants) so a
// switch reads more directly than another map of closures.
func (r *Runtime) Syscall(op int, stack *vm.Stack) error {
	switch op {

	// --- files & fds ---
	case OPEN:
		perm, err := popInt(stack)
		if err != nil {
			return err
		}
		flags, err := popInt(stack)
		if err != nil {
			return err
		}
		path, err := popString(stack)
		if err != nil {
			return err
		}
		fd, oerr := r.FS.Open(path, int(flags), uint32(perm))
		if oerr != nil {
			pushErrno(stack, r.errno, oerr)
			return nil
		}
		r.errno.clear()
		pushInt(stack, int64(fd))
		return nil

	case READ:
		n, err := popInt(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		data, rerr := r.FS.Read(int(fd), int(n))
		if rerr != nil {
			r.errno.set(1, rerr.Error())
			pushBytes(stack, nil)
			return nil
		}
		r.errno.clear()
		pushBytes(stack, data)
		return nil

	case WRITE:
		data, err := popBytes(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		n, werr := r.FS.Write(int(fd), data)
		pushErrnoInt(stack, r.errno, int64(n), werr)
		return nil

	case SEEK:
		whence, err := popInt(stack)
		if err != nil {
			return err
		}
		offset, err := popInt(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		pos, serr := r.FS.Seek(int(fd), offset, int(whence))
		pushErrnoInt(stack, r.errno, pos, serr)
		return nil

	case CLOSE:
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.FS.Close(int(fd)))
		return nil

	case STAT:
		path, err := popString(stack)
		if err != nil {
			return err
		}
		info, serr := r.FS.Stat(path)
		pushStatResult(stack, r.errno, info, serr)
		return nil

	case FSTAT:
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		info, serr := r.FS.Fstat(int(fd))
		pushStatResult(stack, r.errno, info, serr)
		return nil

	case UNLINK:
		path, err := popString(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.FS.Unlink(path))
		return nil

	case DUP:
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		newFd, derr := r.FS.Dup(int(fd))
		pushErrnoInt(stack, r.errno, int64(newFd), derr)
		return nil

	case DUP2:
		newfd, err := popInt(stack)
		if err != nil {
			return err
		}
		oldfd, err := popInt(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.FS.Dup2(int(oldfd), int(newfd)))
		return nil

	case PIPE:
		readFd, writeFd, perr := r.FS.Pipe()
		if perr != nil {
			r.errno.set(1, perr.Error())
			pushInt(stack, -1)
			pushInt(stack, -1)
			return nil
		}
		r.errno.clear()
		pushInt(stack, int64(readFd))
		pushInt(stack, int64(writeFd))
		return nil

	case TRUNCATE:
		size, err := popInt(stack)
		if err != nil {
			return err
		}
		path, err := popString(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.FS.Truncate(path, size))
		return nil

	case FTRUNCATE:
		size, err := popInt(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.FS.Ftruncate(int(fd), size))
		return nil

	case RENAME:
		newPath, err := popString(stack)
		if err != nil {
			return err
		}
		oldPath, err := popString(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.FS.Rename(oldPath, newPath))
		return nil

	case LINK:
		newPath, err := popString(stack)
		if err != nil {
			return err
		}
		oldPath, err := popString(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.FS.Link(oldPath, newPath))
		return nil

	case SYMLINK:
		linkPath, err := popString(stack)
		if err != nil {
			return err
		}
		target, err := popString(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.FS.Symlink(target, linkPath))
		return nil

	case READLINK:
		path, err := popString(stack)
		if err != nil {
			return err
		}
		target, rerr := r.FS.Readlink(path)
		if rerr != nil {
			r.errno.set(1, rerr.Error())
			pushString(stack, "")
			return nil
		}
		r.errno.clear()
		pushString(stack, target)
		return nil

	case SET_NONBLOCK:
		on, err := popInt(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.FS.SetNonblock(int(fd), on != 0))
		return nil

	// --- directory & fs ---
	case MKDIR:
		perm, err := popInt(stack)
		if err != nil {
			return err
		}
		path, err := popString(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.Dir.Mkdir(path, uint32(perm)))
		return nil

	case RMDIR:
		path, err := popString(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.Dir.Rmdir(path))
		return nil

	case CHDIR:
		path, err := popString(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.Dir.Chdir(path))
		return nil

	case GETCWD:
		cwd, cerr := r.Dir.Getcwd()
		if cerr != nil {
			r.errno.set(1, cerr.Error())
			pushString(stack, "")
			return nil
		}
		r.errno.clear()
		pushString(stack, cwd)
		return nil

	case READDIR:
		path, err := popString(stack)
		if err != nil {
			return err
		}
		names, rerr := r.Dir.Readdir(path)
		if rerr != nil {
			r.errno.set(1, rerr.Error())
			pushInt(stack, 0)
			return nil
		}
		r.errno.clear()
		for i := len(names) - 1; i >= 0; i-- {
			pushString(stack, names[i])
		}
		pushInt(stack, int64(len(names)))
		return nil

	case CHMOD:
		mode, err := popInt(stack)
		if err != nil {
			return err
		}
		path, err := popString(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.Dir.Chmod(path, uint32(mode)))
		return nil

	case FCHMOD:
		mode, err := popInt(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.Dir.Fchmod(int(fd), uint32(mode)))
		return nil

	case UTIME:
		mtime, err := popInt(stack)
		if err != nil {
			return err
		}
		atime, err := popInt(stack)
		if err != nil {
			return err
		}
		path, err := popString(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.Dir.Utime(path, atime, mtime))
		return nil

	// --- standard I/O ---
	case PRINT:
		s, err := popString(stack)
		if err != nil {
			return err
		}
		r.Console.Print(s)
		return nil

	case PRINTLN:
		s, err := popString(stack)
		if err != nil {
			return err
		}
		r.Console.Println(s)
		return nil

	case STDIN_READ:
		n, err := popInt(stack)
		if err != nil {
			return err
		}
		data, rerr := r.Console.StdinRead(int(n))
		if rerr != nil {
			r.errno.set(1, rerr.Error())
			pushBytes(stack, nil)
			return nil
		}
		r.errno.clear()
		pushBytes(stack, data)
		return nil

	case STDOUT_WRITE:
		data, err := popBytes(stack)
		if err != nil {
			return err
		}
		n, werr := r.Console.StdoutWrite(data)
		pushErrnoInt(stack, r.errno, int64(n), werr)
		return nil

	case STDERR_WRITE:
		data, err := popBytes(stack)
		if err != nil {
			return err
		}
		n, werr := r.Console.StderrWrite(data)
		pushErrnoInt(stack, r.errno, int64(n), werr)
		return nil

	// --- multiplexing ---
	case EPOLL_CREATE:
		id, eerr := r.Epoll.Create()
		pushErrnoInt(stack, r.errno, int64(id), eerr)
		return nil

	case EPOLL_CTL:
		events, err := popInt(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		ctlOp, err := popInt(stack)
		if err != nil {
			return err
		}
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		if cerr := r.Epoll.Ctl(int32(id), int(ctlOp), int(fd), uint32(events)); cerr != nil {
			if errors.Is(cerr, ErrEpollFdNotRegistered) {
				return cerr
			}
			pushErrno(stack, r.errno, cerr)
			return nil
		}
		pushErrno(stack, r.errno, nil)
		return nil

	case EPOLL_WAIT:
		timeoutMs, err := popInt(stack)
		if err != nil {
			return err
		}
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		ready, werr := r.Epoll.Wait(int32(id), int(timeoutMs))
		if werr != nil {
			r.errno.set(1, werr.Error())
			pushInt(stack, 0)
			return nil
		}
		r.errno.clear()
		for i := len(ready) - 1; i >= 0; i-- {
			pushInt(stack, int64(ready[i]))
		}
		pushInt(stack, int64(len(ready)))
		return nil

	case IO_WAIT:
		timeoutMs, err := popInt(stack)
		if err != nil {
			return err
		}
		wantWrite, err := popInt(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		ready, werr := r.Epoll.IOWait(int(fd), wantWrite != 0, int(timeoutMs))
		if werr != nil {
			r.errno.set(1, werr.Error())
			pushInt(stack, 0)
			return nil
		}
		r.errno.clear()
		if ready {
			pushInt(stack, 1)
		} else {
			pushInt(stack, 0)
		}
		return nil

	case SELECT:
		timeoutMs, err := popInt(stack)
		if err != nil {
			return err
		}
		count, err := popInt(stack)
		if err != nil {
			return err
		}
		fds := make([]int, count)
		for i := int(count) - 1; i >= 0; i-- {
			fd, ferr := popInt(stack)
			if ferr != nil {
				return ferr
			}
			fds[i] = int(fd)
		}
		ready, serr := r.Epoll.Select(fds, time.Duration(timeoutMs)*time.Millisecond)
		if serr != nil {
			r.errno.set(1, serr.Error())
			pushInt(stack, 0)
			return nil
		}
		r.errno.clear()
		for i := len(ready) - 1; i >= 0; i-- {
			pushInt(stack, int64(ready[i]))
		}
		pushInt(stack, int64(len(ready)))
		return nil

	// --- sockets ---
	case SOCKET:
		socketType, err := popInt(stack)
		if err != nil {
			return err
		}
		domain, err := popInt(stack)
		if err != nil {
			return err
		}
		fd := r.Socks.Socket(int(domain), int(socketType))
		r.errno.clear()
		pushInt(stack, int64(fd))
		return nil

	case BIND:
		addr, err := popString(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.Socks.Bind(int(fd), addr))
		return nil

	case LISTEN:
		addr, err := popString(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.Socks.Listen(int(fd), addr))
		return nil

	case ACCEPT:
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		newFd, addr, aerr := r.Socks.Accept(int(fd))
		if aerr != nil {
			r.errno.set(1, aerr.Error())
			pushInt(stack, -1)
			pushString(stack, "")
			return nil
		}
		r.errno.clear()
		pushInt(stack, int64(newFd))
		pushString(stack, addr)
		return nil

	case CONNECT:
		addr, err := popString(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.Socks.Connect(int(fd), addr))
		return nil

	case SEND:
		data, err := popBytes(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		n, serr := r.Socks.Send(int(fd), data)
		pushErrnoInt(stack, r.errno, int64(n), serr)
		return nil

	case RECV:
		n, err := popInt(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		data, rerr := r.Socks.Recv(int(fd), int(n))
		if rerr != nil {
			r.errno.set(1, rerr.Error())
			pushBytes(stack, nil)
			return nil
		}
		r.errno.clear()
		pushBytes(stack, data)
		return nil

	case SENDTO:
		addr, err := popString(stack)
		if err != nil {
			return err
		}
		data, err := popBytes(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		n, serr := r.Socks.SendTo(int(fd), data, addr)
		pushErrnoInt(stack, r.errno, int64(n), serr)
		return nil

	case RECVFROM:
		n, err := popInt(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		data, addr, rerr := r.Socks.RecvFrom(int(fd), int(n))
		if rerr != nil {
			r.errno.set(1, rerr.Error())
			pushBytes(stack, nil)
			pushString(stack, "")
			return nil
		}
		r.errno.clear()
		pushBytes(stack, data)
		pushString(stack, addr)
		return nil

	case SHUTDOWN:
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.Socks.Shutdown(int(fd)))
		return nil

	case SETSOCKOPT:
		value, err := popInt(stack)
		if err != nil {
			return err
		}
		opt, err := popInt(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		pushErrno(stack, r.errno, r.Socks.SetSockOpt(int(fd), int(opt), int(value)))
		return nil

	case GETSOCKOPT:
		opt, err := popInt(stack)
		if err != nil {
			return err
		}
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		value, gerr := r.Socks.GetSockOpt(int(fd), int(opt))
		pushErrnoInt(stack, r.errno, int64(value), gerr)
		return nil

	case GETPEERNAME:
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		addr, gerr := r.Socks.GetPeerName(int(fd))
		if gerr != nil {
			r.errno.set(1, gerr.Error())
			pushString(stack, "")
			return nil
		}
		r.errno.clear()
		pushString(stack, addr)
		return nil

	case GETSOCKNAME:
		fd, err := popInt(stack)
		if err != nil {
			return err
		}
		addr, gerr := r.Socks.GetSockName(int(fd))
		if gerr != nil {
			r.errno.set(1, gerr.Error())
			pushString(stack, "")
			return nil
		}
		r.errno.clear()
		pushString(stack, addr)
		return nil

	case GETADDRINFO:
		host, err := popString(stack)
		if err != nil {
			return err
		}
		addrs, gerr := r.Socks.GetAddrInfo(host)
		if gerr != nil {
			r.errno.set(1, gerr.Error())
			pushInt(stack, 0)
			return nil
		}
		r.errno.clear()
		for i := len(addrs) - 1; i >= 0; i-- {
			pushString(stack, addrs[i])
		}
		pushInt(stack, int64(len(addrs)))
		return nil

	// --- processes & threads ---
	case EXIT:
		code, err := popInt(stack)
		if err != nil {
			return err
		}
		os.Exit(int(code))
		return nil

	case FORK:
		count, err := popInt(stack)
		if err != nil {
			return err
		}
		argv := make([]string, count)
		for i := int(count) - 1; i >= 0; i-- {
			a, aerr := popString(stack)
			if aerr != nil {
				return aerr
			}
			argv[i] = a
		}
		pid, ferr := r.Procs.Fork(argv)
		pushErrnoInt(stack, r.errno, int64(pid), ferr)
		return nil

	case EXEC:
		envCount, err := popInt(stack)
		if err != nil {
			return err
		}
		env := make([]string, envCount)
		for i := int(envCount) - 1; i >= 0; i-- {
			e, eerr := popString(stack)
			if eerr != nil {
				return eerr
			}
			env[i] = e
		}
		argvCount, err := popInt(stack)
		if err != nil {
			return err
		}
		argv := make([]string, argvCount)
		for i := int(argvCount) - 1; i >= 0; i-- {
			a, aerr := popString(stack)
			if aerr != nil {
				return aerr
			}
			argv[i] = a
		}
		path, perr := popString(stack)
		if perr != nil {
			return perr
		}
		eerr := r.Procs.Exec(path, argv, env)
		// Only reached on failure; success replaces the process image.
		pushErrno(stack, r.errno, eerr)
		return nil

	case WAIT:
		pid, err := popInt(stack)
		if err != nil {
			return err
		}
		code, werr := r.Procs.Wait(int(pid))
		pushErrnoInt(stack, r.errno, int64(code), werr)
		return nil

	case GETPID:
		pushInt(stack, int64(os.Getpid()))
		return nil

	case GETPPID:
		pushInt(stack, int64(os.Getppid()))
		return nil

	case THREAD_CREATE:
		entryPC, err := popInt(stack)
		if err != nil {
			return err
		}
		id := r.Threads.Spawn(func() int64 {
			if r.ThreadEntry == nil {
				return 0
			}
			return r.ThreadEntry(int32(entryPC))
		})
		pushInt(stack, int64(id))
		return nil

	case THREAD_JOIN:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		exitVal, ok := r.Threads.Join(int32(id))
		if !ok {
			r.errno.set(1, "unknown thread id")
			pushInt(stack, -1)
			return nil
		}
		r.errno.clear()
		pushInt(stack, exitVal)
		return nil

	case SLEEP:
		millis, err := popInt(stack)
		if err != nil {
			return err
		}
		time.Sleep(time.Duration(millis) * time.Millisecond)
		return nil

	// --- concurrency primitives ---
	case MUTEX_CREATE:
		pushInt(stack, int64(r.Conc.MutexCreate()))
		return nil
	case MUTEX_LOCK:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		pushBool(stack, r.Conc.MutexLock(int32(id)))
		return nil
	case MUTEX_UNLOCK:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		pushBool(stack, r.Conc.MutexUnlock(int32(id)))
		return nil
	case MUTEX_DESTROY:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		r.Conc.MutexDestroy(int32(id))
		return nil

	case COND_CREATE:
		pushInt(stack, int64(r.Conc.CondCreate()))
		return nil
	case COND_WAIT:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		pushBool(stack, r.Conc.CondWait(int32(id)))
		return nil
	case COND_SIGNAL:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		pushBool(stack, r.Conc.CondSignal(int32(id)))
		return nil
	case COND_BROADCAST:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		pushBool(stack, r.Conc.CondBroadcast(int32(id)))
		return nil
	case COND_DESTROY:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		r.Conc.CondDestroy(int32(id))
		return nil

	case SEM_CREATE:
		capacity, err := popInt(stack)
		if err != nil {
			return err
		}
		pushInt(stack, int64(r.Conc.SemCreate(capacity)))
		return nil
	case SEM_WAIT:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		pushBool(stack, r.Conc.SemWait(int32(id)))
		return nil
	case SEM_POST:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		pushBool(stack, r.Conc.SemPost(int32(id)))
		return nil
	case SEM_DESTROY:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		r.Conc.SemDestroy(int32(id))
		return nil

	case RWLOCK_CREATE:
		pushInt(stack, int64(r.Conc.RWLockCreate()))
		return nil
	case RWLOCK_RLOCK:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		pushBool(stack, r.Conc.RWLockRLock(int32(id)))
		return nil
	case RWLOCK_RUNLOCK:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		pushBool(stack, r.Conc.RWLockRUnlock(int32(id)))
		return nil
	case RWLOCK_WLOCK:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		pushBool(stack, r.Conc.RWLockWLock(int32(id)))
		return nil
	case RWLOCK_WUNLOCK:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		pushBool(stack, r.Conc.RWLockWUnlock(int32(id)))
		return nil
	case RWLOCK_DESTROY:
		id, err := popInt(stack)
		if err != nil {
			return err
		}
		r.Conc.RWLockDestroy(int32(id))
		return nil

	// --- time ---
	case CLOCK_GETTIME:
		sec, nsec := r.Time.ClockGetTime()
		pushInt(stack, sec)
		pushInt(stack, nsec)
		return nil
	case NANOSLEEP:
		nanos, err := popInt(stack)
		if err != nil {
			return err
		}
		r.Time.NanoSleep(nanos)
		return nil
	case TIMEOFDAY:
		pushInt(stack, r.Time.TimeOfDay())
		return nil
	case TICK_MS:
		pushInt(stack, r.Time.TickMs())
		return nil

	// --- system info ---
	case GETENV:
		key, err := popString(stack)
		if err != nil {
			return err
		}
		v, ok := r.Sys.Getenv(key)
		pushString(stack, v)
		pushBool(stack, ok)
		return nil
	case SETENV:
		value, err := popString(stack)
		if err != nil {
			return err
		}
		key, err := popString(stack)
		if err != nil {
			return err
		}
		r.Sys.Setenv(key, value)
		return nil
	case NCPU:
		pushInt(stack, int64(r.Sys.NumCPU()))
		return nil
	case RANDOM_BYTES:
		n, err := popInt(stack)
		if err != nil {
			return err
		}
		b, rerr := r.Sys.RandomBytes(int(n))
		if rerr != nil {
			r.errno.set(1, rerr.Error())
			pushBytes(stack, nil)
			return nil
		}
		r.errno.clear()
		pushBytes(stack, b)
		return nil
	case ERRNO:
		pushInt(stack, int64(r.Sys.Errno()))
		return nil
	case ERRSTR:
		pushString(stack, r.Sys.Errstr())
		return nil
	case MEMINFO:
		heap, total, gc := r.Sys.MemInfo()
		pushInt(stack, int64(heap))
		pushInt(stack, int64(total))
		pushInt(stack, int64(gc))
		return nil

	default:
		return errUnknownSyscall(op)
	}
}

func pushBool(stack *vm.Stack, v bool) {
	if v {
		pushInt(stack, 1)
		return
	}
	pushInt(stack, 0)
}

// pushErrnoInt pushes a single value: result on success (clearing errno),
// or -1 on failure (recording err in errno), for calls that return data.
func pushErrnoInt(stack *vm.Stack, errno *errnoState, result int64, err error) {
	if err != nil {
		errno.set(1, err.Error())
		pushInt(stack, -1)
		return
	}
	errno.clear()
	pushInt(stack, result)
}

func pushStatResult(stack *vm.Stack, errno *errnoState, info os.FileInfo, err error) {
	if err != nil {
		errno.set(1, err.Error())
		pushInt(stack, -1)
		pushInt(stack, 0)
		pushInt(stack, 0)
		return
	}
	errno.clear()
	pushInt(stack, 0)
	pushInt(stack, info.Size())
	if info.IsDir() {
		pushInt(stack, 1)
	} else {
		pushInt(stack, 0)
	}
}
