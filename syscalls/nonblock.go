package syscalls

import "golang.org/x/sys/unix"

// setNonblock toggles O_NONBLOCK on a raw fd, backing SET_NONBLOCK.
func setNonblock(fd int, on bool) error {
	return unix.SetNonblock(fd, on)
}
