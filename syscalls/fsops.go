package syscalls

import (
	"io"
	"os"
)

// FSOps resolves the files & fds family (OPEN..SET_NONBLOCK) against a
// shared *FDTable; the directory & fs family (MKDIR..UTIME) lives in
// DirOps (dirops.go). Grounded on the grounding repo's pattern of a single
// registry serving related opcodes (its HardwareDevice bus serving both
// the storage and console ports).
type FSOps struct {
	fds *FDTable
}

func NewFSOps(fds *FDTable) *FSOps {
	return &FSOps{fds: fds}
}

// Open maps flags (O_RDONLY/O_WRONLY/O_RDWR/O_CREAT/O_TRUNC/O_APPEND, the
// POSIX bit values) and perm directly onto os.OpenFile.
func (f *FSOps) Open(path string, flags int, perm uint32) (int, error) {
	file, err := os.OpenFile(path, flags, os.FileMode(perm))
	if err != nil {
		return 0, err
	}
	return f.fds.RegisterPath(&fileChannel{File: file, path: path}, path), nil
}

func (f *FSOps) Read(fd int, n int) ([]byte, error) {
	ch, ok := f.fds.Get(fd)
	if !ok {
		return nil, os.ErrClosed
	}
	buf := make([]byte, n)
	read, err := ch.Read(buf)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:read], nil
}

func (f *FSOps) Write(fd int, data []byte) (int, error) {
	ch, ok := f.fds.Get(fd)
	if !ok {
		return 0, os.ErrClosed
	}
	return ch.Write(data)
}

func (f *FSOps) Seek(fd int, offset int64, whence int) (int64, error) {
	ch, ok := f.fds.Get(fd)
	if !ok {
		return 0, os.ErrClosed
	}
	seeker, ok := ch.(Seeker)
	if !ok {
		return 0, os.ErrInvalid
	}
	return seeker.Seek(offset, whence)
}

func (f *FSOps) Close(fd int) error {
	return f.fds.Close(fd)
}

func (f *FSOps) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (f *FSOps) Fstat(fd int) (os.FileInfo, error) {
	ch, ok := f.fds.Get(fd)
	if !ok {
		return nil, os.ErrClosed
	}
	if file, ok := ch.(*fileChannel); ok {
		return file.Stat()
	}
	if p := f.fds.pathOf(fd); p != "" {
		return os.Stat(p)
	}
	return nil, os.ErrInvalid
}

func (f *FSOps) Unlink(path string) error {
	return os.Remove(path)
}

func (f *FSOps) Dup(fd int) (int, error) {
	newFd, ok := f.fds.Dup(fd)
	if !ok {
		return 0, os.ErrClosed
	}
	return newFd, nil
}

func (f *FSOps) Dup2(oldfd, newfd int) error {
	if !f.fds.Dup2(oldfd, newfd) {
		return os.ErrClosed
	}
	return nil
}

// Pipe creates an OS pipe and registers both ends, returning (readFd,
// writeFd), per §4.5.
func (f *FSOps) Pipe() (int, int, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return 0, 0, err
	}
	readFd := f.fds.Register(&fileChannel{File: r, path: "pipe:r"})
	writeFd := f.fds.Register(&fileChannel{File: w, path: "pipe:w"})
	return readFd, writeFd, nil
}

func (f *FSOps) Truncate(path string, size int64) error {
	return os.Truncate(path, size)
}

func (f *FSOps) Ftruncate(fd int, size int64) error {
	ch, ok := f.fds.Get(fd)
	if !ok {
		return os.ErrClosed
	}
	file, ok := ch.(*fileChannel)
	if !ok {
		return os.ErrInvalid
	}
	return file.Truncate(size)
}

func (f *FSOps) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (f *FSOps) Link(oldPath, newPath string) error {
	return os.Link(oldPath, newPath)
}

func (f *FSOps) Symlink(target, linkPath string) error {
	return os.Symlink(target, linkPath)
}

func (f *FSOps) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

func (f *FSOps) SetNonblock(fd int, on bool) error {
	ch, ok := f.fds.Get(fd)
	if !ok {
		return os.ErrClosed
	}
	nb, ok := ch.(NonBlocker)
	if !ok {
		return os.ErrInvalid
	}
	return nb.SetNonblock(on)
}
