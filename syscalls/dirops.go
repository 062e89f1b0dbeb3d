package syscalls

import (
	"os"
	"time"
)

// DirOps resolves MKDIR/RMDIR/CHDIR/GETCWD/READDIR/CHMOD/FCHMOD/UTIME,
// per §4.5. Stateless: every call goes straight to the host filesystem.
type DirOps struct {
	fds *FDTable
}

func NewDirOps(fds *FDTable) *DirOps {
	return &DirOps{fds: fds}
}

func (DirOps) Mkdir(path string, perm uint32) error {
	return os.Mkdir(path, os.FileMode(perm))
}

func (DirOps) Rmdir(path string) error {
	return os.Remove(path)
}

func (DirOps) Chdir(path string) error {
	return os.Chdir(path)
}

func (DirOps) Getcwd() (string, error) {
	return os.Getwd()
}

func (DirOps) Readdir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

func (DirOps) Chmod(path string, mode uint32) error {
	return os.Chmod(path, os.FileMode(mode))
}

func (d *DirOps) Fchmod(fd int, mode uint32) error {
	ch, ok := d.fds.Get(fd)
	if !ok {
		return os.ErrClosed
	}
	file, ok := ch.(*fileChannel)
	if !ok {
		return os.ErrInvalid
	}
	return file.Chmod(os.FileMode(mode))
}

func (DirOps) Utime(path string, atimeSec, mtimeSec int64) error {
	at := time.Unix(atimeSec, 0)
	mt := time.Unix(mtimeSec, 0)
	return os.Chtimes(path, at, mt)
}
