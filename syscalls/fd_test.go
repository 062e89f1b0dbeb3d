package syscalls

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFDTableReservesStandardStreams(t *testing.T) {
	fds := NewFDTable()
	for fd := 0; fd <= 2; fd++ {
		_, ok := fds.Get(fd)
		assert.True(t, ok, "fd %d must be pre-registered", fd)
	}
}

func TestFDTableRegisterAssignsFromThree(t *testing.T) {
	fds := NewFDTable()
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	defer f.Close()

	fd := fds.Register(&fileChannel{File: f, path: f.Name()})
	assert.Equal(t, 3, fd)

	second := fds.Register(&fileChannel{File: f, path: f.Name()})
	assert.Equal(t, 4, second)
}

func TestFDTableDupAliasesSameChannel(t *testing.T) {
	fds := NewFDTable()
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	defer f.Close()

	fd := fds.Register(&fileChannel{File: f, path: f.Name()})
	dupFd, ok := fds.Dup(fd)
	require.True(t, ok)

	orig, _ := fds.Get(fd)
	alias, _ := fds.Get(dupFd)
	assert.Same(t, orig, alias)
}

func TestFDTableCloseRemovesEntry(t *testing.T) {
	fds := NewFDTable()
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)

	fd := fds.Register(&fileChannel{File: f, path: f.Name()})
	require.NoError(t, fds.Close(fd))

	_, ok := fds.Get(fd)
	assert.False(t, ok)

	err = fds.Close(fd)
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestFDTableDup2ClosesPreviousOccupant(t *testing.T) {
	fds := NewFDTable()
	dir := t.TempDir()
	a, err := os.Create(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	b, err := os.Create(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)

	fdA := fds.Register(&fileChannel{File: a, path: a.Name()})
	fdB := fds.Register(&fileChannel{File: b, path: b.Name()})

	ok := fds.Dup2(fdA, fdB)
	require.True(t, ok)

	chA, _ := fds.Get(fdA)
	chB, _ := fds.Get(fdB)
	assert.Same(t, chA, chB)
	assert.ErrorIs(t, b.Close(), os.ErrClosed, "Dup2 must close the channel fdB previously held")
}
