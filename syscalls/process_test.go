package syscalls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -test.run=^$ re-launches the test binary itself selecting no tests, so
// the child exits almost immediately with code 0 — a lightweight stand-in
// for a real bytecode program without needing one on disk.
func TestForkBlocksUntilChildExits(t *testing.T) {
	errno := newErrnoState()
	env := NewEnvTable()
	pt := NewProcessTable("", env, errno)

	pid, err := pt.Fork([]string{"-test.run=^$"})
	require.NoError(t, err)
	require.Greater(t, pid, 0)

	pt.mu.Lock()
	entry, ok := pt.children[pid]
	pt.mu.Unlock()
	require.True(t, ok, "Fork must record the child's exit before returning, proving it already waited")
	assert.Equal(t, 0, entry.exitCode)

	code, err := pt.Wait(pid)
	require.NoError(t, err, "WAIT on an already-exited child just replays its recorded code")
	assert.Equal(t, 0, code)
}

func TestWaitOnUnknownPidFails(t *testing.T) {
	pt := NewProcessTable("", NewEnvTable(), newErrnoState())
	_, err := pt.Wait(999999)
	assert.Error(t, err)
}

func TestMergeEnvOverrideWinsOnSharedKey(t *testing.T) {
	base := []string{"A=1", "B=2"}
	override := []string{"B=3", "C=4"}
	got := mergeEnv(base, override)
	assert.ElementsMatch(t, []string{"A=1", "B=3", "C=4"}, got)
}
