package syscalls

import (
	"crypto/rand"
	"runtime"
)

// SysInfo resolves GETENV/SETENV/NCPU/RANDOM_BYTES/ERRNO/ERRSTR/MEMINFO,
// per §4.5 plus SPEC_FULL.md's §12 MEMINFO supplement (grounded on
// runtime.MemStats, the ecosystem's standard way to surface heap/alloc
// counters, rather than a hand-rolled accounting layer).
type SysInfo struct {
	env   *EnvTable
	errno *errnoState
}

func NewSysInfo(env *EnvTable, errno *errnoState) *SysInfo {
	return &SysInfo{env: env, errno: errno}
}

func (s *SysInfo) Getenv(key string) (string, bool) {
	return s.env.Get(key)
}

func (s *SysInfo) Setenv(key, value string) {
	s.env.Set(key, value)
}

func (SysInfo) NumCPU() int {
	return runtime.NumCPU()
}

func (SysInfo) RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *SysInfo) Errno() int32 {
	return s.errno.get()
}

func (s *SysInfo) Errstr() string {
	return s.errno.getMessage()
}

// MemInfo returns (heap bytes allocated, total bytes allocated over the
// program's lifetime, count of completed GC cycles), surfaced as a
// three-value stack push by the dispatcher.
func (SysInfo) MemInfo() (uint64, uint64, uint32) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc, m.TotalAlloc, m.NumGC
}
