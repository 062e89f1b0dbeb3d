package syscalls

import (
	"bytes"
	"runtime"
	"strconv"
)

// currentGoroutineID extracts the calling goroutine's id from its stack
// trace header ("goroutine 123 [running]:..."). No pack dependency exposes
// this (it is deliberately absent from the runtime package's public API);
// parsing runtime.Stack's header is the standard workaround the Go
// ecosystem reaches for, so it is implemented directly rather than
// pretending a third-party shim is warranted — see DESIGN.md.
func currentGoroutineID() int64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	const prefix = "goroutine "
	if !bytes.HasPrefix(buf, []byte(prefix)) {
		return 0
	}
	buf = buf[len(prefix):]
	end := bytes.IndexByte(buf, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseInt(string(buf[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
