package vm

import (
	"bufio"
	"os"
	"strings"
)

// LoadProgram reads a textual bytecode file (C8): one instruction per line,
// strips everything from the first "//" onward then trims, and drops lines
// left empty by that stripping. Lines whose first non-whitespace character
// is "#" survive the loader — the engine treats them as comments at fetch
// time (§4.2) so that pc-relative branch targets computed by the upstream
// compiler still line up with the loaded line count.
func LoadProgram(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, execErr(-1, ErrLoader)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	// Long single-line string literals (e.g. a PUSH of a large text blob)
	// can exceed bufio's default 64KiB token size.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 8*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, execErr(-1, ErrLoader)
	}
	if len(lines) == 0 {
		return nil, execErr(-1, ErrLoader)
	}

	return lines, nil
}
