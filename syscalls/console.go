package syscalls

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Console resolves PRINT/PRINTLN/STDIN_READ/STDOUT_WRITE/STDERR_WRITE, per
// §4.5. IsTTY uses golang.org/x/term and is called by the launcher's debug
// mode before its raw-mode single-step prompt; no syscall exposes it to
// bytecode programs.
type Console struct {
	fds    *FDTable
	stdin  *bufio.Reader
}

func NewConsole(fds *FDTable) *Console {
	return &Console{fds: fds, stdin: bufio.NewReader(os.Stdin)}
}

func (c *Console) Print(s string) {
	fmt.Fprint(os.Stdout, s)
}

func (c *Console) Println(s string) {
	fmt.Fprintln(os.Stdout, s)
}

// StdinRead reads up to n bytes from stdin, blocking until at least one
// byte is available or EOF.
func (c *Console) StdinRead(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := c.stdin.Read(buf)
	if err != nil && read == 0 {
		return nil, err
	}
	return buf[:read], nil
}

func (c *Console) StdoutWrite(data []byte) (int, error) {
	return os.Stdout.Write(data)
}

func (c *Console) StderrWrite(data []byte) (int, error) {
	return os.Stderr.Write(data)
}

// IsTTY reports whether fd 0 (stdin) is attached to an interactive
// terminal, consulted by the launcher's debug mode.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
