package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio reads from stdin and writes to stdout. Password input is hidden when
// stdin is a terminal; piped input is read line by line.
type Stdio struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func NewStdio() IO {
	return NewStream(os.Stdin, os.Stdout)
}

// NewStream creates a Stdio over arbitrary streams. Hidden input is used only
// when in is an *os.File attached to a terminal.
func NewStream(in io.Reader, out io.Writer) *Stdio {
	s := &Stdio{
		in:  bufio.NewReader(in),
		out: out,
		fd:  -1,
	}
	if f, ok := in.(*os.File); ok {
		s.fd = int(f.Fd())
	}
	return s
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// ReadInput печатает prompt и читает строку без пробелов по краям
func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadPassword reads a secret without echo. The value is returned as typed,
// only the line terminator is removed.
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	s.Printf("%s", prompt)

	if s.fd >= 0 && term.IsTerminal(s.fd) {
		pwBytes, err := term.ReadPassword(s.fd)
		s.Println("")
		if err != nil {
			return "", err
		}
		return string(pwBytes), nil
	}

	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readLine returns the next line; a final line without '\n' is still returned.
func (s *Stdio) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}
