package selector

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompt asks questions on a line oriented terminal.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt returns a Prompt reading answers from in and writing
// questions to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

func (p *Prompt) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", ErrNoAnswer
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ChooseIndex lists the choices numbered from 1 and reads a number.
// Input that is not a number is asked again.
func (p *Prompt) ChooseIndex(choices []string) (int, error) {
	_, _ = fmt.Fprintln(p.out, "Multiple projects found, select one:")
	for i, c := range choices {
		_, _ = fmt.Fprintf(p.out, "  %d) %s\n", i+1, c)
	}
	for {
		_, _ = fmt.Fprint(p.out, "> ")
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			_, _ = fmt.Fprintf(p.out, "%q is not a number\n", line)
			continue
		}
		return n - 1, nil
	}
}

// RequestPath reads the path of the project to use.
func (p *Prompt) RequestPath() (string, error) {
	_, _ = fmt.Fprint(p.out, "No projects declared, enter the project path: ")
	return p.readLine()
}
