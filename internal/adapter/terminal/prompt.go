// Package terminal adapts an interactive terminal to the import wizard's
// collaborators: a yes/no confirmer and a paste source.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prompter reads answers line by line from in and writes prompts to out.
type Prompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question. Anything but y/yes, including EOF, is no.
func (p *Prompter) Confirm(prompt string) bool {
	answer, err := p.Ask(prompt + " [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

// Ask writes prompt and returns the next trimmed input line. io.EOF is
// returned only when no input at all was left.
func (p *Prompter) Ask(prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// StaticConfirmer answers every question with Answer. Non-interactive runs
// use it for -yes.
type StaticConfirmer struct {
	Answer bool
}

func (c StaticConfirmer) Confirm(string) bool { return c.Answer }
