// Package views renders the three role dashboards and drives user actions
// through the gateway client. Views fetch on entry and after every mutation;
// nothing is maintained optimistically.
package views

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter collects user input for the dashboards. Abstracted so tests can
// script confirmations and form answers.
type Prompter interface {
	// Ask prints the prompt and returns one trimmed line of input.
	Ask(prompt string) (string, error)
	// Confirm asks a yes/no question. Only an explicit yes returns true.
	Confirm(prompt string) (bool, error)
}

// StdPrompter reads answers line by line from a reader, normally stdin.
type StdPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdPrompter creates a prompter over in/out.
func NewStdPrompter(in io.Reader, out io.Writer) *StdPrompter {
	return &StdPrompter{in: bufio.NewReader(in), out: out}
}

func (p *StdPrompter) Ask(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *StdPrompter) Confirm(prompt string) (bool, error) {
	answer, err := p.Ask(prompt + " [s/n]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "s", "si", "sí", "y", "yes":
		return true, nil
	}
	return false, nil
}
