package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// prompter asks questions on the terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(env *Environment) *prompter {
	return &prompter{in: bufio.NewReader(env.Stdin), out: env.Stdout}
}

// ask prints question and returns the trimmed answer.
// A closed input with no pending text returns ErrPromptClosed.
func (p *prompter) ask(question string) (string, error) {
	_, _ = promptColor.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		if line == "" {
			fmt.Fprintln(p.out)
			return "", ErrPromptClosed
		}
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question. An empty or unrecognised answer picks def.
func (p *prompter) confirm(question string, def bool) (bool, error) {
	answer, err := p.ask(question)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	default:
		return def, nil
	}
}

// askCount asks for a non-negative integer until one is given.
// An empty answer picks def.
func (p *prompter) askCount(question string, def int) (int, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return def, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 0 {
			return n, nil
		}
		_, _ = errorColor.Fprintf(p.out, "%q is not a whole number of 0 or more.\n", answer)
	}
}
