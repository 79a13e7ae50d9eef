package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	"golang.org/x/term"

	"github.com/alnah/go-labelsheet"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the processes the generator starts.
type Environment struct {
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	Stdin      io.Reader
	IsTerminal func() bool // reports whether Stdin is an interactive terminal
	Getwd      func() (string, error)
	Runner     labelsheet.CommandRunner
	LookPath   func(string) (string, error)
	Opener     labelsheet.Opener
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) // #nosec G115 -- fd fits in int
		},
		Getwd:    os.Getwd,
		Runner:   labelsheet.ExecRunner{},
		LookPath: exec.LookPath,
		Opener:   labelsheet.NewSystemOpener(),
	}
}
