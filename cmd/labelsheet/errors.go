package main

import "errors"

// Sentinel errors for the CLI.
var (
	ErrNoInput        = errors.New("no input file specified")
	ErrInputNotFound  = errors.New("input file not found")
	ErrInvalidFlag    = errors.New("invalid flag")
	ErrUnknownCommand = errors.New("unknown command")
	ErrPromptClosed   = errors.New("standard input closed before an answer was given")
)

// errAborted reports that the user declined to continue. It is not a failure.
var errAborted = errors.New("aborted")
