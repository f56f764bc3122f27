package main

import (
	"io"
	"os"

	"github.com/alnah/go-md2man/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O and the configuration used when no file is given.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config // Used when neither --config nor MD2MAN_CONFIG is set
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.DefaultConfig(),
	}
}
