package main

import (
	"errors"

	"github.com/matsen/obscat/internal/bibtex"
	"github.com/matsen/obscat/internal/catalogue"
)

// Exit codes shared by all commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, unreadable input, runtime failure)
	ExitConfigError = 2 // Configuration error (no bibliography or article folder known)
	ExitDataError   = 3 // Data error (malformed bibliography, unsupported title markup, unsafe key)
)

// exitCodeFor maps an error returned by the catalogue packages to an exit code.
func exitCodeFor(err error) int {
	var syntaxErr *bibtex.SyntaxError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, catalogue.ErrInputNotFound):
		return ExitError
	case errors.Is(err, catalogue.ErrSanitization),
		errors.Is(err, catalogue.ErrUnsafeKey),
		errors.Is(err, bibtex.ErrDuplicateKey),
		errors.As(err, &syntaxErr):
		return ExitDataError
	default:
		return ExitError
	}
}
