// Package cliutil holds the pieces shared by the fetch, publish and verify
// commands: the exit-code contract and JSON output.
package cliutil

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/mikequentel/xengage/internal/credentials"
	"github.com/mikequentel/xengage/internal/xapi"
)

// Exit codes. Bad flags and input files share ExitConfig.
const (
	ExitOK          = 0
	ExitConfig      = 1
	ExitMissingEnv  = 2
	ExitAuth        = 3
	ExitRateLimited = 4
	ExitAPI         = 5
	ExitTransport   = 6
)

// ExitError pins an explicit exit code to err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

func Exit(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// CodeOf maps an error returned by a command to its exit code.
func CodeOf(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var missing *credentials.MissingError
	if errors.As(err, &missing) {
		return ExitMissingEnv
	}

	var apiErr *xapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsTransport():
			return ExitTransport
		case apiErr.IsAuth():
			return ExitAuth
		case apiErr.IsThrottled():
			return ExitRateLimited
		default:
			return ExitAPI
		}
	}

	return ExitConfig
}

// Run executes app and returns the process exit code. Fatal errors are
// reported as a single log line; urfave/cli's own exit handling is disabled
// so that codes follow CodeOf.
func Run(app *cli.App, args []string, log *logrus.Logger) int {
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(args)
	if err == nil {
		return ExitOK
	}
	log.Error(err.Error())
	return CodeOf(err)
}

// WriteJSON pretty-prints v followed by a newline. Non-ASCII and HTML
// characters are written as-is.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
