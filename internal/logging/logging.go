// Package logging sets up dk's diagnostic logger.
// Diagnostics go to stderr and never mix with command output on stdout.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w. Verbose enables debug output;
// otherwise only warnings and errors are shown.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "dk",
		Level:           level,
		ReportTimestamp: false,
	})
}
