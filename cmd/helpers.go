package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	apperrors "github.com/zorak1103/dk/internal/errors"
)

// requireTargets rejects an empty target list before the engine is invoked.
func requireTargets(what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return apperrors.Usagef("'%s' command requires at least one %s", cmd.Name(), what)
		}
		return nil
	}
}

// exactlyOneTarget accepts a single target only.
func exactlyOneTarget(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return apperrors.Usagef("'%s' command takes one argument", cmd.Name())
	}
	return nil
}

// noArgs rejects any positional argument.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return apperrors.Usagef("'%s' command does not take any arguments", cmd.Name())
	}
	return nil
}

// noSubcommand is the Args check of group commands (im, vol, sys, ots).
// Cobra routes unknown subcommand names to the group itself as arguments.
func noSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return apperrors.Usagef("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

// batch runs fn for every item in input order. A failed item is reported
// with failure (a format taking the item) and the batch goes on; a binary
// that cannot be launched stops it. The last failure is returned so its
// exit code becomes the process exit code.
func batch(items []string, failure string, fn func(item string) error) error {
	var last error
	for _, item := range items {
		err := fn(item)
		if err == nil {
			continue
		}
		if errors.Is(err, apperrors.ErrNotLaunched) {
			return err
		}

		printer.Errorf(failure, item)
		// Interactive engine failures already wrote their own stderr
		var engineErr *apperrors.EngineError
		if !errors.As(err, &engineErr) || engineErr.Stderr != "" {
			printer.Error(err.Error())
		}
		last = err
	}
	if last != nil {
		return &apperrors.Reported{Err: last}
	}
	return nil
}

// reportedEngineError reports an interactive engine failure, whose stderr the
// user has already seen, and keeps its exit code. Other errors pass through.
func reportedEngineError(err error) error {
	var engineErr *apperrors.EngineError
	if errors.As(err, &engineErr) && engineErr.Stderr == "" {
		printer.Error(engineErr.Error())
		return &apperrors.Reported{Err: err}
	}
	return err
}
