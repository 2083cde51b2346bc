package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-delivery/internal/validation"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	layoutSchemaInvalidCode = "LAYOUT_SCHEMA_INVALID"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
		WithTextCode(commandContextCanceled)
}

// wrapExecuteError tags failures; layout documents rejected by the schema
// are validation errors rather than command failures.
func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, validation.ErrSchemaValidation) {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "layout document invalid").
			WithTextCode(layoutSchemaInvalidCode)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}
