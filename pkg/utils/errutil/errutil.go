package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/utils/logging"
)

// Handle logs the error with its goerr context and reports unexpected
// failures to Sentry. Recoverable taxonomy errors (validation, stale state,
// limits) are the caller's problem and are not reported.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	if !isRecoverable(err) {
		sentry.CaptureException(err)
	}

	return err
}

// HandleHTTP logs the error and writes the taxonomy-mapped HTTP response
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	code := StatusCode(err)
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", code,
			"error", err.Error(),
			"values", ge.Values(),
		)
	} else {
		logger.Error("HTTP error",
			"status", code,
			"error", err.Error(),
		)
	}

	if code >= http.StatusInternalServerError {
		sentry.CaptureException(err)
	}

	http.Error(w, err.Error(), code)
}

// StatusCode maps the error taxonomy to HTTP status codes
func StatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrStaleState), errors.Is(err, model.ErrEvidenceLimit):
		return http.StatusConflict
	case errors.Is(err, model.ErrUploadFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func isRecoverable(err error) bool {
	return errors.Is(err, model.ErrValidation) ||
		errors.Is(err, model.ErrStaleState) ||
		errors.Is(err, model.ErrEvidenceLimit) ||
		errors.Is(err, model.ErrNotFound) ||
		errors.Is(err, model.ErrForbidden)
}
