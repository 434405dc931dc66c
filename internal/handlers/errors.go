package handlers

import (
	"errors"
	"log"
	"runtime/debug"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/jshn22/jira-clone/internal/models"
)

// respondError maps a domain error to its HTTP status. Unexpected errors are
// logged with a stack trace and surfaced as a generic 500.
func respondError(c *drift.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.BadRequest(err.Error())
	case errors.Is(err, models.ErrNotFound):
		c.NotFound(err.Error())
	case errors.Is(err, models.ErrForbidden):
		c.Forbidden(err.Error())
	case errors.Is(err, models.ErrExternal):
		c.InternalServerError(err.Error())
	default:
		log.Printf("unhandled error: %v\n%s", err, debug.Stack())
		c.InternalServerError("internal server error")
	}
}
