package services

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "harborview/pkg/errors"
)

// storeTimeout bounds every record-store operation issued by a handler.
const storeTimeout = 20 * time.Second

// storeCtx derives a bounded context for a store operation from the request.
func storeCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), storeTimeout)
}

// respondError maps an error to the wire taxonomy. AppErrors carry their own
// status; anything else is treated as a store failure and kept generic so
// driver internals never leak to clients.
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		c.JSON(appErr.HTTPStatus(), gin.H{"message": appErr.Message})
		return
	}
	log.Printf("[ERROR] unhandled error: %v", err)
	c.JSON(500, gin.H{"message": "Server error"})
}

// respondValidation rejects a request with a descriptive client error.
func respondValidation(c *gin.Context, message string) {
	respondError(c, apperrors.Validation(message))
}

// respondAuth rejects a request that failed a credential or token check. The
// message is deliberately generic so callers cannot tell which check failed.
func respondAuth(c *gin.Context, message string) {
	respondError(c, apperrors.Auth(message))
}

// respondNotFound rejects a request addressing a record that does not exist.
func respondNotFound(c *gin.Context, message string) {
	respondError(c, apperrors.NotFound(message))
}

// respondStore rejects a request after the record store failed.
func respondStore(c *gin.Context, message string, err error) {
	log.Printf("[STORE] %s: %v", message, err)
	respondError(c, apperrors.Store(message, err))
}
