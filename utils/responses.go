// utils/responses.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"soulpatterns-backend/store"
)

// RespondWithError writes the inline error payload the views render next to
// the failed action. Nothing here retries; the user re-issues the action.
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// RespondWithStoreError maps the persistence error taxonomy to a response:
// an unopenable store is fatal to the feature, a failed operation is a
// plain retry-me failure.
func RespondWithStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrStorageUnavailable):
		RespondWithError(c, http.StatusServiceUnavailable, "Local storage is unavailable. Your changes were not saved.")
	case errors.Is(err, store.ErrTransactionFailed):
		RespondWithError(c, http.StatusInternalServerError, "The operation failed. Please try again.")
	default:
		RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
