package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sentences/internal/services"
)

// errorMapping pairs a service error with its HTTP status and code.
type errorMapping struct {
	err    error
	status int
	code   string
}

var serviceErrors = []errorMapping{
	{services.ErrEmptyContent, http.StatusBadRequest, "empty_text"},
	{services.ErrInvalidSentenceID, http.StatusBadRequest, "invalid_id"},
	{services.ErrInvalidLanguageCode, http.StatusBadRequest, "invalid_language_code"},
	{services.ErrStructureMismatch, http.StatusBadRequest, "structure_mismatch"},
	{services.ErrUnknownLanguage, http.StatusBadRequest, "unknown_language"},
	{services.ErrSentenceNotFound, http.StatusNotFound, "sentence_not_found"},
	{services.ErrLanguageNotFound, http.StatusNotFound, "language_not_found"},
	{services.ErrAuditNotFound, http.StatusNotFound, "audit_not_found"},
	{services.ErrSentenceIDTaken, http.StatusConflict, "id_taken"},
	{services.ErrDuplicateContent, http.StatusConflict, "duplicate_text"},
	{services.ErrLanguageExists, http.StatusConflict, "language_exists"},
	{services.ErrConcurrentUpdate, http.StatusConflict, "concurrent_update"},
	{services.ErrStorageUnavailable, http.StatusServiceUnavailable, "unavailable"},
}

// respondServiceError translates a service error into a response. Conflicts
// that know the sentence holding the contested value return that sentence.
// Unknown errors are logged and reported as 500.
func respondServiceError(c *gin.Context, err error, context string) {
	var conflict *services.ConflictError
	if errors.As(err, &conflict) && conflict.Existing != nil {
		c.JSON(http.StatusConflict, newSentenceResponse(conflict.Existing))
		return
	}

	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			respondError(c, m.status, m.err.Error(), m.code)
			return
		}
	}

	respondInternalError(c, err, context)
}
