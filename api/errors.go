package api

import (
	"errors"
	"net/http"

	"lotto/domain/entities"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error       string `json:"error"`
	Message     string `json:"message"`
	MinRequired int    `json:"min_required,omitempty"`
	Actual      *int   `json:"actual,omitempty"`
}

// RespondWithError writes an error body with the status text of statusCode
func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// respondDomainError maps domain errors onto HTTP status codes
func respondDomainError(c *gin.Context, err error) {
	_ = c.Error(err)

	var insufficient *entities.InsufficientDataError
	switch {
	case errors.As(err, &insufficient):
		actual := insufficient.Actual
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:       http.StatusText(http.StatusUnprocessableEntity),
			Message:     err.Error(),
			MinRequired: insufficient.MinRequired,
			Actual:      &actual,
		})
	case entities.IsValidationError(err), errors.Is(err, entities.ErrInvalidBackup):
		RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrTicketNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrTicketAlreadyCompleted):
		RespondWithError(c, http.StatusConflict, err.Error())
	default:
		RespondWithError(c, http.StatusInternalServerError, "internal error")
	}
}
