package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mwaqasali/garage_invoice_app/internal/apperrors"
)

// bindingErrorResponse turns a gin binding failure into the structured
// field-error map the clients render next to each input. Non-validator
// failures (malformed JSON) collapse into a single error message.
func bindingErrorResponse(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
			switch fe.Tag() {
			case "required":
				fields[name] = name + " is required"
			case "min":
				fields[name] = name + " must be at least " + fe.Param()
			case "max":
				fields[name] = name + " must be at most " + fe.Param()
			case "oneof":
				fields[name] = name + " must be one of: " + fe.Param()
			default:
				fields[name] = name + " is invalid"
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

// serviceErrorResponse maps service errors onto the wire contract.
// entity is the lowercase label used in the "Invalid <entity>" body.
func serviceErrorResponse(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid " + entity})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": errorMessage(err)})
	case errors.Is(err, apperrors.ErrReferentialIntegrity):
		c.JSON(http.StatusBadRequest, gin.H{"error": errorMessage(err)})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": errorMessage(err)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// errorMessage strips the wrapped sentinel from an AppError so the body
// carries only the human-readable part.
func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
