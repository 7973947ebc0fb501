package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandy-the-earth/nfc-backend/internal/validator"
	"github.com/sandy-the-earth/nfc-backend/pkg/apperrors"
)

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) BaseHandler {
	return BaseHandler{validator: v}
}

// bindAndValidate decodes the JSON body and runs struct validation,
// responding on failure. Returns false when the request was rejected.
func (h *BaseHandler) bindAndValidate(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid JSON body"))
		return false
	}
	if err := h.validator.Validate(obj); err != nil {
		var vErr *validator.ValidationError
		if apperrors.As(err, &vErr) {
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
			return false
		}
		apperrors.HandleError(c, apperrors.InternalError(err))
		return false
	}
	return true
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

func respondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
