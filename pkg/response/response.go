package response

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"reviewhub/pkg/apperror"
)

// Error renders a domain error as JSON. ValidationErrors become the DRF-style
// field→messages map; everything else becomes {"detail": ...}.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(code, gin.H{"detail": apperror.ErrInternal.Error()})
		return
	}

	if ve, ok := apperror.AsValidation(err); ok {
		c.JSON(code, ve.Fields)
		return
	}

	c.JSON(code, gin.H{"detail": err.Error()})
}

// BindError converts a gin binding failure into the same field→messages shape
// as service-level validation errors.
func BindError(c *gin.Context, err error) {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		ve := &apperror.ValidationError{}
		for _, fe := range fieldErrs {
			ve.Add(jsonFieldName(fe), bindMessage(fe))
		}
		c.JSON(http.StatusBadRequest, ve.Fields)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}

func jsonFieldName(fe validator.FieldError) string {
	// validator reports the Go field name; the API speaks snake_case
	return toSnake(fe.Field())
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func bindMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return "value is below the allowed minimum of " + fe.Param()
	case "max":
		return "value exceeds the allowed maximum of " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "slug":
		return "only letters, digits, hyphens and underscores are allowed"
	case "username":
		return "only letters, digits and .@+- are allowed"
	default:
		return "invalid value"
	}
}
