package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"reviewhub/internal/api/models"
)

// RegisterCustom installs the slug and username charset validators on gin's
// binding engine. Call once at startup before any route binds a request.
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return models.ValidSlug(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return models.ValidUsername(fl.Field().String())
	})
}
