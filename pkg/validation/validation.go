package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate instancia única; validator.Validate cachea la metadata de structs y es seguro
// para uso concurrente.
var validate = validator.New()

// Struct valida un struct según sus tags `validate` y devuelve un error con mensajes
// legibles por campo, listo para responder en un 400.
func Struct(i any) error {
	if err := validate.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// Email valida una dirección de correo suelta (para campos de parches opcionales).
func Email(s string) error {
	if err := validate.Var(s, "required,email"); err != nil {
		return fmt.Errorf("email must be a valid email")
	}
	return nil
}

// fieldError convierte un ValidationError en un mensaje legible.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
