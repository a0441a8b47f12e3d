package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate instancia compartida. Es segura para uso concurrente.
var validate = validator.New()

// validationMessage traduce los errores del validador a un mensaje legible
// para el cuerpo de respuesta 400.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" es requerido")
		case "email":
			parts = append(parts, fe.Field()+" debe ser un email válido")
		case "oneof":
			parts = append(parts, fe.Field()+" debe ser uno de: "+fe.Param())
		case "min":
			parts = append(parts, fe.Field()+" demasiado corto (mín "+fe.Param()+")")
		case "max":
			parts = append(parts, fe.Field()+" demasiado largo (máx "+fe.Param()+")")
		default:
			parts = append(parts, fe.Field()+" inválido")
		}
	}
	return strings.Join(parts, "; ")
}
