package usecase

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

var (
	cityPattern  = regexp.MustCompile(`^[a-zA-Z\x{00C0}-\x{00FF}\s,'-]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-()]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("city", func(fl validator.FieldLevel) bool {
		return cityPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phonechars", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("leadstatus", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseStatus(fl.Field().String())
		return ok
	})

	return v
}

var leadInputMessages = map[string]string{
	"name.min":          "Nome deve ter pelo menos 2 caracteres",
	"name.max":          "Nome deve ter no máximo 100 caracteres",
	"phone.min":         "Telefone deve ter pelo menos 10 dígitos",
	"phone.max":         "Telefone deve ter no máximo 20 caracteres",
	"phone.phonechars":  "Telefone deve conter apenas números, espaços e caracteres válidos",
	"interest.min":      "Interesse deve ter pelo menos 3 caracteres",
	"interest.max":      "Interesse deve ter no máximo 100 caracteres",
	"status.required":   "Selecione o nível de interesse",
	"status.leadstatus": "Selecione o nível de interesse",
	"notes.max":         "Notas devem ter no máximo 500 caracteres",
	"score.min":         "Score deve estar entre 0 e 100",
	"score.max":         "Score deve estar entre 0 e 100",
	"lastContact.max":   "Último contato deve ter no máximo 50 caracteres",
}

var prospectInputMessages = map[string]string{
	"city.min":         "Cidade deve ter no mínimo 2 caracteres",
	"city.max":         "Cidade deve ter no máximo 100 caracteres",
	"city.city":        "Cidade deve conter apenas letras e vírgulas",
	"businessType.min": "Tipo de negócio deve ter no mínimo 3 caracteres",
	"businessType.max": "Tipo de negócio deve ter no máximo 100 caracteres",
}

func ValidateLeadInput(input LeadInput) error {
	return validateStruct(input, leadInputMessages)
}

func ValidateProspectInput(input ProspectInput) error {
	return validateStruct(input, prospectInputMessages)
}

// validateStruct runs the struct tags and turns every failure into a
// ValidationError with the dashboard's Portuguese message.
func validateStruct(s any, messages map[string]string) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "input", Message: "Dados inválidos"}}
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " é inválido"
		}
		out = append(out, ValidationError{Field: fe.Field(), Message: msg})
	}
	return out
}
