package validator

import (
	"log"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// без правила приложение не должно стартовать
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'username': буквы, цифры и @.+-_
	mustRegister("username", validateUsername)
}

func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустое значение проверяет 'required'
	}
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		switch r {
		case '@', '.', '+', '-', '_':
			continue
		}
		return false
	}
	return true
}
