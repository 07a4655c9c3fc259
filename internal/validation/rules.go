package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PhonePattern допустимый формат телефона: цифры, пробелы, скобки, дефисы, ведущий +
var PhonePattern = regexp.MustCompile(`^\+?[0-9][0-9()\- ]{2,31}$`)

func registerRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic("validation: register " + tag + ": " + err.Error())
		}
	}

	mustRegister("phone", validatePhone)
	mustRegister("maxbytes", validateMaxBytes)
	mustRegister("notblank", validateNotBlank)
}

// validatePhone пустое значение пропускается, для него есть required
func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return PhonePattern.MatchString(value)
}

// validateMaxBytes ограничивает длину строки в байтах (bcrypt учитывает только 72 байта)
func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
