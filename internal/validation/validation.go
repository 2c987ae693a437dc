package validation

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

// RegisterRules adds the project's custom rules to validate.
func RegisterRules(validate *validator.Validate) error {
	return validate.RegisterValidation("bits", ValidateBits)
}

func New() (*validator.Validate, error) {
	validate := validator.New()
	if err := RegisterRules(validate); err != nil {
		return nil, err
	}
	return validate, nil
}

// ValidateBits accepts strings made only of '0' and '1'.  With a parameter,
// as in `validate:"bits=8"`, the string must also be exactly that long.
func ValidateBits(fl validator.FieldLevel) bool {
	value := fl.Field().String()

	if param := fl.Param(); param != "" {
		if param != strconv.Itoa(len(value)) {
			return false
		}
	}

	for i := 0; i < len(value); i++ {
		if value[i] != '0' && value[i] != '1' {
			return false
		}
	}
	return true
}
