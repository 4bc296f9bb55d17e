package student

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/academia/core"
)

var (
	yearTag  = "year"
	yearText = "year must be one of Freshman, Sophomore, Junior, Senior or Graduate"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(yearTag, yearValidation)
	core.RegisterCustomTranslation(validate, translator, yearTag, yearText)
}

// Custom Validators

// yearValidation checks that the year level is one of Years.
func yearValidation(fl validator.FieldLevel) bool {
	return YearRank(fl.Field().String()) >= 0
}
