package utils

import (
	"math"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func GetValidator() *validator.Validate {
	once.Do(initValidator)
	return validate
}

func initValidator() {
	validate = validator.New()
	if err := validate.RegisterValidation("halfstep", isHalfStep); err != nil {
		panic("register halfstep validation: " + err.Error())
	}
}

// isHalfStep accepts numbers that are whole multiples of 0.5.
func isHalfStep(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	doubled := v * 2
	return doubled == math.Trunc(doubled)
}
