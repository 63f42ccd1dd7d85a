package handlers

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// clockPattern accepts "MM:SS" and "H:MM:SS" transcript offsets.
var clockPattern = regexp.MustCompile(`^(\d{1,2}:)?[0-5]?\d:[0-5]\d$`)

var registerOnce sync.Once

// registerValidations adds the custom binding tags used by request structs in
// this package to gin's validator engine.
func registerValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("clock", validateClock)
	})
}

func validateClock(fl validator.FieldLevel) bool {
	return clockPattern.MatchString(fl.Field().String())
}
