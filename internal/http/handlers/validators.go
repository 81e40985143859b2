package handlers

import (
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

var e164 = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator
// and reports fields by their JSON or query name.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return e164.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
			return slices.Contains(domain.PaymentMethods, fl.Field().String())
		})
	})
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
