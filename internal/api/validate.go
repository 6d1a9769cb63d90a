package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ignite/customer-registry/internal/domain"
)

// validate is the shared validator instance. It is configured once at init
// and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their json names so error messages match the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return domain.ValidAddress(fl.Field().String())
	})

	return v
}

// validateStruct runs the declarative field rules on a request body and
// returns one message per failed field, or nil when the body is valid.
func validateStruct(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"invalid request body"}
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is mandatory", fe.Field())
	case "email":
		return "please enter a valid email address"
	case "min", "max":
		return fmt.Sprintf("%s length should be between 2 and 50", fe.Field())
	case "address":
		return fmt.Sprintf("address must be one of %s", strings.Join(domain.Addresses, ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// validEmailParam reports whether a path email parameter is syntactically
// valid. It guards every by-email operation before the service is invoked.
func validEmailParam(email string) bool {
	return validate.Var(email, "required,email") == nil
}
