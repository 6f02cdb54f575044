package controllers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationDetails flattens validator errors into a field -> message map for
// the 422 response body.
func validationDetails(err error) map[string]string {
	details := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[strings.ToLower(fe.Field())] = "failed " + fe.Tag() + " validation"
		}
		return details
	}
	details["body"] = err.Error()
	return details
}
