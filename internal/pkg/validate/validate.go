package validate

import (
	"github.com/go-playground/validator/v10"
	"github.com/waitlist-api/internal/domain"
)

// TagSignupEmail is the custom tag enforcing domain.EmailPattern.
const TagSignupEmail = "signup_email"

// v is the package-level singleton validator. Custom tags are registered in
// init before the first validation.
var v = validator.New()

func init() {
	if err := v.RegisterValidation(TagSignupEmail, func(fl validator.FieldLevel) bool {
		return domain.EmailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// FailedTags returns the tag of every failing field, keyed by field name.
// A nil map means s is valid.
func FailedTags(s interface{}) (map[string]string, error) {
	err := v.Struct(s)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}
	tags := make(map[string]string, len(ve))
	for _, fe := range ve {
		tags[fe.Field()] = fe.Tag()
	}
	return tags, nil
}
