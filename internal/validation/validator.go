package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"codezetta/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Validator checks request DTOs against their `validate` struct tags and
// reports failures as domain.ValidationErrors keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("quizlevel", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseQuizLevel(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("subjectname", func(fl validator.FieldLevel) bool {
		return domain.IsKnownSubject(fl.Field().String())
	})
	_ = v.RegisterValidation("onecorrect", exactlyOneCorrect)
	return &Validator{validate: v}
}

// Struct validates s. It returns nil or a domain.ValidationErrors.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{domain.NewFieldError("", "invalid", err.Error())}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fieldPath(fe)
		out = append(out, domain.NewFieldError(field, fe.Tag(), message(field, fe)))
	}
	return out
}

// exactlyOneCorrect accepts a slice of structs whose IsCorrect field is true
// for exactly one element.
func exactlyOneCorrect(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	count := 0
	for i := 0; i < field.Len(); i++ {
		elem := reflect.Indirect(field.Index(i))
		if elem.Kind() != reflect.Struct {
			return false
		}
		flag := elem.FieldByName("IsCorrect")
		if flag.IsValid() && flag.Kind() == reflect.Bool && flag.Bool() {
			count++
		}
	}
	return count == 1
}

// fieldPath drops the root struct name from the namespace, e.g.
// "CreateQuizRequest.questions[0].text" becomes "questions[0].text".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url", "url|eq=":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "quizlevel":
		return fmt.Sprintf("%s must be one of [beginner middle intermediate]", field)
	case "onecorrect":
		return fmt.Sprintf("%s must mark exactly one option as correct", field)
	case "subjectname":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(domain.SubjectNames, " "))
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}
