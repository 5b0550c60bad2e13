package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fekuna/agritrace-service/pkg/apperror"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates v's `validate` tags and reports failures as an
// InvalidArgument error with one detail per offending field.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.InvalidArgument(fmt.Sprintf("invalid input: %v", err))
	}

	fields := make([]string, 0, len(verrs))
	appErr := apperror.InvalidArgument("")
	for _, fe := range verrs {
		name := fieldName(fe)
		fields = append(fields, name)
		appErr.WithDetail(name, message(fe))
	}
	sort.Strings(fields)
	appErr.Message = "invalid " + strings.Join(fields, ", ")
	return appErr
}

func fieldName(fe validator.FieldError) string {
	field := fe.Field()
	if len(field) > 0 {
		field = strings.ToLower(field[:1]) + field[1:]
	}
	return field
}

func message(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
