package handler

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	apierrors "profilehub/internal/errors"
)

// validationResponse converts validator output into the API error envelope,
// listing every failing field rather than short-circuiting on the first.
func validationResponse(err error) apierrors.ErrorResponse {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.New("Invalid request body")
	}

	fields := make([]apierrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apierrors.FieldError{
			Msg:   fieldMessage(fe),
			Param: paramName(fe.Field()),
		})
	}
	return apierrors.NewFields(fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "Please include a valid email"
	case "min":
		return fmt.Sprintf("Please enter a %s with %s or more characters",
			strings.ToLower(fieldLabel(fe.Field())), fe.Param())
	default:
		return fieldLabel(fe.Field()) + " is required"
	}
}

// fieldLabel turns a struct field name into a human label: "FirstName" ->
// "First name".
func fieldLabel(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// paramName turns a struct field name into its JSON field name: "FirstName"
// -> "firstName".
func paramName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
