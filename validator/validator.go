package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ncobase/pagewalk/ecode"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// errorMessages maps validation tags to friendly messages.
var errorMessages = map[string]string{
	"required": "The field '%s' is required.",
	"min":      "The field '%s' must be at least %s.",
	"max":      "The field '%s' must be at most %s.",
	"lte":      "The field '%s' must be less than or equal to %s.",
	"gte":      "The field '%s' must be greater than or equal to %s.",
	"gt":       "The field '%s' must be greater than %s.",
	"lt":       "The field '%s' must be less than %s.",
	"oneof":    "The field '%s' must be one of [%s].",
}

// parseMessage constructs a friendly error message based on the validation tag.
func parseMessage(field string, e validator.FieldError) string {
	if msg, ok := errorMessages[e.Tag()]; ok {
		switch strings.Count(msg, "%s") {
		case 1:
			return fmt.Sprintf(msg, field)
		case 2:
			return fmt.Sprintf(msg, field, e.Param())
		}
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", field, e.Tag())
}

// fieldPath returns the dotted tag path of a field without the root type.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// Fields validates s and returns a map of field paths to friendly messages.
func Fields(s any) map[string]string {
	out, _ := fields(s)
	return out
}

func fields(s any) (map[string]string, error) {
	out := make(map[string]string)
	err := validate.Struct(s)
	if err == nil {
		return out, nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return out, err
	}
	for _, e := range errs {
		path := fieldPath(e)
		out[path] = parseMessage(path, e)
	}
	return out, nil
}

// Struct validates s and returns an invalid argument error listing every
// failing field, or nil.
func Struct(s any) error {
	out, err := fields(s)
	if err != nil {
		return ecode.InvalidArgument(err.Error())
	}
	if len(out) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(out))
	for _, m := range out {
		msgs = append(msgs, m)
	}
	sort.Strings(msgs)
	return ecode.InvalidArgument(strings.Join(msgs, " "))
}
