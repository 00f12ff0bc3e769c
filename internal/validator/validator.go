// Package validator provides a custom Validator type for accumulating
// field-level validation errors and returning them as a map.
// Struct tag rules are delegated to go-playground/validator.
package validator

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// IDRX matches a MongoDB ObjectID in hex form.
var IDRX = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// structs is shared; *playground.Validate caches struct metadata and is safe for concurrent use.
var structs = newStructValidator()

func newStructValidator() *playground.Validate {
	v := playground.New()

	// Report fields by their JSON names, or koanf keys for config structs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "koanf"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	return v
}

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// The first failure for a key wins.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key with message only when ok is false.
//
//	v.Check(input.Provided(), "body", "must contain at least one field")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Struct runs the `validate` tag rules of s and records one error per failing field.
// Errors that are not field failures (e.g. s is not a struct) are returned.
func (v *Validator) Struct(s any) error {
	err := structs.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	for _, fe := range fieldErrs {
		v.AddError(fe.Field(), friendlyMessage(fe))
	}
	return nil
}

func friendlyMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return "must be provided"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must not exceed " + fe.Param()
	default:
		return "is invalid"
	}
}

// Summary joins the recorded failures into one message, ordered by key.
func (v *Validator) Summary() string {
	keys := make([]string, 0, len(v.Errors))
	for k := range v.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+v.Errors[k])
	}
	return strings.Join(parts, "; ")
}

// Matches returns true if value matches the provided compiled regexp.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}
