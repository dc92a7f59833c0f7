// Package validation checks request payloads before they reach a service.
//
// Rules are declared with `binding` struct tags and run by gin's
// go-playground validator engine. Only the first violation is reported,
// as a client-facing message naming the JSON field, e.g.
// `"amount" must be a number`.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

const notAnObjectMessage = `"value" must be of type object`

// Register installs JSON field naming and the custom "decimal" rule on
// gin's validator. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if err := v.RegisterValidation("decimal", isDecimal); err != nil {
			panic(fmt.Sprintf("register decimal validation: %v", err))
		}
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// isDecimal accepts raw JSON holding a number or a numeric string.
func isDecimal(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice || field.Type().Elem().Kind() != reflect.Uint8 {
		return false
	}
	_, err := ParseAmount(field.Bytes())
	return err == nil
}

// FirstMessage turns a binding or validation error into the message for
// the first violated rule.
func FirstMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fieldMessage(verrs[0])
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be a %s", strconv.Quote(typeErr.Field), typeName(typeErr.Type))
	}

	return notAnObjectMessage
}

func fieldMessage(fe validator.FieldError) string {
	field := strconv.Quote(fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "decimal":
		return field + " must be a number"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "min":
		if fe.Kind() == reflect.String {
			if fe.Param() == "1" {
				return field + " is not allowed to be empty"
			}
			return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "valid value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
