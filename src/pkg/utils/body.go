package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	httpError "tour-service/src/pkg/http-error"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ParseBody decodes a JSON body into out. The json decoder stops reporting
// at the first mistyped field, so on failure every field is re-checked and,
// when validate is set, the partially decoded request is validated too; the
// result is one validation error naming every bad field. Fields set on out
// before the call (path ids, the caller) take part in validation.
func ParseBody(ctx *fiber.Ctx, validate *validator.Validate, out interface{}) error {
	err := ctx.BodyParser(out)
	if err == nil {
		return nil
	}

	details := decodeFields(ctx.Body(), out)
	if len(details) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if validate != nil {
		if verr := validate.Struct(out); verr != nil {
			for _, message := range ValidationMessages(verr) {
				if !mentionsAny(message, details) {
					details = append(details, message)
				}
			}
		}
	}
	return httpError.NewValidationError(details)
}

// decodeFields decodes body into out one field at a time so a bad value
// leaves only its own field unset. It returns a message per json field whose
// value does not fit, in struct order. A body that is not a JSON object
// yields nothing.
func decodeFields(body []byte, out interface{}) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}
	v := reflect.ValueOf(out)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	details := make([]string, 0)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" || !field.IsExported() {
			continue
		}
		value, ok := raw[name]
		if !ok {
			continue
		}
		target := reflect.New(field.Type)
		if err := json.Unmarshal(value, target.Interface()); err != nil {
			details = append(details, describeType(name, field.Type))
			continue
		}
		v.Field(i).Set(target.Elem())
	}
	return details
}

var timeType = reflect.TypeOf(time.Time{})

func describeType(name string, t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return fmt.Sprintf("%s must be an RFC 3339 date-time", name)
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%s must be a number", name)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%s must be an integer", name)
	case reflect.String:
		return fmt.Sprintf("%s must be a string", name)
	case reflect.Bool:
		return fmt.Sprintf("%s must be a boolean", name)
	}
	return fmt.Sprintf("%s has an invalid type", name)
}

func mentionsAny(message string, details []string) bool {
	for _, detail := range details {
		field := strings.SplitN(detail, " ", 2)[0]
		if strings.HasPrefix(message, field+" ") {
			return true
		}
	}
	return false
}
