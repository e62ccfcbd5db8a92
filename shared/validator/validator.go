package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"tourdesk/shared/base64"
	"tourdesk/shared/constant"
	"tourdesk/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

const bytesPerMB = 1 << 20

// registerMimetypeValidation accepts data URIs whose media type is one of the
// space-separated param values.
func registerMimetypeValidation(field val.FieldLevel) bool {
	contentType := base64.GetContentType(field.Field().String())
	if contentType == "" {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

// registerFileSizeValidation caps the decoded size of a data URI at param megabytes.
func registerFileSizeValidation(field val.FieldLevel) bool {
	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	size := base64.DecodedLen(field.Field().String())

	return size >= 0 && float64(size) <= maxSizeMB*bytesPerMB
}

// registerDayValidation accepts calendar dates in YYYY-MM-DD form.
func registerDayValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DayFormat, str)

	return err == nil
}

// registerDayAfterValidation checks that a YYYY-MM-DD field is on or after the sibling field named by the param.
func registerDayAfterValidation(field val.FieldLevel) bool {
	current, err := time.Parse(constant.DayFormat, field.Field().String())
	if err != nil {
		return false
	}

	other, _, _, ok := field.GetStructFieldOK2()
	if !ok || other.Kind() != reflect.String {
		return false
	}

	start, err := time.Parse(constant.DayFormat, other.String())
	if err != nil {
		return true
	}

	return !current.Before(start)
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	rules := map[string]val.Func{
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
		"day":         registerDayValidation,
		"dayfrom":     registerDayAfterValidation,
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body from r into data and validates it. Decode and rule
// failures are both returned as 400 failures.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err))
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}

// ValidateVar checks one value against a tag list, e.g. "required,day".
func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}
