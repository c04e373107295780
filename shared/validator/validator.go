package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"

	"tripplanner/shared/constant"
	"tripplanner/shared/failure"
)

var validate *val.Validate

func registerTravelDateValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.TravelDateFormat, value)

	return err == nil
}

// jsonFieldName reports fields by their json name so messages match the request body.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	if err := validate.RegisterValidation("traveldate", registerTravelDateValidation); err != nil {
		panic(err)
	}
}

// Decode only decodes the JSON body. Callers normalise the input and then
// call ValidateStruct themselves.
// https://github.com/go-playground/validator
func Decode[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
