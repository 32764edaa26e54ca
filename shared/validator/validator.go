package validator

import (
	"encoding/json"
	"fmt"
	"folio/shared/constant"
	"folio/shared/failure"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const wildcardSubtype = "/*"

var validate *val.Validate

// contentTypeOf reads the declared type of an upload part, or takes a string field as the type itself.
func contentTypeOf(field val.FieldLevel) string {
	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return value.Header.Get(constant.RequestHeaderContentType)
	case *multipart.FileHeader:
		if value == nil {
			return constant.Empty
		}

		return value.Header.Get(constant.RequestHeaderContentType)
	case string:
		return value
	default:
		return constant.Empty
	}
}

// registerMimetypeValidation accepts a space separated list where "image/*" matches any image subtype.
func registerMimetypeValidation(field val.FieldLevel) bool {
	contentType := strings.ToLower(strings.TrimSpace(contentTypeOf(field)))
	if contentType == constant.Empty {
		return false
	}

	if index := strings.Index(contentType, ";"); index >= 0 {
		contentType = strings.TrimSpace(contentType[:index])
	}

	for _, allowed := range strings.Fields(strings.ToLower(field.Param())) {
		if prefix, ok := strings.CutSuffix(allowed, wildcardSubtype); ok {
			if strings.HasPrefix(contentType, prefix+"/") {
				return true
			}

			continue
		}

		if contentType == allowed {
			return true
		}
	}

	return false
}

// registerFileSizeValidation takes the limit in megabytes.
func registerFileSizeValidation(field val.FieldLevel) bool {
	var fileSize int64

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		fileSize = value.Size
	case *multipart.FileHeader:
		if value != nil {
			fileSize = value.Size
		}
	case int64:
		fileSize = value
	case int:
		fileSize = int64(value)
	default:
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(fileSize) <= maxSizeMB*constant.BytesPerMegabyte
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("mimetypes", registerMimetypeValidation); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("maxfilesize", registerFileSizeValidation); err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
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

// ImageFile checks a declared content type and size against the upload limits.
func ImageFile(contentType string, size int64, maxSizeMB int) error {
	if err := ValidateVar(contentType, "mimetypes=image/*"); err != nil {
		return err
	}

	return ValidateVar(size, "maxfilesize="+strconv.Itoa(maxSizeMB))
}
