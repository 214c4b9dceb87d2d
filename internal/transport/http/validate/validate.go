package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/timeslot"
)

var v = newValidator()

var ErrContentType = errors.New("content type must be application/json")

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := timeslot.ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// DecodeJSON is the single body decoder for every handler. It rejects unknown fields, empty
// bodies and explicitly non-JSON content types; a missing Content-Type is read as JSON.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Header.Get("Content-Type") != "" && render.GetRequestContentType(r) != render.ContentTypeJSON {
		return ErrContentType
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// Struct runs the struct tags and returns a validation_error whose meta maps each failing
// field path to a message.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return domain.ErrValidation(err.Error())
	}
	meta := make(map[string]string, len(ves))
	for _, fe := range ves {
		meta[fieldPath(fe)] = message(fe)
	}
	return domain.ErrValidationMeta("invalid request", meta)
}

func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// fieldPath drops the root struct name: "CreateEventReq.courts[0].reserved_start" -> "courts[0].reserved_start".
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "clock":
		return "must be HH:MM"
	case "datetime":
		return fmt.Sprintf("must match %s", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}
