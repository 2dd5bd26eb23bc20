// Package bind decodes JSON request bodies and validates them with
// go-playground/validator, mapping failures to perr codes
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "textpolish/internal/platform/errors"
	"textpolish/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel for custom rules
type FieldLevel = validator.FieldLevel

// ValidatorSvc bundles the validator and its English translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc

	// moreData reports trailing input after the first JSON value
	moreData = func(dec *json.Decoder) bool { return dec.More() }
)

// Get returns the shared validator, building it on first use
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = entrans.RegisterDefaultTranslations(v, trans)

		for tag, text := range map[string]string{
			"min":   "{0} must be at least {1}",
			"max":   "{0} must be at most {1}",
			"oneof": "{0} must be one of: {1}",
		} {
			registerMessage(v, trans, tag, text)
		}
		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// jsonName makes messages say "content" rather than "Content"
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			param := fe.Param()
			if tag == "oneof" {
				param = strings.ReplaceAll(param, " ", ", ")
			}
			msg, _ := t.T(tag, fe.Field(), param)
			return msg
		},
	)
}

// RegisterValidation adds a custom tag to the shared validator
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// Struct validates v and returns a perr validation error naming the first bad
// field. Slices are validated element by element and the field is prefixed
// with the index, e.g. "[3].content".
func Struct(v any) error {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			if err := Struct(rv.Index(i).Interface()); err != nil {
				e, _ := perr.As(err)
				return perr.WithField(err, fmt.Sprintf("[%d].%s", i, e.Field()))
			}
		}
		return nil
	}
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator misuse")
		return perr.Internalf("validation error")
	}
	field, msg := FieldAndMessage(err)
	return perr.WithField(perr.Validationf("%s", msg), field)
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}

// JSONOptions tunes ParseJSON
type JSONOptions struct {
	MaxBytes        int64 // 0 disables the cap
	DisallowUnknown bool
	AllowEmptyBody  bool
}

// DefaultJSONOptions caps bodies at 1MB and rejects unknown fields
func DefaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

// ParseJSON decodes exactly one JSON value into T and validates it
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var dst T
	o := DefaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() { _ = r.Body.Close() }()

	body, empty := peek(r.Body)
	if empty {
		if o.AllowEmptyBody {
			return dst, nil
		}
		return dst, perr.JSONErrf("request body is empty")
	}
	if o.MaxBytes > 0 {
		body = http.MaxBytesReader(nil, io.NopCloser(body), o.MaxBytes)
	}

	dec := json.NewDecoder(body)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		var zero T
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return zero, perr.JSONErrf("request body exceeds %d bytes", tooBig.Limit)
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if moreData(dec) {
		var zero T
		return zero, perr.JSONErrf("unexpected data after JSON body")
	}
	if err := Struct(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

// peek reads one byte so empty bodies are told apart from bad JSON
func peek(rc io.Reader) (io.Reader, bool) {
	if rc == nil || rc == http.NoBody {
		return nil, true
	}
	var b [1]byte
	n, _ := io.ReadFull(rc, b[:])
	if n == 0 {
		return nil, true
	}
	return io.MultiReader(bytes.NewReader(b[:n]), rc), false
}
