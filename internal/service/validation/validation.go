package validation

import (
	"capsight_backend/domain"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Instants are accepted with or without a UTC offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

var (
	validate  = newValidator()
	sanitizer = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		return IsTimestamp(fl.Field().String())
	})
	return v
}

// IsTimestamp reports whether s is an ISO-8601 instant, e.g. 2024-01-01T00:00:00Z
// or 2024-01-01T00:00:00.123456.
func IsTimestamp(s string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// DecodeStrict decodes a single JSON document into v, rejecting unknown fields,
// mistyped values and trailing data.
func DecodeStrict(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is empty", domain.ErrValidation)
		case errors.As(err, &typeErr):
			return fmt.Errorf("%w: %s must be %s", domain.ErrValidation, typeErr.Field, typeErr.Type.String())
		default:
			return fmt.Errorf("%w: %s", domain.ErrValidation, strings.TrimPrefix(err.Error(), "json: "))
		}
	}
	if dec.More() {
		return fmt.Errorf("%w: request body must contain a single JSON object", domain.ErrValidation)
	}
	return nil
}

// Struct runs the validate tags of v and reports every failing field.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldName(fe)+" "+describe(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "timestamp":
		return "must be an ISO-8601 timestamp"
	default:
		return "is invalid"
	}
}

// ContainsMarkup reports whether s carries HTML elements that the strict policy
// would strip. Bare '<', '&', line endings and tag-like prose such as "x<y and y>z"
// are plain text.
func ContainsMarkup(s string) bool {
	normalized := newlines.Replace(s)
	if html.UnescapeString(sanitizer.Sanitize(normalized)) == normalized {
		return false
	}
	return hasElement(normalized)
}

// hasElement looks for a tag of a known HTML element or a comment.
func hasElement(s string) bool {
	z := nethtml.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case nethtml.ErrorToken:
			return false
		case nethtml.StartTagToken, nethtml.EndTagToken, nethtml.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) != 0 {
				return true
			}
		case nethtml.CommentToken:
			if strings.Contains(string(z.Raw()), "<!--") {
				return true
			}
		}
	}
}

// PlainText fails with ErrValidation when any value contains markup.
func PlainText(field string, values ...string) error {
	for _, v := range values {
		if ContainsMarkup(v) {
			return fmt.Errorf("%w: %s must not contain markup", domain.ErrValidation, field)
		}
	}
	return nil
}

// ParseID parses a positive numeric identifier taken from the URL path.
func ParseID(name, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrValidation, name)
	}
	return uint(id), nil
}
