// Package validation checks raw JSON request bodies against per-resource
// schemas and decodes the normalized record into typed structs.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

type Kind int

const (
	String Kind = iota
	Email
	Integer
)

type Field struct {
	Name        string
	Kind        Kind
	NonNegative bool
	// MaxBytes limits the encoded length of a String field. Zero means no limit.
	MaxBytes int
}

// Schema is the declared shape of one resource. Every field is required.
type Schema struct {
	Name   string
	Fields []Field
}

var (
	Account = Schema{Name: "account", Fields: []Field{
		{Name: "name"},
		{Name: "email", Kind: Email},
		{Name: "phone"},
		{Name: "password", MaxBytes: 72}, // bcrypt input limit
		{Name: "location"},
	}}

	Appointment = Schema{Name: "appointment", Fields: []Field{
		{Name: "doctorId", Kind: Integer},
		{Name: "doctorName"},
		{Name: "specialization"},
		{Name: "appointmentType"},
		{Name: "date"},
		{Name: "timeSlot"},
		{Name: "name"},
		{Name: "email", Kind: Email},
		{Name: "phone"},
		{Name: "age"},
		{Name: "gender"},
		{Name: "symptoms"},
		{Name: "price", Kind: Integer, NonNegative: true},
	}}

	Contact = Schema{Name: "contact", Fields: []Field{
		{Name: "name"},
		{Name: "email", Kind: Email},
		{Name: "phone"},
		{Name: "subject"},
		{Name: "category"},
		{Name: "message"},
	}}
)

const (
	reasonRequired = "field required"
	reasonNull     = "none is not an allowed value"
	reasonString   = "str type expected"
	reasonInteger  = "value is not a valid integer"
	reasonEmail    = "value is not a valid email address"
	reasonNegative = "ensure this value is greater than or equal to 0"
)

type Violation struct {
	Field  string
	Reason string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Reason
	}
	return v.Field + ": " + v.Reason
}

// Error lists every violation found in one pass, in schema order.
type Error struct {
	Schema     string
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}

// Fields returns the names of the offending fields.
func (e *Error) Fields() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Field != "" {
			out = append(out, v.Field)
		}
	}
	return out
}

func bodyError(schema, reason string) *Error {
	return &Error{Schema: schema, Violations: []Violation{{Reason: reason}}}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// CheckEmail reports whether s has the shape of an email address.
func CheckEmail(s string) error {
	if err := validate.Var(s, "required,email"); err != nil {
		return &Error{Violations: []Violation{{Field: "email", Reason: reasonEmail}}}
	}
	return nil
}

// ParseObject decodes body as a single JSON object, keeping numbers exact.
func (s Schema) ParseObject(body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, bodyError(s.Name, "request body is empty")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, bodyError(s.Name, "invalid JSON body: "+err.Error())
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, bodyError(s.Name, "invalid JSON body: trailing data")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, bodyError(s.Name, "request body must be a JSON object")
	}
	return obj, nil
}

// Normalize checks raw against the schema and returns a record holding
// exactly the declared fields. Unknown keys are dropped.
func (s Schema) Normalize(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s.Fields))
	var vs []Violation
	for _, f := range s.Fields {
		v, ok := raw[f.Name]
		if !ok {
			vs = append(vs, Violation{Field: f.Name, Reason: reasonRequired})
			continue
		}
		val, reason := f.coerce(v)
		if reason != "" {
			vs = append(vs, Violation{Field: f.Name, Reason: reason})
			continue
		}
		out[f.Name] = val
	}
	if len(vs) > 0 {
		return nil, &Error{Schema: s.Name, Violations: vs}
	}
	return out, nil
}

// Decode parses body, normalizes it and fills out, which must be a pointer
// to a struct with mapstructure tags matching the schema field names.
func (s Schema) Decode(body []byte, out any) error {
	raw, err := s.ParseObject(body)
	if err != nil {
		return err
	}
	rec, err := s.Normalize(raw)
	if err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("%s decoder: %w", s.Name, err)
	}
	if err := dec.Decode(rec); err != nil {
		return fmt.Errorf("decode %s: %w", s.Name, err)
	}
	return nil
}

func (f Field) coerce(v any) (any, string) {
	if v == nil {
		return nil, reasonNull
	}
	switch f.Kind {
	case Integer:
		n, ok := toInt(v)
		if !ok {
			return nil, reasonInteger
		}
		if f.NonNegative && n < 0 {
			return nil, reasonNegative
		}
		return n, ""
	case Email:
		s, ok := v.(string)
		if !ok {
			return nil, reasonString
		}
		if CheckEmail(s) != nil {
			return nil, reasonEmail
		}
		return s, ""
	default:
		var str string
		switch t := v.(type) {
		case string:
			str = t
		case json.Number:
			str = t.String()
		default:
			return nil, reasonString
		}
		if f.MaxBytes > 0 && len(str) > f.MaxBytes {
			return nil, fmt.Sprintf("ensure this value has at most %d bytes", f.MaxBytes)
		}
		return str, ""
	}
}

// toInt accepts JSON integers, integral JSON floats and strings holding a
// base-10 integer.
func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := strconv.Atoi(t.String()); err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		if f < math.MinInt64 || f >= -math.MinInt64 {
			return 0, false
		}
		return int(f), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
