package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentRecord struct {
	DoctorID int    `mapstructure:"doctorId"`
	Email    string `mapstructure:"email"`
	Age      string `mapstructure:"age"`
	Price    int    `mapstructure:"price"`
}

const validAppointment = `{
	"doctorId": 1, "doctorName": "Dr. Rao", "specialization": "Cardiology",
	"appointmentType": "video", "date": "2025-03-01", "timeSlot": "10:00-10:30",
	"name": "Ann", "email": "ann@x.com", "phone": "555", "age": "34",
	"gender": "female", "symptoms": "cough", "price": 50
}`

func violationsOf(t *testing.T, err error) *Error {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %v", err)
	return verr
}

func TestDecodeAppointment(t *testing.T) {
	var rec appointmentRecord
	require.NoError(t, Appointment.Decode([]byte(validAppointment), &rec))
	assert.Equal(t, 1, rec.DoctorID)
	assert.Equal(t, "ann@x.com", rec.Email)
	assert.Equal(t, "34", rec.Age)
	assert.Equal(t, 50, rec.Price)
}

func TestIntegerCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
		ok    bool
	}{
		{"json integer", json.Number("7"), 7, true},
		{"integral float", json.Number("7.0"), 7, true},
		{"exponent", json.Number("1e2"), 100, true},
		{"numeric string", "42", 42, true},
		{"padded string", " 42 ", 42, true},
		{"letters", "abc", 0, false},
		{"fraction", json.Number("1.5"), 0, false},
		{"huge", json.Number("1e40"), 0, false},
		{"fraction string", "1.5", 0, false},
		{"bool", true, 0, false},
		{"object", map[string]any{"n": 1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := mustParse(t, Appointment, validAppointment)
			raw["doctorId"] = tt.value
			rec, err := Appointment.Normalize(raw)
			if !tt.ok {
				verr := violationsOf(t, err)
				assert.Equal(t, []string{"doctorId"}, verr.Fields())
				assert.Contains(t, verr.Error(), "doctorId: value is not a valid integer")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec["doctorId"])
		})
	}
}

func TestNegativePriceRejected(t *testing.T) {
	raw := mustParse(t, Appointment, validAppointment)
	raw["price"] = json.Number("-1")
	_, err := Appointment.Normalize(raw)
	verr := violationsOf(t, err)
	assert.Equal(t, "price: ensure this value is greater than or equal to 0", verr.Error())
}

func TestAllViolationsReported(t *testing.T) {
	body := `{"name": "Ann", "email": "not-an-email", "phone": 555, "password": null}`
	var out struct{}
	err := Account.Decode([]byte(body), &out)
	verr := violationsOf(t, err)
	assert.Equal(t, "account", verr.Schema)
	assert.Equal(t, []string{"email", "password", "location"}, verr.Fields())
	assert.Equal(t,
		"email: value is not a valid email address; password: none is not an allowed value; location: field required",
		verr.Error())
}

func TestPasswordLengthCollectedWithOtherViolations(t *testing.T) {
	body, _ := json.Marshal(map[string]string{
		"name": "Ann", "email": "not-an-email", "phone": "555",
		"password": strings.Repeat("x", 73), "location": "NYC",
	})
	var out struct{}
	verr := violationsOf(t, Account.Decode(body, &out))
	assert.Equal(t, []string{"email", "password"}, verr.Fields())
	assert.Contains(t, verr.Error(), "password: ensure this value has at most 72 bytes")
}

func TestPasswordAtLimitAccepted(t *testing.T) {
	body, _ := json.Marshal(map[string]string{
		"name": "Ann", "email": "ann@x.com", "phone": "555",
		"password": strings.Repeat("x", 72), "location": "NYC",
	})
	var out struct {
		Password string `mapstructure:"password"`
	}
	require.NoError(t, Account.Decode(body, &out))
	assert.Len(t, out.Password, 72)
}

func TestStringFieldAcceptsNumbers(t *testing.T) {
	raw := mustParse(t, Appointment, validAppointment)
	raw["age"] = json.Number("34")
	rec, err := Appointment.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "34", rec["age"])
}

func TestStringFieldRejectsOtherTypes(t *testing.T) {
	raw := mustParse(t, Contact, `{"name":"a","email":"a@b.co","phone":"1","subject":"s","category":"c","message":"m"}`)
	raw["message"] = []any{"x"}
	raw["subject"] = false
	_, err := Contact.Normalize(raw)
	verr := violationsOf(t, err)
	assert.Equal(t, []string{"subject", "message"}, verr.Fields())
}

func TestEmailMustBeString(t *testing.T) {
	raw := mustParse(t, Contact, `{"name":"a","email":12,"phone":"1","subject":"s","category":"c","message":"m"}`)
	_, err := Contact.Normalize(raw)
	verr := violationsOf(t, err)
	assert.Equal(t, "email: str type expected", verr.Error())
}

func TestUnknownFieldsDropped(t *testing.T) {
	raw := mustParse(t, Contact, `{"name":"a","email":"a@b.co","phone":"1","subject":"s","category":"c","message":"m","admin":true}`)
	rec, err := Contact.Normalize(raw)
	require.NoError(t, err)
	assert.Len(t, rec, len(Contact.Fields))
	assert.NotContains(t, rec, "admin")
}

func TestEmptyStringsAllowed(t *testing.T) {
	raw := mustParse(t, Contact, `{"name":"","email":"a@b.co","phone":"","subject":"","category":"","message":""}`)
	_, err := Contact.Normalize(raw)
	assert.NoError(t, err)
}

func TestParseObjectRejectsBadBodies(t *testing.T) {
	for name, body := range map[string]string{
		"empty":     "",
		"blank":     "   ",
		"malformed": `{"name":`,
		"array":     `[1,2]`,
		"scalar":    `"hello"`,
		"trailing":  `{} {}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Contact.ParseObject([]byte(body))
			verr := violationsOf(t, err)
			assert.Empty(t, verr.Fields())
			assert.NotEmpty(t, verr.Error())
		})
	}
}

func TestCheckEmail(t *testing.T) {
	assert.NoError(t, CheckEmail("ann@x.com"))
	assert.Error(t, CheckEmail(""))
	assert.Error(t, CheckEmail("ann"))
	assert.Error(t, CheckEmail("ann@"))
	assert.Error(t, CheckEmail("@x.com"))
}

func mustParse(t *testing.T, s Schema, body string) map[string]any {
	t.Helper()
	raw, err := s.ParseObject([]byte(body))
	require.NoError(t, err)
	return raw
}
