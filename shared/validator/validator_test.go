package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tripplanner/shared/validator"
)

type travellerForm struct {
	Name       string `json:"name"       validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Phone      string `json:"phone"      validate:"omitempty,len=10"`
	Persons    int    `json:"persons"    validate:"gte=0,lte=20"`
	TravelDate string `json:"travelDate" validate:"omitempty,traveldate"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        travellerForm
		expectError bool
		message     string
	}{
		{
			name:        "valid struct",
			data:        travellerForm{Name: "Ann", Email: "ann@x.com", Phone: "9876543210", Persons: 2, TravelDate: "2030-05-01"},
			expectError: false,
		},
		{
			name:        "missing required field uses json name",
			data:        travellerForm{Email: "ann@x.com"},
			expectError: true,
			message:     "name is required",
		},
		{
			name:        "invalid email",
			data:        travellerForm{Name: "Ann", Email: "ann-at-x"},
			expectError: true,
			message:     "email must be a valid email address",
		},
		{
			name:        "short phone",
			data:        travellerForm{Name: "Ann", Email: "ann@x.com", Phone: "12345"},
			expectError: true,
			message:     "phone must be exactly 10 characters long",
		},
		{
			name:        "persons out of range",
			data:        travellerForm{Name: "Ann", Email: "ann@x.com", Persons: 50},
			expectError: true,
			message:     "persons must be less than or equal to 20",
		},
		{
			name:        "malformed travel date",
			data:        travellerForm{Name: "Ann", Email: "ann@x.com", TravelDate: "01/05/2030"},
			expectError: true,
			message:     "travelDate must be a date in YYYY-MM-DD format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if !tt.expectError {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "ten characters", field: "0123456789", tag: "len=10", expectError: false},
		{name: "five characters", field: "12345", tag: "len=10", expectError: true},
		{name: "multibyte runes are counted once", field: "０１２３４５６７８９", tag: "len=10", expectError: false},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "valid travel date", field: "2031-12-24", tag: "traveldate", expectError: false},
		{name: "impossible travel date", field: "2031-02-30", tag: "traveldate", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	var data travellerForm

	err := validator.Decode(strings.NewReader(`{"name":"  Ann  "}`), &data)

	assert.NoError(t, err)
	assert.Equal(t, "  Ann  ", data.Name)
}
