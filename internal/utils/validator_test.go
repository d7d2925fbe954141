// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registrationInput struct {
	Password string `validate:"strong_password"`
	Phone    string `validate:"phone"`
}

func TestStrongPasswordValidation(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Passw0rd", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoNumbersHere", false},
	}

	for _, tt := range tests {
		err := ValidateStruct(&registrationInput{Password: tt.password, Phone: "+8801712345678"})
		if tt.valid {
			assert.NoError(t, err, tt.password)
		} else {
			assert.Error(t, err, tt.password)
		}
	}
}

func TestPhoneValidation(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+8801712345678", true},
		{"01712345678", true},
		{"12345", false},
		{"not-a-phone", false},
	}

	for _, tt := range tests {
		err := ValidateStruct(&registrationInput{Password: "Passw0rd", Phone: tt.phone})
		if tt.valid {
			assert.NoError(t, err, tt.phone)
		} else {
			assert.Error(t, err, tt.phone)
		}
	}
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&registrationInput{Password: "weak", Phone: "bad"})
	errs := GetValidationErrors(err)
	assert.Len(t, errs, 2)

	assert.Empty(t, GetValidationErrors(nil))
}
