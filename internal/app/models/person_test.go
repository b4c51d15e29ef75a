package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starschool/records/internal/pkg/apperrors"
)

func TestNewPersonDetails(t *testing.T) {
	tests := []struct {
		name      string
		pName     string
		email     string
		age       int
		wantErr   bool
		wantField string
	}{
		{
			name:  "valid person",
			pName: "Ann Perkins",
			email: "ann@starschool.com",
			age:   20,
		},
		{
			name:  "zero age is valid",
			pName: "Newborn",
			email: "baby@starschool.com",
			age:   0,
		},
		{
			name:      "empty name",
			pName:     "",
			email:     "ann@starschool.com",
			age:       20,
			wantErr:   true,
			wantField: "name",
		},
		{
			name:      "whitespace name",
			pName:     "   ",
			email:     "ann@starschool.com",
			age:       20,
			wantErr:   true,
			wantField: "name",
		},
		{
			name:      "empty email",
			pName:     "Ann",
			email:     "",
			age:       20,
			wantErr:   true,
			wantField: "email",
		},
		{
			name:      "wrong email domain",
			pName:     "Ann",
			email:     "ann@gmail.com",
			age:       20,
			wantErr:   true,
			wantField: "email",
		},
		{
			name:      "negative age",
			pName:     "Ann",
			email:     "ann@starschool.com",
			age:       -1,
			wantErr:   true,
			wantField: "age",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPersonDetails(tt.pName, tt.email, tt.age)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)

				var vErr *apperrors.ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, tt.wantField, vErr.Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.pName, p.Name)
			assert.Equal(t, tt.email, p.Email)
			assert.Equal(t, tt.age, p.Age)
		})
	}
}

func TestPersonDetailsSettersRevalidate(t *testing.T) {
	p, err := NewPersonDetails("Ann", "ann@starschool.com", 20)
	require.NoError(t, err)

	// Invalid assignments leave the previous value alone.
	assert.ErrorIs(t, p.SetEmail("ann@elsewhere.org"), apperrors.ErrValidation)
	assert.Equal(t, "ann@starschool.com", p.Email)

	assert.ErrorIs(t, p.SetAge(-5), apperrors.ErrValidation)
	assert.Equal(t, 20, p.Age)

	require.NoError(t, p.SetName("Ann P."))
	assert.Equal(t, "Ann P.", p.Name)
}

func TestPersonIntroduce(t *testing.T) {
	p, err := NewPersonDetails("Ann", "ann@starschool.com", 20)
	require.NoError(t, err)

	assert.Equal(t,
		"Hi, my name is Ann, 20 years old. You can reach me at ann@starschool.com.",
		p.Introduce())
}
