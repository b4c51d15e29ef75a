package models

import (
	"fmt"

	"github.com/starschool/records/internal/pkg/apperrors"
	"github.com/starschool/records/internal/pkg/validation"
)

// PersonKind tags the concrete kind of a person record.
type PersonKind string

const (
	KindStudent    PersonKind = "STUDENT"
	KindInstructor PersonKind = "INSTRUCTOR"
)

// PersonDetails holds the validated fields shared by students and
// instructors: name, organizational email, and age.
type PersonDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// NewPersonDetails validates and builds the shared person fields.
func NewPersonDetails(name, email string, age int) (PersonDetails, error) {
	p := PersonDetails{}
	if err := p.SetName(name); err != nil {
		return PersonDetails{}, err
	}
	if err := p.SetEmail(email); err != nil {
		return PersonDetails{}, err
	}
	if err := p.SetAge(age); err != nil {
		return PersonDetails{}, err
	}
	return p, nil
}

// SetName validates and assigns the name.
func (p *PersonDetails) SetName(name string) error {
	if !validation.NonEmpty(name) {
		return apperrors.NewValidationError("name", "must not be empty")
	}
	p.Name = name
	return nil
}

// SetEmail validates and assigns the email address.
func (p *PersonDetails) SetEmail(email string) error {
	if !validation.NonEmpty(email) {
		return apperrors.NewValidationError("email", "must not be empty")
	}
	if !validation.OrganizationalEmail(email) {
		return apperrors.NewValidationError("email",
			fmt.Sprintf("must end with %s", validation.EmailDomainSuffix))
	}
	p.Email = email
	return nil
}

// SetAge validates and assigns the age.
func (p *PersonDetails) SetAge(age int) error {
	if !validation.NonNegative(age) {
		return apperrors.NewValidationError("age", "must be non-negative")
	}
	p.Age = age
	return nil
}

// Introduce returns the generic person self-description.
func (p *PersonDetails) Introduce() string {
	return fmt.Sprintf("Hi, my name is %s, %d years old. You can reach me at %s.",
		p.Name, p.Age, p.Email)
}
