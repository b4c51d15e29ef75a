package models

import (
	"fmt"
	"slices"

	"github.com/starschool/records/internal/pkg/apperrors"
	"github.com/starschool/records/internal/pkg/validation"
)

// Student defines a student record. Registered courses are held as an
// ordered list of course IDs; the objects behind them are resolved through
// the roster lookup maps, never stored here.
type Student struct {
	PersonDetails

	StudentID         string   `json:"student_id"`
	RegisteredCourses []string `json:"registered_courses_ids"`
}

// NewStudent validates every field and builds a student with an empty
// registration list.
func NewStudent(name, email string, age int, studentID string) (*Student, error) {
	details, err := NewPersonDetails(name, email, age)
	if err != nil {
		return nil, err
	}
	s := &Student{PersonDetails: details}
	if err := s.setStudentID(studentID); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Student) setStudentID(id string) error {
	if !validation.NonEmpty(id) {
		return apperrors.NewValidationError("student_id", "must not be empty")
	}
	if !validation.Identifier(id, validation.StudentIDPrefix) {
		return apperrors.NewValidationError("student_id",
			fmt.Sprintf("must start with %q", validation.StudentIDPrefix))
	}
	s.StudentID = id
	return nil
}

// Kind returns the person kind tag.
func (s *Student) Kind() PersonKind {
	return KindStudent
}

// RegisterCourse appends a course ID to the registration list. Registering
// the same course twice fails without changing the list.
func (s *Student) RegisterCourse(courseID string) error {
	if slices.Contains(s.RegisteredCourses, courseID) {
		return apperrors.NewDuplicateRelationError(
			fmt.Sprintf("student %s is already registered in %s", s.StudentID, courseID))
	}
	s.RegisteredCourses = append(s.RegisteredCourses, courseID)
	return nil
}

// UnregisterCourse drops a course ID from the registration list. Dropping
// an absent ID is a no-op so cascade cleanup stays idempotent.
func (s *Student) UnregisterCourse(courseID string) {
	s.RegisteredCourses = slices.DeleteFunc(s.RegisteredCourses, func(id string) bool {
		return id == courseID
	})
}

// ClearCourses empties the registration list before a relationship rebuild.
func (s *Student) ClearCourses() {
	s.RegisteredCourses = nil
}

// Introduce returns the student-specific self-description.
func (s *Student) Introduce() string {
	return fmt.Sprintf("I am %s, a student with ID %s.", s.Name, s.StudentID)
}
