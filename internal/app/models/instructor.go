package models

import (
	"fmt"
	"slices"

	"github.com/starschool/records/internal/pkg/apperrors"
	"github.com/starschool/records/internal/pkg/validation"
)

// Instructor defines an instructor record. Assigned courses are held as an
// ordered list of course IDs, resolved through the roster lookup maps.
type Instructor struct {
	PersonDetails

	InstructorID    string   `json:"instructor_id"`
	AssignedCourses []string `json:"assigned_courses_ids"`
}

// NewInstructor validates every field and builds an instructor with an
// empty assignment list.
func NewInstructor(name, email string, age int, instructorID string) (*Instructor, error) {
	details, err := NewPersonDetails(name, email, age)
	if err != nil {
		return nil, err
	}
	i := &Instructor{PersonDetails: details}
	if err := i.setInstructorID(instructorID); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *Instructor) setInstructorID(id string) error {
	if !validation.NonEmpty(id) {
		return apperrors.NewValidationError("instructor_id", "must not be empty")
	}
	if !validation.Identifier(id, validation.InstructorIDPrefix) {
		return apperrors.NewValidationError("instructor_id",
			fmt.Sprintf("must start with %q", validation.InstructorIDPrefix))
	}
	i.InstructorID = id
	return nil
}

// Kind returns the person kind tag.
func (i *Instructor) Kind() PersonKind {
	return KindInstructor
}

// AssignCourse appends a course ID to the assignment list. Assigning the
// same course twice fails without changing the list.
func (i *Instructor) AssignCourse(courseID string) error {
	if slices.Contains(i.AssignedCourses, courseID) {
		return apperrors.NewDuplicateRelationError(
			fmt.Sprintf("%s is already assigned to instructor %s", courseID, i.InstructorID))
	}
	i.AssignedCourses = append(i.AssignedCourses, courseID)
	return nil
}

// UnassignCourse drops a course ID from the assignment list; absent IDs are
// a no-op.
func (i *Instructor) UnassignCourse(courseID string) {
	i.AssignedCourses = slices.DeleteFunc(i.AssignedCourses, func(id string) bool {
		return id == courseID
	})
}

// ClearCourses empties the assignment list before a relationship rebuild.
func (i *Instructor) ClearCourses() {
	i.AssignedCourses = nil
}

// Introduce returns the instructor-specific self-description.
func (i *Instructor) Introduce() string {
	return fmt.Sprintf("I am %s, an instructor with ID %s.", i.Name, i.InstructorID)
}
