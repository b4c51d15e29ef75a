package models

import (
	"fmt"
	"slices"

	"github.com/starschool/records/internal/pkg/apperrors"
	"github.com/starschool/records/internal/pkg/validation"
)

// Course represents a course record. The instructor is referenced by ID
// (empty means unassigned) and enrolled students are an ordered ID list.
type Course struct {
	CourseID         string   `json:"course_id"`
	CourseName       string   `json:"course_name"`
	InstructorID     string   `json:"instructor_id,omitempty"`
	EnrolledStudents []string `json:"enrolled_students_ids"`
}

// NewCourse validates the ID and name and builds a course with no
// instructor and no enrollments.
func NewCourse(courseID, courseName string) (*Course, error) {
	c := &Course{}
	if err := c.setCourseID(courseID); err != nil {
		return nil, err
	}
	if err := c.SetName(courseName); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Course) setCourseID(id string) error {
	if !validation.NonEmpty(id) {
		return apperrors.NewValidationError("course_id", "must not be empty")
	}
	if !validation.Identifier(id, validation.CourseIDPrefix) {
		return apperrors.NewValidationError("course_id",
			fmt.Sprintf("must start with %q", validation.CourseIDPrefix))
	}
	c.CourseID = id
	return nil
}

// SetName validates and assigns the course name.
func (c *Course) SetName(name string) error {
	if !validation.NonEmpty(name) {
		return apperrors.NewValidationError("course_name", "must not be empty")
	}
	c.CourseName = name
	return nil
}

// SetInstructor assigns the course to an instructor. The slot holds at most
// one instructor: re-assigning the same one succeeds, assigning a different
// one while the slot is occupied fails.
func (c *Course) SetInstructor(instructorID string) error {
	if c.InstructorID != "" && instructorID != "" && c.InstructorID != instructorID {
		return apperrors.NewConflictError(
			fmt.Sprintf("course %s is already assigned to instructor %s", c.CourseName, c.InstructorID))
	}
	c.InstructorID = instructorID
	return nil
}

// ClearInstructor empties the instructor slot.
func (c *Course) ClearInstructor() {
	c.InstructorID = ""
}

// EnrollStudent appends a student ID to the enrollment list. Enrolling the
// same student twice fails without changing the list.
func (c *Course) EnrollStudent(studentID string) error {
	if slices.Contains(c.EnrolledStudents, studentID) {
		return apperrors.NewDuplicateRelationError(
			fmt.Sprintf("student %s is already registered in %s", studentID, c.CourseName))
	}
	c.EnrolledStudents = append(c.EnrolledStudents, studentID)
	return nil
}

// RemoveStudent drops a student ID from the enrollment list; absent IDs are
// a no-op.
func (c *Course) RemoveStudent(studentID string) {
	c.EnrolledStudents = slices.DeleteFunc(c.EnrolledStudents, func(id string) bool {
		return id == studentID
	})
}

// ClearRelations empties the instructor slot and the enrollment list before
// a relationship rebuild.
func (c *Course) ClearRelations() {
	c.InstructorID = ""
	c.EnrolledStudents = nil
}
