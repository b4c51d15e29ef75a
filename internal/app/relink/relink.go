// Package relink reconstructs the cross-references between students,
// instructors, and courses from the persisted relation records.
//
// Every read path runs the flat lists through Rebuild before handing them
// to a consumer: appending links without clearing first accumulates
// duplicates across repeated loads, and resolving through the lookup maps
// keeps orphaned relation rows from producing half-linked entities.
package relink

import (
	"github.com/starschool/records/internal/app/models"
	"github.com/starschool/records/internal/pkg/logger"
)

// Assignment is a persisted course→instructor relation record.
type Assignment struct {
	CourseID     string
	InstructorID string
}

// Enrollment is a persisted student↔course join row.
type Enrollment struct {
	StudentID string
	CourseID  string
}

// Roster is the authoritative in-memory snapshot: the three entity lists
// with every cross-reference populated, plus ID-keyed lookup maps.
type Roster struct {
	Students    []*models.Student
	Instructors []*models.Instructor
	Courses     []*models.Course

	StudentByID    map[string]*models.Student
	InstructorByID map[string]*models.Instructor
	CourseByID     map[string]*models.Course
}

// Rebuild links the flat entity lists according to the relation records.
// It is idempotent: all relationship collections are cleared up front, and
// every link is presence-checked before it is added, so duplicate relation
// rows collapse to a single link. Relation rows whose ends no longer exist
// are skipped and logged, never half-applied.
func Rebuild(
	students []*models.Student,
	instructors []*models.Instructor,
	courses []*models.Course,
	assignments []Assignment,
	enrollments []Enrollment,
) *Roster {
	r := &Roster{
		Students:       students,
		Instructors:    instructors,
		Courses:        courses,
		StudentByID:    make(map[string]*models.Student, len(students)),
		InstructorByID: make(map[string]*models.Instructor, len(instructors)),
		CourseByID:     make(map[string]*models.Course, len(courses)),
	}

	for _, s := range students {
		s.ClearCourses()
		r.StudentByID[s.StudentID] = s
	}
	for _, i := range instructors {
		i.ClearCourses()
		r.InstructorByID[i.InstructorID] = i
	}
	for _, c := range courses {
		c.ClearRelations()
		r.CourseByID[c.CourseID] = c
	}

	for _, a := range assignments {
		course, ok := r.CourseByID[a.CourseID]
		if !ok {
			logger.Warn().Str("courseId", a.CourseID).Str("instructorId", a.InstructorID).
				Msg("Skipping assignment for missing course")
			continue
		}
		instructor, ok := r.InstructorByID[a.InstructorID]
		if !ok {
			logger.Warn().Str("courseId", a.CourseID).Str("instructorId", a.InstructorID).
				Msg("Skipping assignment for missing instructor")
			continue
		}
		if err := course.SetInstructor(instructor.InstructorID); err != nil {
			logger.Warn().Str("courseId", a.CourseID).Str("instructorId", a.InstructorID).
				Msg("Skipping assignment for occupied course")
			continue
		}
		if err := instructor.AssignCourse(course.CourseID); err != nil {
			continue
		}
	}

	for _, e := range enrollments {
		student, ok := r.StudentByID[e.StudentID]
		if !ok {
			logger.Warn().Str("studentId", e.StudentID).Str("courseId", e.CourseID).
				Msg("Skipping enrollment for missing student")
			continue
		}
		course, ok := r.CourseByID[e.CourseID]
		if !ok {
			logger.Warn().Str("studentId", e.StudentID).Str("courseId", e.CourseID).
				Msg("Skipping enrollment for missing course")
			continue
		}
		// Duplicate join rows collapse to a single link.
		if err := course.EnrollStudent(student.StudentID); err != nil {
			continue
		}
		if err := student.RegisterCourse(course.CourseID); err != nil {
			continue
		}
	}

	return r
}
