package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/starschool/records/internal/app/services"
	"github.com/starschool/records/internal/pkg/apperrors"
)

// CreateDemoData populates a small demo roster. Every step tolerates
// already-existing records so seeding stays idempotent across runs.
func CreateDemoData(ctx context.Context, svcs *services.Services, lgr zerolog.Logger) error {
	lgr.Info().Msg("Seeding demo roster...")
	var finalErr error

	students := []struct {
		id, name, email string
		age             int
	}{
		{"S1001", "Ann Perkins", "ann@starschool.com", 20},
		{"S1002", "Ben Wyatt", "ben@starschool.com", 22},
		{"S1003", "April Ludgate", "april@starschool.com", 19},
	}
	for _, s := range students {
		if _, err := svcs.Students.AddStudent(ctx, s.name, s.email, s.age, s.id); err != nil &&
			!errors.Is(err, apperrors.ErrDuplicateKey) {
			lgr.Error().Err(err).Str("studentId", s.id).Msg("Error seeding student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	instructors := []struct {
		id, name, email string
		age             int
	}{
		{"I2001", "Leslie Knope", "leslie@starschool.com", 40},
		{"I2002", "Ron Swanson", "ron@starschool.com", 50},
	}
	for _, i := range instructors {
		if _, err := svcs.Instructors.AddInstructor(ctx, i.name, i.email, i.age, i.id); err != nil &&
			!errors.Is(err, apperrors.ErrDuplicateKey) {
			lgr.Error().Err(err).Str("instructorId", i.id).Msg("Error seeding instructor")
			finalErr = errors.Join(finalErr, err)
		}
	}

	courses := []struct{ id, name string }{
		{"C101", "Algebra"},
		{"C102", "Literature"},
		{"C103", "Woodworking"},
	}
	for _, c := range courses {
		if _, err := svcs.Courses.AddCourse(ctx, c.id, c.name); err != nil &&
			!errors.Is(err, apperrors.ErrDuplicateKey) {
			lgr.Error().Err(err).Str("courseId", c.id).Msg("Error seeding course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	assignments := []struct{ instructorID, courseID string }{
		{"I2001", "C101"},
		{"I2002", "C103"},
	}
	for _, a := range assignments {
		if err := svcs.Registrar.AssignInstructorToCourse(ctx, a.instructorID, a.courseID); err != nil &&
			!errors.Is(err, apperrors.ErrConflict) {
			lgr.Error().Err(err).Str("courseId", a.courseID).Msg("Error seeding assignment")
			finalErr = errors.Join(finalErr, err)
		}
	}

	enrollments := []struct{ studentID, courseID string }{
		{"S1001", "C101"},
		{"S1001", "C102"},
		{"S1002", "C101"},
		{"S1003", "C103"},
	}
	for _, e := range enrollments {
		if err := svcs.Registrar.RegisterStudentInCourse(ctx, e.studentID, e.courseID); err != nil &&
			!errors.Is(err, apperrors.ErrDuplicateRelation) {
			lgr.Error().Err(err).Str("studentId", e.studentID).Str("courseId", e.courseID).
				Msg("Error seeding enrollment")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Demo roster seeding finished")
	return finalErr
}
