package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/starschool/records/internal/app/models"
	"github.com/starschool/records/internal/app/relink"
	"github.com/starschool/records/internal/pkg/apperrors"
	"github.com/starschool/records/internal/pkg/dberrors"
	"github.com/starschool/records/internal/pkg/helpers"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	q Querier
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(q Querier) *CourseRepository {
	return &CourseRepository{q: q}
}

// Create inserts a new course row. A primary-key collision is reported as
// a duplicate-key domain error.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (course_id, course_name, course_instructor, enrolled_students)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.q.ExecContext(ctx, query,
		course.CourseID,
		course.CourseName,
		helpers.GetNullString(course.InstructorID),
		helpers.JoinIDs(course.EnrolledStudents),
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewDuplicateKeyError(
				fmt.Sprintf("course ID %s already exists", course.CourseID))
		}
		return apperrors.NewStorageError(err, "error creating course")
	}

	return nil
}

// GetByID retrieves a single course by primary key. The instructor column
// is carried over; the enrollment list stays empty for the rebuild pass.
func (r *CourseRepository) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	query := `
		SELECT course_id, course_name, course_instructor
		FROM courses
		WHERE course_id = ?
	`

	var course models.Course
	var instructorID sql.NullString
	err := r.q.QueryRowContext(ctx, query, courseID).Scan(
		&course.CourseID,
		&course.CourseName,
		&instructorID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(
				fmt.Sprintf("course %s not found", courseID))
		}
		return nil, apperrors.NewStorageError(err, "error retrieving course")
	}
	course.InstructorID = helpers.FromNullString(instructorID)

	return &course, nil
}

// GetAll retrieves the flat course list. Instructor slots and enrollment
// lists stay empty; the rebuild pass fills both from the relation records.
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT course_id, course_name
		FROM courses
		ORDER BY course_id
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "error listing courses")
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.CourseID, &course.CourseName); err != nil {
			return nil, apperrors.NewStorageError(err, "error scanning course")
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err, "error listing courses")
	}

	return courses, nil
}

// ListAssignments returns the persisted course→instructor relation records.
func (r *CourseRepository) ListAssignments(ctx context.Context) ([]relink.Assignment, error) {
	query := `
		SELECT course_id, course_instructor
		FROM courses
		WHERE course_instructor IS NOT NULL AND course_instructor != ''
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "error listing assignments")
	}
	defer rows.Close()

	var assignments []relink.Assignment
	for rows.Next() {
		var a relink.Assignment
		if err := rows.Scan(&a.CourseID, &a.InstructorID); err != nil {
			return nil, apperrors.NewStorageError(err, "error scanning assignment")
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err, "error listing assignments")
	}

	return assignments, nil
}

// Update overwrites the mutable fields of a course by primary key.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET course_name = ?, course_instructor = ?, enrolled_students = ?
		WHERE course_id = ?
	`

	result, err := r.q.ExecContext(ctx, query,
		course.CourseName,
		helpers.GetNullString(course.InstructorID),
		helpers.JoinIDs(course.EnrolledStudents),
		course.CourseID,
	)
	if err != nil {
		return apperrors.NewStorageError(err, "error updating course")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError(err, "error updating course")
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("course %s not found", course.CourseID))
	}

	return nil
}

// SetInstructor writes the course's instructor column; an empty instructor
// ID clears it to NULL.
func (r *CourseRepository) SetInstructor(ctx context.Context, courseID, instructorID string) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE courses SET course_instructor = ? WHERE course_id = ?`,
		helpers.GetNullString(instructorID), courseID)
	if err != nil {
		return apperrors.NewStorageError(err, "error assigning instructor")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError(err, "error assigning instructor")
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("course %s not found", courseID))
	}

	return nil
}

// ClearInstructor drops every course reference to an instructor, returning
// the IDs of the courses that were unlinked.
func (r *CourseRepository) ClearInstructor(ctx context.Context, instructorID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT course_id FROM courses WHERE course_instructor = ?`, instructorID)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "error finding assigned courses")
	}
	defer rows.Close()

	var courseIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewStorageError(err, "error scanning assigned course")
		}
		courseIDs = append(courseIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err, "error finding assigned courses")
	}

	if _, err := r.q.ExecContext(ctx,
		`UPDATE courses SET course_instructor = NULL WHERE course_instructor = ?`,
		instructorID); err != nil {
		return nil, apperrors.NewStorageError(err, "error clearing instructor")
	}

	return courseIDs, nil
}

// Rename changes a course's primary key and display name. Referencing rows
// must be updated in the same transaction; the caller defers foreign-key
// enforcement for its duration.
func (r *CourseRepository) Rename(ctx context.Context, oldID, newID, newName string) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE courses SET course_id = ?, course_name = ? WHERE course_id = ?`,
		newID, newName, oldID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewDuplicateKeyError(
				fmt.Sprintf("course ID %s already exists", newID))
		}
		return apperrors.NewStorageError(err, "error renaming course")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError(err, "error renaming course")
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("course %s not found", oldID))
	}

	return nil
}

// Delete removes a course row by primary key. Join rows and referencing
// columns must be cleaned up first, in the same transaction.
func (r *CourseRepository) Delete(ctx context.Context, courseID string) error {
	result, err := r.q.ExecContext(ctx,
		`DELETE FROM courses WHERE course_id = ?`, courseID)
	if err != nil {
		return apperrors.NewStorageError(err, "error deleting course")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError(err, "error deleting course")
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("course %s not found", courseID))
	}

	return nil
}

// Exists checks whether a course row exists.
func (r *CourseRepository) Exists(ctx context.Context, courseID string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE course_id = ?)`,
		courseID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewStorageError(err, "error checking course existence")
	}
	return exists, nil
}

// RefreshEnrolledColumn recomputes the derived comma-joined student list
// for one course from the authoritative join table.
func (r *CourseRepository) RefreshEnrolledColumn(ctx context.Context, courseID string) error {
	query := `
		UPDATE courses
		SET enrolled_students = IFNULL(
			(SELECT GROUP_CONCAT(student_id)
			 FROM students_courses
			 WHERE course_id = ?), '')
		WHERE course_id = ?
	`

	if _, err := r.q.ExecContext(ctx, query, courseID, courseID); err != nil {
		return apperrors.NewStorageError(err, "error refreshing enrolled students column")
	}
	return nil
}
