package repositories

import (
	"context"
	"fmt"

	"github.com/starschool/records/internal/app/relink"
	"github.com/starschool/records/internal/pkg/apperrors"
	"github.com/starschool/records/internal/pkg/dberrors"
)

// EnrollmentRepository owns the students_courses join table, the
// authoritative record of student↔course enrollment.
type EnrollmentRepository struct {
	q Querier
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(q Querier) *EnrollmentRepository {
	return &EnrollmentRepository{q: q}
}

// ListAll returns every persisted enrollment row in insertion order.
func (r *EnrollmentRepository) ListAll(ctx context.Context) ([]relink.Enrollment, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT student_id, course_id FROM students_courses ORDER BY rowid`)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "error listing enrollments")
	}
	defer rows.Close()

	var enrollments []relink.Enrollment
	for rows.Next() {
		var e relink.Enrollment
		if err := rows.Scan(&e.StudentID, &e.CourseID); err != nil {
			return nil, apperrors.NewStorageError(err, "error scanning enrollment")
		}
		enrollments = append(enrollments, e)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err, "error listing enrollments")
	}

	return enrollments, nil
}

// Exists checks whether an enrollment row is already present.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM students_courses WHERE student_id = ? AND course_id = ?)`,
		studentID, courseID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewStorageError(err, "error checking enrollment")
	}
	return exists, nil
}

// Insert adds an enrollment row. A foreign-key violation means one end of
// the relation vanished between check and write.
func (r *EnrollmentRepository) Insert(ctx context.Context, studentID, courseID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO students_courses (student_id, course_id) VALUES (?, ?)`,
		studentID, courseID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewNotFoundError(
				fmt.Sprintf("student %s or course %s not found", studentID, courseID))
		}
		return apperrors.NewStorageError(err, "error inserting enrollment")
	}
	return nil
}

// Delete removes one enrollment row.
func (r *EnrollmentRepository) Delete(ctx context.Context, studentID, courseID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM students_courses WHERE student_id = ? AND course_id = ?`,
		studentID, courseID)
	if err != nil {
		return apperrors.NewStorageError(err, "error deleting enrollment")
	}
	return nil
}

// StudentsInCourse returns the IDs of the students registered in a course.
func (r *EnrollmentRepository) StudentsInCourse(ctx context.Context, courseID string) ([]string, error) {
	return r.collect(ctx,
		`SELECT student_id FROM students_courses WHERE course_id = ?`, courseID)
}

// DeleteByStudent removes every enrollment of one student, returning the
// IDs of the courses that referenced them.
func (r *EnrollmentRepository) DeleteByStudent(ctx context.Context, studentID string) ([]string, error) {
	courseIDs, err := r.collect(ctx,
		`SELECT course_id FROM students_courses WHERE student_id = ?`, studentID)
	if err != nil {
		return nil, err
	}

	if _, err := r.q.ExecContext(ctx,
		`DELETE FROM students_courses WHERE student_id = ?`, studentID); err != nil {
		return nil, apperrors.NewStorageError(err, "error deleting enrollments by student")
	}

	return courseIDs, nil
}

// DeleteByCourse removes every enrollment in one course, returning the IDs
// of the students that were registered.
func (r *EnrollmentRepository) DeleteByCourse(ctx context.Context, courseID string) ([]string, error) {
	studentIDs, err := r.collect(ctx,
		`SELECT student_id FROM students_courses WHERE course_id = ?`, courseID)
	if err != nil {
		return nil, err
	}

	if _, err := r.q.ExecContext(ctx,
		`DELETE FROM students_courses WHERE course_id = ?`, courseID); err != nil {
		return nil, apperrors.NewStorageError(err, "error deleting enrollments by course")
	}

	return studentIDs, nil
}

// RenameCourse rewrites join rows when a course's primary key changes.
func (r *EnrollmentRepository) RenameCourse(ctx context.Context, oldID, newID string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE students_courses SET course_id = ? WHERE course_id = ?`, newID, oldID)
	if err != nil {
		return apperrors.NewStorageError(err, "error renaming course in enrollments")
	}
	return nil
}

func (r *EnrollmentRepository) collect(ctx context.Context, query string, arg any) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "error querying enrollments")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewStorageError(err, "error scanning enrollment")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err, "error querying enrollments")
	}
	return ids, nil
}
