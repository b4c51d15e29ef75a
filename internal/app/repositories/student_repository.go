package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/starschool/records/internal/app/models"
	"github.com/starschool/records/internal/pkg/apperrors"
	"github.com/starschool/records/internal/pkg/dberrors"
	"github.com/starschool/records/internal/pkg/helpers"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	q Querier
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(q Querier) *StudentRepository {
	return &StudentRepository{q: q}
}

// Create inserts a new student row. A primary-key collision is reported as
// a duplicate-key domain error.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (student_id, name, age, email, registered_courses)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.q.ExecContext(ctx, query,
		student.StudentID,
		student.Name,
		student.Age,
		student.Email,
		helpers.JoinIDs(student.RegisteredCourses),
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewDuplicateKeyError(
				fmt.Sprintf("student ID %s already exists", student.StudentID))
		}
		return apperrors.NewStorageError(err, "error creating student")
	}

	return nil
}

// GetByID retrieves a single student by primary key, with its registration
// list left empty for the rebuild pass.
func (r *StudentRepository) GetByID(ctx context.Context, studentID string) (*models.Student, error) {
	query := `
		SELECT student_id, name, age, email
		FROM students
		WHERE student_id = ?
	`

	var student models.Student
	err := r.q.QueryRowContext(ctx, query, studentID).Scan(
		&student.StudentID,
		&student.Name,
		&student.Age,
		&student.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(
				fmt.Sprintf("student %s not found", studentID))
		}
		return nil, apperrors.NewStorageError(err, "error retrieving student")
	}

	return &student, nil
}

// GetAll retrieves the flat student list. Registration lists stay empty;
// the relationship rebuild pass fills them from the join table.
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT student_id, name, age, email
		FROM students
		ORDER BY student_id
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "error listing students")
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.StudentID,
			&student.Name,
			&student.Age,
			&student.Email,
		); err != nil {
			return nil, apperrors.NewStorageError(err, "error scanning student")
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err, "error listing students")
	}

	return students, nil
}

// Update overwrites the mutable fields of a student by primary key.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = ?, age = ?, email = ?, registered_courses = ?
		WHERE student_id = ?
	`

	result, err := r.q.ExecContext(ctx, query,
		student.Name,
		student.Age,
		student.Email,
		helpers.JoinIDs(student.RegisteredCourses),
		student.StudentID,
	)
	if err != nil {
		return apperrors.NewStorageError(err, "error updating student")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError(err, "error updating student")
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("student %s not found", student.StudentID))
	}

	return nil
}

// Delete removes a student row by primary key. Relationship cleanup is the
// caller's responsibility and must run in the same transaction.
func (r *StudentRepository) Delete(ctx context.Context, studentID string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM students WHERE student_id = ?`, studentID)
	if err != nil {
		return apperrors.NewStorageError(err, "error deleting student")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError(err, "error deleting student")
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("student %s not found", studentID))
	}

	return nil
}

// Exists checks whether a student row exists.
func (r *StudentRepository) Exists(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE student_id = ?)`,
		studentID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewStorageError(err, "error checking student existence")
	}
	return exists, nil
}

// RefreshRegisteredColumn recomputes the derived comma-joined course list
// for one student from the authoritative join table.
func (r *StudentRepository) RefreshRegisteredColumn(ctx context.Context, studentID string) error {
	query := `
		UPDATE students
		SET registered_courses = IFNULL(
			(SELECT GROUP_CONCAT(course_id)
			 FROM students_courses
			 WHERE student_id = ?), '')
		WHERE student_id = ?
	`

	if _, err := r.q.ExecContext(ctx, query, studentID, studentID); err != nil {
		return apperrors.NewStorageError(err, "error refreshing registered courses column")
	}
	return nil
}
