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

// InstructorRepository handles database operations for instructors
type InstructorRepository struct {
	q Querier
}

// NewInstructorRepository creates a new instructor repository
func NewInstructorRepository(q Querier) *InstructorRepository {
	return &InstructorRepository{q: q}
}

// Create inserts a new instructor row. A primary-key collision is reported
// as a duplicate-key domain error.
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	query := `
		INSERT INTO instructors (instructor_id, name, age, email, assigned_courses)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.q.ExecContext(ctx, query,
		instructor.InstructorID,
		instructor.Name,
		instructor.Age,
		instructor.Email,
		helpers.JoinIDs(instructor.AssignedCourses),
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewDuplicateKeyError(
				fmt.Sprintf("instructor ID %s already exists", instructor.InstructorID))
		}
		return apperrors.NewStorageError(err, "error creating instructor")
	}

	return nil
}

// GetByID retrieves a single instructor by primary key, with its
// assignment list left empty for the rebuild pass.
func (r *InstructorRepository) GetByID(ctx context.Context, instructorID string) (*models.Instructor, error) {
	query := `
		SELECT instructor_id, name, age, email
		FROM instructors
		WHERE instructor_id = ?
	`

	var instructor models.Instructor
	err := r.q.QueryRowContext(ctx, query, instructorID).Scan(
		&instructor.InstructorID,
		&instructor.Name,
		&instructor.Age,
		&instructor.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(
				fmt.Sprintf("instructor %s not found", instructorID))
		}
		return nil, apperrors.NewStorageError(err, "error retrieving instructor")
	}

	return &instructor, nil
}

// GetAll retrieves the flat instructor list with empty assignment lists.
func (r *InstructorRepository) GetAll(ctx context.Context) ([]*models.Instructor, error) {
	query := `
		SELECT instructor_id, name, age, email
		FROM instructors
		ORDER BY instructor_id
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "error listing instructors")
	}
	defer rows.Close()

	var instructors []*models.Instructor
	for rows.Next() {
		var instructor models.Instructor
		if err := rows.Scan(
			&instructor.InstructorID,
			&instructor.Name,
			&instructor.Age,
			&instructor.Email,
		); err != nil {
			return nil, apperrors.NewStorageError(err, "error scanning instructor")
		}
		instructors = append(instructors, &instructor)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err, "error listing instructors")
	}

	return instructors, nil
}

// Update overwrites the mutable fields of an instructor by primary key.
func (r *InstructorRepository) Update(ctx context.Context, instructor *models.Instructor) error {
	query := `
		UPDATE instructors
		SET name = ?, age = ?, email = ?, assigned_courses = ?
		WHERE instructor_id = ?
	`

	result, err := r.q.ExecContext(ctx, query,
		instructor.Name,
		instructor.Age,
		instructor.Email,
		helpers.JoinIDs(instructor.AssignedCourses),
		instructor.InstructorID,
	)
	if err != nil {
		return apperrors.NewStorageError(err, "error updating instructor")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError(err, "error updating instructor")
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("instructor %s not found", instructor.InstructorID))
	}

	return nil
}

// Delete removes an instructor row by primary key. Courses referencing the
// instructor must be unlinked first, in the same transaction.
func (r *InstructorRepository) Delete(ctx context.Context, instructorID string) error {
	result, err := r.q.ExecContext(ctx,
		`DELETE FROM instructors WHERE instructor_id = ?`, instructorID)
	if err != nil {
		return apperrors.NewStorageError(err, "error deleting instructor")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError(err, "error deleting instructor")
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("instructor %s not found", instructorID))
	}

	return nil
}

// Exists checks whether an instructor row exists.
func (r *InstructorRepository) Exists(ctx context.Context, instructorID string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM instructors WHERE instructor_id = ?)`,
		instructorID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewStorageError(err, "error checking instructor existence")
	}
	return exists, nil
}

// RefreshAssignedColumn recomputes the derived comma-joined course list for
// one instructor from the authoritative course_instructor column.
func (r *InstructorRepository) RefreshAssignedColumn(ctx context.Context, instructorID string) error {
	query := `
		UPDATE instructors
		SET assigned_courses = IFNULL(
			(SELECT GROUP_CONCAT(course_id)
			 FROM courses
			 WHERE course_instructor = ?), '')
		WHERE instructor_id = ?
	`

	if _, err := r.q.ExecContext(ctx, query, instructorID, instructorID); err != nil {
		return apperrors.NewStorageError(err, "error refreshing assigned courses column")
	}
	return nil
}
