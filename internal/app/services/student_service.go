package services

import (
	"context"
	"database/sql"

	"github.com/starschool/records/internal/app/models"
)

// StudentService handles student CRUD and its cascade cleanup.
type StudentService struct {
	*deps
}

// AddStudent validates and persists a new student.
func (s *StudentService) AddStudent(ctx context.Context, name, email string, age int, studentID string) (*models.Student, error) {
	student, err := models.NewStudent(name, email, age, studentID)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.refreshSnapshot(ctx)
	return student, nil
}

// UpdateStudent overwrites the mutable fields of an existing student. Each
// field is re-validated through the model before anything is written.
func (s *StudentService) UpdateStudent(ctx context.Context, studentID, name, email string, age int) (*models.Student, error) {
	student, err := s.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if err := student.SetName(name); err != nil {
		return nil, err
	}
	if err := student.SetEmail(email); err != nil {
		return nil, err
	}
	if err := student.SetAge(age); err != nil {
		return nil, err
	}

	if err := s.repos.Students.Update(ctx, student); err != nil {
		return nil, err
	}
	// The model carried an empty registration list; recompute the derived
	// column from the join table rather than trusting it.
	if err := s.repos.Students.RefreshRegisteredColumn(ctx, studentID); err != nil {
		return nil, err
	}

	s.refreshSnapshot(ctx)
	return student, nil
}

// DeleteStudent removes a student and cascades the cleanup: its join rows
// are dropped and every affected course's derived column is recomputed
// before the row goes away.
func (s *StudentService) DeleteStudent(ctx context.Context, studentID string) error {
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txRepos := s.repos.WithTx(tx)

		courseIDs, err := txRepos.Enrollments.DeleteByStudent(ctx, studentID)
		if err != nil {
			return err
		}
		for _, courseID := range courseIDs {
			if err := txRepos.Courses.RefreshEnrolledColumn(ctx, courseID); err != nil {
				return err
			}
		}

		return txRepos.Students.Delete(ctx, studentID)
	})
	if err != nil {
		return err
	}

	s.refreshSnapshot(ctx)
	return nil
}
