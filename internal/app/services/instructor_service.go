package services

import (
	"context"
	"database/sql"

	"github.com/starschool/records/internal/app/models"
)

// InstructorService handles instructor CRUD and its cascade cleanup.
type InstructorService struct {
	*deps
}

// AddInstructor validates and persists a new instructor.
func (s *InstructorService) AddInstructor(ctx context.Context, name, email string, age int, instructorID string) (*models.Instructor, error) {
	instructor, err := models.NewInstructor(name, email, age, instructorID)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Instructors.Create(ctx, instructor); err != nil {
		return nil, err
	}

	s.refreshSnapshot(ctx)
	return instructor, nil
}

// UpdateInstructor overwrites the mutable fields of an existing instructor,
// re-validating every field through the model first.
func (s *InstructorService) UpdateInstructor(ctx context.Context, instructorID, name, email string, age int) (*models.Instructor, error) {
	instructor, err := s.repos.Instructors.GetByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	if err := instructor.SetName(name); err != nil {
		return nil, err
	}
	if err := instructor.SetEmail(email); err != nil {
		return nil, err
	}
	if err := instructor.SetAge(age); err != nil {
		return nil, err
	}

	if err := s.repos.Instructors.Update(ctx, instructor); err != nil {
		return nil, err
	}
	if err := s.repos.Instructors.RefreshAssignedColumn(ctx, instructorID); err != nil {
		return nil, err
	}

	s.refreshSnapshot(ctx)
	return instructor, nil
}

// DeleteInstructor removes an instructor and cascades the cleanup: every
// course it taught has its instructor slot cleared before the row drops.
func (s *InstructorService) DeleteInstructor(ctx context.Context, instructorID string) error {
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txRepos := s.repos.WithTx(tx)

		if _, err := txRepos.Courses.ClearInstructor(ctx, instructorID); err != nil {
			return err
		}

		return txRepos.Instructors.Delete(ctx, instructorID)
	})
	if err != nil {
		return err
	}

	s.refreshSnapshot(ctx)
	return nil
}
