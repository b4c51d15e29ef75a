package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/starschool/records/internal/app/relink"
	"github.com/starschool/records/internal/pkg/apperrors"
)

// RegistrarService owns the relationship operations: loading the linked
// roster, registering students in courses, and assigning instructors.
type RegistrarService struct {
	*deps
}

// LoadRoster returns the authoritative in-memory snapshot: flat lists read
// from the store and cross-linked by the rebuild pass.
func (s *RegistrarService) LoadRoster(ctx context.Context) (*relink.Roster, error) {
	return s.loadRoster(ctx)
}

// RegisterStudentInCourse inserts the enrollment join row and recomputes
// both derived columns in one transaction. Registering an enrolled student
// again fails without touching the store.
func (s *RegistrarService) RegisterStudentInCourse(ctx context.Context, studentID, courseID string) error {
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txRepos := s.repos.WithTx(tx)

		exists, err := txRepos.Students.Exists(ctx, studentID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewNotFoundError(fmt.Sprintf("student %s not found", studentID))
		}

		exists, err = txRepos.Courses.Exists(ctx, courseID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewNotFoundError(fmt.Sprintf("course %s not found", courseID))
		}

		registered, err := txRepos.Enrollments.Exists(ctx, studentID, courseID)
		if err != nil {
			return err
		}
		if registered {
			return apperrors.NewDuplicateRelationError(
				fmt.Sprintf("student %s is already registered in %s", studentID, courseID))
		}

		if err := txRepos.Enrollments.Insert(ctx, studentID, courseID); err != nil {
			return err
		}
		if err := txRepos.Students.RefreshRegisteredColumn(ctx, studentID); err != nil {
			return err
		}
		return txRepos.Courses.RefreshEnrolledColumn(ctx, courseID)
	})
	if err != nil {
		return err
	}

	s.refreshSnapshot(ctx)
	return nil
}

// UnregisterStudentFromCourse removes the enrollment join row and
// recomputes both derived columns.
func (s *RegistrarService) UnregisterStudentFromCourse(ctx context.Context, studentID, courseID string) error {
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txRepos := s.repos.WithTx(tx)

		registered, err := txRepos.Enrollments.Exists(ctx, studentID, courseID)
		if err != nil {
			return err
		}
		if !registered {
			return apperrors.NewNotFoundError(
				fmt.Sprintf("student %s is not registered in %s", studentID, courseID))
		}

		if err := txRepos.Enrollments.Delete(ctx, studentID, courseID); err != nil {
			return err
		}
		if err := txRepos.Students.RefreshRegisteredColumn(ctx, studentID); err != nil {
			return err
		}
		return txRepos.Courses.RefreshEnrolledColumn(ctx, courseID)
	})
	if err != nil {
		return err
	}

	s.refreshSnapshot(ctx)
	return nil
}

// AssignInstructorToCourse fills the course's instructor slot. Assigning
// the same instructor again succeeds; a different instructor while the slot
// is occupied is a conflict.
func (s *RegistrarService) AssignInstructorToCourse(ctx context.Context, instructorID, courseID string) error {
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txRepos := s.repos.WithTx(tx)

		exists, err := txRepos.Instructors.Exists(ctx, instructorID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewNotFoundError(fmt.Sprintf("instructor %s not found", instructorID))
		}

		course, err := txRepos.Courses.GetByID(ctx, courseID)
		if err != nil {
			return err
		}

		// The single-assignment rule lives in the model.
		if err := course.SetInstructor(instructorID); err != nil {
			return err
		}

		if err := txRepos.Courses.SetInstructor(ctx, courseID, instructorID); err != nil {
			return err
		}
		return txRepos.Instructors.RefreshAssignedColumn(ctx, instructorID)
	})
	if err != nil {
		return err
	}

	s.refreshSnapshot(ctx)
	return nil
}
