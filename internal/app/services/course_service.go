package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/starschool/records/internal/app/models"
	"github.com/starschool/records/internal/pkg/apperrors"
)

// CourseService handles course CRUD, the propagate-and-rename operation,
// and course deletion cascades.
type CourseService struct {
	*deps
}

// AddCourse validates and persists a new course with no instructor and no
// enrollments.
func (s *CourseService) AddCourse(ctx context.Context, courseID, courseName string) (*models.Course, error) {
	course, err := models.NewCourse(courseID, courseName)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.refreshSnapshot(ctx)
	return course, nil
}

// UpdateCourseName changes a course's display name, keeping its identity.
func (s *CourseService) UpdateCourseName(ctx context.Context, courseID, newName string) (*models.Course, error) {
	course, err := s.repos.Courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if err := course.SetName(newName); err != nil {
		return nil, err
	}

	if err := s.repos.Courses.Update(ctx, course); err != nil {
		return nil, err
	}
	if err := s.repos.Courses.RefreshEnrolledColumn(ctx, courseID); err != nil {
		return nil, err
	}

	s.refreshSnapshot(ctx)
	return course, nil
}

// RenameCourse changes a course's primary key (and name) and propagates the
// new ID to every referencing row: the join table and the derived columns
// of registered students and the assigned instructor. IDs are never renamed
// by a plain field write; this is the only rename path.
func (s *CourseService) RenameCourse(ctx context.Context, oldID, newID, newName string) error {
	// Validate the new identity before touching anything.
	if _, err := models.NewCourse(newID, newName); err != nil {
		return err
	}

	taken, err := s.repos.Courses.Exists(ctx, newID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewDuplicateKeyError(
			fmt.Sprintf("course ID %s already exists", newID))
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// Join rows still hold the old ID while the course row changes;
		// defer enforcement until the whole rename has been applied.
		if _, err := tx.ExecContext(ctx, "PRAGMA defer_foreign_keys = ON"); err != nil {
			return apperrors.NewStorageError(err, "error deferring foreign keys")
		}

		txRepos := s.repos.WithTx(tx)

		if err := txRepos.Courses.Rename(ctx, oldID, newID, newName); err != nil {
			return err
		}
		if err := txRepos.Enrollments.RenameCourse(ctx, oldID, newID); err != nil {
			return err
		}

		studentIDs, err := txRepos.Enrollments.StudentsInCourse(ctx, newID)
		if err != nil {
			return err
		}
		for _, studentID := range studentIDs {
			if err := txRepos.Students.RefreshRegisteredColumn(ctx, studentID); err != nil {
				return err
			}
		}

		course, err := txRepos.Courses.GetByID(ctx, newID)
		if err != nil {
			return err
		}
		if course.InstructorID != "" {
			if err := txRepos.Instructors.RefreshAssignedColumn(ctx, course.InstructorID); err != nil {
				return err
			}
		}

		return txRepos.Courses.RefreshEnrolledColumn(ctx, newID)
	})
	if err != nil {
		return err
	}

	s.refreshSnapshot(ctx)
	return nil
}

// DeleteCourse removes a course and cascades the cleanup: join rows drop,
// every registered student's derived column is recomputed, and the assigned
// instructor (if any) loses the course from its list.
func (s *CourseService) DeleteCourse(ctx context.Context, courseID string) error {
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txRepos := s.repos.WithTx(tx)

		course, err := txRepos.Courses.GetByID(ctx, courseID)
		if err != nil {
			return err
		}

		studentIDs, err := txRepos.Enrollments.DeleteByCourse(ctx, courseID)
		if err != nil {
			return err
		}
		for _, studentID := range studentIDs {
			if err := txRepos.Students.RefreshRegisteredColumn(ctx, studentID); err != nil {
				return err
			}
		}

		if err := txRepos.Courses.Delete(ctx, courseID); err != nil {
			return err
		}

		if course.InstructorID != "" {
			if err := txRepos.Instructors.RefreshAssignedColumn(ctx, course.InstructorID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.refreshSnapshot(ctx)
	return nil
}
