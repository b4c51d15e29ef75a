package repositories

import (
	"context"
	"database/sql"

	"github.com/starschool/records/internal/db"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories are built over it so the same queries serve both plain
// operations and transaction-scoped composite operations.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repositories holds all repository instances bound to the shared store handle.
type Repositories struct {
	Students    *StudentRepository
	Instructors *InstructorRepository
	Courses     *CourseRepository
	Enrollments *EnrollmentRepository
}

// NewRepositories creates all repositories over the store handle.
func NewRepositories(schoolDB *db.SchoolDB) *Repositories {
	return &Repositories{
		Students:    NewStudentRepository(schoolDB.DB),
		Instructors: NewInstructorRepository(schoolDB.DB),
		Courses:     NewCourseRepository(schoolDB.DB),
		Enrollments: NewEnrollmentRepository(schoolDB.DB),
	}
}

// WithTx returns a container whose repositories run against the given
// transaction instead of the shared handle.
func (r *Repositories) WithTx(tx *sql.Tx) *Repositories {
	return &Repositories{
		Students:    NewStudentRepository(tx),
		Instructors: NewInstructorRepository(tx),
		Courses:     NewCourseRepository(tx),
		Enrollments: NewEnrollmentRepository(tx),
	}
}
