package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starschool/records/internal/pkg/apperrors"
)

func TestStudentRepositoryCreateDuplicateKey(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Students.Create(ctx, mustStudent(t, "S1", "ann")))

	err := repos.Students.Create(ctx, mustStudent(t, "S1", "impostor"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)
}

func TestStudentRepositoryGetByID(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	seedRoster(t, repos)

	student, err := repos.Students.GetByID(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, "S1", student.StudentID)
	assert.Equal(t, "ann", student.Name)
	assert.Equal(t, "ann@starschool.com", student.Email)
	assert.Empty(t, student.RegisteredCourses)

	_, err = repos.Students.GetByID(ctx, "S404")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStudentRepositoryGetAllIsFlat(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	seedRoster(t, repos)
	require.NoError(t, repos.Enrollments.Insert(ctx, "S1", "C1"))

	students, err := repos.Students.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	for _, s := range students {
		assert.Empty(t, s.RegisteredCourses, "flat load must leave links to the rebuild pass")
	}
}

func TestStudentRepositoryUpdate(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	seedRoster(t, repos)

	student, err := repos.Students.GetByID(ctx, "S1")
	require.NoError(t, err)
	require.NoError(t, student.SetAge(21))
	require.NoError(t, repos.Students.Update(ctx, student))

	got, err := repos.Students.GetByID(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, 21, got.Age)

	missing := mustStudent(t, "S404", "ghost")
	assert.ErrorIs(t, repos.Students.Update(ctx, missing), apperrors.ErrNotFound)
}

func TestStudentRepositoryDelete(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	seedRoster(t, repos)

	require.NoError(t, repos.Students.Delete(ctx, "S1"))
	_, err := repos.Students.GetByID(ctx, "S1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, repos.Students.Delete(ctx, "S1"), apperrors.ErrNotFound)
}

func TestStudentRepositoryRefreshRegisteredColumn(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	seedRoster(t, repos)

	require.NoError(t, repos.Enrollments.Insert(ctx, "S1", "C1"))
	require.NoError(t, repos.Enrollments.Insert(ctx, "S1", "C2"))
	require.NoError(t, repos.Students.RefreshRegisteredColumn(ctx, "S1"))

	var column string
	err := repos.Students.q.QueryRowContext(ctx,
		`SELECT registered_courses FROM students WHERE student_id = ?`, "S1").Scan(&column)
	require.NoError(t, err)
	assert.Equal(t, "C1,C2", column)
}
