package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starschool/records/internal/app/models"
	"github.com/starschool/records/internal/config"
	"github.com/starschool/records/internal/db"
)

// newTestRepos opens a fresh store file under t.TempDir and builds the
// repository container over it.
func newTestRepos(t *testing.T) *Repositories {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "school.db")

	schoolDB, err := db.NewSchoolDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = schoolDB.Close() })

	return NewRepositories(schoolDB)
}

func mustStudent(t *testing.T, id, name string) *models.Student {
	t.Helper()
	s, err := models.NewStudent(name, name+"@starschool.com", 20, id)
	require.NoError(t, err)
	return s
}

func mustInstructor(t *testing.T, id, name string) *models.Instructor {
	t.Helper()
	i, err := models.NewInstructor(name, name+"@starschool.com", 40, id)
	require.NoError(t, err)
	return i
}

func mustCourse(t *testing.T, id, name string) *models.Course {
	t.Helper()
	c, err := models.NewCourse(id, name)
	require.NoError(t, err)
	return c
}

func seedRoster(t *testing.T, repos *Repositories) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, repos.Students.Create(ctx, mustStudent(t, "S1", "ann")))
	require.NoError(t, repos.Students.Create(ctx, mustStudent(t, "S2", "ben")))
	require.NoError(t, repos.Instructors.Create(ctx, mustInstructor(t, "I1", "leslie")))
	require.NoError(t, repos.Courses.Create(ctx, mustCourse(t, "C1", "Algebra")))
	require.NoError(t, repos.Courses.Create(ctx, mustCourse(t, "C2", "Literature")))
}
