package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starschool/records/internal/app/export"
	"github.com/starschool/records/internal/app/repositories"
	"github.com/starschool/records/internal/config"
	"github.com/starschool/records/internal/db"
)

type testApp struct {
	services *Services
	snapPath string
}

// newTestApp wires a full stack (store file, repositories, snapshot writer,
// services) under t.TempDir.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(dir, "school.db")

	schoolDB, err := db.NewSchoolDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = schoolDB.Close() })

	snap, err := export.NewSnapshotWriter(filepath.Join(dir, "snapshots"))
	require.NoError(t, err)

	repos := repositories.NewRepositories(schoolDB)
	return &testApp{
		services: NewServices(schoolDB, repos, snap),
		snapPath: snap.Path(),
	}
}

// seedSchool creates the roster most scenario tests start from.
func seedSchool(t *testing.T, svcs *Services) {
	t.Helper()
	ctx := context.Background()

	_, err := svcs.Students.AddStudent(ctx, "Ann", "ann@starschool.com", 20, "S1")
	require.NoError(t, err)
	_, err = svcs.Students.AddStudent(ctx, "Ben", "ben@starschool.com", 22, "S2")
	require.NoError(t, err)
	_, err = svcs.Instructors.AddInstructor(ctx, "Leslie", "leslie@starschool.com", 40, "I1")
	require.NoError(t, err)
	_, err = svcs.Instructors.AddInstructor(ctx, "Ron", "ron@starschool.com", 50, "I2")
	require.NoError(t, err)
	_, err = svcs.Courses.AddCourse(ctx, "C1", "Algebra")
	require.NoError(t, err)
	_, err = svcs.Courses.AddCourse(ctx, "C2", "Literature")
	require.NoError(t, err)
}
