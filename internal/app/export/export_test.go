package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starschool/records/internal/app/models"
	"github.com/starschool/records/internal/app/relink"
)

func testRoster(t *testing.T) *relink.Roster {
	t.Helper()

	s1, err := models.NewStudent("Ann", "ann@starschool.com", 20, "S1")
	require.NoError(t, err)
	i1, err := models.NewInstructor("Leslie", "leslie@starschool.com", 40, "I1")
	require.NoError(t, err)
	c1, err := models.NewCourse("C1", "Algebra")
	require.NoError(t, err)

	return relink.Rebuild(
		[]*models.Student{s1},
		[]*models.Instructor{i1},
		[]*models.Course{c1},
		[]relink.Assignment{{CourseID: "C1", InstructorID: "I1"}},
		[]relink.Enrollment{{StudentID: "S1", CourseID: "C1"}},
	)
}

func TestSnapshotWriterRefresh(t *testing.T) {
	dir := t.TempDir()
	w, err := NewSnapshotWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.Refresh(context.Background(), testRoster(t)))

	data, err := os.ReadFile(w.Path())
	require.NoError(t, err)

	var doc SnapshotDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Students, 1)
	assert.Equal(t, "S1", doc.Students[0].StudentID)
	assert.Equal(t, []string{"C1"}, doc.Students[0].RegisteredCourses)
	require.Len(t, doc.Courses, 1)
	assert.Equal(t, "I1", doc.Courses[0].InstructorID)
	assert.False(t, doc.ExportedAt.IsZero())

	// A second refresh replaces the document and leaves no temp files.
	require.NoError(t, w.Refresh(context.Background(), testRoster(t)))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVExporterStudents(t *testing.T) {
	e, err := NewCSVExporter(t.TempDir())
	require.NoError(t, err)

	path, err := e.WriteStudents(testRoster(t))
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t,
		[]string{"student_id", "name", "age", "email", "registered_courses"},
		records[0])
	// The derived field carries the course name, not the ID.
	assert.Equal(t, []string{"S1", "Ann", "20", "ann@starschool.com", "Algebra"}, records[1])
}

func TestCSVExporterCourses(t *testing.T) {
	e, err := NewCSVExporter(t.TempDir())
	require.NoError(t, err)

	path, err := e.WriteCourses(testRoster(t))
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t,
		[]string{"course_id", "course_name", "instructor", "enrolled_students"},
		records[0])
	assert.Equal(t, []string{"C1", "Algebra", "Leslie", "Ann"}, records[1])
}

func TestCSVExporterInstructors(t *testing.T) {
	e, err := NewCSVExporter(t.TempDir())
	require.NoError(t, err)

	path, err := e.WriteInstructors(testRoster(t))
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"I1", "Leslie", "40", "leslie@starschool.com", "Algebra"}, records[1])
}
