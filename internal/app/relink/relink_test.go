package relink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starschool/records/internal/app/models"
)

func makeEntities(t *testing.T) ([]*models.Student, []*models.Instructor, []*models.Course) {
	t.Helper()

	s1, err := models.NewStudent("Ann", "ann@starschool.com", 20, "S1")
	require.NoError(t, err)
	s2, err := models.NewStudent("Ben", "ben@starschool.com", 22, "S2")
	require.NoError(t, err)

	i1, err := models.NewInstructor("Leslie", "leslie@starschool.com", 40, "I1")
	require.NoError(t, err)

	c1, err := models.NewCourse("C1", "Algebra")
	require.NoError(t, err)
	c2, err := models.NewCourse("C2", "Literature")
	require.NoError(t, err)

	return []*models.Student{s1, s2}, []*models.Instructor{i1}, []*models.Course{c1, c2}
}

func TestRebuildLinksSymmetrically(t *testing.T) {
	students, instructors, courses := makeEntities(t)

	roster := Rebuild(students, instructors, courses,
		[]Assignment{{CourseID: "C1", InstructorID: "I1"}},
		[]Enrollment{
			{StudentID: "S1", CourseID: "C1"},
			{StudentID: "S1", CourseID: "C2"},
			{StudentID: "S2", CourseID: "C1"},
		})

	c1 := roster.CourseByID["C1"]
	require.NotNil(t, c1)
	assert.Equal(t, "I1", c1.InstructorID)
	assert.Equal(t, []string{"C1"}, roster.InstructorByID["I1"].AssignedCourses)

	assert.Equal(t, []string{"S1", "S2"}, c1.EnrolledStudents)
	assert.Equal(t, []string{"C1", "C2"}, roster.StudentByID["S1"].RegisteredCourses)
	assert.Equal(t, []string{"C1"}, roster.StudentByID["S2"].RegisteredCourses)
}

func TestRebuildIsIdempotent(t *testing.T) {
	students, instructors, courses := makeEntities(t)
	assignments := []Assignment{{CourseID: "C1", InstructorID: "I1"}}
	enrollments := []Enrollment{
		{StudentID: "S1", CourseID: "C1"},
		{StudentID: "S2", CourseID: "C1"},
	}

	Rebuild(students, instructors, courses, assignments, enrollments)
	first := map[string][]string{
		"S1": append([]string(nil), students[0].RegisteredCourses...),
		"C1": append([]string(nil), courses[0].EnrolledStudents...),
		"I1": append([]string(nil), instructors[0].AssignedCourses...),
	}

	// Rebuilding over already-linked entities must not duplicate anything.
	Rebuild(students, instructors, courses, assignments, enrollments)

	assert.Equal(t, first["S1"], students[0].RegisteredCourses)
	assert.Equal(t, first["C1"], courses[0].EnrolledStudents)
	assert.Equal(t, first["I1"], instructors[0].AssignedCourses)
}

func TestRebuildCollapsesDuplicateRelationRows(t *testing.T) {
	students, instructors, courses := makeEntities(t)

	roster := Rebuild(students, instructors, courses,
		[]Assignment{
			{CourseID: "C1", InstructorID: "I1"},
			{CourseID: "C1", InstructorID: "I1"},
		},
		[]Enrollment{
			{StudentID: "S1", CourseID: "C1"},
			{StudentID: "S1", CourseID: "C1"},
		})

	assert.Equal(t, []string{"C1"}, roster.InstructorByID["I1"].AssignedCourses)
	assert.Equal(t, []string{"S1"}, roster.CourseByID["C1"].EnrolledStudents)
	assert.Equal(t, []string{"C1"}, roster.StudentByID["S1"].RegisteredCourses)
}

func TestRebuildSkipsOrphanedRelations(t *testing.T) {
	students, instructors, courses := makeEntities(t)

	roster := Rebuild(students, instructors, courses,
		[]Assignment{
			{CourseID: "C404", InstructorID: "I1"},
			{CourseID: "C1", InstructorID: "I404"},
		},
		[]Enrollment{
			{StudentID: "S404", CourseID: "C1"},
			{StudentID: "S1", CourseID: "C404"},
		})

	// Nothing was linked, and nothing was half-linked.
	assert.Empty(t, roster.CourseByID["C1"].InstructorID)
	assert.Empty(t, roster.InstructorByID["I1"].AssignedCourses)
	assert.Empty(t, roster.CourseByID["C1"].EnrolledStudents)
	assert.Empty(t, roster.StudentByID["S1"].RegisteredCourses)
}

func TestRebuildClearsStaleLinks(t *testing.T) {
	students, instructors, courses := makeEntities(t)

	// Dirty pre-existing links that no relation record backs.
	require.NoError(t, students[0].RegisterCourse("C2"))
	require.NoError(t, courses[1].EnrollStudent("S1"))
	require.NoError(t, courses[0].SetInstructor("I1"))
	require.NoError(t, instructors[0].AssignCourse("C1"))

	roster := Rebuild(students, instructors, courses, nil, nil)

	assert.Empty(t, roster.StudentByID["S1"].RegisteredCourses)
	assert.Empty(t, roster.CourseByID["C2"].EnrolledStudents)
	assert.Empty(t, roster.CourseByID["C1"].InstructorID)
	assert.Empty(t, roster.InstructorByID["I1"].AssignedCourses)
}
