package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/starschool/records/internal/app/relink"
)

// CSVExporter writes entity collections as delimited text files with a
// header row and derived display fields resolved through the roster maps.
type CSVExporter struct {
	dir string
}

// NewCSVExporter ensures the export directory exists.
func NewCSVExporter(dir string) (*CSVExporter, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}
	return &CSVExporter{dir: dir}, nil
}

// WriteStudents exports the student collection, including the names of the
// registered courses as a derived display field.
func (e *CSVExporter) WriteStudents(roster *relink.Roster) (string, error) {
	records := [][]string{
		{"student_id", "name", "age", "email", "registered_courses"},
	}
	for _, s := range roster.Students {
		names := make([]string, 0, len(s.RegisteredCourses))
		for _, courseID := range s.RegisteredCourses {
			if course, ok := roster.CourseByID[courseID]; ok {
				names = append(names, course.CourseName)
			}
		}
		records = append(records, []string{
			s.StudentID, s.Name, strconv.Itoa(s.Age), s.Email, strings.Join(names, "; "),
		})
	}
	return e.write("students.csv", records)
}

// WriteInstructors exports the instructor collection, including the names
// of the assigned courses.
func (e *CSVExporter) WriteInstructors(roster *relink.Roster) (string, error) {
	records := [][]string{
		{"instructor_id", "name", "age", "email", "assigned_courses"},
	}
	for _, i := range roster.Instructors {
		names := make([]string, 0, len(i.AssignedCourses))
		for _, courseID := range i.AssignedCourses {
			if course, ok := roster.CourseByID[courseID]; ok {
				names = append(names, course.CourseName)
			}
		}
		records = append(records, []string{
			i.InstructorID, i.Name, strconv.Itoa(i.Age), i.Email, strings.Join(names, "; "),
		})
	}
	return e.write("instructors.csv", records)
}

// WriteCourses exports the course collection, including the instructor's
// name and the enrolled students' names.
func (e *CSVExporter) WriteCourses(roster *relink.Roster) (string, error) {
	records := [][]string{
		{"course_id", "course_name", "instructor", "enrolled_students"},
	}
	for _, c := range roster.Courses {
		instructorName := ""
		if instructor, ok := roster.InstructorByID[c.InstructorID]; ok {
			instructorName = instructor.Name
		}
		names := make([]string, 0, len(c.EnrolledStudents))
		for _, studentID := range c.EnrolledStudents {
			if student, ok := roster.StudentByID[studentID]; ok {
				names = append(names, student.Name)
			}
		}
		records = append(records, []string{
			c.CourseID, c.CourseName, instructorName, strings.Join(names, "; "),
		})
	}
	return e.write("courses.csv", records)
}

func (e *CSVExporter) write(name string, records [][]string) (string, error) {
	path := filepath.Join(e.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(records); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
