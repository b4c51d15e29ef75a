// Command school is a thin front end over the records core: it parses a
// subcommand, calls the matching service operation, and prints the result.
// All consistency logic lives below the service boundary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/starschool/records/internal/app/relink"
	"github.com/starschool/records/internal/bootstrap"
	"github.com/starschool/records/internal/pkg/apperrors"
	"github.com/starschool/records/internal/pkg/logger"
	"github.com/starschool/records/internal/seed"
)

const usage = `Usage: school [-config path] <command> [flags]

Commands:
  list                 print the full roster
  add-student          -id -name -email -age
  update-student       -id -name -email -age
  delete-student       -id
  add-instructor       -id -name -email -age
  update-instructor    -id -name -email -age
  delete-instructor    -id
  add-course           -id -name
  rename-course        -old -new -name
  delete-course        -id
  register             -student -course
  unregister           -student -course
  assign               -instructor -course
  introduce            -id
  export               write CSV exports
  seed                 populate a demo roster
`

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	app, err := bootstrap.NewApp(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}

	ctx := context.Background()
	runErr := run(ctx, app, flag.Arg(0), flag.Args()[1:])

	if err := app.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Shutdown reported errors")
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, "error:", runErr)
		os.Exit(exitCode(runErr))
	}
}

// exitCode maps domain errors to exit statuses: bad input or state gets 1,
// unexpected storage failures get 2.
func exitCode(err error) int {
	if apperrors.Is(err, apperrors.ErrValidation,
		apperrors.ErrNotFound,
		apperrors.ErrDuplicateKey,
		apperrors.ErrDuplicateRelation,
		apperrors.ErrConflict) {
		return 1
	}
	return 2
}

func run(ctx context.Context, app *bootstrap.App, command string, args []string) error {
	svcs := app.Services

	switch command {
	case "list":
		roster, err := svcs.Registrar.LoadRoster(ctx)
		if err != nil {
			return err
		}
		printRoster(roster)
		return nil

	case "add-student", "update-student":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.String("id", "", "student ID")
		name := fs.String("name", "", "name")
		email := fs.String("email", "", "email")
		age := fs.Int("age", 0, "age")
		fs.Parse(args)
		if command == "add-student" {
			_, err := svcs.Students.AddStudent(ctx, *name, *email, *age, *id)
			return err
		}
		_, err := svcs.Students.UpdateStudent(ctx, *id, *name, *email, *age)
		return err

	case "delete-student":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.String("id", "", "student ID")
		fs.Parse(args)
		return svcs.Students.DeleteStudent(ctx, *id)

	case "add-instructor", "update-instructor":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.String("id", "", "instructor ID")
		name := fs.String("name", "", "name")
		email := fs.String("email", "", "email")
		age := fs.Int("age", 0, "age")
		fs.Parse(args)
		if command == "add-instructor" {
			_, err := svcs.Instructors.AddInstructor(ctx, *name, *email, *age, *id)
			return err
		}
		_, err := svcs.Instructors.UpdateInstructor(ctx, *id, *name, *email, *age)
		return err

	case "delete-instructor":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.String("id", "", "instructor ID")
		fs.Parse(args)
		return svcs.Instructors.DeleteInstructor(ctx, *id)

	case "add-course":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.String("id", "", "course ID")
		name := fs.String("name", "", "course name")
		fs.Parse(args)
		_, err := svcs.Courses.AddCourse(ctx, *id, *name)
		return err

	case "rename-course":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		oldID := fs.String("old", "", "current course ID")
		newID := fs.String("new", "", "new course ID")
		name := fs.String("name", "", "new course name")
		fs.Parse(args)
		return svcs.Courses.RenameCourse(ctx, *oldID, *newID, *name)

	case "delete-course":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.String("id", "", "course ID")
		fs.Parse(args)
		return svcs.Courses.DeleteCourse(ctx, *id)

	case "register", "unregister":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		studentID := fs.String("student", "", "student ID")
		courseID := fs.String("course", "", "course ID")
		fs.Parse(args)
		if command == "register" {
			return svcs.Registrar.RegisterStudentInCourse(ctx, *studentID, *courseID)
		}
		return svcs.Registrar.UnregisterStudentFromCourse(ctx, *studentID, *courseID)

	case "assign":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		instructorID := fs.String("instructor", "", "instructor ID")
		courseID := fs.String("course", "", "course ID")
		fs.Parse(args)
		return svcs.Registrar.AssignInstructorToCourse(ctx, *instructorID, *courseID)

	case "introduce":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.String("id", "", "student or instructor ID")
		fs.Parse(args)
		roster, err := svcs.Registrar.LoadRoster(ctx)
		if err != nil {
			return err
		}
		if student, ok := roster.StudentByID[*id]; ok {
			fmt.Println(student.Introduce())
			return nil
		}
		if instructor, ok := roster.InstructorByID[*id]; ok {
			fmt.Println(instructor.Introduce())
			return nil
		}
		return fmt.Errorf("no person with ID %s", *id)

	case "export":
		roster, err := svcs.Registrar.LoadRoster(ctx)
		if err != nil {
			return err
		}
		for _, write := range []func(*relink.Roster) (string, error){
			app.CSV.WriteStudents, app.CSV.WriteInstructors, app.CSV.WriteCourses,
		} {
			path, err := write(roster)
			if err != nil {
				return err
			}
			fmt.Println("wrote", path)
		}
		return nil

	case "seed":
		return seed.CreateDemoData(ctx, svcs, app.Logger)

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printRoster(roster *relink.Roster) {
	fmt.Println("Students:")
	for _, s := range roster.Students {
		fmt.Printf("  %s  %s <%s> age %d  courses: %v\n",
			s.StudentID, s.Name, s.Email, s.Age, s.RegisteredCourses)
	}
	fmt.Println("Instructors:")
	for _, i := range roster.Instructors {
		fmt.Printf("  %s  %s <%s> age %d  courses: %v\n",
			i.InstructorID, i.Name, i.Email, i.Age, i.AssignedCourses)
	}
	fmt.Println("Courses:")
	for _, c := range roster.Courses {
		instructor := c.InstructorID
		if instructor == "" {
			instructor = "-"
		}
		fmt.Printf("  %s  %s  instructor: %s  students: %v\n",
			c.CourseID, c.CourseName, instructor, c.EnrolledStudents)
	}
}
