package services

import (
	"context"

	"github.com/starschool/records/internal/app/relink"
	"github.com/starschool/records/internal/app/repositories"
	"github.com/starschool/records/internal/db"
	"github.com/starschool/records/internal/pkg/logger"
)

// Snapshotter writes a full-state export for crash recovery. Mutating
// operations call it best-effort after committing.
type Snapshotter interface {
	Refresh(ctx context.Context, roster *relink.Roster) error
}

// Services bundles all service instances.
type Services struct {
	Students    *StudentService
	Instructors *InstructorService
	Courses     *CourseService
	Registrar   *RegistrarService
}

// NewServices wires the services over the shared store handle.
func NewServices(schoolDB *db.SchoolDB, repos *repositories.Repositories, snap Snapshotter) *Services {
	d := &deps{db: schoolDB, repos: repos, snap: snap}
	return &Services{
		Students:    &StudentService{deps: d},
		Instructors: &InstructorService{deps: d},
		Courses:     &CourseService{deps: d},
		Registrar:   &RegistrarService{deps: d},
	}
}

// deps is the shared state behind every service: the store handle for
// transactions, the repositories, and the snapshot writer.
type deps struct {
	db    *db.SchoolDB
	repos *repositories.Repositories
	snap  Snapshotter
}

// loadRoster reads the three flat lists plus the persisted relation records
// and rebuilds every cross-reference. This is the only read path.
func (d *deps) loadRoster(ctx context.Context) (*relink.Roster, error) {
	students, err := d.repos.Students.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	instructors, err := d.repos.Instructors.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := d.repos.Courses.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := d.repos.Courses.ListAssignments(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := d.repos.Enrollments.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return relink.Rebuild(students, instructors, courses, assignments, enrollments), nil
}

// refreshSnapshot exports the full current state. Failures are logged and
// never roll back the operation that triggered the refresh.
func (d *deps) refreshSnapshot(ctx context.Context) {
	if d.snap == nil {
		return
	}

	roster, err := d.loadRoster(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Snapshot refresh: failed to load state")
		return
	}

	if err := d.snap.Refresh(ctx, roster); err != nil {
		logger.Error().Err(err).Msg("Snapshot refresh failed")
	}
}
