package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/starschool/records/internal/app/models"
	"github.com/starschool/records/internal/app/relink"
	"github.com/starschool/records/internal/pkg/logger"
)

// SnapshotFileName is the fixed name of the recovery document; every
// refresh replaces it atomically.
const SnapshotFileName = "school_snapshot.json"

// SnapshotDocument is the full-state serialized form written for disaster
// recovery, independent of the relational store.
type SnapshotDocument struct {
	ExportedAt  time.Time            `json:"exported_at"`
	Students    []*models.Student    `json:"students"`
	Instructors []*models.Instructor `json:"instructors"`
	Courses     []*models.Course     `json:"courses"`
}

// SnapshotWriter persists full-state JSON snapshots under a base directory.
type SnapshotWriter struct {
	dir string
}

// NewSnapshotWriter ensures the snapshot directory exists.
func NewSnapshotWriter(dir string) (*SnapshotWriter, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}
	return &SnapshotWriter{dir: dir}, nil
}

// Path returns the location of the snapshot document.
func (w *SnapshotWriter) Path() string {
	return filepath.Join(w.dir, SnapshotFileName)
}

// Refresh serializes the roster and replaces the snapshot document. The
// write goes to a uniquely named temp file first and is renamed into place,
// so a crash mid-write never corrupts the previous snapshot.
func (w *SnapshotWriter) Refresh(_ context.Context, roster *relink.Roster) error {
	doc := SnapshotDocument{
		ExportedAt:  time.Now(),
		Students:    roster.Students,
		Instructors: roster.Instructors,
		Courses:     roster.Courses,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	tmp := filepath.Join(w.dir, fmt.Sprintf(".%s.%s.tmp", SnapshotFileName, uuid.New().String()))
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := os.Rename(tmp, w.Path()); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	logger.Debug().Str("path", w.Path()).Msg("Snapshot refreshed")
	return nil
}
