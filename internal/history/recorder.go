package history

import (
	"time"

	"github.com/Norgate-AV/jpack/internal/build"
	"github.com/Norgate-AV/jpack/internal/layout"
)

// NewRecord builds the record for a pipeline run. res must be non-nil, which
// is the case for every run that reached the compiler.
func NewRecord(cfg build.Configuration, res *build.Result, duration time.Duration) (Record, error) {
	fingerprint, err := Fingerprint(cfg, res.Sources)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Fingerprint: fingerprint,
		Timestamp:   time.Now(),
		Success:     res.Archive != "",
		Entries:     res.Entries,
		Sources:     len(res.Sources),
		Diagnostics: len(res.Diagnostics),
		Duration:    duration,
	}

	if rec.Success {
		rec.Archive = layout.New(cfg.ProjectRoot).Rel(res.Archive)

		if rec.ArchiveHash, err = HashFile(res.Archive); err != nil {
			return Record{}, err
		}
	}

	return rec, nil
}

// Save opens the project's history database, appends rec and closes it
func Save(projectRoot string, rec Record) (Record, error) {
	s, err := Open(layout.New(projectRoot).History())
	if err != nil {
		return rec, err
	}
	defer s.Close()

	return s.Put(rec)
}
