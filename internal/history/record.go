package history

import "time"

// Record represents one recorded build
type Record struct {
	// ID is assigned by Put and increases with every record
	ID uint64 `json:"id"`

	// Fingerprint identifies the build inputs, see Fingerprint
	Fingerprint string `json:"fingerprint"`

	// Timestamp when the build finished
	Timestamp time.Time `json:"timestamp"`

	// Success indicates if javac succeeded and the archive was written
	Success bool `json:"success"`

	// Archive is the project-relative path of the JAR. Empty on failure.
	Archive string `json:"archive,omitempty"`

	// ArchiveHash is the sha256 of the JAR
	ArchiveHash string `json:"archive_hash,omitempty"`

	// Entries is the number of archive entries, manifest included
	Entries int `json:"entries"`

	// Sources is the number of compiled .java files
	Sources int `json:"sources"`

	// Diagnostics is the number of compiler output lines of a failed build
	Diagnostics int `json:"diagnostics"`

	// Duration of the build
	Duration time.Duration `json:"duration"`
}

// ShortFingerprint returns the first 12 characters of the fingerprint
func (r Record) ShortFingerprint() string {
	if len(r.Fingerprint) <= 12 {
		return r.Fingerprint
	}

	return r.Fingerprint[:12]
}
