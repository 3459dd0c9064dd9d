package types

import "time"

// TemplateCandidate represents one previously generated document discovered
// under the output root and considered as a reusable starting template.
// Candidates are rebuilt on every scan; Score and MatchReasons are filled in
// per ranking run and never persisted.
type TemplateCandidate struct {
	FilePath       string
	FolderName     string
	Role           string
	Specialization string
	Tools          []string
	BusinessModel  string
	Year           string
	ModTime        time.Time // zero when the timestamp could not be read

	Score        float64
	MatchReasons []string
}

// HasModTime reports whether a file modification timestamp was available.
func (c *TemplateCandidate) HasModTime() bool {
	return !c.ModTime.IsZero()
}
