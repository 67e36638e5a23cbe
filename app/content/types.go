package content

import (
	"errors"
)

// Platform identifiers understood by the formatter and the compliance gate.
const (
	PlatformTwitter  = "twitter"
	PlatformLinkedin = "linkedin"
	PlatformThreads  = "threads"
)

// Character ceilings per platform, counted in NFC-normalized runes.
const (
	TwitterLimit  = 280
	LinkedinLimit = 3000
	ThreadsLimit  = 500
)

// ErrNoVerdict is returned when the compliance collaborator produced no
// parsable verdict. There is no degrade path here: a missing verdict must not
// silently pass content as compliant.
var ErrNoVerdict = errors.New("failed to generate compliance report")

type ComplianceReport struct {
	Passed bool     `json:"passed"`
	Issues []string `json:"issues"`
	Score  int      `json:"score"`
}
