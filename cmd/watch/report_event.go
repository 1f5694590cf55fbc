package watch

import (
	"time"

	"github.com/LegacyCodeHQ/ecocap/report"
)

// reportEvent is one check result as pushed to live viewers.
type reportEvent struct {
	Source       string    `json:"source"`
	Format       string    `json:"format"`
	Dependencies int       `json:"dependencies"`
	Tagged       int       `json:"tagged"`
	Conflicts    int       `json:"conflicts"`
	Resolved     int       `json:"resolved"`
	Unresolved   []string  `json:"unresolved"`
	Body         string    `json:"body"`
	Timestamp    time.Time `json:"timestamp"`
}

func newReportEvent(r report.Report, format, body string, now time.Time) reportEvent {
	unresolved := make([]string, 0, len(r.Unresolved))
	for _, c := range r.Unresolved {
		unresolved = append(unresolved, c.Capability)
	}
	return reportEvent{
		Source:       r.Source,
		Format:       format,
		Dependencies: len(r.Entries),
		Tagged:       len(r.Tagged()),
		Conflicts:    len(r.Conflicts),
		Resolved:     len(r.Resolutions),
		Unresolved:   unresolved,
		Body:         body,
		Timestamp:    now.UTC(),
	}
}
