package reconcile

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ajofficial223/Data-Scraper/internal/model"
)

var failureRule = strings.Repeat("=", 50)

// FailureLog archives adjudication answers that could not be parsed. The
// file is append-only and never rotated.
type FailureLog struct {
	path string
}

// NewFailureLog returns a log appending to path.
func NewFailureLog(path string) *FailureLog {
	return &FailureLog{path: path}
}

// Path returns the file the log appends to.
func (l *FailureLog) Path() string { return l.path }

// Append writes one failure entry for rec.
func (l *FailureLog) Append(rec model.BusinessRecord, runID, raw string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return eris.Wrapf(err, "reconcile: open failure log %s", l.path)
	}
	defer f.Close() //nolint:errcheck

	entry := fmt.Sprintf("\n%s\nCompany: %s\nIndustry: %s\nLocation: %s\nRun ID: %s\nRaw Output:\n%s\n%s\n",
		failureRule, rec.Name, rec.Industry, rec.Location, runID, raw, failureRule)
	if _, err := f.WriteString(entry); err != nil {
		return eris.Wrapf(err, "reconcile: write failure log %s", l.path)
	}
	return nil
}
