package model

import "strings"

// Quality is the adjudicated data quality label.
type Quality string

const (
	QualityExcellent Quality = "EXCELLENT"
	QualityGood      Quality = "GOOD"
	QualityFair      Quality = "FAIR"
	QualityPoor      Quality = "POOR"
)

// ParseQuality normalizes a provider label. Unknown labels are kept
// upper-cased; empty input yields POOR.
func ParseQuality(s string) Quality {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return QualityPoor
	}
	return Quality(s)
}

// Rank orders qualities, higher is better. Unknown labels rank 0.
func (q Quality) Rank() int {
	switch q {
	case QualityExcellent:
		return 4
	case QualityGood:
		return 3
	case QualityFair:
		return 2
	case QualityPoor:
		return 1
	}
	return 0
}

// Metadata defaults applied when adjudication yields nothing.
const (
	DefaultSourcesUsed     = "Unknown"
	DefaultConfidenceScore = "0"
)

// ReconciledRecord is the adjudicator's single opinion per field.
type ReconciledRecord struct {
	Fields          map[Field]Value
	DataQuality     Value
	SourcesUsed     Value
	ConfidenceScore Value
	ValidationNotes Value
}

// Field returns the reconciled value for f.
func (r *ReconciledRecord) Field(f Field) Value {
	if r == nil || r.Fields == nil {
		return None()
	}
	return r.Fields[f]
}

// ValidatedRecord holds only fields that passed validation.
type ValidatedRecord struct {
	Fields          map[Field]string
	DataQuality     Quality
	SourcesUsed     string
	ConfidenceScore string
	ValidationNotes string
}

// EmptyValidated is the record written when no data survived.
func EmptyValidated() *ValidatedRecord {
	return &ValidatedRecord{
		Fields:          map[Field]string{},
		DataQuality:     QualityPoor,
		SourcesUsed:     DefaultSourcesUsed,
		ConfidenceScore: DefaultConfidenceScore,
	}
}

// Get returns the validated value for f.
func (v *ValidatedRecord) Get(f Field) (string, bool) {
	s, ok := v.Fields[f]
	return s, ok
}

// SiteContacts is what the direct-site scraper found.
type SiteContacts struct {
	Facebook     string
	Instagram    string
	LinkedIn     string
	Emails       []string
	Phones       []string
	PagesFetched int
}

// Empty reports whether nothing was found.
func (s *SiteContacts) Empty() bool {
	return s.Facebook == "" && s.Instagram == "" && s.LinkedIn == "" &&
		len(s.Emails) == 0 && len(s.Phones) == 0
}
