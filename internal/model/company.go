package model

import "strings"

// BusinessRecord identifies one business to enrich. It is never modified
// after it is built from an input row.
type BusinessRecord struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Location string `json:"location"`
}

// NameKeywords returns the lower-cased whitespace tokens of the name.
func (r BusinessRecord) NameKeywords() []string { return Keywords(r.Name) }

// IndustryKeywords returns the lower-cased whitespace tokens of the industry.
func (r BusinessRecord) IndustryKeywords() []string { return Keywords(r.Industry) }

// LocationKeywords returns the lower-cased whitespace tokens of the location.
func (r BusinessRecord) LocationKeywords() []string { return Keywords(r.Location) }

// String renders the record for log lines.
func (r BusinessRecord) String() string {
	return r.Name + " (" + r.Industry + ", " + r.Location + ")"
}

// Keywords splits s on whitespace after lower-casing it.
func Keywords(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// ContainsAny reports whether text contains at least one of the keywords.
func ContainsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
