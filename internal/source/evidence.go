package source

import (
	"regexp"
	"strings"

	"github.com/ajofficial223/Data-Scraper/internal/model"
)

// Hit is one search result fed to the aggregator.
type Hit struct {
	Title   string
	URL     string
	Content string
}

var websiteMarkers = []string{".com", ".in", ".co.in", ".org"}

var socialHosts = map[model.Field]string{
	model.FieldFacebook:  "facebook.com",
	model.FieldInstagram: "instagram.com",
	model.FieldLinkedIn:  "linkedin.com",
}

const emailBody = `[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+`

// Ordered extraction patterns. The first pattern with a usable match wins.
var (
	emailPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + emailBody),
		regexp.MustCompile(`(?i)Email[:\s]+(` + emailBody + `)`),
		regexp.MustCompile(`(?i)E-mail[:\s]+(` + emailBody + `)`),
		regexp.MustCompile(`(?i)Contact[:\s]+(` + emailBody + `)`),
	}

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:\+91[-.\s]?)?\d{5}[-.\s]?\d{5}`),
		regexp.MustCompile(`(?:\+91[-.\s]?)?\d{10}`),
		regexp.MustCompile(`(?:\+91[-.\s]?)?\d{4}[-.\s]?\d{3}[-.\s]?\d{3}`),
		regexp.MustCompile(`(?:\+91[-.\s]?)?\(\d{3,4}\)[-.\s]?\d{3}[-.\s]?\d{3,4}`),
		regexp.MustCompile(`(?i)Phone[:\s]+(?:\+91[-.\s]?)?\d{10}`),
		regexp.MustCompile(`(?i)Mobile[:\s]+(?:\+91[-.\s]?)?\d{10}`),
		regexp.MustCompile(`(?i)Contact[:\s]+(?:\+91[-.\s]?)?\d{10}`),
	}

	addressPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Address[:\s]+([^,\n]+(?:,[^,\n]+)*)`),
		regexp.MustCompile(`(?i)Location[:\s]+([^,\n]+(?:,[^,\n]+)*)`),
		regexp.MustCompile(`(?i)Office[:\s]+([^,\n]+(?:,[^,\n]+)*)`),
	}

	nonPhoneChars = regexp.MustCompile(`[^\d+]`)
)

// IsRelevant reports whether a hit mentions the business: at least one
// name keyword and at least one industry or location keyword must appear
// in its lower-cased content, title and URL.
func IsRelevant(rec model.BusinessRecord, h Hit) bool {
	text := strings.ToLower(h.Content + h.Title + h.URL)
	if !model.ContainsAny(text, rec.NameKeywords()) {
		return false
	}
	return model.ContainsAny(text, rec.IndustryKeywords()) ||
		model.ContainsAny(text, rec.LocationKeywords())
}

// Aggregate turns search hits into candidate facts for rec. URL fields come
// from the hit links themselves; email, phone and address come from the
// text of relevant hits. Owner is never extracted here. A nil result means
// nothing was found.
func Aggregate(sourceID string, rec model.BusinessRecord, hits []Hit) *model.RawResponse {
	found := map[model.Field]string{}
	var evidence strings.Builder
	nameKeys := rec.NameKeywords()

	for _, h := range hits {
		if !IsRelevant(rec, h) {
			continue
		}
		evidence.WriteString(h.Content)
		evidence.WriteString("\n")
		evidence.WriteString(h.Title)
		evidence.WriteString("\n")

		scanURL(found, h.URL, nameKeys)
	}

	text := evidence.String()
	if v := firstEmail(text); v != "" {
		found[model.FieldEmail] = v
	}
	if v := firstPhone(text); v != "" {
		found[model.FieldPhone] = v
	}
	if v := firstAddress(text); v != "" {
		found[model.FieldAddress] = v
	}

	if len(found) == 0 {
		return nil
	}

	resp := &model.RawResponse{SourceID: sourceID}
	for _, f := range model.ContentFields {
		if v, ok := found[f]; ok {
			resp.Facts = append(resp.Facts, model.CandidateFact{Field: f, Value: v, SourceID: sourceID})
		}
	}
	resp.Text = formatBlock(found)
	return resp
}

func scanURL(found map[model.Field]string, link string, nameKeys []string) {
	lower := strings.ToLower(link)
	if !model.ContainsAny(lower, nameKeys) {
		return
	}

	social := false
	for _, f := range model.SocialFields {
		if strings.Contains(lower, socialHosts[f]) {
			social = true
			if _, ok := found[f]; !ok {
				found[f] = link
			}
		}
	}
	if social {
		return
	}
	if _, ok := found[model.FieldWebsite]; ok {
		return
	}
	for _, m := range websiteMarkers {
		if strings.Contains(lower, m) {
			found[model.FieldWebsite] = link
			return
		}
	}
}

func firstEmail(text string) string {
	for _, re := range emailPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if len(m) > 1 {
				return m[1]
			}
			return m[0]
		}
	}
	return ""
}

func firstPhone(text string) string {
	for _, re := range phonePatterns {
		m := re.FindString(text)
		if m == "" {
			continue
		}
		if cleaned := nonPhoneChars.ReplaceAllString(m, ""); len(cleaned) >= 10 {
			return cleaned
		}
	}
	return ""
}

func firstAddress(text string) string {
	for _, re := range addressPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func formatBlock(found map[model.Field]string) string {
	var b strings.Builder
	for _, f := range model.ContentFields {
		v, ok := found[f]
		if !ok {
			v = "BLANK"
		}
		b.WriteString(f.Label())
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}
	b.WriteString("Match_Type: WEB_SEARCH\n")
	b.WriteString("Confidence: MEDIUM")
	return b.String()
}
