package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ajofficial223/Data-Scraper/internal/model"
)

const noData = "No data found"

// Prompt builds the adjudication prompt for rec from the three source
// payloads. Absent sources are shown as "No data found".
func Prompt(rec model.BusinessRecord, ai, web, serp *model.RawResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a data validation expert. Analyze the company information below, collected from several independent sources, and return the most accurate and reliable contact data.\n\n")
	fmt.Fprintf(&b, "COMPANY: %s\nINDUSTRY: %s\nLOCATION: %s\n\n", rec.Name, rec.Industry, rec.Location)

	fmt.Fprintf(&b, "DATA SOURCE 1 - AI SEARCH:\n%s\n\n", sourceText(ai))
	fmt.Fprintf(&b, "DATA SOURCE 2 - WEB SEARCH:\n%s\n\n", sourceText(web))
	fmt.Fprintf(&b, "DATA SOURCE 3 - SEARCH ENGINE RESULTS:\n%s\n\n", serpJSON(serp))

	fmt.Fprintf(&b, `VALIDATION RULES:
1. Company name must match "%[1]s" exactly or very closely
2. Industry must be "%[2]s" or closely related
3. Location must be "%[3]s" or a nearby area
4. Cross-reference data from all sources
5. Choose the most reliable and consistent information
6. Email addresses must be valid
7. Phone numbers must be Indian format
8. URLs must be relevant to the company

QUALITY CHECKS:
- Data reported by several sources is more reliable
- Prefer the official website over social media for contact details
- Prefer business directories (JustDial, IndiaMART) for phone and address
- Email domains should match the company name when possible
- Social media profiles must belong to this company

OUTPUT FORMAT - RESPOND ONLY WITH VALID JSON:
{
  "Website": "https://example.com or BLANK",
  "Email": "info@example.com or BLANK",
  "Phone": "+91 98765 43210 or BLANK",
  "Facebook": "https://facebook.com/company or BLANK",
  "Instagram": "https://instagram.com/company or BLANK",
  "LinkedIn": "https://linkedin.com/company/company or BLANK",
  "Owner": "Owner Name or BLANK",
  "Address": "Complete Address or BLANK",
  "Data_Quality": "EXCELLENT/GOOD/FAIR/POOR",
  "Sources_Used": "List of sources used",
  "Confidence_Score": "1-10 scale",
  "Validation_Notes": "Brief notes on data reliability"
}

CRITICAL INSTRUCTIONS:
- Respond only with valid JSON and no other text
- Only provide data you are confident belongs to "%[1]s" in "%[2]s"
- If sources conflict, choose the most authoritative source
- If data is poor or unreliable, mark the field "BLANK"
- A BLANK field is better than an incorrect one
`, rec.Name, rec.Industry, rec.Location)

	return b.String()
}

func sourceText(r *model.RawResponse) string {
	if r == nil || strings.TrimSpace(r.Text) == "" {
		return noData
	}
	return r.Text
}

func serpJSON(r *model.RawResponse) string {
	if r == nil {
		return noData
	}
	view := struct {
		OrganicResults []model.SearchHit     `json:"organic_results,omitempty"`
		KnowledgeGraph *model.KnowledgePanel `json:"knowledge_graph,omitempty"`
		Candidates     []model.CandidateFact `json:"candidates,omitempty"`
	}{r.Hits, r.Panel, r.Facts}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return noData
	}
	return string(data)
}
