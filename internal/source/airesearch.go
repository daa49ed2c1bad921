package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ajofficial223/Data-Scraper/internal/llm"
	"github.com/ajofficial223/Data-Scraper/internal/model"
)

// AIResearch asks a search-grounded model to research the business and
// answer in a fixed key:value block. The answer is forwarded unparsed.
type AIResearch struct {
	gen llm.Generator
}

// NewAIResearch creates the AI-search adapter.
func NewAIResearch(gen llm.Generator) *AIResearch {
	return &AIResearch{gen: gen}
}

// Name implements Adapter.
func (a *AIResearch) Name() string { return model.SourceAISearch }

// Lookup implements Adapter.
func (a *AIResearch) Lookup(ctx context.Context, rec model.BusinessRecord) (*model.RawResponse, error) {
	text, err := a.gen.Generate(ctx, ResearchPrompt(rec))
	if err != nil {
		return nil, eris.Wrapf(err, "source: ai research for %s", rec.Name)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	return &model.RawResponse{SourceID: model.SourceAISearch, Text: text}, nil
}

// ResearchPrompt builds the research instructions for rec.
func ResearchPrompt(rec model.BusinessRecord) string {
	c, ind, loc := rec.Name, rec.Industry, rec.Location
	return fmt.Sprintf(`You are an expert business researcher. Find verified contact information for this business.

COMPANY: %[1]s
INDUSTRY: %[2]s
LOCATION: %[3]s

SEARCH STRATEGY:
1. Basic searches: "%[1]s", "%[1]s" %[3]s, "%[1]s" %[2]s %[3]s
2. Business directories: search justdial.com, indiamart.com, tradeindia.com, sulekha.com, yellowpages.co.in and google.com/maps for "%[1]s" %[3]s
3. Social media: search facebook.com, instagram.com and linkedin.com for "%[1]s"
4. Contact details: "%[1]s" phone number, "%[1]s" email address, "%[1]s" %[3]s contact
5. Website: "%[1]s" official website, "%[1]s" .com, "%[1]s" .in

VERIFICATION:
- Company name must match "%[1]s" (exact or very close spelling)
- Industry should be "%[2]s" or related
- Location should be "%[3]s" or nearby areas
- Cross-verify information from multiple sources

WHAT TO EXTRACT:
- Official website URL
- Business email addresses (info@, contact@, sales@)
- Phone numbers (mobile, landline, WhatsApp Business)
- Complete business address with pincode
- Facebook, Instagram and LinkedIn page URLs
- Owner, proprietor or director names

OUTPUT FORMAT:
Website: [Full URL or BLANK]
Email: [Email address or BLANK]
Phone: [Phone number or BLANK]
Facebook: [Facebook URL or BLANK]
Instagram: [Instagram URL or BLANK]
LinkedIn: [LinkedIn URL or BLANK]
Owner(s): [Name(s) or BLANK]
Address: [Complete address or BLANK]
Match_Type: [EXACT/PARTIAL/NOT_FOUND]
Confidence: [HIGH/MEDIUM/LOW]

Provide real data only, never placeholder text. Write BLANK for anything you could not verify.`, c, ind, loc)
}
