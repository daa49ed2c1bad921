package model

// Source identifiers.
const (
	SourceAISearch   = "ai_search"
	SourceWebSearch  = "web_search"
	SourceSERP       = "serp"
	SourceDirectSite = "direct_site"
)

// CandidateFact is one source's opinion about one field.
type CandidateFact struct {
	Field       Field  `json:"field"`
	Value       string `json:"value"`
	SourceID    string `json:"source_id"`
	RawEvidence string `json:"raw_evidence,omitempty"`
}

// SearchHit is a single organic result from a search provider.
type SearchHit struct {
	Title         string `json:"title"`
	Link          string `json:"link"`
	Snippet       string `json:"snippet"`
	DisplayedLink string `json:"displayed_link,omitempty"`
}

// KnowledgePanel holds a search engine's structured business summary.
type KnowledgePanel struct {
	Website string `json:"website,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Empty reports whether the panel carries nothing.
func (k KnowledgePanel) Empty() bool {
	return k.Website == "" && k.Phone == "" && k.Address == ""
}

// RawResponse is the payload one adapter produced for one record. A nil
// *RawResponse means the source had no data.
type RawResponse struct {
	SourceID string          `json:"source_id"`
	Text     string          `json:"text,omitempty"`
	Hits     []SearchHit     `json:"organic_results,omitempty"`
	Panel    *KnowledgePanel `json:"knowledge_graph,omitempty"`
	Facts    []CandidateFact `json:"facts,omitempty"`
}

// Fact returns the first candidate value for f, if any.
func (r *RawResponse) Fact(f Field) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, c := range r.Facts {
		if c.Field == f {
			return c.Value, true
		}
	}
	return "", false
}
