package source

import (
	"context"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ajofficial223/Data-Scraper/internal/model"
	"github.com/ajofficial223/Data-Scraper/internal/resilience"
	"github.com/ajofficial223/Data-Scraper/pkg/serpapi"
)

var (
	serpEmailRe = regexp.MustCompile(emailBody)
	serpPhoneRe = regexp.MustCompile(`(?:\+91[-.\s]?)?\d{5}[-.\s]?\d{5}`)

	serpSocialMarkers = []string{"facebook", "instagram", "linkedin", "twitter"}
)

// SERPOptions tune the search-engine adapter.
type SERPOptions struct {
	Engine   string
	Country  string
	Language string
	Num      int
	Retries  int
}

// SERP runs one search-engine query and returns the organic hits, the
// knowledge panel and first-match candidate facts.
type SERP struct {
	client serpapi.Client
	opts   SERPOptions
}

// NewSERP creates the search-engine adapter.
func NewSERP(client serpapi.Client, opts SERPOptions) *SERP {
	return &SERP{client: client, opts: opts}
}

// Name implements Adapter.
func (s *SERP) Name() string { return model.SourceSERP }

// Query builds the search string for rec.
func (s *SERP) Query(rec model.BusinessRecord) string {
	return `"` + rec.Name + `" ` + rec.Industry + " " + rec.Location + " contact phone email"
}

// Lookup implements Adapter.
func (s *SERP) Lookup(ctx context.Context, rec model.BusinessRecord) (*model.RawResponse, error) {
	retry := resilience.ForProvider("serpapi", "search", s.opts.Retries)
	resp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*serpapi.SearchResponse, error) {
		return s.client.Search(ctx, serpapi.SearchParams{
			Query:    s.Query(rec),
			Engine:   s.opts.Engine,
			Country:  s.opts.Country,
			Language: s.opts.Language,
			Num:      s.opts.Num,
		})
	})
	if err != nil {
		return nil, eris.Wrapf(err, "source: serp search for %s", rec.Name)
	}
	return FromSERP(resp), nil
}

// FromSERP converts a SerpAPI payload. Nothing usable yields nil.
func FromSERP(resp *serpapi.SearchResponse) *model.RawResponse {
	if resp == nil {
		return nil
	}

	out := &model.RawResponse{SourceID: model.SourceSERP}
	found := map[model.Field]string{}
	setOnce := func(f model.Field, v string) {
		if v == "" {
			return
		}
		if _, ok := found[f]; !ok {
			found[f] = v
		}
	}

	for _, r := range resp.OrganicResults {
		out.Hits = append(out.Hits, model.SearchHit{
			Title:         r.Title,
			Link:          r.Link,
			Snippet:       r.Snippet,
			DisplayedLink: r.DisplayedLink,
		})

		if isWebsiteLink(r.Link) {
			setOnce(model.FieldWebsite, r.Link)
		}
		// One social platform per link.
		for _, f := range model.SocialFields {
			if strings.Contains(r.Link, socialHosts[f]) {
				setOnce(f, r.Link)
				break
			}
		}
		if r.Snippet != "" {
			setOnce(model.FieldEmail, serpEmailRe.FindString(r.Snippet))
			setOnce(model.FieldPhone, serpPhoneRe.FindString(r.Snippet))
		}
	}

	if kg := resp.KnowledgeGraph; kg != nil {
		out.Panel = &model.KnowledgePanel{Website: kg.Website, Phone: kg.Phone, Address: kg.Address}
		setOnce(model.FieldWebsite, kg.Website)
		setOnce(model.FieldPhone, kg.Phone)
		setOnce(model.FieldAddress, kg.Address)
	}

	for _, f := range model.ContentFields {
		if v, ok := found[f]; ok {
			out.Facts = append(out.Facts, model.CandidateFact{Field: f, Value: v, SourceID: model.SourceSERP})
		}
	}

	if len(out.Hits) == 0 && len(out.Facts) == 0 && (out.Panel == nil || out.Panel.Empty()) {
		return nil
	}
	return out
}

func isWebsiteLink(link string) bool {
	hasTLD := false
	for _, m := range websiteMarkers {
		if strings.Contains(link, m) {
			hasTLD = true
			break
		}
	}
	if !hasTLD {
		return false
	}
	for _, s := range serpSocialMarkers {
		if strings.Contains(link, s) {
			return false
		}
	}
	return true
}
