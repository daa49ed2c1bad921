package source

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ajofficial223/Data-Scraper/internal/model"
	"github.com/ajofficial223/Data-Scraper/internal/resilience"
	"github.com/ajofficial223/Data-Scraper/pkg/tavily"
)

// WebSearchOptions tune the web-search adapter.
type WebSearchOptions struct {
	Plan        *QueryPlan
	Budget      int
	SearchDepth string
	MaxResults  int
	Timeout     time.Duration
	Retries     int
	RatePerSec  float64
}

// WebSearch runs a bounded plan of directory and social searches and feeds
// the hits through the evidence aggregator.
type WebSearch struct {
	client  tavily.Client
	opts    WebSearchOptions
	limiter *rate.Limiter
}

// NewWebSearch creates the web-search adapter.
func NewWebSearch(client tavily.Client, opts WebSearchOptions) *WebSearch {
	if opts.Plan == nil {
		opts.Plan = DefaultQueryPlan()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}
	return &WebSearch{
		client:  client,
		opts:    opts,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Name implements Adapter.
func (w *WebSearch) Name() string { return model.SourceWebSearch }

// Lookup implements Adapter. Individual query failures are logged and
// skipped; the adapter only reports no data when every query came back
// empty or failed.
func (w *WebSearch) Lookup(ctx context.Context, rec model.BusinessRecord) (*model.RawResponse, error) {
	queries := w.opts.Plan.Limit(w.opts.Plan.Render(rec), w.opts.Budget)
	log := zap.L().With(zap.String("company", rec.Name), zap.String("source", model.SourceWebSearch))

	var hits []Hit
	for i, q := range queries {
		if err := w.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := w.search(ctx, q)
		if err != nil {
			log.Warn("web search query failed", zap.Int("query_index", i), zap.String("query", q), zap.Error(err))
			continue
		}
		for _, r := range resp.Results {
			hits = append(hits, Hit{Title: r.Title, URL: r.URL, Content: r.Content})
		}
	}

	log.Debug("web search complete", zap.Int("queries", len(queries)), zap.Int("hits", len(hits)))
	if len(hits) == 0 {
		return nil, nil
	}
	return Aggregate(model.SourceWebSearch, rec, hits), nil
}

func (w *WebSearch) search(ctx context.Context, q string) (*tavily.SearchResponse, error) {
	retry := resilience.ForProvider("tavily", "search", w.opts.Retries)
	return resilience.DoVal(ctx, retry, func(ctx context.Context) (*tavily.SearchResponse, error) {
		qctx, cancel := context.WithTimeout(ctx, w.opts.Timeout)
		defer cancel()
		return w.client.Search(qctx, tavily.SearchRequest{
			Query:          q,
			SearchDepth:    w.opts.SearchDepth,
			MaxResults:     w.opts.MaxResults,
			IncludeDomains: w.opts.Plan.IncludeDomains,
			IncludeAnswer:  true,
		})
	})
}
