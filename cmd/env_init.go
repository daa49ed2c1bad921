package main

import (
	"context"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ajofficial223/Data-Scraper/internal/config"
	"github.com/ajofficial223/Data-Scraper/internal/enrich"
	"github.com/ajofficial223/Data-Scraper/internal/llm"
	"github.com/ajofficial223/Data-Scraper/internal/reconcile"
	"github.com/ajofficial223/Data-Scraper/internal/sitescrape"
	"github.com/ajofficial223/Data-Scraper/internal/source"
	"github.com/ajofficial223/Data-Scraper/internal/validate"
	anthropicpkg "github.com/ajofficial223/Data-Scraper/pkg/anthropic"
	"github.com/ajofficial223/Data-Scraper/pkg/gemini"
	"github.com/ajofficial223/Data-Scraper/pkg/perplexity"
	"github.com/ajofficial223/Data-Scraper/pkg/serpapi"
	"github.com/ajofficial223/Data-Scraper/pkg/tavily"
)

// enrichEnv holds everything the enrich command needs for one run.
type enrichEnv struct {
	RunID  string
	Driver *enrich.Driver
}

// initEnv validates c, builds the provider clients the selected providers
// need and wires the batch driver.
func initEnv(ctx context.Context, c *config.Config, runID string) (*enrichEnv, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	clients, err := initClients(ctx, c)
	if err != nil {
		return nil, err
	}

	researchGen, err := llm.New(c.Research.Provider, llm.PhaseResearch, clients, c)
	if err != nil {
		return nil, eris.Wrap(err, "init research generator")
	}
	reconcileGen, err := llm.New(c.Reconcile.Provider, llm.PhaseReconcile, clients, c)
	if err != nil {
		return nil, eris.Wrap(err, "init reconcile generator")
	}

	plan := source.DefaultQueryPlan()
	if c.Search.PlanPath != "" {
		plan, err = source.LoadQueryPlan(c.Search.PlanPath)
		if err != nil {
			return nil, err
		}
		zap.L().Info("loaded query plan", zap.String("path", c.Search.PlanPath), zap.Int("queries", len(plan.Queries)))
	}

	tavilyClient := tavily.NewClient(c.Tavily.Key, tavily.WithBaseURL(c.Tavily.BaseURL))
	serpClient := serpapi.NewClient(c.SerpAPI.Key, serpapi.WithBaseURL(c.SerpAPI.BaseURL))

	deps := enrich.Deps{
		AI: source.NewAIResearch(researchGen),
		Web: source.NewWebSearch(tavilyClient, source.WebSearchOptions{
			Plan:        plan,
			Budget:      c.Search.Budget,
			SearchDepth: c.Tavily.SearchDepth,
			MaxResults:  c.Tavily.MaxResults,
			Timeout:     c.Search.Timeout(),
			Retries:     c.Search.Retries,
			RatePerSec:  c.Tavily.RatePerSec,
		}),
		SERP: source.NewSERP(serpClient, source.SERPOptions{
			Engine:   c.SerpAPI.Engine,
			Country:  c.SerpAPI.Country,
			Language: c.SerpAPI.Language,
			Num:      c.SerpAPI.Num,
			Retries:  c.Search.Retries,
		}),
		Reconciler: reconcile.New(reconcileGen, reconcile.NewFailureLog(c.Output.FailureLog), runID),
		Validator:  validate.NewRecordValidator(validate.NewURLChecker(c.HTTP.ValidateTimeout(), c.HTTP.UserAgent)),
		Scraper: sitescrape.New(
			sitescrape.WithTimeout(c.HTTP.ScrapeTimeout()),
			sitescrape.WithUserAgent(c.HTTP.UserAgent),
			sitescrape.WithLinkKeywords(c.Scrape.LinkKeywords),
			sitescrape.WithMaxBodyBytes(int64(c.Scrape.MaxBodyKB)*1024),
			sitescrape.WithMaxPages(c.Scrape.MaxPages),
		),
		RunID: runID,
	}

	zap.L().Info("enrich environment ready",
		zap.String("run_id", runID),
		zap.String("research_provider", researchGen.Name()),
		zap.String("reconcile_provider", reconcileGen.Name()),
		zap.Int("search_budget", c.Search.Budget),
	)

	return &enrichEnv{RunID: runID, Driver: enrich.New(deps)}, nil
}

// initClients creates only the text-generation clients the configured
// providers use.
func initClients(ctx context.Context, c *config.Config) (llm.Clients, error) {
	var clients llm.Clients
	for _, p := range []string{c.Research.Provider, c.Reconcile.Provider} {
		switch p {
		case config.ProviderAnthropic:
			if clients.Anthropic == nil {
				clients.Anthropic = anthropicpkg.NewClient(c.Anthropic.Key, option.WithRequestTimeout(c.LLM.Timeout()))
			}
		case config.ProviderPerplexity:
			if clients.Perplexity == nil {
				clients.Perplexity = perplexity.NewClient(c.Perplexity.Key,
					perplexity.WithBaseURL(c.Perplexity.BaseURL),
					perplexity.WithModel(c.Perplexity.Model),
					perplexity.WithHTTPClient(&http.Client{Timeout: c.LLM.Timeout()}),
				)
			}
		case config.ProviderGemini:
			if clients.Gemini == nil {
				gc, err := gemini.NewClient(ctx, c.Gemini.Key,
					gemini.WithModel(c.Gemini.Model),
					gemini.WithHTTPClient(&http.Client{Timeout: c.LLM.Timeout()}),
				)
				if err != nil {
					return clients, eris.Wrap(err, "init gemini client")
				}
				clients.Gemini = gc
			}
		}
	}
	return clients, nil
}
