package serpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/ajofficial223/Data-Scraper/internal/resilience"
)

const defaultBaseURL = "https://serpapi.com"

// Client queries the SerpAPI search endpoint.
type Client interface {
	Search(ctx context.Context, params SearchParams) (*SearchResponse, error)
}

// SearchParams are the query parameters for GET /search.
type SearchParams struct {
	Query    string
	Engine   string // default "google"
	Country  string // gl
	Language string // hl
	Num      int
}

// SearchResponse is the subset of the SerpAPI payload the scraper reads.
type SearchResponse struct {
	OrganicResults []OrganicResult `json:"organic_results"`
	KnowledgeGraph *KnowledgeGraph `json:"knowledge_graph,omitempty"`
	SearchMetadata map[string]any  `json:"search_metadata,omitempty"`
	Error          string          `json:"error,omitempty"`
}

// OrganicResult is one organic search hit.
type OrganicResult struct {
	Position      int    `json:"position"`
	Title         string `json:"title"`
	Link          string `json:"link"`
	Snippet       string `json:"snippet"`
	DisplayedLink string `json:"displayed_link"`
}

// KnowledgeGraph is the business panel shown next to results.
type KnowledgeGraph struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Website string `json:"website"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithMaxResponseBytes caps the response body size.
func WithMaxResponseBytes(n int64) Option {
	return func(c *httpClient) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	maxBody int64
}

// NewClient creates a SerpAPI client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		maxBody: resilience.MaxResponseBytes,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("q", params.Query)
	engine := params.Engine
	if engine == "" {
		engine = "google"
	}
	q.Set("engine", engine)
	if params.Num > 0 {
		q.Set("num", strconv.Itoa(params.Num))
	}
	if params.Country != "" {
		q.Set("gl", params.Country)
	}
	if params.Language != "" {
		q.Set("hl", params.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "serpapi: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := resilience.ReadBody("serpapi", resp.Body, c.maxBody)
	if err != nil {
		return nil, err
	}

	if err := resilience.CheckResponse("serpapi", resp, body); err != nil {
		return nil, err
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "serpapi: unmarshal response")
	}
	if result.Error != "" {
		return nil, eris.Errorf("serpapi: %s", result.Error)
	}

	return &result, nil
}
