package perplexity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajofficial223/Data-Scraper/internal/resilience"
)

const okBody = `{"id":"1","choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}],"usage":{}}`

func research() ChatCompletionRequest {
	return ChatCompletionRequest{Messages: []Message{{Role: "user", Content: "Find Sharma Interiors, Pune"}}}
}

// captureServer records the decoded request body and answers with status
// and body.
func captureServer(t *testing.T, status int, body string, got *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer pplx-key", r.Header.Get("Authorization"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatCompletion(t *testing.T) {
	srv := captureServer(t, http.StatusOK, `{
		"id": "cmpl-123",
		"model": "sonar-pro",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "Website: https://sharmainteriors.in"}}],
		"citations": ["https://www.justdial.com/Pune/Sharma-Interiors", "https://sharmainteriors.in"],
		"usage": {"prompt_tokens": 40, "completion_tokens": 12}
	}`, nil)

	resp, err := NewClient("pplx-key", WithBaseURL(srv.URL+"/")).ChatCompletion(context.Background(), research())
	require.NoError(t, err)
	assert.Equal(t, "cmpl-123", resp.ID)
	assert.Equal(t, "Website: https://sharmainteriors.in", resp.Text())
	assert.Len(t, resp.Citations, 2)
	assert.Equal(t, 12, resp.Usage.CompletionTokens)
}

func TestChatCompletion_RequestBody(t *testing.T) {
	var got map[string]any
	srv := captureServer(t, http.StatusOK, okBody, &got)

	temp := 0.0
	req := research()
	req.Temperature = &temp
	req.SearchDomainFilter = []string{"justdial.com", "-pinterest.com"}
	req.WebSearchOptions = &WebSearchOptions{SearchContextSize: "high"}

	_, err := NewClient("pplx-key", WithBaseURL(srv.URL), WithModel("sonar")).ChatCompletion(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "sonar", got["model"])
	assert.Equal(t, 0.0, got["temperature"])
	assert.NotContains(t, got, "max_tokens")
	assert.Equal(t, []any{"justdial.com", "-pinterest.com"}, got["search_domain_filter"])
	assert.Equal(t, map[string]any{"search_context_size": "high"}, got["web_search_options"])
}

func TestChatCompletion_ModelSelection(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		reqMod string
		want   string
	}{
		{name: "default", want: defaultModel},
		{name: "client option", opts: []Option{WithModel("sonar")}, want: "sonar"},
		{name: "empty option keeps default", opts: []Option{WithModel("")}, want: defaultModel},
		{name: "request wins", opts: []Option{WithModel("sonar")}, reqMod: "sonar-reasoning", want: "sonar-reasoning"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]any
			srv := captureServer(t, http.StatusOK, okBody, &got)

			req := research()
			req.Model = tt.reqMod
			_, err := NewClient("pplx-key", append(tt.opts, WithBaseURL(srv.URL))...).ChatCompletion(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got["model"])
		})
	}
}

func TestChatCompletion_Errors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantErr       string
		wantTransient bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":"rate limit"}`, wantErr: "unexpected status 429", wantTransient: true},
		{name: "server error", status: http.StatusServiceUnavailable, wantErr: "unexpected status 503", wantTransient: true},
		{name: "bad key", status: http.StatusForbidden, body: `{"error":"invalid api key"}`, wantErr: "invalid api key"},
		{name: "malformed", status: http.StatusOK, body: `{invalid json`, wantErr: "unmarshal response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := captureServer(t, tt.status, tt.body, nil)
			resp, err := NewClient("pplx-key", WithBaseURL(srv.URL)).ChatCompletion(context.Background(), research())
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, tt.wantTransient, resilience.IsTransient(err))
		})
	}
}

func TestChatCompletion_NoMessages(t *testing.T) {
	_, err := NewClient("pplx-key", WithBaseURL("http://127.0.0.1:1")).ChatCompletion(context.Background(), ChatCompletionRequest{})
	assert.ErrorContains(t, err, "no messages")
}

func TestChatCompletion_Cancelled(t *testing.T) {
	srv := captureServer(t, http.StatusOK, okBody, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient("pplx-key", WithBaseURL(srv.URL)).ChatCompletion(ctx, research())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}

func TestChatCompletion_OversizedResponse(t *testing.T) {
	srv := captureServer(t, http.StatusOK, okBody, nil)
	_, err := NewClient("pplx-key", WithBaseURL(srv.URL), WithMaxResponseBytes(20)).ChatCompletion(context.Background(), research())
	assert.ErrorContains(t, err, "perplexity: response exceeds 20 bytes")
}

func TestNewClient_Options(t *testing.T) {
	hc := &http.Client{}
	c := NewClient("pplx-key", WithHTTPClient(hc)).(*httpClient)
	assert.Same(t, hc, c.http)
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.Equal(t, defaultModel, c.model)
	assert.Equal(t, int64(resilience.MaxResponseBytes), c.maxBody)
}

func TestResponse_Text(t *testing.T) {
	var nilResp *ChatCompletionResponse
	assert.Empty(t, nilResp.Text())
	assert.Empty(t, (&ChatCompletionResponse{}).Text())

	resp := &ChatCompletionResponse{Choices: []Choice{
		{Message: Message{Content: "Website: sharmainteriors.in"}},
		{Message: Message{Content: "ignored"}},
	}}
	assert.Equal(t, "Website: sharmainteriors.in", resp.Text())
}

func TestResponse_Sources(t *testing.T) {
	var nilResp *ChatCompletionResponse
	assert.Nil(t, nilResp.Sources())

	cited := &ChatCompletionResponse{Citations: []string{"https://a.in", " https://a.in ", "", "https://b.in"}}
	assert.Equal(t, []string{"https://a.in", "https://b.in"}, cited.Sources())

	fallback := &ChatCompletionResponse{Results: []SearchResult{{Title: "A", URL: "https://a.in"}, {Title: "C", URL: "https://c.in"}}}
	assert.Equal(t, []string{"https://a.in", "https://c.in"}, fallback.Sources())
}

func TestResponse_Answer(t *testing.T) {
	resp := &ChatCompletionResponse{
		Choices:   []Choice{{Message: Message{Content: "  Phone: 98765 43210\n"}}},
		Citations: []string{"https://www.justdial.com/Pune/Sharma-Interiors", "https://sharmainteriors.in"},
	}
	assert.Equal(t, "Phone: 98765 43210\n\nSOURCES:\n[1] https://www.justdial.com/Pune/Sharma-Interiors\n[2] https://sharmainteriors.in", resp.Answer())

	assert.Equal(t, "Phone: 98765 43210", (&ChatCompletionResponse{Choices: resp.Choices}).Answer())
	assert.Empty(t, (&ChatCompletionResponse{Citations: resp.Citations}).Answer(), "no answer means no sources either")
}
