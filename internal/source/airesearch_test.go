package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajofficial223/Data-Scraper/internal/model"
)

type fakeGenerator struct {
	prompt string
	text   string
	err    error
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

func TestAIResearch_Lookup(t *testing.T) {
	gen := &fakeGenerator{text: "  Website: https://sharmainteriors.in\nEmail: BLANK\n"}
	a := NewAIResearch(gen)

	resp, err := a.Lookup(context.Background(), sharma)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, model.SourceAISearch, resp.SourceID)
	assert.Equal(t, "Website: https://sharmainteriors.in\nEmail: BLANK", resp.Text)
	assert.Empty(t, resp.Facts, "the answer is forwarded unparsed")

	assert.Contains(t, gen.prompt, "COMPANY: Sharma Interiors")
	assert.Contains(t, gen.prompt, "INDUSTRY: Interior Design")
	assert.Contains(t, gen.prompt, "LOCATION: Pune")
	assert.Contains(t, gen.prompt, "Owner(s): [Name(s) or BLANK]")
}

func TestAIResearch_EmptyAnswer(t *testing.T) {
	a := NewAIResearch(&fakeGenerator{text: " \n "})
	resp, err := a.Lookup(context.Background(), sharma)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestAIResearch_Error(t *testing.T) {
	a := NewAIResearch(&fakeGenerator{err: errors.New("rate limited")})
	resp, err := a.Lookup(context.Background(), sharma)
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
	assert.Equal(t, model.SourceAISearch, a.Name())
}
