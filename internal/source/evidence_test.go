package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajofficial223/Data-Scraper/internal/model"
)

var sharma = model.BusinessRecord{Name: "Sharma Interiors", Industry: "Interior Design", Location: "Pune"}

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name string
		hit  Hit
		want bool
	}{
		{
			name: "name and location",
			hit:  Hit{Title: "Sharma Interiors", Content: "A design studio in Pune"},
			want: true,
		},
		{
			name: "name and industry in url",
			hit:  Hit{URL: "https://www.justdial.com/sharma-interior-decorators", Content: "Sharma"},
			want: true,
		},
		{
			name: "name only",
			hit:  Hit{Title: "Sharma Associates", Content: "Chartered accountants in Delhi"},
			want: false,
		},
		{
			name: "industry and location without name",
			hit:  Hit{Title: "Top interior design firms", Content: "Best studios in Pune"},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRelevant(sharma, tt.hit))
		})
	}
}

func TestAggregate(t *testing.T) {
	hits := []Hit{
		{
			Title:   "Sharma Interiors - Justdial",
			URL:     "https://www.justdial.com/Pune/Sharma-Interiors",
			Content: "Sharma Interiors, Pune. Phone: +91 98765 43210. Email: info@sharmainteriors.in Address: 12 FC Road, Shivajinagar, Pune 411005",
		},
		{
			Title:   "Sharma Interiors | Facebook",
			URL:     "https://www.facebook.com/sharmainteriorspune",
			Content: "Interior design studio",
		},
		{
			Title:   "Sharma Cakes",
			URL:     "https://www.instagram.com/sharma_cakes",
			Content: "Bakery in Delhi",
		},
	}

	resp := Aggregate(model.SourceWebSearch, sharma, hits)
	require.NotNil(t, resp)
	assert.Equal(t, model.SourceWebSearch, resp.SourceID)

	get := func(f model.Field) string {
		v, _ := resp.Fact(f)
		return v
	}
	assert.Equal(t, "https://www.justdial.com/Pune/Sharma-Interiors", get(model.FieldWebsite))
	assert.Equal(t, "info@sharmainteriors.in", get(model.FieldEmail))
	assert.Equal(t, "+919876543210", get(model.FieldPhone))
	assert.Equal(t, "https://www.facebook.com/sharmainteriorspune", get(model.FieldFacebook))
	assert.Equal(t, "12 FC Road, Shivajinagar, Pune 411005", get(model.FieldAddress))

	_, ok := resp.Fact(model.FieldInstagram)
	assert.False(t, ok, "irrelevant hit must not contribute")
	_, ok = resp.Fact(model.FieldOwner)
	assert.False(t, ok)

	assert.Contains(t, resp.Text, "Website: https://www.justdial.com/Pune/Sharma-Interiors\n")
	assert.Contains(t, resp.Text, "Instagram: BLANK\n")
	assert.Contains(t, resp.Text, "Owner(s): BLANK\n")
	assert.Contains(t, resp.Text, "Match_Type: WEB_SEARCH\nConfidence: MEDIUM")
}

func TestAggregate_SocialURLNeedsNameKeyword(t *testing.T) {
	hits := []Hit{{
		Title:   "Sharma Interiors Pune",
		URL:     "https://www.linkedin.com/company/acme-designs",
		Content: "Sharma Interiors in Pune",
	}}
	assert.Nil(t, Aggregate(model.SourceWebSearch, sharma, hits))
}

func TestAggregate_LabeledEmailAndLandline(t *testing.T) {
	hits := []Hit{{
		Title:   "Sharma Interiors Pune",
		URL:     "https://example.org/listing",
		Content: "E-mail: hello@sharma-studio.co.in, landline (020) 234 5678",
	}}
	resp := Aggregate(model.SourceWebSearch, sharma, hits)
	require.NotNil(t, resp)

	email, _ := resp.Fact(model.FieldEmail)
	assert.Equal(t, "hello@sharma-studio.co.in", email)
	phone, _ := resp.Fact(model.FieldPhone)
	assert.Equal(t, "0202345678", phone)
	_, ok := resp.Fact(model.FieldWebsite)
	assert.False(t, ok, "url without a name keyword is not a website candidate")
}

func TestAggregate_NothingRelevant(t *testing.T) {
	hits := []Hit{{Title: "Unrelated", URL: "https://example.com", Content: "Nothing here"}}
	assert.Nil(t, Aggregate(model.SourceWebSearch, sharma, hits))
	assert.Nil(t, Aggregate(model.SourceWebSearch, sharma, nil))
}

func TestFirstPhone(t *testing.T) {
	assert.Equal(t, "+919876543210", firstPhone("Mobile: +91-98765-43210"))
	assert.Equal(t, "9876543210", firstPhone("call 98765.43210 today"))
	assert.Equal(t, "0202345678", firstPhone("(020) 234-5678"))
	assert.Empty(t, firstPhone("no digits"))
}

func TestFirstAddress(t *testing.T) {
	assert.Equal(t, "Plot 4, MIDC, Pune", firstAddress("Office: Plot 4, MIDC, Pune\nOpen daily"))
	assert.Empty(t, firstAddress("nothing"))
}
