package sitescrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanContacts(t *testing.T) {
	emails, phones := CleanContacts(
		[]string{"Info@Sharma.in", "info@sharma.in", "sales@sharma.in", "broken@nowhere"},
		[]string{"+91 98765 43210", "9876543210", "020-2345-6789", "12345"},
	)
	assert.Equal(t, []string{"info@sharma.in", "sales@sharma.in"}, emails)
	assert.Equal(t, []string{"98765 43210", "20234 56789"}, phones)
}

func TestCleanContacts_Empty(t *testing.T) {
	emails, phones := CleanContacts(nil, nil)
	assert.Empty(t, emails)
	assert.Empty(t, phones)
}

func TestFindPhones(t *testing.T) {
	got := FindPhones("Call +91 98765 43210 or 9123456789 today")
	require.Len(t, got, 2)
	_, phones := CleanContacts(nil, got)
	assert.Equal(t, []string{"98765 43210", "91234 56789"}, phones)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a b c d", normalizeText("a\u00a0b\u200bc \n\t d"))
	assert.Equal(t, "98765", normalizeText("９８７６５"), "full-width digits fold to ASCII")
}

const homepage = `<html><head><title>Sharma Interiors</title>
<script>var mail = "tracker@analytics.com";</script>
<style>.x{}</style></head>
<body>
<nav>
  <a href="/contact-us">Contact</a>
  <a href="/studio">About Us</a>
  <a href="/contact-us#form">Contact form</a>
  <a href="https://other.example/contact">Partner</a>
  <a href="mailto:info@sharmainteriors.in">Mail</a>
  <a href="/portfolio">Portfolio</a>
  <a href="/missing-team">Team</a>
</nav>
<p>Email: <b>Info@SharmaInteriors.in</b></p>
<p>Phone:&nbsp;+91 98765 43210</p>
<footer>
  <a href="https://facebook.com/old-page">fb</a>
  <a href="https://www.facebook.com/sharmainteriors">Facebook</a>
  <a href="https://instagram.com/sharmainteriors">Instagram</a>
  <a href="https://www.linkedin.com/company/sharma-interiors">LinkedIn</a>
</footer>
</body></html>`

func newSiteServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var paths []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()

		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, homepage)
		case "/contact-us":
			fmt.Fprint(w, `<html><body><p>Write to sales@sharmainteriors.in or info@sharmainteriors.in</p><p>Landline 98765-43210, mobile 91234 56789</p></body></html>`)
		case "/studio":
			fmt.Fprint(w, `<html><body><p>Founded by Anil Sharma.</p></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &paths
}

func TestScrape(t *testing.T) {
	srv, paths := newSiteServer(t)
	s := New(WithHTTPClient(srv.Client()))

	got, err := s.Scrape(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "https://www.facebook.com/sharmainteriors", got.Facebook, "last facebook link wins")
	assert.Equal(t, "https://instagram.com/sharmainteriors", got.Instagram)
	assert.Equal(t, "https://www.linkedin.com/company/sharma-interiors", got.LinkedIn)

	assert.Equal(t, []string{"info@sharmainteriors.in", "sales@sharmainteriors.in"}, got.Emails)
	assert.Equal(t, []string{"98765 43210", "91234 56789"}, got.Phones)

	// Homepage, contact and about pages; the team page 404s and is skipped.
	assert.Equal(t, 3, got.PagesFetched)
	assert.Equal(t, []string{"/", "/contact-us", "/studio", "/missing-team"}, *paths)
}

func TestScrape_MaxPages(t *testing.T) {
	srv, paths := newSiteServer(t)
	s := New(WithHTTPClient(srv.Client()), WithMaxPages(1))

	got, err := s.Scrape(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, got.PagesFetched)
	assert.Equal(t, []string{"/", "/contact-us"}, *paths)
}

func TestScrape_CustomKeywords(t *testing.T) {
	srv, paths := newSiteServer(t)
	s := New(WithHTTPClient(srv.Client()), WithLinkKeywords([]string{"portfolio"}))

	_, err := s.Scrape(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/portfolio"}, *paths)
}

func TestScrape_HomepageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	got, err := New(WithHTTPClient(srv.Client())).Scrape(context.Background(), srv.URL)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestScrape_InvalidWebsite(t *testing.T) {
	_, err := New().Scrape(context.Background(), "https://")
	assert.Error(t, err)
}
