// Package sitescrape pulls social links, emails and phone numbers straight
// from a business's own website.
package sitescrape

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/ajofficial223/Data-Scraper/internal/model"
	"github.com/ajofficial223/Data-Scraper/internal/validate"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxBody  = 2 << 20
	defaultMaxPages = 10
)

var defaultKeywords = []string{"contact", "about", "team"}

// Option configures a Scraper.
type Option func(*Scraper)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Scraper) { s.client = hc }
}

// WithTimeout sets the per-page fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithLinkKeywords sets the words that mark an internal page worth fetching.
func WithLinkKeywords(words []string) Option {
	return func(s *Scraper) {
		if len(words) > 0 {
			s.keywords = words
		}
	}
}

// WithMaxBodyBytes caps how much of each page is read.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Scraper) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithMaxPages caps how many internal pages are fetched after the homepage.
func WithMaxPages(n int) Option {
	return func(s *Scraper) {
		if n > 0 {
			s.maxPages = n
		}
	}
}

// Scraper fetches a homepage and its contact-style pages.
type Scraper struct {
	client    *http.Client
	userAgent string
	keywords  []string
	maxBody   int64
	maxPages  int
}

// New creates a Scraper.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: "Mozilla/5.0",
		keywords:  defaultKeywords,
		maxBody:   defaultMaxBody,
		maxPages:  defaultMaxPages,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Scrape collects contacts from website. Only a homepage failure is an
// error; internal pages are best-effort.
func (s *Scraper) Scrape(ctx context.Context, website string) (*model.SiteContacts, error) {
	home := validate.NormalizeURL(website)
	base, err := url.Parse(home)
	if err != nil || base.Host == "" {
		return nil, eris.Errorf("sitescrape: invalid website %q", website)
	}

	doc, err := s.fetch(ctx, home)
	if err != nil {
		return nil, eris.Wrap(err, "sitescrape: fetch homepage")
	}

	out := &model.SiteContacts{PagesFetched: 1}
	out.Facebook, out.Instagram, out.LinkedIn = socialLinks(doc)
	links := s.internalLinks(doc, base)

	var text strings.Builder
	text.WriteString(pageText(doc))

	log := zap.L().With(zap.String("website", home))
	if len(links) > s.maxPages {
		links = links[:s.maxPages]
	}
	for _, link := range links {
		page, err := s.fetch(ctx, link)
		if err != nil {
			log.Debug("sitescrape: skip internal page", zap.String("url", link), zap.Error(err))
			continue
		}
		text.WriteString("\n")
		text.WriteString(pageText(page))
		out.PagesFetched++
	}

	clean := normalizeText(text.String())
	out.Emails, out.Phones = CleanContacts(FindEmails(clean), FindPhones(clean))

	log.Debug("sitescrape: done",
		zap.Int("pages", out.PagesFetched),
		zap.Int("emails", len(out.Emails)),
		zap.Int("phones", len(out.Phones)),
	)
	return out, nil
}

func (s *Scraper) fetch(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sitescrape: create request")
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "sitescrape: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("sitescrape: status %d from %s", resp.StatusCode, target)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, s.maxBody))
	if err != nil {
		return nil, eris.Wrap(err, "sitescrape: parse html")
	}
	return doc, nil
}

// socialLinks scans every anchor; the last link per platform wins and a
// link counts for one platform only.
func socialLinks(doc *goquery.Document) (facebook, instagram, linkedin string) {
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		switch {
		case strings.Contains(href, "facebook.com"):
			facebook = href
		case strings.Contains(href, "instagram.com"):
			instagram = href
		case strings.Contains(href, "linkedin.com"):
			linkedin = href
		}
	})
	return facebook, instagram, linkedin
}

// internalLinks returns same-host pages whose href or link text contains
// one of the keywords, deduplicated in discovery order.
func (s *Scraper) internalLinks(doc *goquery.Document, base *url.URL) []string {
	var links []string
	seen := map[string]bool{base.String(): true}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "mailto:") ||
			strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "javascript:") {
			return
		}
		if !containsAny(strings.ToLower(href), s.keywords) && !containsAny(strings.ToLower(a.Text()), s.keywords) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Host != base.Host {
			return
		}
		abs.Fragment = ""

		key := abs.String()
		if seen[key] {
			return
		}
		seen[key] = true
		links = append(links, key)
	})
	return links
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// pageText returns the visible text of doc with scripts and styles removed.
// Text nodes are separated by spaces so adjacent elements do not fuse.
func pageText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		collectText(&b, n)
	}
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}

var invisibleSpaces = strings.NewReplacer("\u00a0", " ", "\u200b", " ")

func normalizeText(s string) string {
	s = norm.NFKC.String(invisibleSpaces.Replace(s))
	return strings.Join(strings.Fields(s), " ")
}
