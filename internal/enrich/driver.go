// Package enrich walks the business table one row at a time, filling in
// contact columns from the research sources or from the business's own
// website.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ajofficial223/Data-Scraper/internal/model"
	"github.com/ajofficial223/Data-Scraper/internal/reconcile"
	"github.com/ajofficial223/Data-Scraper/internal/source"
	"github.com/ajofficial223/Data-Scraper/internal/table"
)

// Reconciler adjudicates the three source payloads.
type Reconciler interface {
	Reconcile(ctx context.Context, rec model.BusinessRecord, ai, web, serp *model.RawResponse) reconcile.Outcome
}

// Validator filters an adjudicated record.
type Validator interface {
	Validate(ctx context.Context, biz model.BusinessRecord, rec *model.ReconciledRecord) *model.ValidatedRecord
}

// SiteScraper reads contacts from a known website.
type SiteScraper interface {
	Scrape(ctx context.Context, website string) (*model.SiteContacts, error)
}

// Deps wires the driver. Any adapter may be nil, in which case that source
// always reports no data.
type Deps struct {
	AI         source.Adapter
	Web        source.Adapter
	SERP       source.Adapter
	Reconciler Reconciler
	Validator  Validator
	Scraper    SiteScraper
	RunID      string
}

// Summary counts what happened to each processed row.
type Summary struct {
	RunID    string
	Total    int
	Enriched int
	Empty    int
	Scraped  int
	Failed   int
	Skipped  int
}

type rowResult int

const (
	rowEnriched rowResult = iota
	rowEmpty
	rowScraped
	rowFailed
	rowSkipped
)

// Driver runs the batch.
type Driver struct {
	deps Deps
}

// New creates a Driver.
func New(deps Deps) *Driver {
	return &Driver{deps: deps}
}

// Run processes up to limit rows of tbl in order (all rows when limit is
// zero or negative). Rows are updated in place and never removed. A failing
// row is logged and the batch moves on.
func (d *Driver) Run(ctx context.Context, tbl *table.Table, limit int) Summary {
	tbl.EnsureColumns(table.ExpectedColumns)

	n := tbl.Len()
	if limit > 0 && limit < n {
		n = limit
	}

	sum := Summary{RunID: d.deps.RunID}
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			zap.L().Warn("enrich: batch cancelled", zap.Int("row", i), zap.Error(ctx.Err()))
			break
		}
		sum.Total++
		switch d.processRow(ctx, tbl, i) {
		case rowEnriched:
			sum.Enriched++
		case rowEmpty:
			sum.Empty++
		case rowScraped:
			sum.Scraped++
		case rowFailed:
			sum.Failed++
		case rowSkipped:
			sum.Skipped++
		}
	}

	zap.L().Info("enrich: batch complete",
		zap.String("run_id", sum.RunID),
		zap.Int("total", sum.Total),
		zap.Int("enriched", sum.Enriched),
		zap.Int("empty", sum.Empty),
		zap.Int("scraped", sum.Scraped),
		zap.Int("failed", sum.Failed),
		zap.Int("skipped", sum.Skipped),
	)
	return sum
}

func (d *Driver) processRow(ctx context.Context, tbl *table.Table, i int) (result rowResult) {
	rec := tbl.Record(i)
	log := zap.L().With(
		zap.Int("row", i+1),
		zap.String("company", rec.Name),
		zap.String("industry", rec.Industry),
		zap.String("location", rec.Location),
	)

	defer func() {
		if r := recover(); r != nil {
			log.Error("enrich: row panicked", zap.Any("panic", r))
			result = rowFailed
		}
	}()

	if rec.Name == "" {
		log.Warn("enrich: row has no company name, skipping")
		return rowSkipped
	}

	website := tbl.Get(i, table.ColWebsite)
	if website == "" {
		return d.research(ctx, tbl, i, rec, log)
	}
	return d.scrape(ctx, tbl, i, website, log)
}

func (d *Driver) research(ctx context.Context, tbl *table.Table, i int, rec model.BusinessRecord, log *zap.Logger) rowResult {
	log.Info("enrich: researching")

	ai := d.lookup(ctx, d.deps.AI, rec, log)
	web := d.lookup(ctx, d.deps.Web, rec, log)
	serp := d.lookup(ctx, d.deps.SERP, rec, log)

	var reconciled *model.ReconciledRecord
	if d.deps.Reconciler != nil {
		out := d.deps.Reconciler.Reconcile(ctx, rec, ai, web, serp)
		log.Debug("enrich: reconciled", zap.Stringer("status", out.Status))
		if out.Status == reconcile.StatusParsed {
			reconciled = out.Record
		}
	}

	validated := d.deps.Validator.Validate(ctx, rec, reconciled)
	Merge(tbl, i, validated)

	fields := make([]string, 0, len(validated.Fields))
	for _, f := range model.ContentFields {
		if _, ok := validated.Get(f); ok {
			fields = append(fields, string(f))
		}
	}
	log.Info("enrich: record summary",
		zap.Strings("found", fields),
		zap.String("quality", string(validated.DataQuality)),
		zap.String("sources", validated.SourcesUsed),
		zap.String("score", validated.ConfidenceScore),
		zap.String("notes", validated.ValidationNotes),
	)

	if len(fields) == 0 {
		log.Warn("enrich: no valid data")
		return rowEmpty
	}
	return rowEnriched
}

func (d *Driver) lookup(ctx context.Context, a source.Adapter, rec model.BusinessRecord, log *zap.Logger) *model.RawResponse {
	if a == nil {
		return nil
	}
	resp, err := a.Lookup(ctx, rec)
	if err != nil {
		log.Warn("enrich: source failed", zap.String("source", a.Name()), zap.Error(err))
		return nil
	}
	if resp == nil {
		log.Debug("enrich: source had no data", zap.String("source", a.Name()))
	}
	return resp
}

func (d *Driver) scrape(ctx context.Context, tbl *table.Table, i int, website string, log *zap.Logger) rowResult {
	if d.deps.Scraper == nil {
		return rowSkipped
	}
	log = log.With(zap.String("website", website))
	log.Info("enrich: scraping website")

	contacts, err := d.deps.Scraper.Scrape(ctx, website)
	if err != nil {
		log.Error("enrich: scrape failed", zap.Error(err))
		return rowFailed
	}

	MergeSite(tbl, i, contacts)
	log.Info("enrich: scrape summary",
		zap.Int("pages", contacts.PagesFetched),
		zap.Int("emails", len(contacts.Emails)),
		zap.Int("phones", len(contacts.Phones)),
		zap.Bool("facebook", contacts.Facebook != ""),
		zap.Bool("instagram", contacts.Instagram != ""),
		zap.Bool("linkedin", contacts.LinkedIn != ""),
	)
	return rowScraped
}

// Merge writes every validated field into row i and always writes the four
// quality columns.
func Merge(tbl *table.Table, i int, v *model.ValidatedRecord) {
	for _, f := range model.ContentFields {
		if val, ok := v.Get(f); ok {
			tbl.Set(i, table.FieldColumns[f], val)
		}
	}
	tbl.Set(i, table.ColDataQuality, string(v.DataQuality))
	tbl.Set(i, table.ColSourcesUsed, v.SourcesUsed)
	tbl.Set(i, table.ColConfidenceScore, v.ConfidenceScore)
	tbl.Set(i, table.ColValidationNotes, v.ValidationNotes)
}

// MergeSite overwrites the social columns with what the website links to
// and writes the emails and phones it lists.
func MergeSite(tbl *table.Table, i int, c *model.SiteContacts) {
	tbl.Set(i, table.ColFacebook, c.Facebook)
	tbl.Set(i, table.ColInstagram, c.Instagram)
	tbl.Set(i, table.ColLinkedIn, c.LinkedIn)
	tbl.Set(i, table.ColEmail, strings.Join(c.Emails, ", "))
	tbl.Set(i, table.ColPhone, strings.Join(c.Phones, ", "))
}

// String renders the summary for the console.
func (s Summary) String() string {
	return fmt.Sprintf("run %s: %d rows, %d enriched, %d empty, %d scraped, %d failed, %d skipped",
		s.RunID, s.Total, s.Enriched, s.Empty, s.Scraped, s.Failed, s.Skipped)
}
