// Package reconcile asks a text-generation provider to adjudicate the raw
// source payloads for one business into a single record.
package reconcile

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ajofficial223/Data-Scraper/internal/llm"
	"github.com/ajofficial223/Data-Scraper/internal/model"
)

// Status classifies an adjudication attempt.
type Status int

const (
	// StatusParsed means Record holds the decoded answer.
	StatusParsed Status = iota
	// StatusNoResponse means the provider failed or answered nothing.
	StatusNoResponse
	// StatusUnparseable means the answer could not be decoded; Raw holds it.
	StatusUnparseable
)

func (s Status) String() string {
	switch s {
	case StatusParsed:
		return "parsed"
	case StatusNoResponse:
		return "no_response"
	case StatusUnparseable:
		return "unparseable"
	}
	return "unknown"
}

// Outcome is the result of one Reconcile call.
type Outcome struct {
	Status Status
	Record *model.ReconciledRecord
	Raw    string
}

// Reconciler adjudicates source payloads. It never returns an error: every
// failure is reported through the Outcome status.
type Reconciler struct {
	gen      llm.Generator
	failures *FailureLog
	runID    string
}

// New creates a Reconciler. failures may be nil to skip archiving.
func New(gen llm.Generator, failures *FailureLog, runID string) *Reconciler {
	return &Reconciler{gen: gen, failures: failures, runID: runID}
}

// Reconcile runs one adjudication for rec. Any of the payloads may be nil.
func (r *Reconciler) Reconcile(ctx context.Context, rec model.BusinessRecord, ai, web, serp *model.RawResponse) Outcome {
	log := zap.L().With(zap.String("company", rec.Name), zap.String("provider", r.gen.Name()))

	raw, err := r.gen.Generate(ctx, Prompt(rec, ai, web, serp))
	if err != nil {
		log.Warn("reconcile: generation failed", zap.Error(err))
		return Outcome{Status: StatusNoResponse}
	}
	if strings.TrimSpace(raw) == "" {
		log.Warn("reconcile: empty answer")
		return Outcome{Status: StatusNoResponse}
	}

	parsed, err := Parse(raw)
	if err != nil {
		log.Error("reconcile: unparseable answer",
			zap.String("preview", preview(raw, 200)),
			zap.Error(err),
		)
		if r.failures != nil {
			if aerr := r.failures.Append(rec, r.runID, raw); aerr != nil {
				log.Error("reconcile: archive failed answer", zap.Error(aerr))
			}
		}
		return Outcome{Status: StatusUnparseable, Raw: raw}
	}

	return Outcome{Status: StatusParsed, Record: parsed, Raw: raw}
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
