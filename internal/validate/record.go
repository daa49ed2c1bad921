package validate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ajofficial223/Data-Scraper/internal/model"
)

// URLValidator checks website liveness.
type URLValidator interface {
	ValidateURL(ctx context.Context, v string) bool
}

// RecordValidator filters a reconciled record down to values that pass
// their field validator.
type RecordValidator struct {
	urls URLValidator
}

// NewRecordValidator creates a RecordValidator using urls for websites.
func NewRecordValidator(urls URLValidator) *RecordValidator {
	return &RecordValidator{urls: urls}
}

// Validate applies the field rules to rec. A nil rec yields the empty
// POOR record.
func (v *RecordValidator) Validate(ctx context.Context, biz model.BusinessRecord, rec *model.ReconciledRecord) *model.ValidatedRecord {
	out := model.EmptyValidated()
	if rec == nil {
		return out
	}

	log := zap.L().With(zap.String("company", biz.Name))
	for _, f := range model.ContentFields {
		val, ok := rec.Field(f).Get()
		if !ok {
			continue
		}
		if v.accept(ctx, f, val) {
			out.Fields[f] = strings.TrimSpace(val)
			log.Debug("field accepted", zap.String("field", string(f)), zap.String("value", val))
		} else {
			log.Info("field rejected", zap.String("field", string(f)), zap.String("value", val))
		}
	}

	if q, ok := rec.DataQuality.Get(); ok {
		out.DataQuality = model.ParseQuality(q)
	}
	out.SourcesUsed = rec.SourcesUsed.Or(model.DefaultSourcesUsed)
	out.ConfidenceScore = rec.ConfidenceScore.Or(model.DefaultConfidenceScore)
	out.ValidationNotes = rec.ValidationNotes.Or("")

	return out
}

func (v *RecordValidator) accept(ctx context.Context, f model.Field, val string) bool {
	switch f {
	case model.FieldWebsite:
		return v.urls.ValidateURL(ctx, val)
	case model.FieldEmail:
		return ValidateEmail(val)
	case model.FieldPhone:
		return ValidatePhone(val)
	case model.FieldFacebook, model.FieldInstagram, model.FieldLinkedIn:
		return !IsPlaceholder(val) && strings.Contains(strings.ToLower(val), string(f))
	default:
		// Owner and address have no reliable syntax to check.
		return !IsPlaceholder(val)
	}
}
