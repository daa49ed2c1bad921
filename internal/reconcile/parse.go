package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/ajofficial223/Data-Scraper/internal/model"
)

// flexString accepts a JSON string, number, boolean, list of scalars or null.
type flexString struct {
	val string
	set bool
}

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = flexString{}
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s, ok, err := scalarText(v)
	if err != nil {
		return err
	}
	*f = flexString{val: s, set: ok}
	return nil
}

func (f flexString) value() model.Value {
	if !f.set {
		return model.None()
	}
	return cleanValue(f.val)
}

type reconciledJSON struct {
	Website         flexString `json:"Website"`
	Email           flexString `json:"Email"`
	Phone           flexString `json:"Phone"`
	Facebook        flexString `json:"Facebook"`
	Instagram       flexString `json:"Instagram"`
	LinkedIn        flexString `json:"LinkedIn"`
	Owner           flexString `json:"Owner"`
	Address         flexString `json:"Address"`
	DataQuality     flexString `json:"Data_Quality"`
	SourcesUsed     flexString `json:"Sources_Used"`
	ConfidenceScore flexString `json:"Confidence_Score"`
	ValidationNotes flexString `json:"Validation_Notes"`
}

func (r reconciledJSON) record() *model.ReconciledRecord {
	return &model.ReconciledRecord{
		Fields: map[model.Field]model.Value{
			model.FieldWebsite:   r.Website.value(),
			model.FieldEmail:     r.Email.value(),
			model.FieldPhone:     r.Phone.value(),
			model.FieldFacebook:  r.Facebook.value(),
			model.FieldInstagram: r.Instagram.value(),
			model.FieldLinkedIn:  r.LinkedIn.value(),
			model.FieldOwner:     r.Owner.value(),
			model.FieldAddress:   r.Address.value(),
		},
		DataQuality:     r.DataQuality.value(),
		SourcesUsed:     r.SourcesUsed.value(),
		ConfidenceScore: r.ConfidenceScore.value(),
		ValidationNotes: r.ValidationNotes.value(),
	}
}

// Parse decodes an adjudication answer. Strict JSON is tried first, then
// a lenient literal form (single quotes, bare keys, None/True/False,
// trailing commas). BLANK and empty values come back absent.
func Parse(raw string) (*model.ReconciledRecord, error) {
	text := cleanJSON(raw)
	if text == "" {
		return nil, eris.New("reconcile: empty answer")
	}

	var typed reconciledJSON
	jsonErr := json.Unmarshal([]byte(text), &typed)
	if jsonErr == nil {
		return typed.record(), nil
	}

	rec, litErr := parseLiteral(text)
	if litErr == nil {
		return rec, nil
	}
	return nil, eris.Wrapf(litErr, "reconcile: unparseable answer (json: %v)", jsonErr)
}

// cleanJSON strips markdown code fences and surrounding prose.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}

// literalKeys maps normalized keys to their slot in the record.
var literalKeys = map[string]model.Field{
	"website":   model.FieldWebsite,
	"email":     model.FieldEmail,
	"phone":     model.FieldPhone,
	"facebook":  model.FieldFacebook,
	"instagram": model.FieldInstagram,
	"linkedin":  model.FieldLinkedIn,
	"owner":     model.FieldOwner,
	"owners":    model.FieldOwner,
	"address":   model.FieldAddress,
}

// parseLiteral reads a dict literal through the YAML flow-mapping grammar,
// which already accepts single quotes, unquoted keys and trailing commas.
// Only a flow mapping ({...}) is a literal; block mappings such as
// "Error: rate limited" are rejected.
func parseLiteral(text string) (*model.ReconciledRecord, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, eris.Wrap(err, "reconcile: parse literal")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, eris.New("reconcile: literal is not a mapping")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode || root.Style&yaml.FlowStyle == 0 {
		return nil, eris.New("reconcile: literal is not a mapping")
	}

	var m map[string]any
	if err := root.Decode(&m); err != nil {
		return nil, eris.Wrap(err, "reconcile: parse literal")
	}

	rec := &model.ReconciledRecord{Fields: map[model.Field]model.Value{}}
	for k, v := range m {
		s, ok, err := scalarText(v)
		if err != nil {
			return nil, eris.Wrapf(err, "reconcile: literal key %q", k)
		}
		val := model.None()
		if ok {
			val = cleanValue(s)
		}

		key := normalizeKey(k)
		if f, known := literalKeys[key]; known {
			rec.Fields[f] = val
			continue
		}
		switch key {
		case "dataquality":
			rec.DataQuality = val
		case "sourcesused":
			rec.SourcesUsed = val
		case "confidencescore":
			rec.ConfidenceScore = val
		case "validationnotes":
			rec.ValidationNotes = val
		}
	}
	return rec, nil
}

func normalizeKey(k string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(k) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// scalarText renders a decoded value as text. Lists of scalars are joined
// with ", ". The bool reports presence.
func scalarText(v any) (string, bool, error) {
	switch t := v.(type) {
	case nil:
		return "", false, nil
	case string:
		if isNullWord(t) {
			return "", false, nil
		}
		return t, true, nil
	case bool:
		if t {
			return "True", true, nil
		}
		return "False", true, nil
	case float64:
		return formatNumber(t), true, nil
	case int, int64, uint64:
		return fmt.Sprint(t), true, nil
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			s, ok, err := scalarText(item)
			if err != nil {
				return "", false, err
			}
			if ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", "), true, nil
	}
	return "", false, eris.Errorf("unsupported value of type %T", v)
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprint(int64(f))
	}
	return fmt.Sprint(f)
}

func isNullWord(s string) bool {
	switch s {
	case "None", "null", "NULL", "Null":
		return true
	}
	return false
}

// cleanValue trims v and maps BLANK (any case) and empty to absent.
func cleanValue(v string) model.Value {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "BLANK") {
		return model.None()
	}
	return model.Some(v)
}
