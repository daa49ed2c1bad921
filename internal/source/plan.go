package source

import (
	_ "embed"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/ajofficial223/Data-Scraper/internal/model"
)

//go:embed queryplan.yaml
var defaultPlanYAML []byte

// QueryPlan is the ordered list of web-search query templates and the domain
// allow-list they are restricted to. Templates use {name}, {industry} and
// {location} placeholders.
type QueryPlan struct {
	Budget         int      `yaml:"budget"`
	IncludeDomains []string `yaml:"include_domains"`
	Queries        []string `yaml:"queries"`
}

// DefaultQueryPlan returns the built-in plan.
func DefaultQueryPlan() *QueryPlan {
	p, err := parsePlan(defaultPlanYAML)
	if err != nil {
		panic("source: embedded query plan: " + err.Error())
	}
	return p
}

// LoadQueryPlan reads a plan override from path. Empty fields fall back to
// the built-in plan.
func LoadQueryPlan(path string) (*QueryPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: read query plan %s", path)
	}
	p, err := parsePlan(data)
	if err != nil {
		return nil, err
	}

	def := DefaultQueryPlan()
	if p.Budget <= 0 {
		p.Budget = def.Budget
	}
	if len(p.IncludeDomains) == 0 {
		p.IncludeDomains = def.IncludeDomains
	}
	if len(p.Queries) == 0 {
		p.Queries = def.Queries
	}
	return p, nil
}

func parsePlan(data []byte) (*QueryPlan, error) {
	// The YAML has a top-level "plan" key
	var wrapper struct {
		Plan QueryPlan `yaml:"plan"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "source: parse query plan")
	}
	return &wrapper.Plan, nil
}

// Render expands every template for rec, in plan order.
func (p *QueryPlan) Render(rec model.BusinessRecord) []string {
	r := strings.NewReplacer(
		"{name}", rec.Name,
		"{industry}", rec.Industry,
		"{location}", rec.Location,
	)
	out := make([]string, 0, len(p.Queries))
	for _, q := range p.Queries {
		out = append(out, strings.Join(strings.Fields(r.Replace(q)), " "))
	}
	return out
}

// Limit returns the queries that fit within the budget.
func (p *QueryPlan) Limit(queries []string, budget int) []string {
	if budget <= 0 {
		budget = p.Budget
	}
	if budget > 0 && len(queries) > budget {
		return queries[:budget]
	}
	return queries
}
