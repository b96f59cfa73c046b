package finder

import (
	"fmt"
	"strings"

	"github.com/sells-group/profile-finder/internal/model"
)

// PlannerOptions configures query rendering.
type PlannerOptions struct {
	// SiteFilter restricts the first strategy, e.g. "linkedin.com/in".
	// Empty skips the site-restricted strategy.
	SiteFilter string
	// IncludeCompanyVariants adds a name + first-company-word strategy for
	// multi-word companies.
	IncludeCompanyVariants bool
}

// Planner renders a Query into an ordered list of search strategies,
// most precise first.
type Planner struct {
	opts PlannerOptions
}

// NewPlanner creates a Planner.
func NewPlanner(opts PlannerOptions) *Planner {
	return &Planner{opts: opts}
}

// Plan returns the strategies for q in the order they should be tried.
// Strategies whose input field is empty are skipped, and a rendered query
// identical to an earlier one is dropped. Indexes are 1-based positions in
// the returned slice.
func (p *Planner) Plan(q model.Query) []model.Strategy {
	name := CleanName(q.Name)
	if name == "" {
		return nil
	}
	company := CleanCompany(strings.TrimSpace(q.Company))
	jobTitle := strings.Join(strings.Fields(q.JobTitle), " ")

	var out []model.Strategy
	seen := make(map[string]bool)
	add := func(kind model.StrategyKind, query string) {
		key := strings.ToLower(query)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, model.Strategy{Index: len(out) + 1, Kind: kind, Query: query})
	}

	if company != "" && p.opts.SiteFilter != "" {
		add(model.StrategySiteNameCompany, fmt.Sprintf("site:%s %s %s", p.opts.SiteFilter, quote(name), quote(company)))
	}
	if company != "" {
		add(model.StrategyNameCompany, fmt.Sprintf("linkedin %s %s", quote(name), quote(company)))
	}
	if jobTitle != "" {
		add(model.StrategyNameJobTitle, fmt.Sprintf("linkedin %s %s", quote(name), quote(jobTitle)))
	}
	for _, kw := range q.Keywords {
		kw = strings.Join(strings.Fields(kw), " ")
		if kw == "" {
			continue
		}
		add(model.StrategyNameKeyword, fmt.Sprintf("linkedin %s %s", quote(name), quote(kw)))
	}
	if p.opts.IncludeCompanyVariants {
		if words := strings.Fields(company); len(words) > 1 {
			add(model.StrategyCompanyVariant, fmt.Sprintf("linkedin %s %s", quote(name), quote(words[0])))
		}
	}
	add(model.StrategyNameOnly, fmt.Sprintf("linkedin %s", quote(name)))

	return out
}

// quote wraps s in double quotes for exact-phrase search, dropping any quotes
// already inside it.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "") + `"`
}
