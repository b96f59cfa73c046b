package model

import "strings"

// Query identifies the person to resolve. Only Name is required.
type Query struct {
	Name     string   `json:"name" yaml:"name"`
	Company  string   `json:"company,omitempty" yaml:"company,omitempty"`
	JobTitle string   `json:"job_title,omitempty" yaml:"job_title,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Valid reports whether the query carries a usable name.
func (q Query) Valid() bool {
	return strings.TrimSpace(q.Name) != ""
}

// WithDefaultKeywords returns a copy of q whose keywords fall back to defaults
// when the caller supplied none. Caller order is preserved either way.
func (q Query) WithDefaultKeywords(defaults []string) Query {
	out := q
	if len(q.Keywords) == 0 && len(defaults) > 0 {
		out.Keywords = append([]string(nil), defaults...)
	} else if len(q.Keywords) > 0 {
		out.Keywords = append([]string(nil), q.Keywords...)
	}
	return out
}

// ParseFreeQuery splits a free-form "First Last Company" string into a Query.
// The last word is taken as the company and everything before it as the name.
// A single word yields a name-only query.
func ParseFreeQuery(s string) Query {
	parts := strings.Fields(s)
	switch len(parts) {
	case 0:
		return Query{}
	case 1:
		return Query{Name: parts[0]}
	case 2:
		return Query{Name: parts[0], Company: parts[1]}
	default:
		return Query{
			Name:    strings.Join(parts[:len(parts)-1], " "),
			Company: parts[len(parts)-1],
		}
	}
}

// StrategyKind names the rule a Strategy was rendered from.
type StrategyKind string

const (
	StrategySiteNameCompany StrategyKind = "site_name_company"
	StrategyNameCompany     StrategyKind = "name_company"
	StrategyNameJobTitle    StrategyKind = "name_job_title"
	StrategyNameKeyword     StrategyKind = "name_keyword"
	StrategyCompanyVariant  StrategyKind = "name_company_variant"
	StrategyNameOnly        StrategyKind = "name_only"
)

// Strategy is one rendered search query, tried in planner order.
type Strategy struct {
	Index int          `json:"index"` // 1-based ordinal
	Kind  StrategyKind `json:"kind"`
	Query string       `json:"query"`
}
