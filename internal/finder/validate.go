package finder

import (
	"context"
	"fmt"

	"github.com/sells-group/profile-finder/internal/model"
)

// Validator accepts a candidate only when both the company check and the
// name check pass. A zero threshold disables its check.
type Validator struct {
	companyThreshold float64
	nameThreshold    float64
	names            NameMatcher
}

// NewValidator creates a Validator. A nil matcher uses FuzzyMatcher at
// nameThreshold.
func NewValidator(companyThreshold, nameThreshold float64, names NameMatcher) *Validator {
	if names == nil {
		names = FuzzyMatcher{Threshold: nameThreshold}
	}
	return &Validator{
		companyThreshold: companyThreshold,
		nameThreshold:    nameThreshold,
		names:            names,
	}
}

// Reconcile moves p's job title into its company when the company is unset
// and the title passes the company check against q. A two-part
// "Name - X" result title leaves X in the job title when nothing marks it as
// a company.
func (v *Validator) Reconcile(q model.Query, p model.ExtractedProfile) model.ExtractedProfile {
	if v.companyThreshold <= 0 || q.Company == "" || p.Company != "" || p.JobTitle == "" {
		return p
	}
	if CompanySimilarity(q.Company, p.JobTitle) >= v.companyThreshold {
		p.Company = p.JobTitle
		p.JobTitle = ""
	}
	return p
}

// Validate checks p against q. The company check runs first since it is
// local; the name check may call out to a judge.
func (v *Validator) Validate(ctx context.Context, q model.Query, p model.ExtractedProfile) model.Verdict {
	p = v.Reconcile(q, p)

	companyReason := "company: check disabled"
	if v.companyThreshold > 0 {
		if q.Company == "" || p.Company == "" {
			return model.Reject("company: unset on query or candidate")
		}
		score := CompanySimilarity(q.Company, p.Company)
		companyReason = fmt.Sprintf("company: %.2f vs threshold %.2f", score, v.companyThreshold)
		if score < v.companyThreshold {
			return model.Reject(companyReason)
		}
	}

	if v.nameThreshold <= 0 {
		return model.Accept(companyReason + "; name: check disabled")
	}
	nv := v.names.MatchName(ctx, NameCandidate{Expected: q.Name, Query: q, Profile: p})
	nv.Reason = companyReason + "; " + nv.Reason
	return nv
}
