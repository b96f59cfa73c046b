package finder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/profile-finder/internal/model"
)

type recordingMatcher struct {
	calls   int
	verdict model.Verdict
}

func (m *recordingMatcher) MatchName(_ context.Context, _ NameCandidate) model.Verdict {
	m.calls++
	return m.verdict
}

func TestValidator_ZeroThresholdsAcceptAnything(t *testing.T) {
	v := NewValidator(0, 0, nil)
	got := v.Validate(context.Background(), model.Query{Name: "Jane Doe"}, model.ExtractedProfile{})
	assert.True(t, got.Accepted)
}

func TestValidator_CompanyCheck(t *testing.T) {
	v := NewValidator(0.6, 0, nil)
	ctx := context.Background()

	got := v.Validate(ctx, model.Query{Name: "Jane Doe", Company: "Acme"}, model.ExtractedProfile{Company: "Acme Inc."})
	assert.True(t, got.Accepted, got.Reason)

	got = v.Validate(ctx, model.Query{Name: "Jane Doe", Company: "Acme"}, model.ExtractedProfile{Company: "Globex"})
	assert.False(t, got.Accepted)
	assert.Contains(t, got.Reason, "company")

	got = v.Validate(ctx, model.Query{Name: "Jane Doe"}, model.ExtractedProfile{Company: "Acme"})
	assert.False(t, got.Accepted)

	got = v.Validate(ctx, model.Query{Name: "Jane Doe", Company: "Acme"}, model.ExtractedProfile{})
	assert.False(t, got.Accepted)
}

func TestValidator_FuzzyName(t *testing.T) {
	v := NewValidator(0, 0.7, nil)
	ctx := context.Background()

	got := v.Validate(ctx, model.Query{Name: "Mike Johnson"}, model.ExtractedProfile{NameExtracted: "Michael Johnson"})
	assert.True(t, got.Accepted, got.Reason)

	got = v.Validate(ctx, model.Query{Name: "Mike Johnson"}, model.ExtractedProfile{NameExtracted: "Sarah Connor"})
	assert.False(t, got.Accepted)

	got = v.Validate(ctx, model.Query{Name: "Mike Johnson"}, model.ExtractedProfile{})
	assert.False(t, got.Accepted)
}

func TestValidator_BothChecksMustPass(t *testing.T) {
	v := NewValidator(0.6, 0.7, nil)
	q := model.Query{Name: "Jane Doe", Company: "Acme"}

	got := v.Validate(context.Background(), q, model.ExtractedProfile{NameExtracted: "John Roe", Company: "Acme"})
	assert.False(t, got.Accepted)

	got = v.Validate(context.Background(), q, model.ExtractedProfile{NameExtracted: "Jane Doe", Company: "Acme LLC"})
	assert.True(t, got.Accepted)
	assert.Contains(t, got.Reason, "company")
	assert.Contains(t, got.Reason, "name")
}

func TestValidator_CompanyRejectSkipsNameMatcher(t *testing.T) {
	m := &recordingMatcher{verdict: model.Accept("ok")}
	v := NewValidator(0.6, 0.7, m)

	got := v.Validate(context.Background(), model.Query{Name: "Jane Doe", Company: "Acme"}, model.ExtractedProfile{Company: "Globex"})
	assert.False(t, got.Accepted)
	assert.Zero(t, m.calls)

	got = v.Validate(context.Background(), model.Query{Name: "Jane Doe", Company: "Acme"}, model.ExtractedProfile{Company: "Acme"})
	assert.True(t, got.Accepted)
	assert.Equal(t, 1, m.calls)
}

func TestValidator_TitleSegmentCountsAsCompany(t *testing.T) {
	v := NewValidator(0.6, 0.7, nil)
	q := model.Query{Name: "John Smith", Company: "Initech"}
	p := Extract(model.RawHit{
		Title:   "John Smith - Initech | LinkedIn",
		URL:     "https://www.linkedin.com/in/johnsmith",
		Snippet: "Austin, Texas",
	})
	assert.Empty(t, p.Company)

	got := v.Validate(context.Background(), q, p)
	assert.True(t, got.Accepted, got.Reason)

	fixed := v.Reconcile(q, p)
	assert.Equal(t, "Initech", fixed.Company)
	assert.Empty(t, fixed.JobTitle)
}

func TestValidator_ReconcileKeepsRealJobTitle(t *testing.T) {
	v := NewValidator(0.6, 0.7, nil)
	q := model.Query{Name: "John Smith", Company: "Initech"}
	p := model.ExtractedProfile{NameExtracted: "John Smith", JobTitle: "Software Engineer"}

	assert.Equal(t, p, v.Reconcile(q, p))
	assert.False(t, v.Validate(context.Background(), q, p).Accepted)

	off := NewValidator(0, 0.7, nil)
	p.JobTitle = "Initech"
	assert.Equal(t, p, off.Reconcile(q, p))
}
