package finder

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/profile-finder/internal/judge"
	"github.com/sells-group/profile-finder/internal/model"
	"github.com/sells-group/profile-finder/internal/resilience"
)

// NameCandidate is what a NameMatcher compares: the name we were asked for
// and what a search hit says, plus context for semantic judges.
type NameCandidate struct {
	Expected string
	Query    model.Query
	Profile  model.ExtractedProfile
}

// NameMatcher decides whether a candidate's extracted name is the person
// being resolved.
type NameMatcher interface {
	MatchName(ctx context.Context, c NameCandidate) model.Verdict
}

// FuzzyMatcher accepts names whose NameSimilarity meets Threshold.
type FuzzyMatcher struct {
	Threshold float64
}

// MatchName implements NameMatcher.
func (m FuzzyMatcher) MatchName(_ context.Context, c NameCandidate) model.Verdict {
	if c.Profile.NameExtracted == "" {
		return model.Reject("name: none extracted")
	}
	score := NameSimilarity(c.Expected, c.Profile.NameExtracted)
	reason := fmt.Sprintf("name: fuzzy %.2f vs threshold %.2f", score, m.Threshold)
	if score >= m.Threshold {
		return model.Accept(reason)
	}
	return model.Reject(reason)
}

// SemanticMatcher asks a Judge first and falls back to Fallback for that one
// call when the judge errors, times out, or its breaker is open.
type SemanticMatcher struct {
	Judge    judge.Judge
	Fallback NameMatcher
	// Timeout bounds each judge call. Zero means 10s.
	Timeout time.Duration
	// MinConfidence, when positive, also requires the judge's confidence to
	// reach it. Zero accepts on the judge's verdict alone.
	MinConfidence float64
	// Breaker, when set, skips the judge entirely after repeated failures.
	Breaker *resilience.CircuitBreaker
}

// MatchName implements NameMatcher.
func (m SemanticMatcher) MatchName(ctx context.Context, c NameCandidate) model.Verdict {
	if c.Profile.NameExtracted == "" {
		return model.Reject("name: none extracted")
	}

	timeout := m.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	jctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	j, err := resilience.Execute(jctx, m.Breaker, func(ctx context.Context) (*judge.Judgment, error) {
		return m.Judge.Judge(ctx, judge.Request{
			ExpectedName: c.Expected,
			FoundName:    c.Profile.NameExtracted,
			Company:      firstNonEmpty(c.Query.Company, c.Profile.Company),
			JobTitle:     firstNonEmpty(c.Query.JobTitle, c.Profile.JobTitle),
			Snippet:      c.Profile.Bio,
		})
	})
	if err == nil && j == nil {
		err = eris.New("finder: judge returned no judgment")
	}
	if err != nil {
		zap.L().Warn("finder: semantic name check failed, using fuzzy matcher",
			zap.String("expected", c.Expected),
			zap.String("found", c.Profile.NameExtracted),
			zap.Error(err),
		)
		fallback := m.Fallback
		if fallback == nil {
			fallback = FuzzyMatcher{Threshold: DefaultOptions().NameSimilarityThreshold}
		}
		v := fallback.MatchName(ctx, c)
		v.Reason = "semantic unavailable; " + v.Reason
		return v
	}

	reason := fmt.Sprintf("name: semantic match=%t confidence %.2f: %s", j.IsMatch, j.Confidence, j.Reasoning)
	if j.IsMatch && (m.MinConfidence <= 0 || j.Confidence >= m.MinConfidence) {
		return model.Accept(reason)
	}
	return model.Reject(reason)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
