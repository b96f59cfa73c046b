// Package judge asks a language model whether a search hit's name refers to
// the person being looked up. Three providers share one prompt and one JSON
// answer contract.
package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Provider names accepted in configuration.
const (
	ProviderAnthropic = "anthropic"
	ProviderGroq      = "groq"
	ProviderGemini    = "gemini"
)

// Request describes the two names to compare plus optional context.
type Request struct {
	ExpectedName string
	FoundName    string
	Company      string
	JobTitle     string
	Snippet      string
}

// Judgment is the model's structured answer.
type Judgment struct {
	IsMatch          bool    `json:"is_match"`
	Confidence       float64 `json:"confidence"`
	Reasoning        string  `json:"reasoning"`
	SamePerson       bool    `json:"same_person"`
	NicknameDetected bool    `json:"nickname_detected"`
}

// Judge compares two person names.
type Judge interface {
	Judge(ctx context.Context, req Request) (*Judgment, error)
}

const systemPrompt = `You are a name validation expert. Your job is to determine if two names refer to the same person.

Consider:
- Nicknames (Mike/Michael, Chris/Christopher, Liz/Elizabeth, etc.)
- Cultural name variations
- Name ordering differences
- Titles and credentials (Dr., Jr., etc.)
- Common spelling variations
- Middle names or initials

Respond with a JSON object containing:
{
    "is_match": boolean,
    "confidence": float (0.0 to 1.0),
    "reasoning": "explanation of your decision",
    "same_person": boolean,
    "nickname_detected": boolean
}

Be conservative - only return true if you're confident they're the same person.`

// BuildPrompt renders the user message for req.
func BuildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Compare these two names:\n")
	fmt.Fprintf(&b, "Expected: %q\n", req.ExpectedName)
	fmt.Fprintf(&b, "Found: %q\n", req.FoundName)

	var ctxParts []string
	if req.Company != "" {
		ctxParts = append(ctxParts, "company "+req.Company)
	}
	if req.JobTitle != "" {
		ctxParts = append(ctxParts, "job title "+req.JobTitle)
	}
	if req.Snippet != "" {
		ctxParts = append(ctxParts, "profile snippet: "+req.Snippet)
	}
	if len(ctxParts) > 0 {
		b.WriteString("Context: " + strings.Join(ctxParts, "; ") + "\n")
	}
	b.WriteString("\nAre these the same person? Respond with JSON only.")
	return b.String()
}

// ParseJudgment decodes a model reply, tolerating code fences and prose
// around the JSON object.
func ParseJudgment(text string) (*Judgment, error) {
	cleaned := cleanJSON(text)
	if cleaned == "" {
		return nil, eris.New("judge: empty response")
	}
	var j Judgment
	if err := json.Unmarshal([]byte(cleaned), &j); err != nil {
		return nil, eris.Wrapf(err, "judge: parse response %q", truncate(text, 200))
	}
	if j.Confidence < 0 {
		j.Confidence = 0
	}
	if j.Confidence > 1 {
		j.Confidence = 1
	}
	return &j, nil
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
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

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
