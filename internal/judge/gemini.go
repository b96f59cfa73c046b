package judge

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"
)

// GeminiJudge asks a Gemini model for a schema-constrained JSON answer.
type GeminiJudge struct {
	client *genai.Client
	model  string
}

var judgmentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"is_match":          {Type: genai.TypeBoolean},
		"confidence":        {Type: genai.TypeNumber},
		"reasoning":         {Type: genai.TypeString},
		"same_person":       {Type: genai.TypeBoolean},
		"nickname_detected": {Type: genai.TypeBoolean},
	},
	Required: []string{"is_match", "confidence", "reasoning"},
}

// NewGemini creates a Gemini-backed judge. baseURL overrides the API host
// (proxies, tests).
func NewGemini(ctx context.Context, apiKey, baseURL, model string) (*GeminiJudge, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, eris.New("judge: gemini api key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(apiKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(baseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(baseURL)
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, eris.Wrap(err, "judge: create gemini client")
	}
	return &GeminiJudge{client: client, model: model}, nil
}

// Judge implements Judge.
func (g *GeminiJudge) Judge(ctx context.Context, req Request) (*Judgment, error) {
	temp := float32(0.1)
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(BuildPrompt(req)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       &temp,
			CandidateCount:    1,
			ResponseMIMEType:  "application/json",
			ResponseSchema:    judgmentSchema,
		},
	)
	if err != nil {
		return nil, eris.Wrap(err, "judge: gemini")
	}
	return ParseJudgment(resp.Text())
}
