package judge

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rotisserie/eris"
)

// DefaultGroqBaseURL is Groq's OpenAI-compatible endpoint.
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqJudge talks to Groq through the OpenAI chat completions API.
type GroqJudge struct {
	client openai.Client
	model  string
}

// NewGroq creates a Groq-backed judge. An empty baseURL uses Groq's public
// endpoint; any OpenAI-compatible server works.
func NewGroq(apiKey, baseURL, model string) *GroqJudge {
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
	return &GroqJudge{client: client, model: model}
}

// Judge implements Judge.
func (g *GroqJudge) Judge(ctx context.Context, req Request) (*Judgment, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(req)),
		},
		MaxTokens:   openai.Int(200),
		Temperature: openai.Float(0.1),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "judge: groq")
	}
	if len(resp.Choices) == 0 {
		return nil, eris.New("judge: groq returned no choices")
	}
	return ParseJudgment(resp.Choices[0].Message.Content)
}
