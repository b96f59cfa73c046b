package judge

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/profile-finder/pkg/anthropic"
)

// AnthropicJudge asks a Claude model through the Messages API.
type AnthropicJudge struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates a judge backed by client.
func NewAnthropic(client anthropic.Client, model string) *AnthropicJudge {
	return &AnthropicJudge{client: client, model: model}
}

// Judge implements Judge.
func (a *AnthropicJudge) Judge(ctx context.Context, req Request) (*Judgment, error) {
	temp := 0.1
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: 256,
		System: []anthropic.SystemBlock{{
			Text:         systemPrompt,
			CacheControl: &anthropic.CacheControl{TTL: "5m"},
		}},
		Messages:    []anthropic.Message{{Role: "user", Content: BuildPrompt(req)}},
		Temperature: &temp,
	})
	if err != nil {
		return nil, eris.Wrap(err, "judge: anthropic")
	}
	resp.Usage.LogCost(a.model, "name_judge")

	return ParseJudgment(resp.Text())
}
