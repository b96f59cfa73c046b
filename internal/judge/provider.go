package judge

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/profile-finder/internal/config"
	"github.com/sells-group/profile-finder/pkg/anthropic"
)

// New builds the judge selected by cfg.Semantic.Provider.
func New(ctx context.Context, cfg *config.Config) (Judge, error) {
	switch cfg.Semantic.Provider {
	case ProviderAnthropic:
		if cfg.Anthropic.Key == "" {
			return nil, eris.New("judge: anthropic.key is required")
		}
		client := anthropic.NewClient(cfg.Anthropic.Key,
			anthropic.WithBaseURL(cfg.Anthropic.BaseURL),
			anthropic.WithMaxRetries(0),
		)
		return NewAnthropic(client, cfg.Anthropic.Model), nil
	case ProviderGroq:
		if cfg.Groq.Key == "" {
			return nil, eris.New("judge: groq.key is required")
		}
		return NewGroq(cfg.Groq.Key, cfg.Groq.BaseURL, cfg.Groq.Model), nil
	case ProviderGemini:
		return NewGemini(ctx, cfg.Gemini.Key, cfg.Gemini.BaseURL, cfg.Gemini.Model)
	default:
		return nil, eris.Errorf("judge: unknown provider %q", cfg.Semantic.Provider)
	}
}
