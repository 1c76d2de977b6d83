package llm

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAI is a Backend on any OpenAI-compatible chat completion endpoint.
type OpenAI struct {
	llm *openai.LLM
}

// NewOpenAI builds the client. baseURL may be empty for the default endpoint.
func NewOpenAI(apiKey, baseURL, model string) (*OpenAI, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create openai client")
	}
	return &OpenAI{llm: client}, nil
}

func (o *OpenAI) StreamChat(ctx context.Context, persona string, history []Message, message string, fn StreamFunc) error {
	content := make([]llms.MessageContent, 0, len(history)+2)
	content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, persona))
	for _, m := range history {
		role := llms.ChatMessageTypeHuman
		if m.Role == RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, m.Content))
	}
	content = append(content, llms.TextParts(llms.ChatMessageTypeHuman, message))

	_, err := o.llm.GenerateContent(ctx, content,
		llms.WithTemperature(0.2),
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			return fn(ctx, string(chunk))
		}),
	)
	return err
}
