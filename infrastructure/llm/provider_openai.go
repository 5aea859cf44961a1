package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// OpenAIDefaultModel is the default model for the openai provider.
	OpenAIDefaultModel = "gpt-4o-mini"

	// GroqDefaultModel is the default model for the groq provider,
	// matching the governance evaluator's reference configuration.
	GroqDefaultModel = "llama-3.1-70b-versatile"

	// GroqBaseURL is Groq's OpenAI-compatible endpoint.
	GroqBaseURL = "https://api.groq.com/openai/v1"
)

func init() {
	RegisterProviderFactory("openai", newOpenAIProvider)
	RegisterProviderFactory("groq", newGroqProvider)
}

// openAIProvider implements CoreLLM for any OpenAI-compatible chat
// completion API. Both the openai and groq factories produce this
// provider; they differ only in defaults and endpoint.
type openAIProvider struct {
	BaseProvider
	client          *openai.Client
	tokenCounter    *TokenCounter
	errorClassifier *ErrorClassifier
}

// newGroqProvider creates a provider for Groq's OpenAI-compatible API.
// Groq hosts the default evaluation model, so this is the provider the
// pipeline reaches for unless configured otherwise.
func newGroqProvider(config ClientConfig) (CoreLLM, error) {
	if config.BaseURL == "" {
		config.BaseURL = GroqBaseURL
	}
	if config.Model == "" {
		config.Model = GroqDefaultModel
	}
	return newCompatibleProvider("groq", config)
}

// newOpenAIProvider creates a provider for OpenAI's API.
func newOpenAIProvider(config ClientConfig) (CoreLLM, error) {
	if config.Model == "" {
		config.Model = OpenAIDefaultModel
	}
	return newCompatibleProvider("openai", config)
}

func newCompatibleProvider(name string, config ClientConfig) (CoreLLM, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	clientConfig := openai.DefaultConfig(config.APIKey)

	if config.BaseURL != "" {
		validatedURL, err := ValidateBaseURL(config.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid BaseURL: %w", err)
		}
		clientConfig.BaseURL = validatedURL
	}

	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{
			Timeout: ValidateTimeout(config.Timeout),
		}
	}

	return &openAIProvider{
		BaseProvider:    BaseProvider{model: config.Model},
		client:          openai.NewClientWithConfig(clientConfig),
		tokenCounter:    NewTokenCounter(),
		errorClassifier: &ErrorClassifier{Provider: name},
	}, nil
}

// DoRequest sends a chat completion request and returns the generated
// content along with token usage.
func (p *openAIProvider) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	options := ParseRequestOptions(opts, p.GetModel())

	req := p.buildChatCompletionRequest(prompt, options)
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", 0, 0, p.handleError(err)
	}

	if len(resp.Choices) == 0 {
		return "", 0, 0, ErrNoResponseChoice
	}

	content := resp.Choices[0].Message.Content

	tokensIn := p.tokenCounter.GetTokenCount(resp.Usage.PromptTokens, prompt)
	tokensOut := p.tokenCounter.GetTokenCount(resp.Usage.CompletionTokens, content)

	return content, tokensIn, tokensOut, nil
}

func (p *openAIProvider) buildChatCompletionRequest(prompt string, options RequestOptions) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model:    options.Model,
		Messages: p.buildMessages(prompt, options),
	}
	p.applyRequestParameters(&req, options)
	return req
}

func (p *openAIProvider) buildMessages(prompt string, options RequestOptions) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, 2)

	if options.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: options.System,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	return messages
}

func (p *openAIProvider) applyRequestParameters(req *openai.ChatCompletionRequest, options RequestOptions) {
	if options.Temperature != nil {
		// The API accepts temperatures in [0.0, 2.0].
		req.Temperature = float32(ClampFloat64(*options.Temperature, 0.0, 2.0))
	}

	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	if options.TopP != nil {
		req.TopP = float32(ClampFloat64(*options.TopP, 0.0, 1.0))
	}

	// JSON mode: constrain output to a single valid JSON object on
	// models that support it.
	if format, ok := options.Extra["response_format"].(string); ok && format == "json_object" {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	if frequencyPenalty, ok := options.Extra["frequency_penalty"]; ok {
		if penalty, valid := SafeFloat32(frequencyPenalty); valid {
			req.FrequencyPenalty = float32(ClampFloat64(float64(penalty), MinPenalty, MaxPenalty))
		}
	}

	if presencePenalty, ok := options.Extra["presence_penalty"]; ok {
		if penalty, valid := SafeFloat32(presencePenalty); valid {
			req.PresencePenalty = float32(ClampFloat64(float64(penalty), MinPenalty, MaxPenalty))
		}
	}
}

// handleError classifies API failures into ServiceError values.
func (p *openAIProvider) handleError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return p.errorClassifier.ClassifyContextError(err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = "unknown error"
		}
		return p.errorClassifier.ClassifyHTTPError(apiErr.HTTPStatusCode, message, err)
	}

	return NewServiceError(p.errorClassifier.Provider, ErrorTypeNetwork, 0, "request failed", err)
}
