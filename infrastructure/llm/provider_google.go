package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GoogleDefaultModel is the default model for the google provider.
const GoogleDefaultModel = "gemini-2.0-flash-exp"

func init() {
	RegisterProviderFactory("google", newGoogleProvider)
}

// googleProvider implements CoreLLM for Google's Gemini API.
type googleProvider struct {
	BaseProvider
	client          *genai.Client
	tokenCounter    *TokenCounter
	errorClassifier *ErrorClassifier
}

func newGoogleProvider(config ClientConfig) (CoreLLM, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	model := config.Model
	if model == "" {
		model = GoogleDefaultModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Google client: %w", err)
	}

	return &googleProvider{
		BaseProvider:    BaseProvider{model: model},
		client:          client,
		tokenCounter:    NewTokenCounter(),
		errorClassifier: &ErrorClassifier{Provider: "google"},
	}, nil
}

// DoRequest sends a generate-content request and returns the generated
// text along with token usage.
func (p *googleProvider) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	options := ParseRequestOptions(opts, p.GetModel())

	contents := p.buildContents(prompt, options)
	config := p.buildGenerationConfig(options)

	resp, err := p.client.Models.GenerateContent(ctx, options.Model, contents, config)
	if err != nil {
		return "", 0, 0, p.handleError(err)
	}

	content := resp.Text()
	if content == "" {
		return "", 0, 0, ErrEmptyResponse
	}

	tokensIn := p.usageTokens(resp.UsageMetadata, true, prompt)
	tokensOut := p.usageTokens(resp.UsageMetadata, false, content)

	return content, tokensIn, tokensOut, nil
}

func (p *googleProvider) usageTokens(usage *genai.GenerateContentResponseUsageMetadata, isInput bool, text string) int {
	if usage != nil {
		if isInput && usage.PromptTokenCount > 0 {
			return int(usage.PromptTokenCount)
		}
		if !isInput && usage.CandidatesTokenCount > 0 {
			return int(usage.CandidatesTokenCount)
		}
	}
	return p.tokenCounter.EstimateTokens(text)
}

// buildContents prepends the system instruction to the user prompt;
// Gemini has no separate system role in this request shape.
func (p *googleProvider) buildContents(prompt string, options RequestOptions) []*genai.Content {
	finalPrompt := prompt
	if options.System != "" {
		finalPrompt = fmt.Sprintf("System: %s\n\nUser: %s", options.System, prompt)
	}
	return []*genai.Content{genai.NewContentFromText(finalPrompt, genai.RoleUser)}
}

func (p *googleProvider) buildGenerationConfig(options RequestOptions) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if options.Temperature != nil {
		// Gemini supports temperatures in [0.0, 2.0].
		config.Temperature = genai.Ptr(float32(ClampFloat64(*options.Temperature, 0.0, 2.0)))
	}

	if options.MaxTokens > 0 {
		if options.MaxTokens > math.MaxInt32 {
			config.MaxOutputTokens = math.MaxInt32
		} else {
			config.MaxOutputTokens = int32(options.MaxTokens)
		}
	}

	if options.TopP != nil {
		config.TopP = genai.Ptr(float32(ClampFloat64(*options.TopP, 0.0, 1.0)))
	}

	// JSON mode: Gemini supports a response MIME type constraint.
	if format, ok := options.Extra["response_format"].(string); ok && format == "json_object" {
		config.ResponseMIMEType = "application/json"
	}

	return config
}

// handleError classifies Gemini API failures into ServiceError values.
func (p *googleProvider) handleError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return p.errorClassifier.ClassifyContextError(err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" && len(apiErr.Errors) > 0 {
			message = apiErr.Errors[0].Message
		}

		if containsContentPolicyError(apiErr) {
			return NewServiceError("google", ErrorTypeContentPolicy, apiErr.Code,
				"request blocked by safety filters", err)
		}

		return p.errorClassifier.ClassifyHTTPError(apiErr.Code, message, err)
	}

	return NewServiceError("google", ErrorTypeNetwork, 0, "request failed", err)
}

// containsContentPolicyError reports whether a Google API error is a
// content policy rejection rather than a transport or request problem.
func containsContentPolicyError(apiErr *googleapi.Error) bool {
	if apiErr.Message != "" {
		lower := strings.ToLower(apiErr.Message)
		if strings.Contains(lower, "safety") ||
			strings.Contains(lower, "policy") ||
			strings.Contains(lower, "blocked") {
			return true
		}
	}

	for _, e := range apiErr.Errors {
		if e.Reason == "SAFETY" || e.Reason == "BLOCKED" {
			return true
		}
	}

	return false
}
