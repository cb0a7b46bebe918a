package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Client using the OpenAI Chat Completions and
// Images APIs. A client is built per request from the current key.
type OpenAIProvider struct {
	keys       KeySource
	model      string
	imageModel string
	baseURL    string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(keys KeySource, model, imageModel string) *OpenAIProvider {
	return &OpenAIProvider{
		keys:       keys,
		model:      model,
		imageModel: imageModel,
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) client() (*openai.Client, error) {
	var key string
	if p.keys != nil {
		key = p.keys.APIKey("openai")
	}
	if key == "" {
		return nil, fmt.Errorf("%w: no openai API key", ErrCredentialMissing)
	}
	cfg := openai.DefaultConfig(key)
	if p.baseURL != "" {
		cfg.BaseURL = p.baseURL
	}
	return openai.NewClientWithConfig(cfg), nil
}

func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	client, err := p.client()
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	var messages []openai.ChatCompletionMessage
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: float32(req.Temperature),
	}

	switch {
	case req.Schema != nil:
		apiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "response",
				Schema: req.Schema.JSON(),
			},
		}
	case req.JSONMode:
		apiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := client.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	var finishReason string
	if len(resp.Choices) > 0 {
		finishReason = string(resp.Choices[0].FinishReason)
	}

	return &CompletionResponse{
		Content:      content,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		Model:        resp.Model,
		FinishReason: finishReason,
	}, nil
}

// GenerateImage requests one base64-encoded image. Square requests map to
// 1024x1024 and wide requests to 1792x1024.
func (p *OpenAIProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	client, err := p.client()
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = p.imageModel
	}

	size := openai.CreateImageSize1024x1024
	if req.AspectRatio == "16:9" {
		size = openai.CreateImageSize1792x1024
	}

	resp, err := client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          model,
		N:              1,
		Size:           size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, ErrNoImage
	}
	return &ImageResponse{
		Data:     resp.Data[0].B64JSON,
		MIMEType: "image/png",
		Model:    model,
	}, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		var code string
		if apiErr.Code != nil {
			code = fmt.Sprint(apiErr.Code)
		}
		return statusError("openai", apiErr.HTTPStatusCode, code, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && (reqErr.HTTPStatusCode == http.StatusUnauthorized || reqErr.HTTPStatusCode == http.StatusForbidden) {
		return fmt.Errorf("%w: %v", ErrCredentialMissing, err)
	}
	return err
}
