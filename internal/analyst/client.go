// Package analyst provides the external AI analysis client for stock evaluation.
package analyst

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// LLMClient defines the operations the analyzer needs from the
// generative-AI backend.
type LLMClient interface {
	// Complete sends a prompt to the LLM and returns the response text.
	Complete(ctx context.Context, prompt string) (string, error)
	// CompleteWithSystem sends a prompt with a system message to the LLM.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// CreateIllustration generates an illustrative image and returns it
	// as base64-encoded PNG data.
	CreateIllustration(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient implements LLMClient using the OpenAI API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	imageModel  string
	temperature float32
	maxTokens   int
}

// NewOpenAIClient creates a new OpenAI LLM client.
func NewOpenAIClient(apiKey, model, imageModel string, temperature float32, maxTokens int) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		imageModel:  imageModel,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Complete sends a prompt to the LLM and returns the response.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteWithSystem sends a prompt with system message to the LLM.
func (c *OpenAIClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}

// CreateIllustration generates an illustrative image via the image API
// and returns the base64-encoded payload.
func (c *OpenAIClient) CreateIllustration(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Model:          c.imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1792x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return "", fmt.Errorf("openai image generation failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("no image from openai")
	}
	return resp.Data[0].B64JSON, nil
}

// GetModel returns the model name.
func (c *OpenAIClient) GetModel() string {
	return c.model
}
