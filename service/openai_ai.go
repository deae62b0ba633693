package service

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"github.com/tieubaoca/docuquery-be/types"
)

var SystemMessageGroundedAnswerer = openai.ChatCompletionMessage{
	Role:    openai.ChatMessageRoleSystem,
	Content: "You are a document assistant. Answer questions strictly from the context excerpts supplied in the user message. If the context does not contain the answer, say that the supplied documents do not answer the question.",
}

type OpenAIService struct {
	client *openai.Client
	model  string
}

func NewOpenAIService(baseURL, apiKey, model string) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL // Set this to your local LLM server URL
	client := openai.NewClientWithConfig(config)
	return &OpenAIService{
		client: client,
		model:  model,
	}
}

func (s *OpenAIService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Messages: []openai.ChatCompletionMessage{
				SystemMessageGroundedAnswerer,
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Model: s.model,
		},
	)
	if err != nil {
		return "", &types.GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &types.GenerationError{Err: errors.New("no response generated")}
	}
	return resp.Choices[0].Message.Content, nil
}
