package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

type GeneratedChallenge struct {
	Challenge   string `json:"challenge"`
	Skillpoints int    `json:"skillpoints"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateChallenges asks the model for fitness challenge suggestions
// matching a free-text goal.
func (s *AIService) GenerateChallenges(ctx context.Context, goal string, count int) ([]GeneratedChallenge, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}
	if count < 1 || count > 10 {
		count = 3
	}

	prompt := fmt.Sprintf(`You are a fitness coach. Suggest %d concrete fitness challenges for the following goal.

Goal:
%s

Return a JSON array in exactly this shape:
[
  {
    "challenge": "short imperative description of the challenge",
    "skillpoints": 10
  }
]

Rules:
- skillpoints must be an integer between 5 and 100, proportional to effort
- return an empty array [] if the goal is not fitness related
- return only JSON, no explanations`, count, goal)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.5,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var challenges []GeneratedChallenge
	if err := json.Unmarshal([]byte(content), &challenges); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return challenges, nil
}
