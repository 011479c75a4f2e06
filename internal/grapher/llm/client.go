package llm

import (
	"context"
	"fmt"

	"graph-calculator/internal/grapher/models"

	"google.golang.org/genai"
)

// ============================================================
// Gemini Client
// ============================================================

const DefaultModel = "gemini-2.5-flash"

// Client оборачивает Gemini: перевод запроса пользователя в
// структурированную команду. Сам не парсит и не валидирует ответ.
type Client struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Generate отправляет историю чата и новый запрос, возвращает сырой
// текст модели. Ответ может быть обернут в markdown-ограждение.
func (c *Client) Generate(ctx context.Context, prompt string, history []models.ChatMessage) (string, error) {
	contents := HistoryContents(history)
	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

// HistoryContents переводит историю чата в формат Gemini:
// роль "assistant" становится "model", остальные — "user".
func HistoryContents(history []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		role := genai.Role(genai.RoleUser)
		if msg.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	return contents
}
