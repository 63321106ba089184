// internal/enrich/client.go
package enrich

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/madeinfrance/mif-backend/internal/config"
)

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	http  *resty.Client
	model string
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second).
			SetAuthToken(cfg.APIKey),
		model: cfg.Model,
	}
}

// Complete sends one prompt and returns the raw assistant text.
func (c *Client) Complete(system, user string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
	}

	var result chatResponse
	resp, err := c.http.R().
		SetBody(payload).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		if result.Error != nil {
			return "", fmt.Errorf("completion returned status %d: %s", resp.StatusCode(), result.Error.Message)
		}
		return "", fmt.Errorf("completion returned status %d", resp.StatusCode())
	}

	if len(result.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}
