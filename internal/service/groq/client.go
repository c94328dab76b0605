package groq

import (
	"context"
	"fmt"
	"strings"
	"time"

	xhttp "MarketChat/pkg/http"
)

// Client talks to the hosted Groq chat-completions endpoint. The wire
// format is OpenAI-compatible, so only the base URL and model name are
// provider-specific.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	http        *xhttp.Client
}

func New(baseURL, apiKey, model string, temperature float64, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		http:        xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var resp chatResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/chat/completions",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
		},
		Body: chatRequest{
			Model:       c.model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			Temperature: c.temperature,
		},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("completion: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
