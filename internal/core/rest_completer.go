package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content *content `json:"content"`
	} `json:"candidates"`
}

// RESTCompleter calls the generateContent endpoint directly over HTTPS.
type RESTCompleter struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewRESTCompleter(baseURL, apiKey, model string) *RESTCompleter {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	return &RESTCompleter{
		client: client,
		apiKey: apiKey,
		model:  model,
	}
}

func (c *RESTCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	body := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/v1beta/models/" + c.model + ":generateContent")
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if !resp.IsSuccess() {
		return "", &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(decoded.Candidates) == 0 || decoded.Candidates[0].Content == nil || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
