// Package llm talks to an OpenAI-compatible chat-completions endpoint to draft
// key workouts, classify athlete messages and write coaching replies.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"alcyxob/training-planner/internal/config"
)

// ErrNoFunctionCall is returned when the model answers in prose instead of calling the requested function.
var ErrNoFunctionCall = errors.New("llm: response carried no function call")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Function struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
}

type functionChoice struct {
	Name string `json:"name"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type ChatRequest struct {
	Model        string          `json:"model"`
	Messages     []Message       `json:"messages"`
	Functions    []Function      `json:"functions,omitempty"`
	FunctionCall *functionChoice `json:"function_call,omitempty"`
	Temperature  float64         `json:"temperature"`
	MaxTokens    int             `json:"max_tokens,omitempty"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Role         string        `json:"role"`
			Content      string        `json:"content"`
			FunctionCall *FunctionCall `json:"function_call,omitempty"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Client is a chat-completions client. It implements the workout drafter,
// the feedback classifier and the reply writer.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewClient builds a client from cfg. httpClient may be nil.
func NewClient(cfg config.LLMConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient:  httpClient,
	}
}

func (c *Client) chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		req.Model = c.model
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("llm: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("llm: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("llm: request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llm: read response: %w", err)
	}

	var out ChatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("llm: decode response (status %d): %w", resp.StatusCode, err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("llm: api error: %s", out.Error.Message)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("llm: unexpected status %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return nil, errors.New("llm: empty choices")
	}
	return &out, nil
}

// callFunction forces the model to call fn and returns its raw arguments.
func (c *Client) callFunction(ctx context.Context, messages []Message, fn Function, maxTokens int) ([]byte, error) {
	resp, err := c.chat(ctx, ChatRequest{
		Messages:     messages,
		Functions:    []Function{fn},
		FunctionCall: &functionChoice{Name: fn.Name},
		Temperature:  c.temperature,
		MaxTokens:    maxTokens,
	})
	if err != nil {
		return nil, err
	}
	call := resp.Choices[0].Message.FunctionCall
	if call == nil {
		return nil, ErrNoFunctionCall
	}
	if strings.TrimSpace(call.Arguments) == "" {
		return []byte("{}"), nil
	}
	return []byte(call.Arguments), nil
}

// complete returns the plain text of a completion.
func (c *Client) complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	resp, err := c.chat(ctx, ChatRequest{Messages: messages, Temperature: c.temperature, MaxTokens: maxTokens})
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Message.Content, nil
}
