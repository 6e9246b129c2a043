package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/streakd/streakd/pkg/habit"
)

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(base, token string) *Client {
	return &Client{
		BaseURL: base,
		Token:   token,
		HTTP:    http.DefaultClient,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: %s", method, path, res.Status)
	}
	if res.StatusCode >= 400 || !env.Success {
		if env.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, env.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, res.Status)
	}
	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (c *Client) ListHabits(ctx context.Context) ([]habit.WithStatus, error) {
	var out []habit.WithStatus
	if err := c.do(ctx, http.MethodGet, "/habits/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateHabit(ctx context.Context, title, description, frequency string) (*habit.Habit, error) {
	body := map[string]string{
		"title":       title,
		"description": description,
		"frequency":   frequency,
	}
	var out habit.Habit
	if err := c.do(ctx, http.MethodPost, "/habits/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LogCompletion(ctx context.Context, habitID string, completed bool, notes string) (*habit.Log, error) {
	body := map[string]any{
		"completed": completed,
		"notes":     notes,
	}
	var out habit.Log
	if err := c.do(ctx, http.MethodPost, "/habits/"+habitID+"/log", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Analytics(ctx context.Context) ([]habit.Analytics, error) {
	var out []habit.Analytics
	if err := c.do(ctx, http.MethodGet, "/habits/analytics", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
