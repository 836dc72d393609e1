// Package api is the REST client for the TaskFlow backend. Failures are
// reported to the caller, never retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	authdto "github.com/taskflow-app/taskflow/internal/auth/dto"
	apierror "github.com/taskflow-app/taskflow/internal/errors"
	taskdto "github.com/taskflow-app/taskflow/internal/task/dto"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
}

// SetToken attaches a bearer token to every subsequent request. An empty
// token clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// statusError maps an error response onto the shared taxonomy, keeping the
// server's message where it has one.
func statusError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apierror.ErrUnauthorized
	case http.StatusNotFound:
		return apierror.ErrTaskNotFound
	case http.StatusBadRequest:
		if body.Message == "" {
			body.Message = "invalid input"
		}
		return fmt.Errorf("%w: %s", apierror.ErrValidation, body.Message)
	case http.StatusConflict:
		return apierror.ErrEmailAlreadyInUse
	default:
		if body.Message == "" {
			body.Message = resp.Status
		}
		return fmt.Errorf("server error: %s", body.Message)
	}
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*authdto.UserOutput, error) {
	input := authdto.RegisterInput{Name: name, Email: email, Password: password}

	var user authdto.UserOutput
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", input, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*authdto.LoginOutput, error) {
	input := authdto.LoginInput{Email: email, Password: password}

	var out authdto.LoginOutput
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", input, &out); err != nil {
		return nil, err
	}

	c.token = out.Token

	return &out, nil
}

func (c *Client) CreateTask(ctx context.Context, input taskdto.TaskInput) (*taskdto.TaskOutput, error) {
	var task taskdto.TaskOutput
	if err := c.do(ctx, http.MethodPost, "/todos", input, &task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]taskdto.TaskOutput, error) {
	var tasks []taskdto.TaskOutput
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, input taskdto.TaskInput) (*taskdto.TaskOutput, error) {
	var task taskdto.TaskOutput
	if err := c.do(ctx, http.MethodPut, "/todos/"+id, input, &task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+id, nil, nil)
}
