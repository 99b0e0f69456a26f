// Package client talks to the user manager HTTP API.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
)

// Client is a typed wrapper over the JSON API.
type Client struct {
	rc *resty.Client
}

// New returns a Client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, timeout time.Duration) *Client {
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	rc := resty.NewWithClient(httpClient).
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")
	return &Client{rc: rc}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
	Detail  string
	Action  string
	Code    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Detail, e.Status)
	}
	msg := core.UserMessage{Message: e.Message, Action: e.Action, Code: e.Code}
	return fmt.Sprintf("HTTP %d: %s", e.Status, msg)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

type messageBody struct {
	Message string `json:"message"`
}

// ImportResult is the server's report for a committed import.
type ImportResult struct {
	Message       string           `json:"message"`
	TotalInserted int              `json:"totalInserted"`
	TotalRows     int              `json:"totalRows"`
	Skipped       int              `json:"skipped"`
	ImportID      string           `json:"importId"`
	Sheet         string           `json:"sheet"`
	Rows          []core.RowResult `json:"rows"`

	MissingColumns []string `json:"missingColumns"`
}

func (c *Client) ListUsers(ctx context.Context) ([]core.User, error) {
	var users []core.User
	if err := c.do(ctx, c.rc.R().SetResult(&users), http.MethodGet, "/api/users"); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, in core.UserInput) (string, error) {
	return c.message(ctx, c.rc.R().SetBody(in), http.MethodPost, "/api/users")
}

func (c *Client) UpdateUser(ctx context.Context, id int64, in core.UserInput) (string, error) {
	return c.message(ctx, c.rc.R().SetBody(in), http.MethodPut, "/api/users/"+strconv.FormatInt(id, 10))
}

func (c *Client) DeleteUser(ctx context.Context, id int64) (string, error) {
	return c.message(ctx, c.rc.R(), http.MethodDelete, "/api/users/"+strconv.FormatInt(id, 10))
}

func (c *Client) DeleteAllUsers(ctx context.Context) (string, error) {
	return c.message(ctx, c.rc.R(), http.MethodDelete, "/api/users")
}

// ImportFile uploads r as the multipart field "file".
func (c *Client) ImportFile(ctx context.Context, fileName string, r io.Reader) (*ImportResult, error) {
	var res ImportResult
	req := c.rc.R().SetFileReader("file", fileName, r).SetResult(&res)
	if err := c.do(ctx, req, http.MethodPost, "/api/uploadFile"); err != nil {
		return nil, err
	}
	return &res, nil
}

// Health checks that the server and its database respond.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, c.rc.R(), http.MethodGet, "/healthz")
}

func (c *Client) message(ctx context.Context, req *resty.Request, method, path string) (string, error) {
	var body messageBody
	if err := c.do(ctx, req.SetResult(&body), method, path); err != nil {
		return "", err
	}
	return body.Message, nil
}

func (c *Client) do(ctx context.Context, req *resty.Request, method, path string) error {
	resp, err := req.SetContext(ctx).SetError(&errorBody{}).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return apiError(resp)
}

func apiError(resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode()}
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		apiErr.Message = body.Message
		apiErr.Detail = body.Error
		apiErr.Action = body.Action
		apiErr.Code = body.Code
	}
	if apiErr.Message == "" && apiErr.Detail == "" {
		apiErr.Detail = resp.Status()
	}
	return apiErr
}
