// Package karbon is a small client for the Karbon practice-management REST API.
package karbon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://api.karbonhq.com"

var (
	// ErrEmptyBody is returned when a successful response carries no body or
	// the literal JSON null.
	ErrEmptyBody = errors.New("empty response body")
	// ErrInvalidJSON is returned when a response body does not decode.
	ErrInvalidJSON = errors.New("invalid JSON in response")
)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code %d, body: %s", e.Method, e.Path, e.Code, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

type Options struct {
	BaseURL     string
	BearerToken string
	AccessKey   string
}

// Client holds the one connection pool and header set shared by every call
// in a run.
type Client struct {
	rest *resty.Client
}

// NewClient builds a client. A nil httpClient uses the resty default
// transport.
func NewClient(opts Options, httpClient *http.Client) *Client {
	var rc *resty.Client
	if httpClient != nil {
		rc = resty.NewWithClient(httpClient)
	} else {
		rc = resty.New()
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	rc.SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", bearer(opts.BearerToken)).
		SetHeader("AccessKey", opts.AccessKey)

	return &Client{rest: rc}
}

func bearer(token string) string {
	token = strings.TrimSpace(token)
	if token == "" || strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return token
	}

	return "Bearer " + token
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}

	if !resp.IsSuccess() {
		return &StatusError{Method: http.MethodGet, Path: path, Code: resp.StatusCode(), Body: resp.String()}
	}

	return decode(resp.Body(), out)
}

// Response is the raw outcome of a write call.
type Response struct {
	StatusCode int
	Status     string
	Body       string
}

func (c *Client) put(ctx context.Context, path string, body any) (*Response, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Put(path)
	if err != nil {
		return nil, fmt.Errorf("PUT %s: %w", path, err)
	}

	out := &Response{StatusCode: resp.StatusCode(), Status: resp.Status(), Body: resp.String()}
	if !resp.IsSuccess() {
		return out, &StatusError{Method: http.MethodPut, Path: path, Code: out.StatusCode, Body: out.Body}
	}

	return out, nil
}

func decode(body []byte, out any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return ErrEmptyBody
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return nil
}
