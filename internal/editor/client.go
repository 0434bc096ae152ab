package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samin124/portfolio/internal/portfolio"
)

var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx answer from the portfolio server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server answered %d", e.Status)
	}
	return fmt.Sprintf("server answered %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

type Session struct {
	Token  string
	Expiry time.Time
}

// Client talks to the content API. It is safe to reuse but not to share a
// token across goroutines while calling SetToken.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

// Login trades the credential pair for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	body, err := json.Marshal(map[string]string{"email": username, "password": password})
	if err != nil {
		return Session{}, err
	}
	var out struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Expiry  string `json:"expiry"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", body, &out); err != nil {
		return Session{}, err
	}
	if !out.Success || out.Token == "" {
		return Session{}, errors.New("login response carried no token")
	}
	s := Session{Token: out.Token}
	if out.Expiry != "" {
		if s.Expiry, err = time.Parse(time.RFC3339, out.Expiry); err != nil {
			return Session{}, fmt.Errorf("parse expiry: %w", err)
		}
	}
	c.token = out.Token
	return s, nil
}

func (c *Client) Document(ctx context.Context) (portfolio.Document, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/portfolio", nil, &raw); err != nil {
		return nil, err
	}
	return portfolio.Decode(raw)
}

func (c *Client) PutSection(ctx context.Context, s portfolio.Section, raw json.RawMessage) error {
	if c.token == "" {
		return fmt.Errorf("%w: no token, log in first", ErrUnauthorized)
	}
	return c.do(ctx, http.MethodPut, "/api/portfolio/"+url.PathEscape(string(s)), raw, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
