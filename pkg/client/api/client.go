// Package api is the typed REST client for the devconnect server. Calls that
// need authentication take the token explicitly; there is no process-wide
// default header, so a caller always knows which credential a request uses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// tokenHeader carries the session token, matching the header the server's
// auth middleware reads.
const tokenHeader = "x-auth-token"

type Client struct {
	BaseURL string
	httpDo  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpDo: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// User mirrors the server's user representation; the password hash is never
// part of a response.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Post is the subset of feed fields the CLI renders.
type Post struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
	Date string `json:"date"`
}

// APIError carries the server's structured error list.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, strings.Join(e.Messages, "; "))
}

// Register creates an account and returns the issued token.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/users", "", map[string]string{
		"name": name, "email": email, "password": password,
	}, &out)
	return out.Token, err
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth", "", map[string]string{
		"email": email, "password": password,
	}, &out)
	return out.Token, err
}

// LoadUser resolves the token to its user record.
func (c *Client) LoadUser(ctx context.Context, token string) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/api/auth", token, nil, &u)
	return u, err
}

// Feed returns the post feed, newest first.
func (c *Client) Feed(ctx context.Context, token string) ([]Post, error) {
	var posts []Post
	err := c.do(ctx, http.MethodGet, "/api/posts", token, nil, &posts)
	return posts, err
}

// CreatePost publishes a post as the token's user.
func (c *Client) CreatePost(ctx context.Context, token, text string) (Post, error) {
	var p Post
	err := c.do(ctx, http.MethodPost, "/api/posts", token, map[string]string{"text": text}, &p)
	return p, err
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set(tokenHeader, token)
	}

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError understands both server envelopes: {"errors":[{"msg":...}]}
// and {"msg":...}.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var envelope struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
		Msg string `json:"msg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		for _, e := range envelope.Errors {
			apiErr.Messages = append(apiErr.Messages, e.Msg)
		}
		if len(apiErr.Messages) == 0 && envelope.Msg != "" {
			apiErr.Messages = append(apiErr.Messages, envelope.Msg)
		}
	}
	if len(apiErr.Messages) == 0 {
		apiErr.Messages = append(apiErr.Messages, http.StatusText(resp.StatusCode))
	}
	return apiErr
}
