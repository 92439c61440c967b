// Package api implements the HTTP client for the account service. It
// keeps the refresh token captured at login and presents it as the
// bearer credential on authenticated calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const refreshCookieName = "refreshToken"

// ErrNotLoggedIn is returned by authenticated calls before a successful login.
var ErrNotLoggedIn = errors.New("not logged in")

// Account is the client-side view of an account record.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateRequest carries the profile mutation for Update. Empty string
// fields are left unchanged on the server; Age is skipped when nil. To
// change the password, set both Password and NewPassword.
type UpdateRequest struct {
	Name        string `json:"name,omitempty"`
	Username    string `json:"username,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Age         *int   `json:"age,omitempty"`
	Password    string `json:"password,omitempty"`
	NewPassword string `json:"newPassword,omitempty"`
}

type envelope struct {
	Status bool            `json:"status"`
	Data   json.RawMessage `json:"data"`
	Msg    string          `json:"msg"`
}

type loginData struct {
	User  *Account `json:"user"`
	Token string   `json:"token"`
}

// Client talks to the account service HTTP endpoint.
type Client struct {
	baseURL      string
	http         *http.Client
	refreshToken string
	sessionToken string
}

// NewClient constructs a Client for the given base URL, e.g.
// "http://127.0.0.1:8000".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// LoggedIn reports whether a refresh token from a successful login is held.
func (c *Client) LoggedIn() bool {
	return c.refreshToken != ""
}

// SessionToken returns the short-lived signed token from the last login,
// or "" when logged out. Callers that talk to hardened routes requiring
// a distinct session credential present this value instead of the
// refresh token.
func (c *Client) SessionToken() string {
	return c.sessionToken
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewBuffer(b)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes the request and decodes the response envelope. A response
// with status:false is surfaced as an error carrying the server message.
func (c *Client) do(req *http.Request) (*envelope, *http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	env := &envelope{}
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		return nil, nil, fmt.Errorf("unexpected response (%s): %w", resp.Status, err)
	}
	if !env.Status {
		return nil, resp, errors.New(env.Msg)
	}
	return env, resp, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, username, bio string, age int, password string) (*Account, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/users/register", map[string]any{
		"name":     name,
		"username": username,
		"bio":      bio,
		"age":      age,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	env, _, err := c.do(req)
	if err != nil {
		return nil, err
	}

	account := &Account{}
	if err := json.Unmarshal(env.Data, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login authenticates and captures both the refresh token cookie and the
// session token from the payload for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (*Account, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/users/login", map[string]any{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	env, resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	data := &loginData{}
	if err := json.Unmarshal(env.Data, data); err != nil {
		return nil, err
	}

	for _, ck := range resp.Cookies() {
		if ck.Name == refreshCookieName {
			c.refreshToken = ck.Value
		}
	}
	if c.refreshToken == "" {
		return nil, errors.New("server did not set a refresh token")
	}
	c.sessionToken = data.Token

	return data.User, nil
}

// Details fetches the logged-in account.
func (c *Client) Details(ctx context.Context) (*Account, error) {
	return c.authenticated(ctx, http.MethodGet, "/users/details", nil)
}

// Update mutates profile fields and optionally the password.
func (c *Client) Update(ctx context.Context, upd UpdateRequest) (*Account, error) {
	return c.authenticated(ctx, http.MethodPut, "/users/update", upd)
}

// Delete removes the account after the server verifies the password.
// The held tokens are dropped on success.
func (c *Client) Delete(ctx context.Context, password string) (*Account, error) {
	account, err := c.authenticated(ctx, http.MethodDelete, "/users/delete", map[string]any{
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	c.reset()
	return account, nil
}

// Logout revokes the session server-side and drops the held tokens.
func (c *Client) Logout(ctx context.Context) (*Account, error) {
	if !c.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/users/logout", nil)
	if err != nil {
		return nil, err
	}
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: c.refreshToken})

	env, _, err := c.do(req)
	if err != nil {
		return nil, err
	}
	c.reset()

	account := &Account{}
	if err := json.Unmarshal(env.Data, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (c *Client) authenticated(ctx context.Context, method, path string, body any) (*Account, error) {
	if !c.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.refreshToken)

	env, _, err := c.do(req)
	if err != nil {
		return nil, err
	}

	account := &Account{}
	if err := json.Unmarshal(env.Data, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (c *Client) reset() {
	c.refreshToken = ""
	c.sessionToken = ""
}
