// Package convoapi is the HTTP client for the hosted ConvoManage API. It
// implements the auth and conference contracts the client sync layer
// consumes.
package convoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"convomanage/internal/domain"
)

// Client talks to the ConvoManage API. It holds the bearer token for the
// current session and notifies subscribers on every session change.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client

	mu          sync.Mutex
	token       string
	user        *domain.User
	handlers    map[int]func(domain.AuthEvent, *domain.AuthSession)
	nextHandler int
}

// NewClient creates a Client for the API at baseURL. An empty baseURL or
// apiKey is a configuration error, reported once here rather than as a
// network failure on first use. httpClient may be nil.
func NewClient(baseURL, apiKey string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("convoapi: %w", domain.ErrNotConfigured)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		http:     httpClient,
		handlers: map[int]func(domain.AuthEvent, *domain.AuthSession){},
	}, nil
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	c.mu.Lock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.Unlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach api: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("api returned status %d with unreadable body", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if env.Error != nil {
			return fmt.Errorf("%s", env.Error.Message)
		}
		return fmt.Errorf("api returned status %d", resp.StatusCode)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode api response: %w", err)
		}
	}
	return nil
}

func (c *Client) emit(event domain.AuthEvent, session *domain.AuthSession) {
	c.mu.Lock()
	handlers := make([]func(domain.AuthEvent, *domain.AuthSession), 0, len(c.handlers))
	for _, h := range c.handlers {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()
	for _, h := range handlers {
		h(event, session)
	}
}

func (c *Client) setSession(token string, user *domain.User) {
	c.mu.Lock()
	c.token = token
	c.user = user
	c.mu.Unlock()
}

// GetSession returns the current session, or (nil, nil) when signed out.
func (c *Client) GetSession(ctx context.Context) (*domain.AuthSession, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == "" {
		return nil, nil
	}

	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/session", nil, &user); err != nil {
		return nil, err
	}
	c.setSession(token, &user)
	return &domain.AuthSession{User: &user, Token: token}, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.setSession(resp.Token, resp.User)
	session := &domain.AuthSession{User: resp.User, Token: resp.Token}
	c.emit(domain.AuthEventSignedIn, session)
	return session, nil
}

type signUpRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	FullName string      `json:"full_name"`
	Role     domain.Role `json:"role"`
}

// SignUp registers a new account and signs it in.
func (c *Client) SignUp(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.AuthSession, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/signup", signUpRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     role,
	}, &user)
	if err != nil {
		return nil, err
	}
	return c.SignInWithPassword(ctx, email, password)
}

func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		if err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil); err != nil {
			return err
		}
	}
	c.setSession("", nil)
	c.emit(domain.AuthEventSignedOut, nil)
	return nil
}

func (c *Client) OnAuthStateChange(handler func(domain.AuthEvent, *domain.AuthSession)) func() {
	c.mu.Lock()
	id := c.nextHandler
	c.nextHandler++
	c.handlers[id] = handler
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.handlers, id)
		c.mu.Unlock()
	}
}

// ListConferences returns the conferences visible to the signed-in user,
// filtered by role server-side and ordered descending by start_date.
func (c *Client) ListConferences(ctx context.Context) ([]*domain.Conference, error) {
	var conferences []*domain.Conference
	if err := c.do(ctx, http.MethodGet, "/api/v1/conferences", nil, &conferences); err != nil {
		return nil, err
	}
	return conferences, nil
}

func (c *Client) CreateConference(ctx context.Context, draft domain.ConferenceDraft) (*domain.Conference, error) {
	var created domain.Conference
	if err := c.do(ctx, http.MethodPost, "/api/v1/conferences", draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateConference(ctx context.Context, id string, patch domain.ConferencePatch) (*domain.Conference, error) {
	var updated domain.Conference
	if err := c.do(ctx, http.MethodPatch, "/api/v1/conferences/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

var (
	_ domain.AuthClient    = (*Client)(nil)
	_ domain.ConferenceAPI = (*Client)(nil)
)
