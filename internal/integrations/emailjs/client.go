// Package emailjs sends contact-form emails through the EmailJS REST API.
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"flux-web/internal/domain"
)

const defaultBaseURL = "https://api.emailjs.com"

var errNotConfigured = errors.New("emailjs: email service not properly configured")

// Credentials is the JSON document stored in SSM under <prefix>/emailjs.
type Credentials struct {
	ServiceID  string `json:"service_id"`
	TemplateID string `json:"template_id"`
	PublicKey  string `json:"public_key"`
}

func (c Credentials) complete() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

// JSONGetter loads a JSON parameter. *paramstore.Client satisfies it.
type JSONGetter interface {
	GetJSON(ctx context.Context, name string, v any) error
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

type templateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	ToEmail   string `json:"to_email"`
}

// HTTPStatusError is a non-2xx response from EmailJS.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("emailjs: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	params     JSONGetter
	paramName  string

	mu    sync.Mutex
	creds *Credentials
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithCredentials skips the SSM lookup. Used by the local server; NewClient
// rejects incomplete credentials.
func WithCredentials(creds Credentials) Option {
	return func(c *Client) {
		c.creds = &creds
	}
}

// NewClient returns a Client that loads its credentials from paramName on
// first use. A failed load is retried on the next send.
func NewClient(params JSONGetter, paramName string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		params:     params,
		paramName:  strings.TrimSpace(paramName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.creds == nil && (c.params == nil || c.paramName == "") {
		return nil, errors.New("emailjs: credentials or a parameter source are required")
	}
	if c.creds != nil && !c.creds.complete() {
		return nil, errNotConfigured
	}
	return c, nil
}

func (c *Client) credentials(ctx context.Context) (Credentials, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.creds != nil {
		return *c.creds, nil
	}
	var creds Credentials
	if err := c.params.GetJSON(ctx, c.paramName, &creds); err != nil {
		return Credentials{}, fmt.Errorf("emailjs: load credentials: %w", err)
	}
	if !creds.complete() {
		return Credentials{}, errNotConfigured
	}
	c.creds = &creds
	return creds, nil
}

// SendContact delivers one contact-form email.
func (c *Client) SendContact(ctx context.Context, email domain.ContactEmail) error {
	creds, err := c.credentials(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:  creds.ServiceID,
		TemplateID: creds.TemplateID,
		UserID:     creds.PublicKey,
		TemplateParams: templateParams{
			FromName:  email.FromName,
			FromEmail: email.FromEmail,
			Subject:   email.Subject,
			Message:   email.Message,
			ToEmail:   email.ToEmail,
		},
	})
	if err != nil {
		return fmt.Errorf("emailjs: marshal request: %w", err)
	}

	url := c.baseURL + "/api/v1.0/email/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: send: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &HTTPStatusError{StatusCode: res.StatusCode, URL: url, Body: string(buf)}
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
	return nil
}
