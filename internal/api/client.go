// Package api est le point de sortie unique vers le backend REST :
// chaque requête porte le bearer token de la session si elle en a un.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource fournit le token de la session courante
type TokenSource interface {
	Token() (string, bool)
}

type Client struct {
	baseURL   string
	http      *http.Client
	tokens    TokenSource
	userAgent string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout borne chaque appel; 0 laisse les appels sans limite
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			return
		}
		h := *c.http
		h.Timeout = d
		c.http = &h
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTokens renvoie un client partageant le transport mais lié à une autre session
func (c *Client) WithTokens(tokens TokenSource) *Client {
	cp := *c
	cp.tokens = tokens
	return &cp
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) token() (string, bool) {
	if c.tokens == nil {
		return "", false
	}
	tok, ok := c.tokens.Token()
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &Error{Op: op, Kind: KindTransport, Err: fmt.Errorf("encodage requête: %w", err)}
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if tok, ok := c.token(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(op, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	// certaines routes répondent en texte brut
	if text, ok := out.(*string); ok {
		*text = bodyMessage(data)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Kind: KindServer, Status: resp.StatusCode, Err: fmt.Errorf("décodage réponse: %w", err)}
	}
	return nil
}
