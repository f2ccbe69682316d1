// Package httpclient es el helper JSON para adapters que hablan con
// servicios externos (hoy: el servicio de auth hosteado).
package httpclient

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
)

const DefaultTimeout = 10 * time.Second

// maxErrBody limita cuánto body ajeno copiamos dentro de un HTTPError.
const maxErrBody = 4 << 10

// Client envuelve *http.Client. Con BaseURL seteado, DoJSON acepta paths
// relativos.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New crea un Client sin BaseURL.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{HTTP: &http.Client{Timeout: timeout}}
}

// NewWithBaseURL valida y fija la URL base.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// DoJSON manda un request JSON y decodifica la respuesta en out (si no es
// nil). Status fuera de 2xx retorna *HTTPError.
func (c *Client) DoJSON(ctx context.Context, method, pathOrURL string, headers map[string]string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	req, err := c.buildRequest(ctx, method, pathOrURL, headers, in)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("httpclient: decode json: %w", err)
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, method, pathOrURL string, headers map[string]string, in any) (*http.Request, error) {
	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}
	return req, nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	p := strings.TrimSpace(pathOrURL)
	switch {
	case p == "":
		return "", errors.New("httpclient: empty url")
	case strings.HasPrefix(p, "http://"), strings.HasPrefix(p, "https://"):
		return p, nil
	case c.BaseURL == "":
		return "", fmt.Errorf("httpclient: relative path %q without base url", p)
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return c.BaseURL + p, nil
}
