// Package remote fetches JSON text from the upstream API and submits the
// accepted value back to it.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/qiniu/iconv"
	log "github.com/sirupsen/logrus"
	"github.com/trevorspielman/JSONCodeChallenge/config"
	"github.com/trevorspielman/JSONCodeChallenge/repair"
)

const previewSize = 500

// Client talks to the upstream API at BaseURL on behalf of Email.
type Client struct {
	BaseURL string
	Email   string
	// Charset forces the response encoding. Empty means use the
	// Content-Type header, falling back to UTF-8.
	Charset string
	HTTP    *http.Client
}

// Payload is the body sent by Submit. Data holds the compact JSON text of
// the accepted value, not the value itself.
type Payload struct {
	Email string `json:"email"`
	Data  string `json:"data"`
}

// New returns a client for cfg.
func New(cfg *config.Config) *Client {
	return &Client{
		BaseURL: cfg.APIBase,
		Email:   cfg.Email,
		Charset: cfg.Charset,
		HTTP:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// endpoint returns BaseURL with the email query parameter set.
func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("bad api base %q: %w", c.BaseURL, err)
	}
	q := u.Query()
	q.Set("email", c.Email)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch downloads the raw response text. The text is returned as received
// (after charset conversion); no JSON checking is done here.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("fetching %s", endpoint)
	body, contentType, err := c.do(req)
	if err != nil {
		return "", err
	}

	charset := c.Charset
	if charset == "" {
		charset = charsetFromContentType(contentType)
	}
	return toUTF8(body, charset)
}

// Submit posts value to the API as a Payload and returns the response text.
func (c *Client) Submit(ctx context.Context, value any) (string, error) {
	data, err := repair.Compact(value)
	if err != nil {
		return "", fmt.Errorf("error encoding value: %w", err)
	}
	body, err := json.Marshal(Payload{Email: c.Email, Data: data})
	if err != nil {
		return "", fmt.Errorf("error marshaling body: %w", err)
	}

	endpoint, err := c.endpoint()
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debugf("sending POST body to %s: %s", endpoint, body)
	resp, _, err := c.do(req)
	if err != nil {
		return "", err
	}
	return string(resp), nil
}

func (c *Client) do(req *http.Request) ([]byte, string, error) {
	res, err := c.httpClient().Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("error sending request: %w", err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			log.Warnf("failed to close response body: %v", closeErr)
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", fmt.Errorf("error reading response body: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, "", fmt.Errorf("non-2xx status %d: %s", res.StatusCode, truncate(string(body), previewSize))
	}
	return body, res.Header.Get("Content-Type"), nil
}

func charsetFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

func isUTF8(charset string) bool {
	name := strings.Replace(strings.ToLower(charset), "-", "", -1)
	return name == "" || name == "utf8" || name == "usascii"
}

// toUTF8 converts body from charset to UTF-8.
func toUTF8(body []byte, charset string) (string, error) {
	if isUTF8(charset) {
		return string(body), nil
	}
	cd, err := iconv.Open("utf-8", charset)
	if err != nil {
		return "", fmt.Errorf("iconv.Open failed for charset %s: %w", charset, err)
	}
	defer cd.Close()

	log.Debugf("converting response from %s to UTF-8", charset)
	return cd.ConvString(string(body)), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
