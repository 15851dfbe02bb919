// Package xapi is a small OAuth 1.0a signed client for the X API. Responses
// are classified once here so that callers only deal with *Error.
package xapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/go-twitter/twitter"
	"github.com/dghubble/oauth1"
	"github.com/dghubble/sling"

	"github.com/mikequentel/xengage/internal/credentials"
)

const (
	DefaultBaseURL = "https://api.x.com/2/"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 4 << 20
)

type Client struct {
	http    *http.Client
	baseURL string
	v1      *twitter.Client
}

type Option func(*options)

type options struct {
	transport http.RoundTripper
	timeout   time.Duration
}

// WithTransport replaces the transport underneath the signer. The proxy
// setting is ignored when a transport is supplied.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func NewClient(creds credentials.Credentials, opts ...Option) (*Client, error) {
	o := options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	transport := o.transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		if creds.ProxyURL != "" {
			proxy, err := url.Parse(creds.ProxyURL)
			if err != nil || proxy.Host == "" {
				return nil, fmt.Errorf("invalid %s %q", credentials.EnvProxyURL, creds.ProxyURL)
			}
			t.Proxy = http.ProxyURL(proxy)
		}
		transport = t
	}

	baseURL := DefaultBaseURL
	if creds.APIBase != "" {
		baseURL = creds.APIBase
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", credentials.EnvAPIBase, creds.APIBase, err)
	}

	config := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, &http.Client{Transport: transport})
	httpClient := config.Client(ctx, token)
	httpClient.Timeout = o.timeout

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		v1:      twitter.NewClient(httpClient),
	}, nil
}

func (c *Client) newRequest() *sling.Sling {
	return sling.New().Base(c.baseURL).Set("Accept", "application/json")
}

// GetJSON issues a signed GET for path (relative to the base URL) with query
// encoded from a url-tagged struct, and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, path string, query any, out any) error {
	req, err := c.newRequest().Get(path).QueryStruct(query).Request()
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	return c.Do(ctx, req, out)
}

// PostJSON issues a signed POST with body encoded as JSON.
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) error {
	req, err := c.newRequest().Post(path).BodyJSON(body).Request()
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	return c.Do(ctx, req, out)
}

// Do sends req and classifies the outcome. Only 200 and 201 count as success.
func (c *Client) Do(ctx context.Context, req *http.Request, out any) error {
	op := req.Method + " " + req.URL.Path

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return &Error{Op: op, Wrapped: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Op: op, Wrapped: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errorFromResponse(op, resp, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s: HTTP %d: decoding response: %v", op, resp.StatusCode, err),
			Wrapped:    err,
		}
	}
	return nil
}
