package mailgun

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Abraxas-365/mailgun/pkg/fsx"
	"github.com/Abraxas-365/mailgun/pkg/logx"
)

// Region selects the Mailgun API host.
type Region string

const (
	RegionUS Region = "us"
	RegionEU Region = "eu"
)

const (
	// DefaultBaseURL is the US API root.
	DefaultBaseURL = "https://api.mailgun.net/v3"
	// EUBaseURL is the EU API root.
	EUBaseURL = "https://api.eu.mailgun.net/v3"
)

// BaseURLFor returns the API root for a region. Unknown regions use the US host.
func BaseURLFor(r Region) string {
	if strings.EqualFold(string(r), string(RegionEU)) {
		return EUBaseURL
	}
	return DefaultBaseURL
}

// Client sends messages for a single Mailgun domain.
type Client struct {
	apiKey     string
	domain     string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	encoder    *Encoder
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. for a proxy or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRegion selects the API root for a region.
func WithRegion(r Region) Option {
	return func(c *Client) {
		c.baseURL = BaseURLFor(r)
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each request. It applies to the client given with
// WithHTTPClient as well, regardless of option order; that client is copied,
// not modified. Zero leaves the HTTP client's own timeout in place.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithFileReader sets where attachment paths are read from.
func WithFileReader(files fsx.FileReader) Option {
	return func(c *Client) {
		c.encoder = NewEncoder(files)
	}
}

// NewClient creates a Client for domain authenticated with apiKey. Requests
// carry no timeout unless WithTimeout or an HTTP client with one is given;
// the caller's context still cancels them.
func NewClient(apiKey, domain string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		domain:     domain,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	if c.encoder == nil {
		c.encoder = NewEncoder(nil)
	}
	return c
}

// Domain returns the sending domain.
func (c *Client) Domain() string { return c.domain }

// Timeout returns the per-request timeout; zero means none.
func (c *Client) Timeout() time.Duration { return c.httpClient.Timeout }

// Endpoint returns the URL messages are posted to.
func (c *Client) Endpoint() string {
	return fmt.Sprintf("%s/%s/messages", c.baseURL, c.domain)
}

// SendMessage encodes m and posts it to Mailgun. A message without text or html
// fails with ErrInvalidMessage before any request is made.
func (c *Client) SendMessage(ctx context.Context, m *Message) (*SendResponse, error) {
	body, err := c.encoder.Encode(ctx, m)
	if err != nil {
		return nil, err
	}

	log := logx.WithContext(ctx).WithFields(logx.Fields{
		"domain":    c.domain,
		"to":        m.To.String(),
		"multipart": body.IsMultipart(),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), body.Reader())
	if err != nil {
		return nil, mailgunErrors.NewWithCause(ErrTransport, err).WithDetail("endpoint", c.Endpoint())
	}
	req.ContentLength = body.Len()
	req.Header.Set("Content-Type", body.ContentType)
	req.SetBasicAuth("api", c.apiKey)

	log.Debug("Sending message to Mailgun")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("Mailgun request failed")
		return nil, mailgunErrors.NewWithCause(ErrTransport, err).WithDetail("endpoint", c.Endpoint())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		e := mailgunErrors.NewWithCause(ErrTransport, err).WithDetail("status", resp.StatusCode)
		e.Message = "Unable to read response"
		return nil, e
	}

	out, err := classifyResponse(raw)
	if err != nil {
		log.WithError(err).WithField("status", resp.StatusCode).Warn("Mailgun did not accept message")
		return nil, err
	}

	log.WithField("mailgun_id", out.ID).Info("Message queued by Mailgun")
	return out, nil
}
