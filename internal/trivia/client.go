package trivia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// Question is one clue as served by the jeopardy question service.
// Immutable once fetched.
type Question struct {
	Round    string `json:"round"`
	Value    int    `json:"value"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Prompt   string `json:"question"`
	Answer   string `json:"answer"`

	// Raw keeps the payload exactly as received, for error-report context.
	Raw json.RawMessage `json:"-"`
}

// Pretty returns the question's raw payload re-indented, for inclusion
// in error reports. Falls back to the payload as received when it does
// not re-indent cleanly.
func (q *Question) Pretty() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, q.Raw, "", "    "); err != nil {
		return string(q.Raw)
	}
	return buf.String()
}

type Client struct {
	url  string
	http *fasthttp.Client

	defaultTimeout time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:            strings.TrimSpace(url),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second},
		defaultTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch requests a fresh question from the configured endpoint.
func (c *Client) Fetch(ctx context.Context) (*Question, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(c.url)

	if err := c.http.DoDeadline(req, resp, c.computeDeadline(ctx)); err != nil {
		return nil, fmt.Errorf("fetch question: %w", err)
	}
	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("question service error: status=%d", status)
	}

	body := append([]byte(nil), resp.Body()...)
	var q Question
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}
	q.Raw = body
	return &q, nil
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}
