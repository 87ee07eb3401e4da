package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

const defaultBaseURL = "https://api.github.com"

// Issues filed by the bot carry this label so they are easy to triage.
const autoLabel = "auto_created"

// RejectionError is returned when the issue tracker refuses a report.
// Reason is human-readable and safe to echo back into the chat.
type RejectionError struct {
	Status int
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("report rejected: status=%d reason=%s", e.Status, e.Reason)
}

// Client files issues against a single GitHub repository.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	token   string
	user    string
	repo    string

	defaultTimeout time.Duration
}

type Option func(*Client)

// WithBaseURL points the client at a different API host (tests).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func NewClient(token, user, repo string, opts ...Option) *Client {
	c := &Client{
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second},
		baseURL:        defaultBaseURL,
		token:          strings.TrimSpace(token),
		user:           strings.TrimSpace(user),
		repo:           strings.TrimSpace(repo),
		defaultTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type issueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

type issueResponse struct {
	HTMLURL string `json:"html_url"`
	Message string `json:"message"`
}

// File opens an issue and returns its tracking URL. A refusal from the
// tracker comes back as *RejectionError; transport failures as plain
// errors.
func (c *Client) File(ctx context.Context, title, body string) (string, error) {
	payload, err := json.Marshal(issueRequest{Title: title, Body: body, Labels: []string{autoLabel}})
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI(fmt.Sprintf("%s/repos/%s/%s/issues", c.baseURL, c.user, c.repo))
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	req.SetBody(payload)

	if err := c.http.DoDeadline(req, resp, c.computeDeadline(ctx)); err != nil {
		return "", fmt.Errorf("file report: %w", err)
	}

	var out issueResponse
	decodeErr := json.Unmarshal(resp.Body(), &out)

	status := resp.StatusCode()
	if status != fasthttp.StatusCreated {
		reason := ""
		if decodeErr == nil {
			reason = compactReason(out.Message)
		}
		if reason == "" {
			reason = fasthttp.StatusMessage(status)
		}
		return "", &RejectionError{Status: status, Reason: reason}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode report response: %w", decodeErr)
	}
	return out.HTMLURL, nil
}

// compactReason drops blank lines from a structured rejection message.
func compactReason(msg string) string {
	var lines []string
	for _, line := range strings.Split(msg, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}
