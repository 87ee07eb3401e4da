package telegramfast

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

const defaultBaseURL = "https://api.telegram.org"

// Client talks to the Telegram Bot API over fasthttp.
type Client struct {
	baseURL string
	apiKey  string
	http    *fasthttp.Client

	defaultTimeout time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

// WithBaseURL points the client at a different API host (tests).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

func WithMaxConnsPerHost(n int) Option {
	return func(c *Client) { c.http.MaxConnsPerHost = n }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:        defaultBaseURL,
		apiKey:         strings.TrimSpace(apiKey),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 64},
		defaultTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendMessage posts a text reply into the chat. replyTo of zero sends a
// plain message instead of a threaded reply.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, replyTo int64) error {
	return c.call(ctx, "sendMessage", sendMessageRequest{ChatID: chatID, Text: text, ReplyToMessageID: replyTo})
}

// SetWebhook registers url as the delivery endpoint for this bot.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	return c.call(ctx, "setWebhook", setWebhookRequest{URL: url})
}

func (c *Client) call(ctx context.Context, method string, in any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", method, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI(fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.apiKey, method))
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	if err := c.http.DoDeadline(req, resp, c.computeDeadline(ctx)); err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}

	var out apiResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return fmt.Errorf("telegram %s: decode response: %w", method, err)
	}
	if !out.OK {
		desc := out.Description
		if desc == "" {
			desc = fasthttp.StatusMessage(resp.StatusCode())
		}
		return fmt.Errorf("telegram %s: %s", method, desc)
	}
	return nil
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}
