package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kapu/jeopardy-telegram-bot/internal/game"
	"github.com/kapu/jeopardy-telegram-bot/internal/msgcat"
	"github.com/kapu/jeopardy-telegram-bot/internal/telegramfast"
)

// Dispatcher is the game core the adapter feeds.
type Dispatcher interface {
	Dispatch(ctx context.Context, in game.Inbound) (game.Reply, error)
	ClearActive(chatID int64)
}

// Sender delivers outbound replies to the chat platform.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, replyTo int64) error
}

// Server is the inbound message adapter: it owns the webhook endpoint,
// extracts the fields the game needs from each Telegram update, and is
// the one place where broad failures are caught and turned into crash
// reports.
type Server struct {
	path     string
	game     Dispatcher
	sender   Sender
	reporter game.Reporter
	catalog  *msgcat.Catalog
	log      *zap.Logger
}

// NewServer binds the adapter to path ("/<id>"), which the caller also
// registers with the platform.
func NewServer(path string, dispatcher Dispatcher, sender Sender, reporter game.Reporter, catalog *msgcat.Catalog, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		path:     path,
		game:     dispatcher,
		sender:   sender,
		reporter: reporter,
		catalog:  catalog,
		log:      log,
	}
}

// Handler is the fasthttp entry point.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	if string(ctx.Path()) != s.path {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		return
	}
	s.serveUpdate(ctx)
	// Telegram only cares that delivery was acknowledged.
	ctx.SetStatusCode(fasthttp.StatusOK)
}

func (s *Server) serveUpdate(ctx *fasthttp.RequestCtx) {
	in, ok := extractInbound(ctx.PostBody())
	if !ok {
		// Non-text updates and malformed payloads are dropped without
		// touching any state.
		return
	}

	reply, err := s.dispatch(ctx, in)
	if err != nil {
		s.log.Error("command handler failed", zap.Int64("chat", in.ChatID), zap.Error(err))
		reply = s.crashReport(ctx, in.ChatID, err)
	}
	if reply.Text == "" {
		return
	}
	if err := s.sender.SendMessage(ctx, in.ChatID, reply.Text, reply.ReplyTo); err != nil {
		s.log.Error("send reply failed", zap.Int64("chat", in.ChatID), zap.Error(err))
	}
}

// dispatch shields the server from handler panics; a panic surfaces as
// an error carrying the stack, feeding the same crash-report path.
func (s *Server) dispatch(ctx context.Context, in game.Inbound) (reply game.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return s.game.Dispatch(ctx, in)
}

// crashReport files an automatic issue for an unexpected failure. On
// success the chat's active question is dropped and the reply links the
// issue; when filing fails too, the failure is logged and a generic
// apology goes out.
func (s *Server) crashReport(ctx context.Context, chatID int64, cause error) game.Reply {
	url, ferr := s.reporter.File(ctx, "Crash Report", "```\n"+cause.Error()+"\n```")
	if ferr != nil {
		s.log.Error("crash report filing failed", zap.Int64("chat", chatID), zap.Error(ferr))
		text, rerr := s.catalog.Render("crash.fallback", nil)
		if rerr != nil {
			s.log.Error("render crash fallback", zap.Error(rerr))
			return game.Reply{}
		}
		return game.Reply{Text: text}
	}
	s.game.ClearActive(chatID)
	s.log.Info("crash report filed", zap.Int64("chat", chatID), zap.String("url", url))
	text, rerr := s.catalog.Render("crash.reported", map[string]any{"URL": url})
	if rerr != nil {
		s.log.Error("render crash reply", zap.Error(rerr))
		return game.Reply{}
	}
	return game.Reply{Text: text}
}

// extractInbound pulls the fields the game needs out of a raw update.
// Any missing piece makes the whole update unusable.
func extractInbound(body []byte) (game.Inbound, bool) {
	var update telegramfast.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return game.Inbound{}, false
	}
	msg := update.Message
	if msg == nil || msg.Text == "" || msg.Chat == nil {
		return game.Inbound{}, false
	}
	name := msg.From.DisplayName()
	if name == "" {
		return game.Inbound{}, false
	}
	return game.Inbound{
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		Name:      name,
		Text:      msg.Text,
	}, true
}
