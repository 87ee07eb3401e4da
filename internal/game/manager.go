package game

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kapu/jeopardy-telegram-bot/internal/msgcat"
	"github.com/kapu/jeopardy-telegram-bot/internal/report"
	"github.com/kapu/jeopardy-telegram-bot/internal/score"
	"github.com/kapu/jeopardy-telegram-bot/internal/trivia"
)

// QuestionSource serves fresh trivia questions.
type QuestionSource interface {
	Fetch(ctx context.Context) (*trivia.Question, error)
}

// ScoreKeeper adjusts and reads per-player scores. Adjustments must be
// atomic on the backing store.
type ScoreKeeper interface {
	Incr(ctx context.Context, chatID int64, player string, delta int) error
	Decr(ctx context.Context, chatID int64, player string, delta int) error
	Scores(ctx context.Context, chatID int64) ([]score.PlayerScore, error)
}

// Reporter files issues with the tracker. A refusal comes back as
// *report.RejectionError.
type Reporter interface {
	File(ctx context.Context, title, body string) (string, error)
}

// Changelog exposes the shipped changelog record.
type Changelog interface {
	Version() (string, error)
	Current() (string, error)
}

// Inbound is one chat message after the platform adapter has extracted
// the fields the game cares about.
type Inbound struct {
	ChatID    int64
	MessageID int64
	Name      string
	Text      string
}

// Reply is the outbound message a handler produced. The zero value
// means "say nothing". ReplyTo, when set, threads the reply onto the
// triggering message.
type Reply struct {
	Text    string
	ReplyTo int64
}

type handlerFunc func(ctx context.Context, sess *session, in Inbound, params string) (Reply, error)

// Manager owns the per-chat-room game state machine and routes parsed
// commands to their handlers.
type Manager struct {
	botName   string
	catalog   *msgcat.Catalog
	questions QuestionSource
	scores    ScoreKeeper
	reporter  Reporter
	changelog Changelog
	sessions  *sessionStore
	handlers  map[string]handlerFunc
	log       *zap.Logger
}

func NewManager(botName string, catalog *msgcat.Catalog, questions QuestionSource, scores ScoreKeeper, reporter Reporter, changelog Changelog, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		botName:   botName,
		catalog:   catalog,
		questions: questions,
		scores:    scores,
		reporter:  reporter,
		changelog: changelog,
		sessions:  newSessionStore(),
		log:       log,
	}
	// The command table is fixed at construction; nothing registers at
	// runtime.
	m.handlers = map[string]handlerFunc{
		"jeopardy":  m.handleJeopardy,
		"whatis":    m.handleAnswer,
		"whois":     m.handleAnswer,
		"giveup":    m.handleGiveUp,
		"score":     m.handleScore,
		"version":   m.handleVersion,
		"changelog": m.handleChangelog,
		"flag":      m.handleFlag,
	}
	return m
}

// Dispatch parses the message and runs the matching handler while
// holding the chat room's session lock, so concurrent deliveries for
// the same room cannot interleave. Messages without a command, or with
// a command this bot does not know, produce an empty Reply.
func (m *Manager) Dispatch(ctx context.Context, in Inbound) (Reply, error) {
	cmd, params, ok := ParseCommand(in.Text, m.botName)
	if !ok {
		return Reply{}, nil
	}
	handler, known := m.handlers[cmd]
	if !known {
		return Reply{}, nil
	}
	m.log.Debug("dispatch command",
		zap.String("command", cmd),
		zap.Int64("chat", in.ChatID),
		zap.String("player", in.Name))

	sess := m.sessions.getOrCreate(in.ChatID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return handler(ctx, sess, in, params)
}

// ClearActive drops the chat room's active question. Used by the crash
// guard after an error report so a wedged round does not stay stuck.
func (m *Manager) ClearActive(chatID int64) {
	sess := m.sessions.getOrCreate(chatID)
	sess.mu.Lock()
	sess.active = nil
	sess.mu.Unlock()
}

func (m *Manager) handleJeopardy(ctx context.Context, sess *session, in Inbound, _ string) (Reply, error) {
	lastAnswer := ""
	if sess.active != nil {
		lastAnswer = sess.active.Answer
	}
	q, err := m.questions.Fetch(ctx)
	if err != nil {
		return Reply{}, err
	}
	sess.active = q
	sess.lastServedRaw = q.Pretty()

	text, err := m.catalog.Render("question.card", map[string]any{
		"LastAnswer": lastAnswer,
		"Round":      q.Round,
		"Value":      q.Value,
		"Category":   q.Category,
		"Date":       q.Date,
		"Prompt":     q.Prompt,
	})
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text}, nil
}

func (m *Manager) handleAnswer(ctx context.Context, sess *session, in Inbound, params string) (Reply, error) {
	// Answers with no open round, and bare commands, are dropped
	// silently: late guesses must not produce noise.
	if sess.active == nil || params == "" {
		return Reply{}, nil
	}
	q := sess.active
	if ResponseCorrect(params, normalizeAnswer(q.Answer)) {
		if err := m.scores.Incr(ctx, in.ChatID, in.Name, q.Value); err != nil {
			return Reply{}, err
		}
		sess.active = nil
		text, err := m.catalog.Render("answer.correct", nil)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: text, ReplyTo: in.MessageID}, nil
	}
	if err := m.scores.Decr(ctx, in.ChatID, in.Name, q.Value); err != nil {
		return Reply{}, err
	}
	text, err := m.catalog.Render("answer.incorrect", nil)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text, ReplyTo: in.MessageID}, nil
}

func (m *Manager) handleGiveUp(_ context.Context, sess *session, _ Inbound, _ string) (Reply, error) {
	if sess.active == nil {
		return Reply{}, nil
	}
	text, err := m.catalog.Render("giveup.reveal", map[string]any{"Answer": sess.active.Answer})
	if err != nil {
		return Reply{}, err
	}
	sess.active = nil
	return Reply{Text: text}, nil
}

func (m *Manager) handleScore(ctx context.Context, _ *session, in Inbound, _ string) (Reply, error) {
	entries, err := m.scores.Scores(ctx, in.ChatID)
	if err != nil {
		return Reply{}, err
	}
	text, err := m.catalog.Render("score.board", map[string]any{"Entries": entries})
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text}, nil
}

func (m *Manager) handleVersion(_ context.Context, _ *session, _ Inbound, _ string) (Reply, error) {
	version, err := m.changelog.Version()
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: version}, nil
}

func (m *Manager) handleChangelog(_ context.Context, _ *session, _ Inbound, _ string) (Reply, error) {
	entry, err := m.changelog.Current()
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: entry}, nil
}

func (m *Manager) handleFlag(ctx context.Context, sess *session, in Inbound, params string) (Reply, error) {
	if sess.lastServedRaw == "" {
		text, err := m.catalog.Render("flag.no_question", nil)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: text}, nil
	}
	if params == "" {
		text, err := m.catalog.Render("flag.no_reason", nil)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Text: text}, nil
	}

	body := "Reported by: " + in.Name + "\nRaw Data:\n" + sess.lastServedRaw
	url, err := m.reporter.File(ctx, titleCase(params), body)
	var rejection *report.RejectionError
	if errors.As(err, &rejection) {
		m.log.Warn("error report rejected",
			zap.Int64("chat", in.ChatID),
			zap.Int("status", rejection.Status))
		text, rerr := m.catalog.Render("flag.rejected", map[string]any{"Reason": rejection.Reason})
		if rerr != nil {
			return Reply{}, rerr
		}
		return Reply{Text: text}, nil
	}
	if err != nil {
		return Reply{}, err
	}

	m.log.Info("error report filed", zap.Int64("chat", in.ChatID), zap.String("url", url))
	sess.active = nil
	text, err := m.catalog.Render("flag.filed", map[string]any{"URL": url})
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text}, nil
}
