package game

import (
	"sync"

	"github.com/kapu/jeopardy-telegram-bot/internal/trivia"
)

// session is the per-chat-room game state. active is the question the
// room is currently answering; lastServedRaw is the raw payload of the
// most recently served question, kept after the round ends so it can be
// attached to error reports.
type session struct {
	mu sync.Mutex

	active        *trivia.Question
	lastServedRaw string
}

// sessionStore maps chat-room ids to their sessions. Sessions are
// created lazily on first access and live for the process lifetime.
type sessionStore struct {
	mu    sync.Mutex
	rooms map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{rooms: make(map[int64]*session)}
}

func (s *sessionStore) getOrCreate(chatID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.rooms[chatID]
	if !ok {
		sess = &session{}
		s.rooms[chatID] = sess
	}
	return sess
}
