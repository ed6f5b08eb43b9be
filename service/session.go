package service

import (
	"sync"

	"twitch-chat-client/model"
)

// Session — общее состояние процесса: токен и клиенты трёх источников событий.
// Поля читаются вместе под одним мьютексом; мьютекс не удерживается во время сетевых вызовов.
type Session struct {
	mu        sync.Mutex
	token     *model.UserToken
	chat      ChatTransport
	eventsub  EventSubClient
	cosmetics CosmeticsClient
}

// Snapshot содержит согласованную копию полей Session.
type Snapshot struct {
	Token     *model.UserToken
	Chat      ChatTransport
	EventSub  EventSubClient
	Cosmetics CosmeticsClient
}

// NewSession создаёт пустую Session.
func NewSession() *Session {
	return &Session{}
}

// Snapshot копирует все поля за одну короткую критическую секцию.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Chat:      s.chat,
		EventSub:  s.eventsub,
		Cosmetics: s.cosmetics,
	}
	if s.token != nil {
		token := *s.token
		snap.Token = &token
	}
	return snap
}

// Token возвращает текущий токен, если он установлен.
func (s *Session) Token() (model.UserToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == nil {
		return model.UserToken{}, false
	}
	return *s.token, true
}

// SetToken заменяет токен; nil сбрасывает его.
func (s *Session) SetToken(token *model.UserToken) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == nil {
		s.token = nil
		return
	}
	t := *token
	s.token = &t
}

func (s *Session) SetChat(chat ChatTransport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = chat
}

func (s *Session) SetEventSub(client EventSubClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventsub = client
}

func (s *Session) SetCosmetics(client CosmeticsClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cosmetics = client
}

// Logout сбрасывает токен и все клиенты.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
	s.chat = nil
	s.eventsub = nil
	s.cosmetics = nil
}
