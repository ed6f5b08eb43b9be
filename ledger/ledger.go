// Package ledger хранит подписки EventSub, отправленные для каждого канала.
package ledger

import (
	"sync"

	"github.com/samber/lo"

	"twitch-chat-client/model"
)

// Ledger хранит подписки EventSub по каналам.
type Ledger struct {
	mu      sync.RWMutex
	entries map[string][]model.EventSubscriptionEntry
}

// New создаёт пустой Ledger.
func New() *Ledger {
	return &Ledger{entries: make(map[string][]model.EventSubscriptionEntry)}
}

// Replace целиком заменяет набор подписок канала.
func (l *Ledger) Replace(login string, entries []model.EventSubscriptionEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[login] = clone(entries)
}

// Get возвращает копию набора подписок канала.
func (l *Ledger) Get(login string) ([]model.EventSubscriptionEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries, ok := l.entries[login]
	if !ok {
		return nil, false
	}
	return clone(entries), true
}

// Remove удаляет запись канала.
func (l *Ledger) Remove(login string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, login)
}

// Channels возвращает каналы, для которых есть запись.
func (l *Ledger) Channels() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return lo.Keys(l.entries)
}

func clone(entries []model.EventSubscriptionEntry) []model.EventSubscriptionEntry {
	return lo.Map(entries, func(e model.EventSubscriptionEntry, _ int) model.EventSubscriptionEntry {
		return model.EventSubscriptionEntry{Type: e.Type, Condition: e.Condition.Clone()}
	})
}
