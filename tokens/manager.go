package tokens

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"
)

// ErrNoToken возвращается, если сохранённого токена нет.
var ErrNoToken = errors.New("tokens: no stored user token")

// Manager хранит последний валидный пользовательский токен между запусками.
type Manager struct {
	store TokenStore
	now   func() time.Time
	mu    sync.Mutex
}

// NewManager создает менеджер пользовательского токена.
func NewManager(store TokenStore) *Manager {
	return &Manager{
		store: store,
		now:   time.Now,
	}
}

// SaveUserToken записывает сырой токен в хранилище.
func (manager *Manager) SaveUserToken(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrNoToken
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()

	return manager.store.SaveUserToken(Token{Access: raw, SavedAt: manager.now()})
}

// ClearUserToken удаляет сохранённый токен.
func (manager *Manager) ClearUserToken() error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	return manager.store.DeleteUserToken()
}

// Restore возвращает сохранённый сырой токен или ErrNoToken.
func (manager *Manager) Restore() (string, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	token, err := manager.store.LoadUserToken()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", err
	}
	if token == nil || strings.TrimSpace(token.Access) == "" {
		return "", ErrNoToken
	}

	return token.Access, nil
}
