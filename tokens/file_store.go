package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const TOKEN_FILE = ".secrets/twitch_tokens.json"

// FileTokenStore сохраняет токены в JSON файле.
type FileTokenStore struct {
	Path string
}

type fileToken struct {
	Access  string `json:"access"`
	SavedAt string `json:"saved_at"`
}

func (store FileTokenStore) tokenPath() string {
	if strings.TrimSpace(store.Path) == "" {
		return TOKEN_FILE
	}
	return store.Path
}

// LoadUserToken загружает пользовательский токен из JSON файла.
func (store FileTokenStore) LoadUserToken() (*Token, error) {
	path := store.tokenPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load user token: read file: %w", err)
	}

	var payload fileToken
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("load user token: decode json: %w", err)
	}

	savedAt, err := time.Parse(time.RFC3339, payload.SavedAt)
	if err != nil {
		return nil, fmt.Errorf("load user token: parse saved_at: %w", err)
	}

	return &Token{
		Access:  payload.Access,
		SavedAt: savedAt,
	}, nil
}

// SaveUserToken сохраняет пользовательский токен в JSON файл.
func (store FileTokenStore) SaveUserToken(token Token) error {
	path := store.tokenPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("save user token: create dir: %w", err)
	}

	payload := fileToken{
		Access:  token.Access,
		SavedAt: token.SavedAt.UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("save user token: encode json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("save user token: write file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("save user token: chmod file: %w", err)
	}

	return nil
}

// DeleteUserToken удаляет файл токена; отсутствие файла не ошибка.
func (store FileTokenStore) DeleteUserToken() error {
	if err := os.Remove(store.tokenPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete user token: %w", err)
	}
	return nil
}
