package model

import "time"

// UserToken описывает провалидированный пользовательский OAuth токен Twitch.
type UserToken struct {
	UserID      string
	Login       string
	ClientID    string
	AccessToken string
	Scopes      []string
	ExpiresAt   time.Time
}

// Info возвращает публичную часть токена для UI.
func (t UserToken) Info() TokenInfo {
	return TokenInfo{UserID: t.UserID, AccessToken: t.AccessToken}
}

// TokenInfo отдаётся наверх после успешного set_token.
type TokenInfo struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

// Emote описывает эмоут из инвентаря пользователя.
type Emote struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"emote_type"`
	SetID     string   `json:"emote_set_id"`
	OwnerID   string   `json:"owner_id"`
	Format    []string `json:"format"`
	Scale     []string `json:"scale"`
	ThemeMode []string `json:"theme_mode"`
}
