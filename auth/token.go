package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"twitch-chat-client/model"
)

// DefaultOAuthURL — базовый адрес OAuth Twitch.
const DefaultOAuthURL = "https://id.twitch.tv/oauth2"

// ErrInvalidToken возвращается, если Twitch отклонил токен.
var ErrInvalidToken = errors.New("twitch oauth: invalid access token")

// Validator проверяет пользовательские токены через /validate.
type Validator struct {
	baseURL string
	http    *http.Client
}

// NewValidator создаёт Validator; nil httpClient заменяется клиентом с таймаутом.
func NewValidator(baseURL string, httpClient *http.Client) *Validator {
	if baseURL == "" {
		baseURL = DefaultOAuthURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Validator{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Validate обменивает сырой токен на UserToken с id пользователя и client id.
func (v *Validator) Validate(ctx context.Context, raw string) (model.UserToken, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.UserToken{}, ErrInvalidToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/validate", nil)
	if err != nil {
		return model.UserToken{}, fmt.Errorf("twitch oauth: create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+raw)

	resp, err := v.http.Do(req)
	if err != nil {
		return model.UserToken{}, fmt.Errorf("twitch oauth: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return model.UserToken{}, ErrInvalidToken
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return model.UserToken{}, fmt.Errorf("twitch oauth: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var payload struct {
		ClientID  string   `json:"client_id"`
		Login     string   `json:"login"`
		UserID    string   `json:"user_id"`
		Scopes    []string `json:"scopes"`
		ExpiresIn int64    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.UserToken{}, fmt.Errorf("twitch oauth: decode response: %w", err)
	}
	if payload.UserID == "" {
		return model.UserToken{}, fmt.Errorf("%w: app access token has no user", ErrInvalidToken)
	}

	token := model.UserToken{
		UserID:      payload.UserID,
		Login:       payload.Login,
		ClientID:    payload.ClientID,
		AccessToken: raw,
		Scopes:      payload.Scopes,
	}
	if payload.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	}

	return token, nil
}
