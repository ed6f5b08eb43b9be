package twitch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"twitch-chat-client/model"
)

// DefaultHelixURL — базовый адрес Helix API.
const DefaultHelixURL = "https://api.twitch.tv/helix"

// Helix вызывает Helix API от имени пользователя.
type Helix struct {
	log     *slog.Logger
	http    *http.Client
	baseURL string
}

// NewHelix создаёт клиент Helix; nil httpClient заменяется клиентом с таймаутом.
func NewHelix(log *slog.Logger, baseURL string, httpClient *http.Client) *Helix {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultHelixURL
	}
	return &Helix{
		log:     log.With("component", "helix"),
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type page[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Cursor string `json:"cursor"`
	} `json:"pagination"`
}

// cursorPager обходит коллекцию Helix по курсору pagination.cursor.
type cursorPager[T any] struct {
	helix  *Helix
	token  model.UserToken
	path   string
	query  url.Values
	cursor string
	done   bool
}

func (p *cursorPager[T]) More() bool {
	return !p.done
}

func (p *cursorPager[T]) Next(ctx context.Context) ([]T, error) {
	if p.done {
		return nil, nil
	}

	query := url.Values{}
	for k, v := range p.query {
		query[k] = v
	}
	if p.cursor != "" {
		query.Set("after", p.cursor)
	}

	var resp page[T]
	if err := p.helix.do(ctx, p.token, http.MethodGet, p.path, query, nil, &resp); err != nil {
		return nil, err
	}

	next := resp.Pagination.Cursor
	if next != "" && next == p.cursor {
		p.helix.log.Warn("helix: курсор не сдвинулся, обход остановлен", "path", p.path, "cursor", next)
		next = ""
	}
	p.cursor = next
	p.done = next == ""

	return resp.Data, nil
}

// UserEmotes возвращает постраничный инвентарь эмоутов пользователя токена.
func (h *Helix) UserEmotes(token model.UserToken) model.Pager[model.Emote] {
	return &cursorPager[model.Emote]{
		helix: h,
		token: token,
		path:  "/chat/emotes/user",
		query: url.Values{"user_id": []string{token.UserID}},
	}
}

// SubscriptionTransport задаёт транспорт доставки EventSub.
type SubscriptionTransport struct {
	Method    string `json:"method"`
	SessionID string `json:"session_id"`
}

// CreateSubscriptionRequest — тело POST /eventsub/subscriptions.
type CreateSubscriptionRequest struct {
	Type      string                `json:"type"`
	Version   string                `json:"version"`
	Condition model.Condition       `json:"condition"`
	Transport SubscriptionTransport `json:"transport"`
}

// CreateEventSubSubscription создаёт подписку и возвращает её id.
func (h *Helix) CreateEventSubSubscription(ctx context.Context, token model.UserToken, req CreateSubscriptionRequest) (string, error) {
	var resp struct {
		Data []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := h.do(ctx, token, http.MethodPost, "/eventsub/subscriptions", nil, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("helix: create subscription %s: empty response", req.Type)
	}
	return resp.Data[0].ID, nil
}

// DeleteEventSubSubscription удаляет подписку по id.
// Подписка, которой уже нет (404), считается удалённой.
func (h *Helix) DeleteEventSubSubscription(ctx context.Context, token model.UserToken, id string) error {
	err := h.do(ctx, token, http.MethodDelete, "/eventsub/subscriptions", url.Values{"id": []string{id}}, nil, nil)

	var status *StatusError
	if errors.As(err, &status) && status.Code == http.StatusNotFound {
		h.log.Debug("helix: подписка уже удалена", "subscription_id", id)
		return nil
	}
	return err
}

// StatusError — ответ Helix с кодом вне 2xx.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("helix: %s %s: unexpected status %s: %s", e.Method, e.Path, e.Status, e.Body)
}

func (h *Helix) do(ctx context.Context, token model.UserToken, method, path string, query url.Values, body, out any) error {
	endpoint := h.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("helix: %s %s: encode body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("helix: %s %s: create request: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Client-Id", token.ClientID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	h.log.Debug("helix: запрос", "method", method, "path", path)

	resp, err := h.http.Do(req)
	if err != nil {
		return fmt.Errorf("helix: %s %s: request failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(resp.Body)
		return &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   strings.TrimSpace(string(data)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("helix: %s %s: decode response: %w", method, path, err)
	}
	return nil
}
