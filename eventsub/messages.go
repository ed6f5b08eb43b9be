package eventsub

import (
	"encoding/json"

	"twitch-chat-client/model"
)

// DefaultURL — websocket-адрес EventSub.
const DefaultURL = "wss://eventsub.wss.twitch.tv/ws"

const (
	messageWelcome      = "session_welcome"
	messageKeepalive    = "session_keepalive"
	messageReconnect    = "session_reconnect"
	messageNotification = "notification"
	messageRevocation   = "revocation"
)

type metadata struct {
	MessageID        string `json:"message_id"`
	MessageType      string `json:"message_type"`
	MessageTimestamp string `json:"message_timestamp"`
	SubscriptionType string `json:"subscription_type,omitempty"`
}

type message struct {
	Metadata metadata        `json:"metadata"`
	Payload  json.RawMessage `json:"payload"`
}

type sessionInfo struct {
	ID                      string `json:"id"`
	Status                  string `json:"status"`
	KeepaliveTimeoutSeconds int    `json:"keepalive_timeout_seconds"`
	ReconnectURL            string `json:"reconnect_url"`
}

type sessionPayload struct {
	Session sessionInfo `json:"session"`
}

type subscriptionInfo struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Type      string          `json:"type"`
	Version   string          `json:"version"`
	Condition model.Condition `json:"condition"`
}

type notificationPayload struct {
	Subscription subscriptionInfo `json:"subscription"`
	Event        json.RawMessage  `json:"event"`
}

// Notification — payload события eventsub для UI.
type Notification struct {
	Type      string          `json:"type"`
	Condition model.Condition `json:"condition,omitempty"`
	Event     json.RawMessage `json:"event"`
}
