package seventv

import (
	"encoding/json"

	"twitch-chat-client/model"
)

// DefaultURL — адрес 7TV EventAPI v3.
const DefaultURL = "wss://events.7tv.io/v3"

const (
	opDispatch    = 0
	opHello       = 1
	opHeartbeat   = 2
	opReconnect   = 4
	opAck         = 5
	opError       = 6
	opEndOfStream = 7
	opSubscribe   = 35
	opUnsubscribe = 36
)

type inbound struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d"`
}

type outbound struct {
	Op int `json:"op"`
	D  any `json:"d"`
}

type hello struct {
	SessionID         string `json:"session_id"`
	HeartbeatInterval int    `json:"heartbeat_interval"`
}

type subscription struct {
	Type      string          `json:"type"`
	Condition model.Condition `json:"condition"`
}

// Dispatch — payload события seventv для UI.
type Dispatch struct {
	Type string          `json:"type"`
	Body json.RawMessage `json:"body"`
}
