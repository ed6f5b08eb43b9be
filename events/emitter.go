package events

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Имена событий, которые получает UI.
const (
	UserEmotes     = "useremotes"
	RecentMessages = "recentmessages"
	EventSub       = "eventsub"
	SevenTV        = "seventv"
	Result         = "result"
)

// Emitter публикует именованные события для UI.
type Emitter interface {
	Emit(name string, payload any) error
}

// Envelope описывает одну строку потока событий.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Writer пишет события в io.Writer построчно в JSON.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter создаёт Writer поверх w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

// Emit сериализует событие; одновременные вызовы не перемешивают строки.
func (w *Writer) Emit(name string, payload any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.enc.Encode(Envelope{Event: name, Payload: payload}); err != nil {
		return fmt.Errorf("emit %s: %w", name, err)
	}
	return nil
}
