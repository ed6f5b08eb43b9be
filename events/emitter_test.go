package events

import (
	"bufio"
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterEmitsOneLinePerEvent(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	w := NewWriter(&buf)

	req.NoError(w.Emit(UserEmotes, []string{"Kappa"}))
	req.NoError(w.Emit(Result, map[string]any{"command": "join", "ok": true}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	req.Len(lines, 2)
	req.JSONEq(`{"event":"useremotes","payload":["Kappa"]}`, string(lines[0]))
	req.JSONEq(`{"event":"result","payload":{"command":"join","ok":true}}`, string(lines[1]))
}

func TestWriterRejectsUnencodablePayload(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	err := NewWriter(&buf).Emit(EventSub, make(chan int))

	req.Error(err)
	req.Contains(err.Error(), "emit eventsub")
}

func TestWriterConcurrentEmits(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	w := NewWriter(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = w.Emit(SevenTV, map[string]int{"n": i})
		}(i)
	}
	wg.Wait()

	scanner := bufio.NewScanner(&buf)
	count := 0
	for scanner.Scan() {
		var env Envelope
		req.NoError(json.Unmarshal(scanner.Bytes(), &env))
		req.Equal(SevenTV, env.Event)
		count++
	}
	req.Equal(50, count)
}
