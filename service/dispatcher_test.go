package service

import (
	"bytes"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_GoDoesNotBlockCaller(t *testing.T) {
	req := require.New(t)
	d := NewDispatcher(slog.New(slog.DiscardHandler), 1)
	defer d.Close()

	unblock := make(chan struct{})
	var ran atomic.Int32

	start := time.Now()
	for range 3 {
		d.Go("slow", nil, func() error {
			<-unblock
			ran.Add(1)
			return nil
		})
	}
	req.Less(time.Since(start), 100*time.Millisecond)

	close(unblock)
	d.Wait()
	req.EqualValues(3, ran.Load())
}

func TestDispatcher_ErrorsEndInLogSink(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	d := NewDispatcher(slog.New(slog.NewTextHandler(&buf, nil)), 2)

	d.Go("fanout", []any{"channel", "foo"}, func() error {
		return errors.Join(errors.New("first failure"), errors.New("second failure"))
	})
	d.Go("panics", nil, func() error {
		panic("boom")
	})
	d.Close()

	out := buf.String()
	req.Contains(out, "first failure")
	req.Contains(out, "second failure")
	req.Contains(out, "channel=foo")
	req.Contains(out, ErrTaskPanic.Error())
}

func TestDispatcher_DropsTasksAfterClose(t *testing.T) {
	d := NewDispatcher(slog.New(slog.DiscardHandler), 1)
	d.Close()

	accepted := d.Go("late", nil, func() error {
		t.Error("task must not run after Close")
		return nil
	})
	d.Wait()

	if accepted {
		t.Fatal("Go must report a dropped task")
	}
}
