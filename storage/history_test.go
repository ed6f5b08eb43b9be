package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type stubRows struct {
	rows [][]any
	next int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return r.rows[r.next-1], nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.next >= len(r.rows) {
		return false
	}
	r.next++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	row := r.rows[r.next-1]
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

type stubQuerier struct {
	rows  *stubRows
	err   error
	args  []any
	calls int
}

func (q *stubQuerier) Query(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
	q.calls++
	q.args = args
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func historyRow(id string, at time.Time) []any {
	return []any{id, "foo", "123", "u1", "user", "User", "text " + id, []byte(`{"moderator":1}`), "#fff", true, false, 0, at}
}

func TestHistoryRecentReturnsOldestFirst(t *testing.T) {
	req := require.New(t)
	now := time.Now().UTC()
	q := &stubQuerier{rows: &stubRows{rows: [][]any{
		historyRow("b", now),
		historyRow("a", now.Add(-time.Minute)),
	}}}

	messages, err := NewHistory(q, time.Second).Recent(context.Background(), "foo", 2)

	req.NoError(err)
	req.Equal([]any{"foo", 2}, q.args)
	req.Len(messages, 2)
	req.Equal("a", messages[0].ID)
	req.Equal("b", messages[1].ID)
	req.Equal(map[string]int{"moderator": 1}, messages[0].Badges)
	req.True(messages[0].IsMod)
}

func TestHistoryRecentErrors(t *testing.T) {
	req := require.New(t)
	q := &stubQuerier{err: errors.New("connection refused")}

	_, err := NewHistory(q, time.Second).Recent(context.Background(), "foo", 10)
	req.ErrorContains(err, "connection refused")

	messages, err := NewHistory(q, time.Second).Recent(context.Background(), "foo", 0)
	req.NoError(err)
	req.Empty(messages)
	req.Equal(1, q.calls)
}
