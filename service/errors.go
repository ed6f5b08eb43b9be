package service

import (
	"errors"
	"fmt"
)

var (
	ErrNoToken     = errors.New("access token not set")
	ErrNoChat      = errors.New("no IRC connection")
	ErrNoEventSub  = errors.New("eventsub client not configured")
	ErrNoCosmetics = errors.New("7tv client not configured")
	ErrTaskPanic   = errors.New("background task panic")
)

// Kind классифицирует ошибки оркестратора.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindPrecondition
	KindCanceled
	KindProviderUnavailable
	KindSubscription
	KindCosmetics
	KindPagination
	KindToken
	KindHistory
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid request"
	case KindPrecondition:
		return "precondition"
	case KindCanceled:
		return "canceled"
	case KindProviderUnavailable:
		return "provider unavailable"
	case KindSubscription:
		return "subscription failure"
	case KindCosmetics:
		return "cosmetics failure"
	case KindPagination:
		return "pagination failure"
	case KindToken:
		return "token"
	case KindHistory:
		return "history"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error описывает ошибку операции оркестратора.
type Error struct {
	Kind    Kind
	Op      string
	Channel string
	Err     error
}

func (e *Error) Error() string {
	if e.Channel == "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Channel, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind сообщает, содержит ли цепочка ошибок Error указанного вида.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func newError(kind Kind, op, channel string, err error) *Error {
	return &Error{Kind: kind, Op: op, Channel: channel, Err: err}
}
