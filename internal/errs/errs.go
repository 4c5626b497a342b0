package errs

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindValidation      Kind = "validation"
	KindUnauthorized    Kind = "unauthorized"
	KindUpstreamFormat  Kind = "upstream_format"
	KindUpstreamTimeout Kind = "upstream_timeout"
	KindUpstream        Kind = "upstream"
	KindPersistence     Kind = "persistence"
)

// Sentinels for errors.Is; matching is by kind only.
var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrValidation      = &Error{Kind: KindValidation}
	ErrUnauthorized    = &Error{Kind: KindUnauthorized}
	ErrUpstreamFormat  = &Error{Kind: KindUpstreamFormat}
	ErrUpstreamTimeout = &Error{Kind: KindUpstreamTimeout}
	ErrUpstream        = &Error{Kind: KindUpstream}
	ErrPersistence     = &Error{Kind: KindPersistence}
)

// Error is the application error carried from repositories and services up to
// the HTTP layer.
type Error struct {
	Kind      Kind
	Op        string
	Entity    string
	ID        string
	Message   string
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
		if e.Entity != "" {
			msg = fmt.Sprintf("%s %s", e.Entity, humanKind(e.Kind))
		}
		if e.ID != "" {
			msg = fmt.Sprintf("%s (%s)", msg, e.ID)
		}
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func humanKind(k Kind) string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	default:
		return string(k)
	}
}

func NotFound(entity, id string) error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

func Conflict(entity, id, message string) error {
	return &Error{Kind: KindConflict, Entity: entity, ID: id, Message: message}
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func Unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// UpstreamFormat reports a model reply that could not be turned into the
// expected structure.
func UpstreamFormat(op string, err error) error {
	return &Error{Kind: KindUpstreamFormat, Op: op, Message: "unparseable model reply", Err: err}
}

func UpstreamTimeout(op string, err error) error {
	return &Error{Kind: KindUpstreamTimeout, Op: op, Message: "model call timed out", Retryable: true, Err: err}
}

func Upstream(op string, retryable bool, err error) error {
	return &Error{Kind: KindUpstream, Op: op, Message: "model call failed", Retryable: retryable, Err: err}
}

func Persistence(op string, err error) error {
	return &Error{Kind: KindPersistence, Op: op, Message: "storage failure", Err: err}
}

// KindOf returns the kind of the first *Error in the chain, or "" when none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func Retryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindValidation:
		return fiber.StatusBadRequest
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindUpstreamFormat, KindUpstream:
		return fiber.StatusBadGateway
	case KindUpstreamTimeout:
		return fiber.StatusGatewayTimeout
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
