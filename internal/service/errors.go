package service

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrNotEnoughStock = errors.New("not enough stock")
	ErrUnauthorized   = errors.New("unauthorized")
)

// Error сообщение для клиента плюс вид ошибки для errors.Is.
// NotFound и нехватка остатка одновременно являются ErrInvalidInput.
type Error struct {
	Msg   string
	kinds []error
}

func (e *Error) Error() string   { return e.Msg }
func (e *Error) Unwrap() []error { return e.kinds }

func invalid(msg string) error {
	return &Error{Msg: msg, kinds: []error{ErrInvalidInput}}
}

func notFound(msg string) error {
	return &Error{Msg: msg, kinds: []error{ErrNotFound, ErrInvalidInput}}
}

func notEnoughStock(msg string) error {
	return &Error{Msg: msg, kinds: []error{ErrNotEnoughStock, ErrInvalidInput}}
}

func unauthorized(msg string) error {
	return &Error{Msg: msg, kinds: []error{ErrUnauthorized}}
}

var errIDRequired = invalid("id is required")

// ErrMissingToken запрос без bearer-токена при включённой авторизации
var ErrMissingToken = unauthorized("Missing bearer token")
