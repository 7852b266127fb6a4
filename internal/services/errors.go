package services

import (
	"errors"
	"fmt"
)

// ErrorKind, hatanın hangi sınıfa ait olduğunu belirtir
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindConflict        ErrorKind = "conflict"
	KindAuth            ErrorKind = "auth"
	KindNotFound        ErrorKind = "not_found"
	KindPaymentDeclined ErrorKind = "payment_declined"
	KindInternal        ErrorKind = "internal"
)

// Error, istek kapsamındaki bir hatayı ve kullanıcıya gösterilecek mesajı taşır
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Karşılaştırma için sınıf değerleri: errors.Is(err, ErrAuth)
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrAuth            = &Error{Kind: KindAuth}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrPaymentDeclined = &Error{Kind: KindPaymentDeclined}
	ErrInternal        = &Error{Kind: KindInternal}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is, sınıf değerleriyle yalnızca Kind üzerinden eşleşir
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf, hatanın sınıfını döndürür; tanınmayan hatalar internal sayılır
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf, kullanıcıya gösterilebilecek mesajı döndürür
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Something went wrong, please try again."
}
