package tracking

import (
	"errors"
	"fmt"

	"github.com/five82/rastreo/internal/backend"
)

// Kind classifies a failed operation.
type Kind int

const (
	KindEmptyInput Kind = iota + 1
	KindNetworkFailure
	KindParseFailure
)

func (k Kind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty input"
	case KindNetworkFailure:
		return "network failure"
	case KindParseFailure:
		return "parse failure"
	default:
		return "unknown"
	}
}

// Error is the single failure value surfaced to the UI. Error() is the
// human-readable message shown to the operator.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == kind
}

const emptyInputMessage = "Por favor ingrese un número de rastreo"

func emptyInputError() *Error {
	return &Error{Kind: KindEmptyInput, Message: emptyInputMessage}
}

// lookupError classifies a /track failure. Transport failures keep the raw
// cause as their message.
func lookupError(err error) *Error {
	if errors.Is(err, backend.ErrMalformed) {
		return &Error{
			Kind:    KindParseFailure,
			Message: fmt.Sprintf("Error al procesar la respuesta: %v", err),
			Err:     err,
		}
	}
	return &Error{Kind: KindNetworkFailure, Message: err.Error(), Err: err}
}

func historyError(err error) *Error {
	if errors.Is(err, backend.ErrMalformed) {
		return &Error{
			Kind:    KindParseFailure,
			Message: fmt.Sprintf("Error al cargar el historial: %v", err),
			Err:     err,
		}
	}
	return &Error{
		Kind:    KindNetworkFailure,
		Message: fmt.Sprintf("Error al conectar con el servidor: %v", err),
		Err:     err,
	}
}
