package domain

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	CodeValidation        ErrCode = "validation_error"
	CodeNotFound          ErrCode = "not_found"
	CodeForbidden         ErrCode = "forbidden"
	CodeInvalidState      ErrCode = "invalid_state"
	CodeAlreadyCancelled  ErrCode = "already_cancelled"
	CodeCapacityInvariant ErrCode = "capacity_invariant"
	CodePersistence       ErrCode = "persistence_failure"
)

type AppError struct {
	Code    ErrCode
	Message string
	Meta    map[string]string
	Err     error
}

func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if len(e.Meta) > 0 {
		msg = fmt.Sprintf("%s (%v)", msg, e.Meta)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AppError) Unwrap() error { return e.Err }

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }
func ErrValidationMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeValidation, Message: msg, Meta: meta}
}
func ErrNotFound(msg string) error     { return &AppError{Code: CodeNotFound, Message: msg} }
func ErrForbidden(msg string) error    { return &AppError{Code: CodeForbidden, Message: msg} }
func ErrInvalidState(msg string) error { return &AppError{Code: CodeInvalidState, Message: msg} }

// ErrAlreadyCancelled is a non-fatal signal: the player was cancelled before, nothing changed.
func ErrAlreadyCancelled(playerID string) error {
	return &AppError{Code: CodeAlreadyCancelled, Message: "player already cancelled", Meta: map[string]string{"player_id": playerID}}
}

func ErrCapacityInvariant(registered, max int) error {
	return &AppError{
		Code:    CodeCapacityInvariant,
		Message: "registered players exceed capacity",
		Meta:    map[string]string{"registered": fmt.Sprint(registered), "max_players": fmt.Sprint(max)},
	}
}

// ErrPersistence wraps a store failure. The in-memory state that was being saved is still valid.
func ErrPersistence(op string, err error) error {
	return &AppError{Code: CodePersistence, Message: op + " failed", Err: err}
}

// HasCode reports whether err is an *AppError carrying code.
func HasCode(err error, code ErrCode) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == code
}
