package apperr

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Kind classifies a failure for the transport layer.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindBusinessRule   Kind = "business_rule_violation"
	KindMalformedInput Kind = "malformed_input"
	KindInternal       Kind = "internal"
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	// Fields holds per-field messages for malformed input.
	Fields map[string]string
	Cause  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	switch {
	case op != "" && e.Message != "":
		return fmt.Sprintf("%s: %s", op, e.Message)
	case e.Message != "":
		return e.Message
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Kind)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, op, msg string, cause error) error {
	return &Error{Kind: kind, Op: strings.TrimSpace(op), Message: strings.TrimSpace(msg), Cause: cause}
}

func NotFound(op, format string, args ...any) error {
	return newError(KindNotFound, op, fmt.Sprintf(format, args...), nil)
}

func BusinessRule(format string, args ...any) error {
	return newError(KindBusinessRule, "", fmt.Sprintf(format, args...), nil)
}

func Malformed(msg string, fields map[string]string) error {
	return &Error{Kind: KindMalformedInput, Message: strings.TrimSpace(msg), Fields: fields}
}

func Internal(op string, cause error) error {
	msg := "internal error"
	if cause != nil {
		msg = cause.Error()
	}
	return newError(KindInternal, op, msg, cause)
}

// KindOf returns the kind carried by err, or "" for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}

func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// FromStorage maps gorm/driver failures into typed errors. Typed errors pass through.
func FromStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(KindNotFound, op, "record not found", err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return newError(KindBusinessRule, op, "duplicate value violates a uniqueness rule", err)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "duplicate key") {
		return newError(KindBusinessRule, op, "duplicate value violates a uniqueness rule", err)
	}
	return Internal(op, err)
}
