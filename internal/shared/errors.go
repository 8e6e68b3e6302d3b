package shared

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrorKind labels the failure classes surfaced to the top-level handler.
type ErrorKind string

const (
	KindLockError       ErrorKind = "LockError"
	KindResolutionError ErrorKind = "ResolutionError"
	KindPlanError       ErrorKind = "TransactionPlanError"
	KindMemberFailure   ErrorKind = "TransactionMemberFailure"
	KindEngineError     ErrorKind = "EngineError"
)

// LockError reports that the package database lock could not be taken.
func LockError(msg string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithLabel(string(KindLockError)).
		WithMsg(msg)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return builder
}

// ResolutionError reports an invalid or unresolvable requirement string.
func ResolutionError(code errbuilder.ErrCode, msg string, cause error) error {
	builder := errbuilder.New().
		WithCode(code).
		WithLabel(string(KindResolutionError)).
		WithMsg(msg)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return builder
}

// PlanError reports an unexpected transaction plan result code.
func PlanError(code int, messages []string) error {
	msg := fmt.Sprintf("transaction plan failed with result code %d", code)
	if len(messages) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(messages, "; "))
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithLabel(string(KindPlanError)).
		WithMsg(msg)
}

// MemberFailure reports transaction members that failed during execution.
func MemberFailure(names []string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeAborted).
		WithLabel(string(KindMemberFailure)).
		WithMsg(fmt.Sprintf("transaction members failed: %s", strings.Join(names, ", ")))
}

// EngineError wraps a package engine failure with the operation and its
// arguments.
func EngineError(operation string, args []string, cause error) error {
	msg := fmt.Sprintf("engine %s failed", operation)
	if len(args) > 0 {
		msg = fmt.Sprintf("engine %s(%s) failed", operation, strings.Join(args, ", "))
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithLabel(string(KindEngineError)).
		WithMsg(msg).
		WithCause(cause)
}

// KindOf returns the kind label of err, or "" when err carries none.
func KindOf(err error) ErrorKind {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		return ErrorKind(builder.Label)
	}
	return ""
}
