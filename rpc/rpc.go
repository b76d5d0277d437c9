// Package rpc carries the request-reply conventions used between the
// client and the backend services: a JSON envelope over NATS with a
// bearer token, and coded errors mapped into the reply.
package rpc

import (
	"encoding/json"
	"fmt"
)

// Request is the wire envelope for a request.
type Request struct {
	Token string          `json:"token,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Response is the wire envelope for a reply.
type Response struct {
	Success bool            `json:"success"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error codes carried in failed responses.
const (
	CodeInvalidArgument = "invalid_argument"
	CodeUnauthenticated = "unauthenticated"
	CodeNotFound        = "not_found"
	CodeAlreadyExists   = "already_exists"
	CodeInternal        = "internal"
)

// Error is a handler failure with a wire code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func Errorf(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return Errorf(CodeInvalidArgument, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return Errorf(CodeNotFound, format, args...)
}

func AlreadyExists(format string, args ...interface{}) *Error {
	return Errorf(CodeAlreadyExists, format, args...)
}

func Internal(format string, args ...interface{}) *Error {
	return Errorf(CodeInternal, format, args...)
}
