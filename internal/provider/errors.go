package provider

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrNoChoice        = errors.New("response contained no choices")
	ErrUnknownResponse = errors.New("response matched neither the completion nor the error shape")
)

// -- Error Types --

// TransportError is returned when the model endpoint could not be reached or
// answered with something that is not a chat completion.
type TransportError struct {
	Op     string
	Status int
	Cause  error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}
func (e *TransportError) Unwrap() error { return e.Cause }

// ProtocolError is a structured error object returned by the model endpoint.
type ProtocolError struct {
	Status  int
	Code    string
	Type    string
	Param   string
	Message string
}

func (e *ProtocolError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Code)
	}
	if e.Status != 0 {
		return fmt.Sprintf("model api error, status %d: %s", e.Status, msg)
	}
	return "model api error: " + msg
}

// RefusalError is returned when the model declines to answer.
type RefusalError struct {
	Reason string
}

func (e *RefusalError) Error() string {
	if e.Reason == "" {
		return "model refused to answer"
	}
	return "model refused to answer: " + e.Reason
}

// ContextOverflowError is returned when the conversation keeps exceeding the
// context window after repeated recovery.
type ContextOverflowError struct {
	Attempts int
	Size     int
}

func (e *ContextOverflowError) Error() string {
	return fmt.Sprintf("conversation still exceeds the context window after %d recoveries (%d bytes)", e.Attempts, e.Size)
}
