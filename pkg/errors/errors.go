package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeNotFound      Code = "NOT_FOUND"
	CodeStateConflict Code = "STATE_CONFLICT"
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeDependency    Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a coded error surfaces to the chat user.
type Metadata struct {
	UserMessage string
	Ephemeral   bool
	Retryable   bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		UserMessage: "That request was not valid.",
		Ephemeral:   true,
	},
	CodeNotFound: {
		UserMessage: "That item is no longer available.",
		Ephemeral:   true,
	},
	CodeStateConflict: {
		UserMessage: "That action cannot be taken right now.",
		Ephemeral:   true,
	},
	CodeInternal: {
		UserMessage: "An error occurred. Please try again.",
		Ephemeral:   true,
		Retryable:   true,
	},
	CodeDependency: {
		UserMessage: "An error occurred. Please try again.",
		Ephemeral:   true,
		Retryable:   true,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// UserMessageFor resolves the notice shown to the chat user for any error.
func UserMessageFor(err error) string {
	if typed := As(err); typed != nil {
		return MetadataFor(typed.Code()).UserMessage
	}
	return MetadataFor(CodeInternal).UserMessage
}
