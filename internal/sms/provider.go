// Package sms delivers dispatch alerts to response services through a
// configured SMS provider.
package sms

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// maxErrorLen bounds provider error text kept on records and summaries
const maxErrorLen = 200

// FailureCode classifies why a provider could not deliver a message
type FailureCode string

const (
	CodeConfig             FailureCode = "config"
	CodeNoRecipient        FailureCode = "no_recipient"
	CodeTransport          FailureCode = "transport"
	CodeRejected           FailureCode = "rejected"
	CodeSenderNameRejected FailureCode = "sender_name_rejected"
)

// ProviderError is returned by provider adapters
type ProviderError struct {
	Code    FailureCode
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

func configError(format string, args ...any) *ProviderError {
	return &ProviderError{Code: CodeConfig, Message: fmt.Sprintf(format, args...)}
}

// SendOptions tweaks a single provider call
type SendOptions struct {
	OmitSenderName bool
}

// Provider is one SMS backend
type Provider interface {
	Name() string
	// FormatNumber converts a stored contact number to the provider's format
	FormatNumber(raw string) string
	// Send performs at most one network call
	Send(ctx context.Context, to, body string, opts SendOptions) error
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func httpError(status int, body string) *ProviderError {
	return &ProviderError{
		Code:    CodeRejected,
		Message: truncate(fmt.Sprintf("HTTP %d: %s", status, body), maxErrorLen),
	}
}

func transportError(err error) *ProviderError {
	return &ProviderError{Code: CodeTransport, Message: truncate(err.Error(), maxErrorLen)}
}
