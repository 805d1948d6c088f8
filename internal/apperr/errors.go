// Package apperr defines the typed error taxonomy for a lookup turn. Every
// failure a turn can produce maps to exactly one Kind, and each Kind resolves
// to a fixed user-visible message at the turn boundary.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a turn failure.
type Kind string

const (
	// KindGate means the channel-membership check failed or the user is not
	// a member. Always fail-closed, never fatal.
	KindGate Kind = "gate"
	// KindNoMode means text arrived with no active lookup mode.
	KindNoMode Kind = "no_mode"
	// KindInvalidFormat means the input failed the type-specific pattern.
	KindInvalidFormat Kind = "invalid_format"
	// KindInsufficientCredit means the balance was zero or below.
	KindInsufficientCredit Kind = "insufficient_credit"
	// KindAPI covers non-200 statuses, body parse failures and transport
	// errors from the lookup endpoint.
	KindAPI Kind = "api"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Error is the result type carried up to the interaction controller.
type Error struct {
	Kind        Kind
	Message     string
	UserMessage string
	Severity    Severity
	// Status holds the HTTP status for KindAPI errors, zero otherwise.
	Status int
	// Transient marks transport-level or timeout failures.
	Transient bool
	cause     error
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
	return e.cause
}

// KindOf extracts the Kind from err, or an empty Kind for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) && appErr != nil {
		return appErr.Kind
	}
	return ""
}

// Gate reports a failed or negative channel-membership check.
func Gate(cause error) *Error {
	msg := "user is not a member of required channels"
	if cause != nil {
		msg = fmt.Sprintf("channel membership check failed: %v", cause)
	}

	return &Error{
		Kind:        KindGate,
		Message:     msg,
		UserMessage: "🔐 Join all channels first.",
		Severity:    SeverityLow,
		cause:       cause,
	}
}

// NoMode reports text received without an active lookup mode.
func NoMode() *Error {
	return &Error{
		Kind:        KindNoMode,
		Message:     "text received with no lookup mode selected",
		UserMessage: "Please select a lookup option first from the Main Menu.",
		Severity:    SeverityLow,
	}
}

// InvalidFormat reports input that failed the pattern for lookupType.
func InvalidFormat(lookupType string) *Error {
	return &Error{
		Kind:        KindInvalidFormat,
		Message:     fmt.Sprintf("input failed %s format validation", lookupType),
		UserMessage: fmt.Sprintf("❌ Invalid format for %s! Please send a valid input.", strings.ToUpper(lookupType)),
		Severity:    SeverityLow,
	}
}

// InsufficientCredit reports a zero balance before dispatch.
func InsufficientCredit() *Error {
	return &Error{
		Kind:        KindInsufficientCredit,
		Message:     "no credits left",
		UserMessage: "❌ *No credits left!*\nUse /start → Refer & Earn",
		Severity:    SeverityLow,
	}
}

// APIStatus reports a non-200 response from the lookup endpoint.
func APIStatus(status int) *Error {
	return &Error{
		Kind:        KindAPI,
		Message:     fmt.Sprintf("lookup API returned status %d", status),
		UserMessage: fmt.Sprintf("⚠️ API returned status code %d. Check API URL or input.", status),
		Severity:    SeverityMedium,
		Status:      status,
	}
}

// APITransient reports a transport failure or timeout on the lookup call.
func APITransient(cause error) *Error {
	return &Error{
		Kind:        KindAPI,
		Message:     fmt.Sprintf("lookup API call failed: %v", cause),
		UserMessage: "⚠️ API Error or Timeout. Try again.",
		Severity:    SeverityMedium,
		Transient:   true,
		cause:       cause,
	}
}

// APIParse reports a 200 response whose body was not valid JSON.
func APIParse(cause error) *Error {
	return &Error{
		Kind:        KindAPI,
		Message:     fmt.Sprintf("lookup API response parse failed: %v", cause),
		UserMessage: "⚠️ API Error or Timeout. Try again.",
		Severity:    SeverityMedium,
		cause:       cause,
	}
}
