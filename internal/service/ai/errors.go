package ai

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Category is the closed set of user-facing failure classes for a
// terminal upstream error.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryCapacity
	CategorySafety
	CategoryConnectivity
)

func (c Category) String() string {
	switch c {
	case CategoryCapacity:
		return "capacity"
	case CategorySafety:
		return "safety"
	case CategoryConnectivity:
		return "connectivity"
	default:
		return "generic"
	}
}

const (
	fallbackCapacity = "I'm getting a lot of messages right now. Give me a moment to catch my breath and try again soon!"
	fallbackSafety   = "I'd rather not go down that road — let's keep things friendly! What else is on your mind?"
	fallbackNetwork  = "I'm having trouble reaching my brain right now. Please try again in a moment."
	fallbackGeneric  = "Something went wrong on my end. Mind trying that again?"
)

// Classify maps a terminal upstream failure onto a Category. Rules are
// ordered; the first match wins. A structured API status code is
// preferred over message text when present. The content-policy rule
// matches the upstream's literal "SAFETY" marker, not prose that
// happens to mention safety.
func Classify(err error) Category {
	if err == nil {
		return CategoryGeneric
	}

	code := statusCode(err)
	msg := strings.ToLower(err.Error())

	switch {
	case code == http.StatusTooManyRequests,
		strings.Contains(msg, "429"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "exhausted"):
		return CategoryCapacity
	case strings.Contains(err.Error(), "SAFETY"):
		return CategorySafety
	case strings.Contains(msg, "timeout"),
		strings.Contains(msg, "network"):
		return CategoryConnectivity
	default:
		return CategoryGeneric
	}
}

// Fallback returns the reply text shown to the user for a failure
// class. Raw upstream error detail never reaches the client.
func Fallback(c Category) string {
	switch c {
	case CategoryCapacity:
		return fallbackCapacity
	case CategorySafety:
		return fallbackSafety
	case CategoryConnectivity:
		return fallbackNetwork
	default:
		return fallbackGeneric
	}
}

// IsTransient reports whether a failure is likely to succeed on retry:
// service-unavailable status, or a message indicating a timeout or
// network condition.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if statusCode(err) == http.StatusServiceUnavailable {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "503") ||
		strings.Contains(msg, "unavailable") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "network") ||
		strings.Contains(msg, "connection reset")
}

func statusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
