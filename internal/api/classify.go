package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

// Outcome is the raw result of a failed transport round trip: either a
// transport error (no response at all) or a non-2xx status and its body.
type Outcome struct {
	Err    error
	Status int
	Body   []byte
}

const (
	msgAuthExpired = "Your session has expired. Please log in again."
	msgValidation  = "The request was rejected by the server."
	msgServer      = "The server failed to process the request."
)

// Classify maps a failed outcome to exactly one failure kind:
//
//	transport error          → network
//	401                      → auth-expired (redirect to /login)
//	any other 4xx            → validation
//	5xx and everything else  → server
func Classify(o Outcome) *domain.Failure {
	if o.Err != nil {
		return domain.NetworkFailure(o.Err)
	}

	msg := serverMessage(o.Body)
	switch {
	case o.Status == http.StatusUnauthorized:
		if msg == "" {
			msg = msgAuthExpired
		}
		return &domain.Failure{
			Kind:     domain.FailureAuthExpired,
			Status:   o.Status,
			Message:  msg,
			Redirect: domain.RouteLogin,
		}
	case o.Status >= 400 && o.Status < 500:
		if msg == "" {
			msg = msgValidation
		}
		return &domain.Failure{Kind: domain.FailureValidation, Status: o.Status, Message: msg}
	default:
		if msg == "" {
			msg = msgServer
		}
		return domain.ServerFailure(o.Status, msg)
	}
}

// errorEnvelope covers the shapes the backend uses for failures:
// {"error": "..."}, {"message": "..."} and validator arrays
// {"errors": [{"msg": "..."}]}.
type errorEnvelope struct {
	Error   json.RawMessage   `json:"error"`
	Message string            `json:"message"`
	Errors  []json.RawMessage `json:"errors"`
}

// serverMessage extracts the human-readable message of an error body, or ""
// when the body carries none.
func serverMessage(body []byte) string {
	var env errorEnvelope
	if len(body) == 0 || json.Unmarshal(body, &env) != nil {
		return ""
	}

	var s string
	if len(env.Error) > 0 && json.Unmarshal(env.Error, &s) == nil && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	if m := strings.TrimSpace(env.Message); m != "" {
		return m
	}

	msgs := make([]string, 0, len(env.Errors))
	for _, raw := range env.Errors {
		var str string
		var item struct {
			Msg     string `json:"msg"`
			Message string `json:"message"`
		}
		switch {
		case json.Unmarshal(raw, &str) == nil && str != "":
			msgs = append(msgs, str)
		case json.Unmarshal(raw, &item) == nil && item.Msg != "":
			msgs = append(msgs, item.Msg)
		case item.Message != "":
			msgs = append(msgs, item.Message)
		}
	}
	return strings.Join(msgs, "; ")
}
