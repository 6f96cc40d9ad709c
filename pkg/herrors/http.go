package herrors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// StatusFor maps a Kind to the HTTP status code the coordinator and
// user-facing job endpoints respond with, per spec.md §7's error-handling
// design: validation/schema failures are 4xx or 500, claim conflicts are
// 409, registry no-match is a 4xx carrying the unsatisfiable operation
// list.
func StatusFor(k Kind) int {
	switch k {
	case KindValidation, KindUnsupported, KindExternalValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// envelope is the wire shape for an error response body.
type envelope struct {
	Kind    Kind                   `json:"kind"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// WriteHTTP writes err to w as a JSON body with the status code StatusFor
// derives from its Kind. Opaque (non-*Error) errors are reported as
// KindServer with their message suppressed from the response body.
func WriteHTTP(w http.ResponseWriter, err error) {
	var he *Error
	if !errors.As(err, &he) {
		he = Internal(err, "internal error").Build()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(he.Kind))

	body := envelope{Kind: he.Kind, Message: he.Message, Context: he.Context}
	if he.Kind == KindServer {
		body.Message = "internal error"
		body.Context = nil
	}
	_ = json.NewEncoder(w).Encode(body)
}
