// Package gateway – orchestrator
//
// The orchestrator implements the gateway's only compound endpoints: call
// submission and user creation. Both follow the same two-phase pipeline:
// issue the primary write, branch on its status, then issue the audit
// write. The phases are strictly sequential because phase 2 consumes
// fields from phase 1's response. There are no retries and no compensating
// rollback: when the audit write fails after the primary write succeeded,
// the partial state is surfaced to the caller as an error, not hidden.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// UpstreamError reports a non-success response from the primary store.
// The gateway propagates the downstream status and body verbatim.
type UpstreamError struct {
	Service string
	Status  int
	Body    []byte
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s service returned status %d", e.Service, e.Status)
}

// PartialFailure reports that the primary write was persisted but the
// subsequent audit log write was rejected. Status is the log store's
// response status; the primary record remains in place.
type PartialFailure struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *PartialFailure) Error() string { return e.Message }

// Orchestrator coordinates the user, call, and logging stores.
type Orchestrator struct {
	// Users, Calls, Logs are clients for the three downstream stores.
	Users *Client
	Calls *Client
	Logs  *Client

	// CallLogDuration is the call_duration value (seconds) written with
	// every call log. The pipeline has no duration source, so this is a
	// fixed configured value, zero by default.
	CallLogDuration int
}

// callStoreResponse is the subset of the call store's create response the
// orchestrator needs for the audit record. Fields are taken from the
// response rather than the original request so that any server-side
// normalization (status derivation, defaulted date) is reflected in the log.
type callStoreResponse struct {
	Username string `json:"username"`
	Status   bool   `json:"status"`
}

// userStoreResponse mirrors the user store's create response.
type userStoreResponse struct {
	Name string `json:"name"`
}

// SubmitCall forwards payload verbatim to the call store and, on success,
// appends a call audit record to the logging store. It returns the call
// store's response body for inclusion in the gateway's success envelope.
//
// Failure modes:
//   - call store non-201: *UpstreamError carrying the store's status+body;
//     no log entry is written.
//   - log store non-201: *PartialFailure; the call is already persisted.
//   - transport failure to either store: the wrapped error from Client.
func (o *Orchestrator) SubmitCall(ctx context.Context, payload []byte) (json.RawMessage, error) {
	resp, err := o.Calls.PostRaw(ctx, "/call/", payload)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusCreated {
		return nil, &UpstreamError{Service: "call", Status: resp.Status, Body: resp.Body}
	}

	var call callStoreResponse
	if err := json.Unmarshal(resp.Body, &call); err != nil {
		return nil, fmt.Errorf("decode call store response: %w", err)
	}

	logResp, err := o.Logs.PostJSON(ctx, "/log/call", map[string]any{
		"username":      call.Username,
		"call_duration": o.CallLogDuration,
		"status":        call.Status,
	})
	if err != nil {
		return nil, err
	}
	if logResp.Status != http.StatusCreated {
		return nil, &PartialFailure{Status: logResp.Status, Message: "Failed to log the call"}
	}

	return resp.Body, nil
}

// CreateUser creates a user via the user store and, on success, appends a
// "User created" action to the logging store. The logged username prefers
// the store's response and falls back to the submitted name.
//
// Failure modes match SubmitCall: non-201 from the user store propagates
// as *UpstreamError, a rejected log write as *PartialFailure.
func (o *Orchestrator) CreateUser(ctx context.Context, name, phone string) (json.RawMessage, error) {
	resp, err := o.Users.PostJSON(ctx, "/users/", map[string]string{
		"name":  name,
		"phone": phone,
	})
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusCreated {
		return nil, &UpstreamError{Service: "user", Status: resp.Status, Body: resp.Body}
	}

	var user userStoreResponse
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("decode user store response: %w", err)
	}
	username := user.Name
	if username == "" {
		username = name
	}

	logResp, err := o.Logs.PostJSON(ctx, "/log/user", map[string]string{
		"username": username,
		"action":   "User created",
	})
	if err != nil {
		return nil, err
	}
	if logResp.Status != http.StatusCreated {
		return nil, &PartialFailure{Status: logResp.Status, Message: "Failed to log the user creation"}
	}

	return resp.Body, nil
}
