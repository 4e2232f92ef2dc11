package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// storeStub is a downstream store backed by httptest that records the
// requests it receives.
type storeStub struct {
	srv      *httptest.Server
	requests []recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

func newStoreStub(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, body []byte)) *storeStub {
	t.Helper()
	s := &storeStub{}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.requests = append(s.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: body})
		handler(w, r, body)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *storeStub) client() *Client { return NewClient(s.srv.URL, time.Second) }

func jsonCreated(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(body))
}

func TestSubmitCall_Success_LogsDerivedFields(t *testing.T) {
	calls := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		// The store answers with the normalized record: status derived to a
		// boolean, id and date filled in.
		jsonCreated(w, `{"id":1,"name":"alice","username":"alice","date":"2025-06-01T12:30:00Z","status":true}`)
	})
	logs := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		jsonCreated(w, `{"message":"Call log for alice recorded!"}`)
	})

	o := &Orchestrator{Calls: calls.client(), Logs: logs.client(), CallLogDuration: 30}

	payload := []byte(`{"username":"alice","status":"completed"}`)
	got, err := o.SubmitCall(context.Background(), payload)
	if err != nil {
		t.Fatalf("SubmitCall: %v", err)
	}

	// The returned body is the call store's response verbatim.
	var call map[string]any
	if err := json.Unmarshal(got, &call); err != nil {
		t.Fatalf("decode returned body: %v", err)
	}
	if call["username"] != "alice" || call["status"] != true {
		t.Fatalf("unexpected call body: %v", call)
	}

	// Phase 1 forwarded the payload verbatim to POST /call/.
	if len(calls.requests) != 1 || calls.requests[0].Path != "/call/" || string(calls.requests[0].Body) != string(payload) {
		t.Fatalf("unexpected call store request: %+v", calls.requests)
	}

	// Phase 2 logged the response's fields, not the request's free text.
	if len(logs.requests) != 1 || logs.requests[0].Path != "/log/call" {
		t.Fatalf("unexpected log store request: %+v", logs.requests)
	}
	var logged map[string]any
	if err := json.Unmarshal(logs.requests[0].Body, &logged); err != nil {
		t.Fatalf("decode log payload: %v", err)
	}
	if logged["username"] != "alice" || logged["status"] != true || logged["call_duration"] != float64(30) {
		t.Fatalf("unexpected log payload: %v", logged)
	}
}

func TestSubmitCall_CallStoreRejection_NoLogWritten(t *testing.T) {
	calls := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"bad_request","message":"Username and status are required!"}`))
	})
	logs := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		jsonCreated(w, `{}`)
	})

	o := &Orchestrator{Calls: calls.client(), Logs: logs.client()}

	_, err := o.SubmitCall(context.Background(), []byte(`{}`))
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Service != "call" || ue.Status != http.StatusBadRequest {
		t.Fatalf("unexpected UpstreamError: %+v", ue)
	}
	if len(logs.requests) != 0 {
		t.Fatalf("no log write may happen after a rejected primary write")
	}
}

func TestSubmitCall_LogStoreRejection_IsPartialFailure(t *testing.T) {
	calls := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		jsonCreated(w, `{"id":1,"username":"alice","status":true}`)
	})
	logs := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":"create_failed","message":"boom"}`))
	})

	o := &Orchestrator{Calls: calls.client(), Logs: logs.client()}

	_, err := o.SubmitCall(context.Background(), []byte(`{"username":"alice","status":"true"}`))
	var pf *PartialFailure
	if !errors.As(err, &pf) {
		t.Fatalf("expected PartialFailure, got %v", err)
	}
	if pf.Status != http.StatusInternalServerError || pf.Message != "Failed to log the call" {
		t.Fatalf("unexpected PartialFailure: %+v", pf)
	}
	// The primary write happened and is NOT rolled back.
	if len(calls.requests) != 1 {
		t.Fatalf("primary write should have happened exactly once")
	}
}

func TestSubmitCall_TransportErrorBubbles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead := NewClient(srv.URL, time.Second)
	srv.Close()

	o := &Orchestrator{Calls: dead, Logs: dead}
	_, err := o.SubmitCall(context.Background(), []byte(`{}`))
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var ue *UpstreamError
	var pf *PartialFailure
	if errors.As(err, &ue) || errors.As(err, &pf) {
		t.Fatalf("transport failure must not map to a typed orchestration error: %v", err)
	}
}

func TestCreateUser_Success(t *testing.T) {
	users := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		jsonCreated(w, `{"id":1,"name":"alice","phone":"+1 555 0100"}`)
	})
	logs := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		jsonCreated(w, `{"message":"User log for alice recorded!"}`)
	})

	o := &Orchestrator{Users: users.client(), Logs: logs.client()}

	got, err := o.CreateUser(context.Background(), "alice", "+1 555 0100")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	var user map[string]any
	if err := json.Unmarshal(got, &user); err != nil {
		t.Fatalf("decode user body: %v", err)
	}
	if user["name"] != "alice" {
		t.Fatalf("unexpected user body: %v", user)
	}

	// The audit row records the fixed "User created" action.
	if len(logs.requests) != 1 || logs.requests[0].Path != "/log/user" {
		t.Fatalf("unexpected log request: %+v", logs.requests)
	}
	var logged map[string]string
	if err := json.Unmarshal(logs.requests[0].Body, &logged); err != nil {
		t.Fatalf("decode log payload: %v", err)
	}
	if logged["username"] != "alice" || logged["action"] != "User created" {
		t.Fatalf("unexpected log payload: %v", logged)
	}
}

func TestCreateUser_UsernameFallsBackToRequest(t *testing.T) {
	// Store response without a "name" field: the submitted name is logged.
	users := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		jsonCreated(w, `{"id":2}`)
	})
	logs := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		jsonCreated(w, `{}`)
	})

	o := &Orchestrator{Users: users.client(), Logs: logs.client()}
	if _, err := o.CreateUser(context.Background(), "bob", "p"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	var logged map[string]string
	_ = json.Unmarshal(logs.requests[0].Body, &logged)
	if logged["username"] != "bob" {
		t.Fatalf("expected fallback username 'bob', got %v", logged)
	}
}

func TestCreateUser_Conflict_PropagatesStatusAndBody(t *testing.T) {
	const conflictBody = `{"code":"conflict","message":"username or phone already taken"}`
	users := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(conflictBody))
	})
	logs := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		jsonCreated(w, `{}`)
	})

	o := &Orchestrator{Users: users.client(), Logs: logs.client()}

	_, err := o.CreateUser(context.Background(), "alice", "p")
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Service != "user" || ue.Status != http.StatusConflict || string(ue.Body) != conflictBody {
		t.Fatalf("unexpected UpstreamError: %+v", ue)
	}
	if len(logs.requests) != 0 {
		t.Fatalf("no log write after rejected user creation")
	}
}

func TestCreateUser_LogRejection_IsPartialFailure(t *testing.T) {
	users := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		jsonCreated(w, `{"id":1,"name":"alice"}`)
	})
	logs := newStoreStub(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		w.WriteHeader(http.StatusBadRequest)
	})

	o := &Orchestrator{Users: users.client(), Logs: logs.client()}

	_, err := o.CreateUser(context.Background(), "alice", "p")
	var pf *PartialFailure
	if !errors.As(err, &pf) {
		t.Fatalf("expected PartialFailure, got %v", err)
	}
	if pf.Status != http.StatusBadRequest || pf.Message != "Failed to log the user creation" {
		t.Fatalf("unexpected PartialFailure: %+v", pf)
	}
}

func TestUpstreamError_And_PartialFailure_Messages(t *testing.T) {
	ue := &UpstreamError{Service: "call", Status: 400}
	if ue.Error() != "call service returned status 400" {
		t.Fatalf("UpstreamError message: %q", ue.Error())
	}
	pf := &PartialFailure{Status: 500, Message: "Failed to log the call"}
	if pf.Error() != "Failed to log the call" {
		t.Fatalf("PartialFailure message: %q", pf.Error())
	}
}
