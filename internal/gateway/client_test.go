package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestClient_Get_StatusAndBodyPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"hello":"world"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	resp, err := c.Get(context.Background(), "/users/", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// Non-2xx is NOT an error; the status and body are relayed verbatim.
	if resp.Status != http.StatusTeapot || string(resp.Body) != `{"hello":"world"}` {
		t.Fatalf("unexpected response: %d %q", resp.Status, resp.Body)
	}
}

func TestClient_Get_QueryEncoding(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	q := url.Values{}
	q.Set("start_date", "2025-05-01T00:00:00")
	q.Set("end_date", "2025-05-02T00:00:00")

	c := NewClient(srv.URL+"/", time.Second) // trailing slash must be trimmed
	if _, err := c.Get(context.Background(), "/log/users/", q); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotQuery.Get("start_date") != "2025-05-01T00:00:00" || gotQuery.Get("end_date") != "2025-05-02T00:00:00" {
		t.Fatalf("query not forwarded: %v", gotQuery)
	}
}

func TestClient_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/users/7" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"User deleted successfully."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	resp, err := c.Delete(context.Background(), "/users/7")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.Status)
	}
}

func TestClient_PostJSON_MarshalsBody(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	resp, err := c.PostJSON(context.Background(), "/log/user", map[string]string{
		"username": "alice",
		"action":   "User created",
	})
	if err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	if resp.Status != http.StatusCreated {
		t.Fatalf("unexpected status: %d", resp.Status)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type: %q", gotContentType)
	}
	if gotBody["username"] != "alice" || gotBody["action"] != "User created" {
		t.Fatalf("body not marshaled: %v", gotBody)
	}
}

func TestClient_PostRaw_ForwardsPayloadVerbatim(t *testing.T) {
	// Unknown keys and odd formatting must survive the round trip untouched.
	payload := []byte(`{"username":"alice","status":"true","extra":  [1,2,3]}`)

	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.PostRaw(context.Background(), "/call/", payload); err != nil {
		t.Fatalf("PostRaw: %v", err)
	}
	if string(gotBody) != string(payload) {
		t.Fatalf("payload reshaped: %q != %q", gotBody, payload)
	}
}

func TestClient_TransportErrorSurfaces(t *testing.T) {
	// A server that is immediately closed guarantees a connection error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(base, time.Second)
	if _, err := c.Get(context.Background(), "/", nil); err == nil {
		t.Fatalf("expected transport error for closed server")
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClient(srv.URL, 0) // zero timeout: only the context cancels
	if _, err := c.Get(ctx, "/", nil); err == nil {
		t.Fatalf("expected error after context cancellation")
	}
}
