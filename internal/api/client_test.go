package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feedlog-cli/internal/model"
)

func TestNew_RejectsBadBaseURL(t *testing.T) {
	if _, err := New("", time.Second); err == nil {
		t.Fatalf("expected error for empty base url")
	}
	if _, err := New("not a url", time.Second); err == nil {
		t.Fatalf("expected error for malformed base url")
	}
}

func TestList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/records" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"r1","timestamp":"2024-01-15T06:30:00Z","weight":250,"animal":"cat"}]`)
	}))
	defer ts.Close()

	c, err := New(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	recs, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "r1" || recs[0].Animal != model.AnimalCat {
		t.Fatalf("unexpected records: %+v", recs)
	}
	want := time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC)
	if !recs[0].Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", recs[0].Timestamp, want)
	}
}

func TestCreate_SendsWirePayload(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/records" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"r2","timestamp":"2024-01-15T06:30:00Z","weight":250,"animal":"cat"}`)
	}))
	defer ts.Close()

	c, _ := New(ts.URL, time.Second)
	rec, err := c.Create(context.Background(), model.RecordPayload{
		Timestamp: time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC),
		Weight:    250,
		Animal:    model.AnimalCat,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID != "r2" {
		t.Fatalf("id = %q, want r2", rec.ID)
	}
	for _, key := range []string{"timestamp", "weight", "animal"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("payload missing %q: %v", key, got)
		}
	}
	if got["animal"] != "cat" || got["weight"] != float64(250) {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestUpdateAndDelete_UseRecordPath(t *testing.T) {
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPut:
			io.WriteString(w, `{"id":"r3","timestamp":"2024-01-15T06:30:00Z","weight":300,"animal":"dog"}`)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer ts.Close()

	c, _ := New(ts.URL, time.Second)
	if _, err := c.Update(context.Background(), "r3", model.RecordPayload{
		Timestamp: time.Now().UTC(), Weight: 300, Animal: model.AnimalDog,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := c.Delete(context.Background(), "r3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(paths) != 2 || paths[0] != "PUT /api/records/r3" || paths[1] != "DELETE /api/records/r3" {
		t.Fatalf("unexpected paths: %v", paths)
	}
}

func TestRequestError_StructuredMessages(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"errors":[{"msg":"Weight must be a positive number."},{"msg":"Unknown animal type."}]}`)
	}))
	defer ts.Close()

	c, _ := New(ts.URL, time.Second)
	_, err := c.Create(context.Background(), model.RecordPayload{})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T %v", err, err)
	}
	if reqErr.StatusCode != http.StatusBadRequest || len(reqErr.Messages) != 2 {
		t.Fatalf("unexpected error: %+v", reqErr)
	}
	want := "Weight must be a positive number., Unknown animal type."
	if reqErr.Error() != want {
		t.Fatalf("Error() = %q, want %q", reqErr.Error(), want)
	}
}

func TestRequestError_UnstructuredBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "boom")
	}))
	defer ts.Close()

	c, _ := New(ts.URL, time.Second)
	err := c.Delete(context.Background(), "r1")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T %v", err, err)
	}
	if len(reqErr.Messages) != 0 {
		t.Fatalf("expected no structured messages, got %v", reqErr.Messages)
	}
	if reqErr.Error() != "records service returned status 500" {
		t.Fatalf("Error() = %q", reqErr.Error())
	}
}
