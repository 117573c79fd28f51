package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestClientRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`<p id="ok">fine</p>`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), "", 2, time.Millisecond)

	doc, err := client.Document(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Document error after retries: %v", err)
	}
	if doc.Find("#ok").Text() != "fine" {
		t.Fatal("unexpected document content")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.Client(), "", 2, time.Millisecond)

	_, err := client.Document(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected StatusError 404, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("404 should not be retried, got %d attempts", got)
	}
}

func TestClientGivesUpAfterRetryBudget(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "still down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.Client(), "", 1, time.Millisecond)

	_, err := client.Document(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error when server never recovers")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 attempts (1 retry), got %d", got)
	}
}

func TestClientSetsUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<p>ok</p>"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), "Scanner/2.0", 0, time.Millisecond)
	if _, err := client.Document(context.Background(), server.URL); err != nil {
		t.Fatalf("Document error: %v", err)
	}
	if gotUA != "Scanner/2.0" {
		t.Fatalf("unexpected user agent: %s", gotUA)
	}
}
