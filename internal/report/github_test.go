package report

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFileCreatesIssue(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq issueRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"html_url": "https://github.com/kapu/jeopardy/issues/7"}`))
	}))
	defer srv.Close()

	c := NewClient("secret", "kapu", "jeopardy", WithBaseURL(srv.URL))
	url, err := c.File(context.Background(), "Bad Clue", "details")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if url != "https://github.com/kapu/jeopardy/issues/7" {
		t.Fatalf("got url %q", url)
	}
	if gotPath != "/repos/kapu/jeopardy/issues" {
		t.Fatalf("got path %q", gotPath)
	}
	if gotAuth != "token secret" {
		t.Fatalf("got auth %q", gotAuth)
	}
	if gotReq.Title != "Bad Clue" || gotReq.Body != "details" {
		t.Fatalf("unexpected payload: %+v", gotReq)
	}
	if len(gotReq.Labels) != 1 || gotReq.Labels[0] != "auto_created" {
		t.Fatalf("expected auto_created label, got %v", gotReq.Labels)
	}
}

func TestFileRejectionWithStructuredReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "Validation Failed\n\nTitle is required"}`))
	}))
	defer srv.Close()

	c := NewClient("secret", "kapu", "jeopardy", WithBaseURL(srv.URL))
	_, err := c.File(context.Background(), "", "details")
	var rejection *RejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	if rejection.Status != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d", rejection.Status)
	}
	if rejection.Reason != "Validation Failed\nTitle is required" {
		t.Fatalf("got reason %q", rejection.Reason)
	}
}

func TestFileRejectionFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClient("secret", "kapu", "jeopardy", WithBaseURL(srv.URL))
	_, err := c.File(context.Background(), "title", "details")
	var rejection *RejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	if rejection.Reason != "Forbidden" {
		t.Fatalf("got reason %q", rejection.Reason)
	}
}
