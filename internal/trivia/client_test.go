package trivia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleQuestion = `{"round": "Jeopardy!", "value": 400, "category": "RIVERS", "date": "2004-12-31", "question": "This river is the longest in South America", "answer": "the Amazon"}`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleQuestion))
	}))
	defer srv.Close()

	q, err := NewClient(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if q.Round != "Jeopardy!" || q.Value != 400 || q.Category != "RIVERS" {
		t.Fatalf("unexpected question: %+v", q)
	}
	if q.Prompt != "This river is the longest in South America" || q.Answer != "the Amazon" {
		t.Fatalf("unexpected question text: %+v", q)
	}
}

func TestFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Fetch(context.Background()); err == nil {
		t.Fatalf("expected error on non-2xx status")
	}
}

func TestPrettyIndentsRawPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleQuestion))
	}))
	defer srv.Close()

	q, err := NewClient(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	pretty := q.Pretty()
	if !strings.Contains(pretty, "\n") {
		t.Fatalf("expected indented payload, got %q", pretty)
	}
	if !strings.Contains(pretty, `"answer"`) {
		t.Fatalf("pretty payload lost fields: %q", pretty)
	}
}

func TestPrettyFallsBackOnBadJSON(t *testing.T) {
	q := &Question{Raw: []byte("not json")}
	if got := q.Pretty(); got != "not json" {
		t.Fatalf("got %q", got)
	}
}
