package msgcat

import (
	"strings"
	"testing"
)

func TestRenderScoreboard(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	type entry struct {
		Name  string
		Score int64
	}
	got, err := c.Render("score.board", map[string]any{"Entries": []entry{
		{Name: "alice", Score: 200},
		{Name: "bob", Score: -100},
	}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "Scores:\nalice: 200\nbob: -100"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRenderEmptyScoreboardKeepsHeader(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Render("score.board", map[string]any{"Entries": nil})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "Scores:" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderQuestionCardWithLastAnswer(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data := map[string]any{
		"LastAnswer": "Mount Everest",
		"Round":      "Jeopardy!",
		"Value":      400,
		"Category":   "RIVERS",
		"Date":       "2004-12-31",
		"Prompt":     "This river is the longest in South America",
	}
	got, err := c.Render("question.card", data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(got, "Last Answer: Mount Everest\n") {
		t.Fatalf("missing last-answer prefix: %q", got)
	}
	if !strings.Contains(got, "Jeopardy! $400:") {
		t.Fatalf("missing round/value line: %q", got)
	}

	data["LastAnswer"] = ""
	got, err = c.Render("question.card", data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(got, "Last Answer") {
		t.Fatalf("unexpected last-answer prefix: %q", got)
	}
}

func TestRenderUnknownKey(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Render("nope.nothing", nil); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
