package game

import "testing"

func TestParseCommandBare(t *testing.T) {
	cmd, params, ok := ParseCommand("/jeopardy", "mybot")
	if !ok || cmd != "jeopardy" || params != "" {
		t.Fatalf("got cmd=%q params=%q ok=%v", cmd, params, ok)
	}
}

func TestParseCommandWithParams(t *testing.T) {
	cmd, params, ok := ParseCommand("/whatis Mount Everest", "mybot")
	if !ok || cmd != "whatis" || params != "mount everest" {
		t.Fatalf("got cmd=%q params=%q ok=%v", cmd, params, ok)
	}
}

func TestParseCommandAddressedToSelf(t *testing.T) {
	cmd, params, ok := ParseCommand("/whatis@MyBot answer", "mybot")
	if !ok || cmd != "whatis" || params != "answer" {
		t.Fatalf("got cmd=%q params=%q ok=%v", cmd, params, ok)
	}
}

func TestParseCommandAddressedToOtherBot(t *testing.T) {
	if _, _, ok := ParseCommand("/whatis@otherbot answer", "mybot"); ok {
		t.Fatalf("expected message for another bot to be ignored")
	}
}

func TestParseCommandNotACommand(t *testing.T) {
	if _, _, ok := ParseCommand("not a command", "mybot"); ok {
		t.Fatalf("expected plain text to carry no command")
	}
	if _, _, ok := ParseCommand("", "mybot"); ok {
		t.Fatalf("expected empty text to carry no command")
	}
}

func TestParseCommandTrimsAndLowers(t *testing.T) {
	cmd, params, ok := ParseCommand("  /GIVEUP  ", "mybot")
	if !ok || cmd != "giveup" || params != "" {
		t.Fatalf("got cmd=%q params=%q ok=%v", cmd, params, ok)
	}
}
