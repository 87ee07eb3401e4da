package game

import (
	"strings"
	"unicode"
)

const commandPrefix = '/'

// ParseCommand splits an inbound message into a command keyword and its
// free-text parameters. The whole text is lower-cased and trimmed
// first, so parameters reach handlers already normalized. A command may
// carry an "@botname" suffix for group-chat disambiguation; commands
// addressed to another bot are reported as no command at all.
func ParseCommand(text, botName string) (cmd, params string, ok bool) {
	text = strings.ToLower(strings.TrimSpace(text))

	head := text
	if idx := strings.IndexFunc(text, unicode.IsSpace); idx >= 0 {
		head = text[:idx]
		params = strings.TrimSpace(text[idx:])
	}
	if head == "" || head[0] != commandPrefix {
		return "", "", false
	}
	cmd = head[1:]
	if at := strings.IndexByte(cmd, '@'); at >= 0 {
		target := cmd[at+1:]
		cmd = cmd[:at]
		if !strings.EqualFold(target, botName) {
			return "", "", false
		}
	}
	return cmd, params, true
}
