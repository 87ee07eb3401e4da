package telegramfast

// Update is one inbound webhook delivery. Only message updates are
// handled; everything else is ignored upstream.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	Text      string `json:"text"`
	Chat      *Chat  `json:"chat"`
	From      *User  `json:"from"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type User struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName joins first and last name the way scores key players.
func (u *User) DisplayName() string {
	if u == nil || u.FirstName == "" {
		return ""
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type sendMessageRequest struct {
	ChatID           int64  `json:"chat_id"`
	Text             string `json:"text"`
	ReplyToMessageID int64  `json:"reply_to_message_id,omitempty"`
}

type setWebhookRequest struct {
	URL string `json:"url"`
}

// apiResponse is the Bot API envelope; Description explains a non-ok
// result.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}
