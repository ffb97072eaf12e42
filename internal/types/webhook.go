package types

// IG webhook envelope, decoded once at the boundary. Downstream code only
// sees these types, never raw JSON.
type InboundEvent struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// ObjectInstagram is the only object tag we act on; anything else is
// acked and ignored.
const ObjectInstagram = "instagram"

// Entry is one unit of account activity. A single entry may carry both
// field changes and messaging events; they are independent.
type Entry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Changes   []FieldChange    `json:"changes,omitempty"`
	Messaging []MessagingEvent `json:"messaging,omitempty"`
}

const (
	FieldComments = "comments"
	FieldMentions = "mentions"
)

type FieldChange struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

// ChangeValue covers both comment and mention change payloads; fields not
// present for a given field type stay zero.
type ChangeValue struct {
	CommentID string `json:"id"`
	MediaID   string `json:"media_id"`
	Text      string `json:"text"`
	From      struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"from"`
}

type MessagingEvent struct {
	Sender struct {
		ID string `json:"id"`
	} `json:"sender"`
	Recipient struct {
		ID string `json:"id"`
	} `json:"recipient"`
	Timestamp int64 `json:"timestamp"`
	// Message is nil for non-text events (reactions, read receipts, ...).
	Message *MessagePayload `json:"message,omitempty"`
}

type MessagePayload struct {
	MID    string `json:"mid"`
	Text   string `json:"text"`
	IsEcho bool   `json:"is_echo"`
}
