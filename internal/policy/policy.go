package policy

import "strings"

// Policy decides from free-text content whether to act and what canned
// text to send. Implementations must be pure: no I/O, deterministic.
type Policy interface {
	ShouldAct(text string) bool
	Respond(text string) string
	CommentAck() string
	MentionResponse() string
}

// Trigger phrases, matched case-insensitive as substrings.
var triggers = []string{
	"dm me",
	"price",
	"how much",
	"interested",
	"info",
	"link",
}

const (
	respPricing = "Hi! 👋 Thanks for asking — our plans are Starter $9/mo, Growth $29/mo and Pro $79/mo. Reply here or check your DMs for the full breakdown."
	respInfo    = "Hey! Everything you need is here: https://ig-autoresponder.dev/start — just sent you the link in a DM too."
	respDefault = "Hey, thanks for reaching out! 👋 We just sent you a DM with more details."

	commentAck    = "Thanks for your comment! Check your DMs 📩"
	mentionThanks = "Thanks for the mention! 🙌 We appreciate the shout-out."
)

// KeywordPolicy is the fixed keyword/canned-text policy used in production.
type KeywordPolicy struct{}

func NewKeywordPolicy() *KeywordPolicy { return &KeywordPolicy{} }

func (*KeywordPolicy) ShouldAct(text string) bool {
	t := strings.ToLower(text)
	for _, kw := range triggers {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// Respond picks the canned response by keyword; pricing wins over info,
// default greeting otherwise.
func (*KeywordPolicy) Respond(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "price") || strings.Contains(t, "how much"):
		return respPricing
	case strings.Contains(t, "link") || strings.Contains(t, "info"):
		return respInfo
	default:
		return respDefault
	}
}

// CommentAck is the short public reply posted under a triggering comment;
// the full response goes out as a DM.
func (*KeywordPolicy) CommentAck() string { return commentAck }

func (*KeywordPolicy) MentionResponse() string { return mentionThanks }
