package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ig-autoresponder/internal/policy"
	"ig-autoresponder/internal/types"
)

type call struct {
	target  string // comment id or recipient id
	message string
}

type fakeMessenger struct {
	replies []call
	dms     []call

	replyErr error
	dmErr    error
}

func (f *fakeMessenger) ReplyComment(_ context.Context, commentID, message string) error {
	f.replies = append(f.replies, call{commentID, message})
	return f.replyErr
}

func (f *fakeMessenger) SendDM(_ context.Context, recipientID, message string) error {
	f.dms = append(f.dms, call{recipientID, message})
	return f.dmErr
}

const ownAccount = "178414000000000"

func newProcessor(m Messenger) *Processor {
	return New(policy.NewKeywordPolicy(), m, ownAccount)
}

func comment(id, text, from string) types.ChangeValue {
	var v types.ChangeValue
	v.CommentID = id
	v.Text = text
	v.From.ID = from
	return v
}

func message(sender, text string) types.MessagingEvent {
	var m types.MessagingEvent
	m.Sender.ID = sender
	m.Message = &types.MessagePayload{Text: text}
	return m
}

func TestHandleCommentTriggered(t *testing.T) {
	m := &fakeMessenger{}
	p := newProcessor(m)

	err := p.HandleComment(context.Background(), comment("c1", "what's the price?", "u1"))
	require.NoError(t, err)

	require.Len(t, m.replies, 1)
	assert.Equal(t, "c1", m.replies[0].target)
	require.Len(t, m.dms, 1)
	assert.Equal(t, "u1", m.dms[0].target)
	assert.Contains(t, m.dms[0].message, "$9/mo")
}

func TestHandleCommentNoTrigger(t *testing.T) {
	m := &fakeMessenger{}
	p := newProcessor(m)

	err := p.HandleComment(context.Background(), comment("c1", "nice photo", "u1"))
	require.NoError(t, err)
	assert.Empty(t, m.replies)
	assert.Empty(t, m.dms)
}

func TestHandleCommentSkipsOwnAccount(t *testing.T) {
	m := &fakeMessenger{}
	p := newProcessor(m)

	err := p.HandleComment(context.Background(), comment("c1", "price", ownAccount))
	require.NoError(t, err)
	assert.Empty(t, m.replies)
	assert.Empty(t, m.dms)
}

func TestHandleCommentReplyFailureStillSendsDM(t *testing.T) {
	m := &fakeMessenger{replyErr: errors.New("graph api status 403")}
	p := newProcessor(m)

	err := p.HandleComment(context.Background(), comment("c1", "dm me", "u1"))
	assert.Error(t, err)
	// DM is attempted even though the public reply failed.
	assert.Len(t, m.dms, 1)
}

func TestHandleMention(t *testing.T) {
	m := &fakeMessenger{}
	p := newProcessor(m)

	var v types.ChangeValue
	v.CommentID = "c9"
	v.MediaID = "media-1"

	err := p.HandleMention(context.Background(), v)
	require.NoError(t, err)
	require.Len(t, m.replies, 1)
	assert.Equal(t, "c9", m.replies[0].target)
	assert.Equal(t, policy.NewKeywordPolicy().MentionResponse(), m.replies[0].message)
	assert.Empty(t, m.dms)
}

func TestHandleMessageTriggered(t *testing.T) {
	m := &fakeMessenger{}
	p := newProcessor(m)

	err := p.HandleMessage(context.Background(), message("u7", "I'm interested, dm me"))
	require.NoError(t, err)
	require.Len(t, m.dms, 1)
	assert.Equal(t, "u7", m.dms[0].target)
}

func TestHandleMessageNoTrigger(t *testing.T) {
	m := &fakeMessenger{}
	p := newProcessor(m)

	err := p.HandleMessage(context.Background(), message("u7", "hello"))
	require.NoError(t, err)
	assert.Empty(t, m.dms)
}

func TestHandleMessageSkipsOwnAccount(t *testing.T) {
	m := &fakeMessenger{}
	p := newProcessor(m)

	err := p.HandleMessage(context.Background(), message(ownAccount, "price"))
	require.NoError(t, err)
	assert.Empty(t, m.dms)
}

func TestHandleMessageSendFailure(t *testing.T) {
	m := &fakeMessenger{dmErr: errors.New("graph api status 500")}
	p := newProcessor(m)

	err := p.HandleMessage(context.Background(), message("u7", "price"))
	assert.Error(t, err)
}
