package processor

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"ig-autoresponder/internal/policy"
	"ig-autoresponder/internal/types"
)

// Messenger issues the outbound API calls. Satisfied by *ig.Client.
type Messenger interface {
	ReplyComment(ctx context.Context, commentID, message string) error
	SendDM(ctx context.Context, recipientID, message string) error
}

// Processor glues the trigger policy to the outbound messenger. It holds
// no per-request state; a comment redelivered by the platform gets
// answered again (dedup is the upstream's problem, not ours).
type Processor struct {
	policy    policy.Policy
	messenger Messenger
	accountID string // own IG account; used to skip self-authored activity
}

func New(pol policy.Policy, m Messenger, accountID string) *Processor {
	return &Processor{policy: pol, messenger: m, accountID: accountID}
}

// HandleComment replies publicly under a triggering comment and DMs the
// author the full response. Both sends are attempted; failures are logged
// here and reported to the router for counting.
func (p *Processor) HandleComment(ctx context.Context, v types.ChangeValue) error {
	log := zerolog.Ctx(ctx)

	if p.accountID != "" && v.From.ID == p.accountID {
		log.Debug().Str("comment_id", v.CommentID).Msg("skip own comment")
		return nil
	}
	if !p.policy.ShouldAct(v.Text) {
		log.Debug().Str("comment_id", v.CommentID).Msg("no trigger in comment")
		return nil
	}

	var errs []error
	if err := p.messenger.ReplyComment(ctx, v.CommentID, p.policy.CommentAck()); err != nil {
		log.Error().Err(err).Str("comment_id", v.CommentID).Msg("public reply failed")
		errs = append(errs, err)
	} else {
		log.Info().Str("comment_id", v.CommentID).Msg("public reply sent")
	}

	if err := p.messenger.SendDM(ctx, v.From.ID, p.policy.Respond(v.Text)); err != nil {
		log.Error().Err(err).Str("user_id", v.From.ID).Msg("comment dm failed")
		errs = append(errs, err)
	} else {
		log.Info().Str("user_id", v.From.ID).Msg("comment dm sent")
	}
	return errors.Join(errs...)
}

// HandleMention thanks the author under the mentioning comment. A mention
// is its own intent, so the trigger policy is not consulted.
func (p *Processor) HandleMention(ctx context.Context, v types.ChangeValue) error {
	log := zerolog.Ctx(ctx)

	if err := p.messenger.ReplyComment(ctx, v.CommentID, p.policy.MentionResponse()); err != nil {
		log.Error().Err(err).Str("comment_id", v.CommentID).Msg("mention reply failed")
		return err
	}
	log.Info().Str("comment_id", v.CommentID).Str("media_id", v.MediaID).Msg("mention reply sent")
	return nil
}

// HandleMessage DMs the sender of a triggering direct message.
func (p *Processor) HandleMessage(ctx context.Context, m types.MessagingEvent) error {
	log := zerolog.Ctx(ctx)

	if p.accountID != "" && m.Sender.ID == p.accountID {
		log.Debug().Msg("skip own message")
		return nil
	}
	text := m.Message.Text
	if !p.policy.ShouldAct(text) {
		log.Debug().Str("sender_id", m.Sender.ID).Msg("no trigger in message")
		return nil
	}

	if err := p.messenger.SendDM(ctx, m.Sender.ID, p.policy.Respond(text)); err != nil {
		log.Error().Err(err).Str("sender_id", m.Sender.ID).Msg("dm reply failed")
		return err
	}
	log.Info().Str("sender_id", m.Sender.ID).Msg("dm reply sent")
	return nil
}
