package router

import (
	"context"

	"github.com/rs/zerolog"

	"ig-autoresponder/internal/types"
)

// Sink receives the individual sub-events of a verified webhook delivery.
type Sink interface {
	HandleComment(ctx context.Context, v types.ChangeValue) error
	HandleMention(ctx context.Context, v types.ChangeValue) error
	HandleMessage(ctx context.Context, m types.MessagingEvent) error
}

// Stats counts handler invocations for one delivery. Failures never reach
// the HTTP layer; they only show up here and in the logs.
type Stats struct {
	Handled int
	Failed  int
}

type Router struct {
	sink Sink
}

func New(sink Sink) *Router {
	return &Router{sink: sink}
}

// Dispatch walks a verified envelope and invokes the sink per sub-event.
// Each invocation is isolated: an error or panic in one handler is logged
// and counted, and never aborts the siblings.
func (r *Router) Dispatch(ctx context.Context, ev *types.InboundEvent) Stats {
	var st Stats
	log := zerolog.Ctx(ctx)

	if ev == nil || ev.Object != types.ObjectInstagram {
		obj := ""
		if ev != nil {
			obj = ev.Object
		}
		log.Debug().Str("object", obj).Msg("ignoring unsupported object")
		return st
	}

	for _, entry := range ev.Entry {
		for _, ch := range entry.Changes {
			v := ch.Value
			switch ch.Field {
			case types.FieldComments:
				r.invoke(ctx, &st, "comment", func() error {
					return r.sink.HandleComment(ctx, v)
				})
			case types.FieldMentions:
				r.invoke(ctx, &st, "mention", func() error {
					return r.sink.HandleMention(ctx, v)
				})
			default:
				log.Debug().Str("field", ch.Field).Msg("ignoring change field")
			}
		}

		for _, m := range entry.Messaging {
			if m.Message == nil || m.Message.Text == "" || m.Message.IsEcho {
				continue
			}
			msg := m
			r.invoke(ctx, &st, "message", func() error {
				return r.sink.HandleMessage(ctx, msg)
			})
		}
	}
	return st
}

func (r *Router) invoke(ctx context.Context, st *Stats, kind string, fn func() error) {
	log := zerolog.Ctx(ctx)
	defer func() {
		if rec := recover(); rec != nil {
			st.Failed++
			log.Error().Interface("panic", rec).Str("handler", kind).Msg("handler panicked")
		}
	}()

	if err := fn(); err != nil {
		st.Failed++
		log.Error().Err(err).Str("handler", kind).Msg("handler failed")
		return
	}
	st.Handled++
}
