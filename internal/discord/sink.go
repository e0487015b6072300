package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/solimanzein/storefront-bot/internal/cart"
	"github.com/solimanzein/storefront-bot/internal/render"
	pkgerrors "github.com/solimanzein/storefront-bot/pkg/errors"
)

// Sink delivers render payloads through the Discord REST API.
type Sink struct {
	session *discordgo.Session
}

// NewSink builds a Discord-backed display sink.
func NewSink(session *discordgo.Session) (*Sink, error) {
	if session == nil {
		return nil, fmt.Errorf("discord session required")
	}
	return &Sink{session: session}, nil
}

func (s *Sink) Send(ctx context.Context, channelID string, payload render.Payload) (string, error) {
	message, err := s.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     buildEmbeds(payload.Embeds),
		Components: buildComponents(payload.Rows),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send channel message")
	}
	return message.ID, nil
}

func (s *Sink) Edit(ctx context.Context, ref cart.DisplayRef, payload render.Payload) error {
	embeds := buildEmbeds(payload.Embeds)
	components := buildComponents(payload.Rows)
	_, err := s.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    ref.ChannelID,
		ID:         ref.MessageID,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "edit channel message")
	}
	return nil
}

func (s *Sink) Delete(ctx context.Context, ref cart.DisplayRef) error {
	if err := s.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete channel message")
	}
	return nil
}
