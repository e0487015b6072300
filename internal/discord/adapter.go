package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/solimanzein/storefront-bot/internal/router"
	"github.com/solimanzein/storefront-bot/pkg/logger"
)

// AdapterParams configure the Discord gateway adapter.
type AdapterParams struct {
	Logger  *logger.Logger
	Session *discordgo.Session
	Router  *router.Router
	// TriggerRoles maps a mentionable role ID to the catalog category
	// its mention opens.
	TriggerRoles map[string]string
}

// Adapter binds gateway events to the interaction router. Everything
// platform-specific stops here; the router sees neutral events.
type Adapter struct {
	logg         *logger.Logger
	session      *discordgo.Session
	router       *router.Router
	triggerRoles map[string]string
}

// NewAdapter builds a gateway adapter.
func NewAdapter(params AdapterParams) (*Adapter, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Session == nil {
		return nil, fmt.Errorf("discord session required")
	}
	if params.Router == nil {
		return nil, fmt.Errorf("interaction router required")
	}
	if len(params.TriggerRoles) == 0 {
		return nil, fmt.Errorf("at least one trigger role required")
	}
	return &Adapter{
		logg:         params.Logger,
		session:      params.Session,
		router:       params.Router,
		triggerRoles: params.TriggerRoles,
	}, nil
}

// Start registers handlers and opens the gateway connection.
func (a *Adapter) Start() error {
	a.session.AddHandler(a.onMessageCreate)
	a.session.AddHandler(a.onInteractionCreate)
	a.session.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentMessageContent
	if err := a.session.Open(); err != nil {
		return fmt.Errorf("opening gateway connection: %w", err)
	}
	return nil
}

// Stop closes the gateway connection.
func (a *Adapter) Stop() error {
	return a.session.Close()
}

func (a *Adapter) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	for _, roleID := range m.MentionRoles {
		category, ok := a.triggerRoles[roleID]
		if !ok {
			continue
		}
		ctx := a.logg.WithChannelID(context.Background(), m.ChannelID)
		ctx = a.logg.WithField(ctx, "category", category)
		if err := a.router.OpenCatalog(ctx, m.ChannelID, category); err != nil {
			a.logg.Error(ctx, "failed opening catalog", err)
		}
		return
	}
}

func (a *Adapter) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	data := i.MessageComponentData()
	ev := router.Event{
		UserID:    interactionUserID(i),
		ChannelID: i.ChannelID,
		ActionID:  data.CustomID,
		Values:    data.Values,
	}
	ack := &componentAck{session: s, interaction: i.Interaction}
	a.router.HandleInteraction(context.Background(), ev, ack)
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// componentAck settles a component interaction. Ack defers the update
// so the component stops spinning without altering the message; Notify
// replies with an ephemeral notice only the actor sees.
type componentAck struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

func (a *componentAck) Ack(ctx context.Context) error {
	return a.session.InteractionRespond(a.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx))
}

func (a *componentAck) Notify(ctx context.Context, message string) error {
	return a.session.InteractionRespond(a.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
}
